package main

import (
	"context"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/forms"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/navigation"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/token"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/views"
	apperrors "github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/errors"
)

func runLogin(ctx context.Context, a *app, args []string) error {
	for _, msg := range a.auth.LoginNotices() {
		a.printf("%s\n", msg)
	}

	var form forms.LoginForm
	fs := a.flags("login")
	fs.StringVar(&form.Email, "email", "", "account email")
	fs.StringVar(&form.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.auth.Login(ctx, form); err != nil {
		return err
	}
	if greeting, ok := a.auth.HomeGreeting(); ok {
		a.printf("%s\n", greeting)
	}
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	var form forms.RegisterForm
	fs := a.flags("register")
	fs.StringVar(&form.Name, "name", "", "full name")
	fs.StringVar(&form.Email, "email", "", "account email")
	fs.StringVar(&form.Password, "password", "", "password")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "password again")
	fs.StringVar(&form.Role, "role", "", "PATIENT or DOCTOR")
	fs.StringVar(&form.Phone, "phone", "", "10 digit phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.auth.Register(ctx, form); err != nil {
		return err
	}
	for _, msg := range a.auth.LoginNotices() {
		a.printf("%s\n", msg)
	}
	return nil
}

func runForgotPassword(ctx context.Context, a *app, args []string) error {
	var form forms.ChangePasswordForm
	fs := a.flags("forgot-password")
	fs.StringVar(&form.Email, "email", "", "account email")
	fs.StringVar(&form.Password, "password", "", "new password")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "new password again")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.auth.ChangePassword(ctx, form); err != nil {
		return err
	}
	for _, msg := range a.auth.LoginNotices() {
		a.printf("%s\n", msg)
	}
	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	for _, msg := range a.auth.LoginNotices() {
		a.printf("%s\n", msg)
	}
	return nil
}

func runWhoami(_ context.Context, a *app, _ []string) error {
	user := a.session.CurrentUser()
	if user == nil {
		return apperrors.ErrNotAuthenticated
	}
	printUser(a.out, user)
	if info, ok := token.Claims(a.session.Token()); ok {
		printTokenInfo(a.out, info)
	}
	return nil
}

func runProfile(ctx context.Context, a *app, args []string) error {
	sub, rest, err := subcommand(args, "show", "edit", "delete")
	if err != nil {
		return err
	}
	profile := views.NewProfileView(a.client, a.client, a.session, a.board)

	switch sub {
	case "show":
		fs := a.flags("profile show")
		userID := fs.String("user", "", "user id, defaults to yourself")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		id, err := userOrSelf(a, *userID)
		if err != nil {
			return err
		}
		user, err := profile.Open(ctx, id)
		if err != nil {
			return err
		}
		printUser(a.out, user)
		printAppointments(a.out, profile.Page())
		return nil

	case "edit":
		form := profile.EditDefaults()
		fs := a.flags("profile edit")
		fs.StringVar(&form.Name, "name", form.Name, "full name")
		fs.StringVar(&form.Password, "password", "", "new password, or your current one to keep it")
		fs.StringVar(&form.Phone, "phone", form.Phone, "10 digit phone number")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if form.Password == "" {
			a.printf("%s\n", views.MsgPasswordHint)
		}
		user, err := profile.EditProfile(ctx, form)
		if err != nil {
			return err
		}
		a.printf("%s\n", views.MsgProfileUpdated)
		printUser(a.out, user)
		return nil

	default:
		if err := profile.DeleteProfile(ctx); err != nil {
			return err
		}
		for _, msg := range a.auth.LoginNotices() {
			a.printf("%s\n", msg)
		}
		return nil
	}
}

func runSlots(ctx context.Context, a *app, args []string) error {
	sub, rest, err := subcommand(args, "list", "search", "create", "edit", "delete", "book")
	if err != nil {
		return err
	}

	board := views.NewAvailabilityBoard(a.client, a.client, a.session)
	if err := board.Open(ctx); err != nil {
		return err
	}
	defer board.Close()

	switch sub {
	case "list":
		fs := a.flags("slots list")
		page := fs.Int("page", 1, "page number")
		size := fs.Int("size", views.DefaultPageSize, "rows per page")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		board.SetPage(*page-1, *size)
		printSlots(a.out, board.Page())
		a.printf("page %d of %d\n", *page, max(board.PageCount(), 1))
		return nil

	case "search":
		var form forms.AvailabilityFilterForm
		fs := a.flags("slots search")
		fs.StringVar(&form.DoctorName, "doctor", "", "doctor name prefix")
		fs.StringVar(&form.TimeSlotStart, "from", "", "earliest start, e.g. 2030-05-01T09:00")
		fs.StringVar(&form.TimeSlotEnd, "to", "", "latest end, e.g. 2030-05-01T17:00")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if _, err := board.Filter(ctx, form); err != nil {
			return err
		}
		printSlots(a.out, board.Page())
		return nil

	case "create":
		var form forms.AvailabilityForm
		fs := a.flags("slots create")
		fs.StringVar(&form.TimeSlotStart, "start", "", "slot start, e.g. 2030-05-01T09:00")
		fs.StringVar(&form.TimeSlotEnd, "end", "", "slot end, e.g. 2030-05-01T09:30")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		slot, err := board.Create(ctx, form)
		if err != nil {
			return err
		}
		a.printf("%s\n", views.MsgSlotCreated)
		printSlots(a.out, []entities.Availability{*slot})
		return nil

	case "edit":
		var form forms.AvailabilityForm
		fs := a.flags("slots edit")
		id := fs.String("id", "", "slot id")
		fs.StringVar(&form.TimeSlotStart, "start", "", "new slot start")
		fs.StringVar(&form.TimeSlotEnd, "end", "", "new slot end")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if _, err := board.Edit(ctx, entities.ID(*id), form); err != nil {
			return err
		}
		a.printf("%s\n", views.MsgSlotUpdated)
		return nil

	case "delete":
		fs := a.flags("slots delete")
		id := fs.String("id", "", "slot id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := board.Delete(ctx, entities.ID(*id)); err != nil {
			return err
		}
		a.printf("%s\n", views.MsgSlotDeleted)
		return nil

	default:
		fs := a.flags("slots book")
		id := fs.String("id", "", "slot id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		appt, err := board.Book(ctx, entities.ID(*id))
		if err != nil {
			return err
		}
		a.printf(views.MsgAppointmentBooked+"\n", appt.AppointmentID)
		return nil
	}
}

func runAppointments(ctx context.Context, a *app, args []string) error {
	sub, rest, err := subcommand(args, "list", "cancel", "complete")
	if err != nil {
		return err
	}

	var form forms.AppointmentFilterForm
	fs := a.flags("appointments " + sub)
	userID := fs.String("user", "", "whose appointments, defaults to yourself")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", views.DefaultPageSize, "rows per page")
	fs.StringVar(&form.AppointmentID, "id", "", "appointment id")
	if sub == "list" {
		fs.StringVar(&form.Status, "status", "", "BOOKED, COMPLETED or CANCELLED")
		fs.StringVar(&form.PatientName, "patient", "", "patient name")
		fs.StringVar(&form.DoctorName, "doctor", "", "doctor name")
	}
	if err := fs.Parse(rest); err != nil {
		return err
	}

	id, err := userOrSelf(a, *userID)
	if err != nil {
		return err
	}
	profile := views.NewProfileView(a.client, a.client, a.session, a.board)
	if _, err := profile.Open(ctx, id); err != nil {
		return err
	}

	switch sub {
	case "list":
		if _, err := profile.Filter(ctx, form); err != nil {
			return err
		}
		profile.SetPage(*page-1, *size)
		printAppointments(a.out, profile.Page())
		return nil

	case "cancel":
		if err := profile.Cancel(ctx, entities.ID(form.AppointmentID)); err != nil {
			return err
		}
		a.printf("%s\n", views.MsgAppointmentCanceled)
		return nil

	default:
		if err := profile.Complete(ctx, entities.ID(form.AppointmentID)); err != nil {
			return err
		}
		a.printf("%s\n", views.MsgAppointmentDone)
		return nil
	}
}

func runConsultation(ctx context.Context, a *app, args []string) error {
	sub, rest, err := subcommand(args, "show", "create", "edit", "delete")
	if err != nil {
		return err
	}

	var form forms.ConsultationForm
	fs := a.flags("consultation " + sub)
	appointmentID := fs.String("appointment", "", "appointment id")
	if sub == "create" || sub == "edit" {
		fs.StringVar(&form.Notes, "notes", "", "consultation notes")
		fs.StringVar(&form.Prescription, "prescription", "", "prescription")
	}
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if *appointmentID == "" {
		return &usageError{msg: "-appointment is required"}
	}

	panel := views.NewConsultationPanel(a.client, entities.ID(*appointmentID))
	if sub != "create" {
		if _, err := panel.Load(ctx); err != nil {
			return err
		}
	}

	switch sub {
	case "show":
		printConsultation(a.out, panel.Consultation())
	case "create":
		if _, err := panel.Create(ctx, form); err != nil {
			return err
		}
		a.printf("%s\n", views.MsgConsultationCreated)
		printConsultation(a.out, panel.Consultation())
	case "edit":
		if _, err := panel.Edit(ctx, form); err != nil {
			return err
		}
		a.printf("%s\n", views.MsgConsultationUpdated)
		printConsultation(a.out, panel.Consultation())
	default:
		if err := panel.Delete(ctx); err != nil {
			return err
		}
		a.printf("%s\n", views.MsgConsultationDeleted)
	}
	return nil
}

func runOpen(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return &usageError{msg: "usage: healthcare open PATH"}
	}

	match, err := a.router.Resolve(ctx, args[0])
	if err != nil {
		return err
	}
	for _, from := range match.Redirects {
		a.printf("%s -> ", from)
	}
	a.printf("%s (%s)\n", match.Path, match.Title)
	for name, value := range match.Params {
		a.printf("  %s=%s\n", name, value)
	}

	switch match.Name {
	case navigation.RouteLogin:
		for _, msg := range a.auth.LoginNotices() {
			a.printf("%s\n", msg)
		}
	case navigation.RouteHome:
		if greeting, ok := a.auth.HomeGreeting(); ok {
			a.printf("%s\n", greeting)
		}
	}
	return nil
}

// userOrSelf returns id, or the signed-in user's id when id is empty
func userOrSelf(a *app, id string) (entities.ID, error) {
	if id != "" {
		return entities.ID(id), nil
	}
	user := a.session.CurrentUser()
	if user == nil {
		return "", apperrors.ErrNotAuthenticated
	}
	return user.UserID, nil
}
