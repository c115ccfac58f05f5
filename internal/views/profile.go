package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/forms"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/clients/healthapi"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/observability"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/notices"
	apperrors "github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/errors"
)

// ProfileView backs the profile screen of one user: their details and their
// appointments.
type ProfileView struct {
	users   UserAPI
	appts   AppointmentAPI
	session Session
	board   *notices.Board

	mu     sync.Mutex
	userID entities.ID
	user   *entities.User
	pager  *Pager[entities.Appointment]
}

// NewProfileView creates an empty profile view
func NewProfileView(users UserAPI, appts AppointmentAPI, session Session, board *notices.Board) *ProfileView {
	return &ProfileView{
		users:   users,
		appts:   appts,
		session: session,
		board:   board,
		pager:   NewPager[entities.Appointment](DefaultPageSize),
	}
}

// Open loads a user and their appointments. A failed appointment load
// leaves the list empty without failing the view.
func (v *ProfileView) Open(ctx context.Context, userID entities.ID) (*entities.User, error) {
	user, err := v.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.userID = userID
	v.user = user
	v.pager.Set(nil)
	v.pager.SetPage(0, 0)
	v.mu.Unlock()

	appts, err := v.appts.ListAppointments(ctx, healthapi.AppointmentFilter{UserID: user.UserID, Role: user.Role})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("user_id", userID.String()).Msg("failed to load appointments")
		return user, nil
	}

	v.mu.Lock()
	v.pager.Set(appts)
	v.mu.Unlock()
	return user, nil
}

// User returns the loaded user
func (v *ProfileView) User() *entities.User {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.user
}

// IsOwnProfile reports whether the loaded profile belongs to the signed-in
// user
func (v *ProfileView) IsOwnProfile() bool {
	current := v.session.CurrentUser()
	if current == nil {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.userID != "" && v.userID == current.UserID
}

// Appointments returns every loaded appointment
func (v *ProfileView) Appointments() []entities.Appointment {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entities.Appointment(nil), v.pager.Items()...)
}

// Page returns the appointments of the current page
func (v *ProfileView) Page() []entities.Appointment {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entities.Appointment(nil), v.pager.Page()...)
}

// SetPage selects a zero-based page and page size
func (v *ProfileView) SetPage(index, size int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pager.SetPage(index, size)
}

// Filter reloads the appointments with the backend filters, then keeps
// only the exact appointment id when one is given. A failed load empties
// the list.
func (v *ProfileView) Filter(ctx context.Context, form forms.AppointmentFilterForm) ([]entities.Appointment, error) {
	user := v.User()
	if user == nil {
		return nil, ErrNoProfile
	}
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	form = form.Normalize()

	appts, err := v.appts.ListAppointments(ctx, healthapi.AppointmentFilter{
		UserID:      user.UserID,
		Role:        user.Role,
		Status:      entities.AppointmentStatus(form.Status),
		PatientName: form.PatientName,
		DoctorName:  form.DoctorName,
	})

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.pager.Set(nil)
		return nil, err
	}

	if form.AppointmentID != "" {
		var matched []entities.Appointment
		for _, appt := range appts {
			if appt.AppointmentID.String() == form.AppointmentID {
				matched = []entities.Appointment{appt}
				break
			}
		}
		appts = matched
	}
	v.pager.Set(appts)
	return appts, nil
}

// Cancel cancels a booked appointment and marks it locally
func (v *ProfileView) Cancel(ctx context.Context, id entities.ID) error {
	return v.transition(ctx, id, entities.AppointmentStatusCancelled, v.appts.CancelAppointment)
}

// Complete completes a booked appointment and marks it locally
func (v *ProfileView) Complete(ctx context.Context, id entities.ID) error {
	return v.transition(ctx, id, entities.AppointmentStatusCompleted, v.appts.CompleteAppointment)
}

func (v *ProfileView) transition(
	ctx context.Context,
	id entities.ID,
	to entities.AppointmentStatus,
	call func(context.Context, entities.ID) (*entities.Appointment, error),
) error {
	current, ok := v.status(id)
	if !ok {
		return ErrAppointmentMissing
	}
	if !current.CanTransitionTo(to) {
		return apperrors.NewConflictError(fmt.Sprintf("appointment %s is %s and cannot become %s", id, current, to))
	}

	if _, err := call(ctx, id); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	items := v.pager.Items()
	for i := range items {
		if items[i].AppointmentID == id {
			items[i].Status = to
		}
	}
	return nil
}

func (v *ProfileView) status(id entities.ID) (entities.AppointmentStatus, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, appt := range v.pager.Items() {
		if appt.AppointmentID == id {
			return appt.Status, true
		}
	}
	return "", false
}

// EditDefaults prefills the edit form with the signed-in user's details.
// The password is always typed again.
func (v *ProfileView) EditDefaults() forms.ProfileForm {
	current := v.session.CurrentUser()
	if current == nil {
		return forms.ProfileForm{}
	}
	return forms.ProfileForm{Name: current.Name, Phone: current.Phone}
}

// EditProfile updates the signed-in user and reloads the session user
func (v *ProfileView) EditProfile(ctx context.Context, form forms.ProfileForm) (*entities.User, error) {
	current := v.session.CurrentUser()
	if current == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	updated, err := v.users.UpdateUser(ctx, form.Normalize(current.UserID))
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	if v.userID == updated.UserID {
		v.user = updated
	}
	v.mu.Unlock()

	if _, err := v.session.Refresh(ctx); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to reload session user after profile edit")
	}
	return updated, nil
}

// DeleteProfile deletes the signed-in user's account and signs out
func (v *ProfileView) DeleteProfile(ctx context.Context) error {
	current := v.session.CurrentUser()
	if current == nil {
		return apperrors.ErrNotAuthenticated
	}

	if err := v.users.DeleteUser(ctx, current.UserID); err != nil {
		return err
	}
	if err := v.session.SignOut(ctx); err != nil {
		return err
	}
	v.board.Set(notices.LogOut, MsgProfileDeleted)
	return nil
}
