// Package views holds the state behind each screen of the client: what is
// loaded, which page is shown and how local state follows a successful
// backend call.
package views

import (
	"context"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/clients/healthapi"
	apperrors "github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/errors"
)

var (
	ErrNotDoctor          = apperrors.NewUnauthorizedError("only doctors can manage availability slots")
	ErrNotPatient         = apperrors.NewUnauthorizedError("only patients can book appointments")
	ErrSlotNotFound       = apperrors.NewNotFoundError("availability slot not loaded")
	ErrAppointmentMissing = apperrors.NewNotFoundError("appointment not loaded")
	ErrNoConsultation     = apperrors.NewNotFoundError("no consultation recorded for this appointment")
	ErrNoProfile          = apperrors.NewNotFoundError("no profile loaded")
)

// Success messages shown after a backend call succeeds
const (
	MsgLogout              = "Logout successful!"
	MsgProfileDeleted      = "Profile deleted successfully!"
	MsgProfileUpdated      = "Profile updated successfully!"
	MsgSlotCreated         = "Availability slot created successfully"
	MsgSlotUpdated         = "Availability slot updated successfully!"
	MsgSlotDeleted         = "Availability slot deleted successfully!"
	MsgAppointmentBooked   = "New appointment booked with id: %s"
	MsgAppointmentCanceled = "Appointment cancelled successfully!"
	MsgAppointmentDone     = "Appointment completed successfully!"
	MsgConsultationCreated = "Consultation created successfully!"
	MsgConsultationUpdated = "Consultation updated successfully!"
	MsgConsultationDeleted = "Consultation deleted successfully"
	MsgPasswordHint        = "If you don't want to change your password, type your existing password."
)

// Session is the signed-in user as seen by the screens
type Session interface {
	SignIn(ctx context.Context, token string) (*entities.User, error)
	SignOut(ctx context.Context) error
	Refresh(ctx context.Context) (*entities.User, error)
	CurrentUser() *entities.User
	Subscribe(fn func(*entities.User)) (unsubscribe func())
}

// UserAPI is the users resource
type UserAPI interface {
	Register(ctx context.Context, req entities.RegisterRequest) (*entities.User, error)
	Login(ctx context.Context, req entities.LoginRequest) (*entities.LoginResponse, error)
	GetUserByID(ctx context.Context, id entities.ID) (*entities.User, error)
	UpdateUser(ctx context.Context, req entities.UserUpdateRequest) (*entities.User, error)
	ChangePassword(ctx context.Context, req entities.ChangePasswordRequest) (*entities.User, error)
	DeleteUser(ctx context.Context, id entities.ID) error
}

// AvailabilityAPI is the availabilities resource
type AvailabilityAPI interface {
	ListAvailabilitiesByDoctor(ctx context.Context, doctorID entities.ID) ([]entities.Availability, error)
	SearchAvailabilities(ctx context.Context, filter healthapi.AvailabilityFilter) ([]entities.Availability, error)
	CreateAvailability(ctx context.Context, req entities.AvailabilityRequest) (*entities.Availability, error)
	UpdateAvailability(ctx context.Context, req entities.AvailabilityUpdateRequest) (*entities.Availability, error)
	DeleteAvailability(ctx context.Context, id entities.ID) error
}

// AppointmentAPI is the appointments resource
type AppointmentAPI interface {
	ListAppointments(ctx context.Context, filter healthapi.AppointmentFilter) ([]entities.Appointment, error)
	BookAppointment(ctx context.Context, req entities.AppointmentRequest) (*entities.Appointment, error)
	CancelAppointment(ctx context.Context, id entities.ID) (*entities.Appointment, error)
	CompleteAppointment(ctx context.Context, id entities.ID) (*entities.Appointment, error)
}

// ConsultationAPI is the consultations resource
type ConsultationAPI interface {
	GetConsultationByAppointment(ctx context.Context, appointmentID entities.ID) (*entities.Consultation, error)
	CreateConsultation(ctx context.Context, req entities.ConsultationRequest) (*entities.Consultation, error)
	UpdateConsultation(ctx context.Context, req entities.ConsultationUpdateRequest) (*entities.Consultation, error)
	DeleteConsultation(ctx context.Context, id entities.ID) error
}
