package forms

import (
	"strings"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	apperrors "github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/errors"
)

// LoginForm is the sign-in screen
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8,max=20,trimmedmin=8"`
}

// Normalize builds the login request
func (f LoginForm) Normalize() entities.LoginRequest {
	return entities.LoginRequest{
		Email:    normalizeEmail(f.Email),
		Password: strings.TrimSpace(f.Password),
	}
}

// RegisterForm is the sign-up screen
type RegisterForm struct {
	Name            string `form:"name" validate:"required,min=2,trimmedmin=2"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8,max=20,trimmedmin=8,password"`
	ConfirmPassword string `form:"confirm_password" validate:"required,min=8,max=20,eqfield=Password"`
	Role            string `form:"role" validate:"required,oneof=PATIENT DOCTOR"`
	Phone           string `form:"phone" validate:"required,phone"`
}

// Normalize builds the registration request
func (f RegisterForm) Normalize() entities.RegisterRequest {
	return entities.RegisterRequest{
		Name:     strings.TrimSpace(f.Name),
		Email:    normalizeEmail(f.Email),
		Password: strings.TrimSpace(f.Password),
		Role:     entities.Role(f.Role),
		Phone:    f.Phone,
	}
}

// ChangePasswordForm is the forgot-password screen
type ChangePasswordForm struct {
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8,max=20,password,trimmedmin=8"`
	ConfirmPassword string `form:"confirm_password" validate:"required,min=8,max=20,eqfield=Password"`
}

// Normalize builds the change-password request
func (f ChangePasswordForm) Normalize() entities.ChangePasswordRequest {
	return entities.ChangePasswordRequest{
		Email:       normalizeEmail(f.Email),
		NewPassword: strings.TrimSpace(f.Password),
	}
}

// ProfileForm edits the signed-in user's profile
type ProfileForm struct {
	Name     string `form:"name" validate:"required,min=2,trimmedmin=2"`
	Password string `form:"password" validate:"required,min=8,max=20,trimmedmin=8"`
	Phone    string `form:"phone" validate:"required,phone"`
}

// Normalize builds the update request for userID
func (f ProfileForm) Normalize(userID entities.ID) entities.UserUpdateRequest {
	return entities.UserUpdateRequest{
		UserID:   userID,
		Name:     strings.TrimSpace(f.Name),
		Password: strings.TrimSpace(f.Password),
		Phone:    f.Phone,
	}
}

// AvailabilityForm creates or edits one slot
type AvailabilityForm struct {
	TimeSlotStart string `form:"timeSlotStart" validate:"required,localdatetime"`
	TimeSlotEnd   string `form:"timeSlotEnd" validate:"required,localdatetime"`
}

// Times parses both slot bounds. Call it after Validate.
func (f AvailabilityForm) Times() (entities.LocalDateTime, entities.LocalDateTime, error) {
	start, err := entities.ParseLocalDateTime(f.TimeSlotStart)
	if err != nil {
		return entities.LocalDateTime{}, entities.LocalDateTime{}, invalidField("timeSlotStart", err)
	}
	end, err := entities.ParseLocalDateTime(f.TimeSlotEnd)
	if err != nil {
		return entities.LocalDateTime{}, entities.LocalDateTime{}, invalidField("timeSlotEnd", err)
	}
	return start, end, nil
}

// ConsultationForm records notes and a prescription
type ConsultationForm struct {
	Notes        string `form:"notes" validate:"required,min=5,max=500,trimmedmin=5"`
	Prescription string `form:"prescription" validate:"required,min=5,max=1000,trimmedmin=5"`
}

// Normalize trims both texts
func (f ConsultationForm) Normalize() ConsultationForm {
	return ConsultationForm{
		Notes:        strings.TrimSpace(f.Notes),
		Prescription: strings.TrimSpace(f.Prescription),
	}
}

// AppointmentFilterForm narrows the profile's appointment list. Every field
// is optional.
type AppointmentFilterForm struct {
	AppointmentID string `form:"appointmentId"`
	PatientName   string `form:"patientName"`
	DoctorName    string `form:"doctorName"`
	Status        string `form:"status" validate:"omitempty,oneof=BOOKED COMPLETED CANCELLED"`
}

// Normalize trims the free text fields
func (f AppointmentFilterForm) Normalize() AppointmentFilterForm {
	return AppointmentFilterForm{
		AppointmentID: strings.TrimSpace(f.AppointmentID),
		PatientName:   strings.TrimSpace(f.PatientName),
		DoctorName:    strings.TrimSpace(f.DoctorName),
		Status:        f.Status,
	}
}

// AvailabilityFilterForm narrows the open slot search. Every field is
// optional.
type AvailabilityFilterForm struct {
	DoctorName    string `form:"doctorName"`
	TimeSlotStart string `form:"timeSlotStart" validate:"localdatetime"`
	TimeSlotEnd   string `form:"timeSlotEnd" validate:"localdatetime"`
}

// Normalize trims the doctor name and parses the optional bounds. Call it
// after Validate.
func (f AvailabilityFilterForm) Normalize() (doctorName string, start, end entities.LocalDateTime, err error) {
	doctorName = strings.TrimSpace(f.DoctorName)
	if f.TimeSlotStart != "" {
		if start, err = entities.ParseLocalDateTime(f.TimeSlotStart); err != nil {
			return "", start, end, invalidField("timeSlotStart", err)
		}
	}
	if f.TimeSlotEnd != "" {
		if end, err = entities.ParseLocalDateTime(f.TimeSlotEnd); err != nil {
			return "", start, end, invalidField("timeSlotEnd", err)
		}
	}
	return doctorName, start, end, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidField(field string, err error) error {
	out := &apperrors.ValidationErrors{}
	out.Add(field, labelFor(field)+": "+err.Error())
	return out
}
