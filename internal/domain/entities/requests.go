package entities

// LoginRequest is the body of POST /users/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Email    string `json:"email"`
	UserID   ID     `json:"userId"`
	JwtToken string `json:"jwtToken"`
}

// RegisterRequest is the body of POST /users/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone"`
}

// UserUpdateRequest is the body of PUT /users
type UserUpdateRequest struct {
	UserID   ID     `json:"userId"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// ChangePasswordRequest is the body of PUT /users/change-password
type ChangePasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// AvailabilityRequest is the body of POST /availabilities
type AvailabilityRequest struct {
	DoctorID      ID            `json:"doctorId"`
	TimeSlotStart LocalDateTime `json:"timeSlotStart"`
	TimeSlotEnd   LocalDateTime `json:"timeSlotEnd"`
}

// AvailabilityUpdateRequest is the body of PUT /availabilities
type AvailabilityUpdateRequest struct {
	AvailabilityID ID            `json:"availabilityId"`
	DoctorID       ID            `json:"doctorId"`
	TimeSlotStart  LocalDateTime `json:"timeSlotStart"`
	TimeSlotEnd    LocalDateTime `json:"timeSlotEnd"`
}

// AppointmentRequest is the body of POST /appointments
type AppointmentRequest struct {
	PatientID     ID            `json:"patientId"`
	DoctorID      ID            `json:"doctorId"`
	TimeSlotStart LocalDateTime `json:"timeSlotStart"`
	TimeSlotEnd   LocalDateTime `json:"timeSlotEnd"`
}

// ConsultationRequest is the body of POST /consultations
type ConsultationRequest struct {
	AppointmentID ID     `json:"appointmentId"`
	Notes         string `json:"notes"`
	Prescription  string `json:"prescription"`
}

// ConsultationUpdateRequest is the body of PUT /consultations
type ConsultationUpdateRequest struct {
	ConsultationID ID     `json:"consultationId"`
	Notes          string `json:"notes"`
	Prescription   string `json:"prescription"`
}
