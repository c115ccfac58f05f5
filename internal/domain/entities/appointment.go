package entities

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "BOOKED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// Valid reports whether s is a known status
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusBooked, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether s may move to next. Only booked
// appointments change, and only to completed or cancelled.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	return s == AppointmentStatusBooked &&
		(next == AppointmentStatusCompleted || next == AppointmentStatusCancelled)
}

// Appointment is a booked slot linking one patient and one doctor
type Appointment struct {
	AppointmentID ID                `json:"appointmentId"`
	Patient       *User             `json:"patient"`
	Doctor        *User             `json:"doctor"`
	TimeSlotStart LocalDateTime     `json:"timeSlotStart"`
	TimeSlotEnd   LocalDateTime     `json:"timeSlotEnd"`
	Status        AppointmentStatus `json:"status"`
}
