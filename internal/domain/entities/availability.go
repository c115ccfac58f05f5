package entities

// Availability is a doctor-published time window open for booking
type Availability struct {
	AvailabilityID ID            `json:"availabilityId"`
	Doctor         *User         `json:"doctor"`
	TimeSlotStart  LocalDateTime `json:"timeSlotStart"`
	TimeSlotEnd    LocalDateTime `json:"timeSlotEnd"`
	Available      bool          `json:"available"`
}

// DoctorID returns the owning doctor's id, empty when the doctor is not embedded
func (a *Availability) DoctorID() ID {
	if a.Doctor == nil {
		return ""
	}
	return a.Doctor.UserID
}
