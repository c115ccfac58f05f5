package entities

// Consultation holds the clinical notes of one appointment
type Consultation struct {
	ConsultationID ID           `json:"consultationId"`
	Appointment    *Appointment `json:"appointment"`
	Notes          string       `json:"notes"`
	Prescription   string       `json:"prescription"`
}
