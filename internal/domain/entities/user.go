package entities

// Role is the kind of account
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// User represents a patient or doctor account
type User struct {
	UserID ID     `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

// IsDoctor reports whether the user publishes availability
func (u *User) IsDoctor() bool {
	return u != nil && u.Role == RoleDoctor
}

// IsPatient reports whether the user books appointments
func (u *User) IsPatient() bool {
	return u != nil && u.Role == RolePatient
}
