package views

import (
	"context"
	"sync"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/forms"
)

// ConsultationPanel backs the consultation of one appointment. An
// appointment has at most one consultation.
type ConsultationPanel struct {
	api           ConsultationAPI
	appointmentID entities.ID

	mu           sync.Mutex
	consultation *entities.Consultation
}

// NewConsultationPanel creates a panel for an appointment
func NewConsultationPanel(api ConsultationAPI, appointmentID entities.ID) *ConsultationPanel {
	return &ConsultationPanel{api: api, appointmentID: appointmentID}
}

// Consultation returns the loaded consultation, nil when none
func (p *ConsultationPanel) Consultation() *entities.Consultation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.consultation
}

// Load fetches the consultation of the appointment
func (p *ConsultationPanel) Load(ctx context.Context) (*entities.Consultation, error) {
	consultation, err := p.api.GetConsultationByAppointment(ctx, p.appointmentID)
	if err != nil {
		return nil, err
	}
	p.set(consultation)
	return consultation, nil
}

// Create records a consultation for the appointment
func (p *ConsultationPanel) Create(ctx context.Context, form forms.ConsultationForm) (*entities.Consultation, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	form = form.Normalize()

	created, err := p.api.CreateConsultation(ctx, entities.ConsultationRequest{
		AppointmentID: p.appointmentID,
		Notes:         form.Notes,
		Prescription:  form.Prescription,
	})
	if err != nil {
		return nil, err
	}
	p.set(created)
	return created, nil
}

// Edit replaces the notes and prescription of the loaded consultation
func (p *ConsultationPanel) Edit(ctx context.Context, form forms.ConsultationForm) (*entities.Consultation, error) {
	current := p.Consultation()
	if current == nil {
		return nil, ErrNoConsultation
	}
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	form = form.Normalize()

	updated, err := p.api.UpdateConsultation(ctx, entities.ConsultationUpdateRequest{
		ConsultationID: current.ConsultationID,
		Notes:          form.Notes,
		Prescription:   form.Prescription,
	})
	if err != nil {
		return nil, err
	}
	p.set(updated)
	return updated, nil
}

// Delete removes the loaded consultation
func (p *ConsultationPanel) Delete(ctx context.Context) error {
	current := p.Consultation()
	if current == nil {
		return ErrNoConsultation
	}
	if err := p.api.DeleteConsultation(ctx, current.ConsultationID); err != nil {
		return err
	}
	p.set(nil)
	return nil
}

func (p *ConsultationPanel) set(consultation *entities.Consultation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.consultation = consultation
}
