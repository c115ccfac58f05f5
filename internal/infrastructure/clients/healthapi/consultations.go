package healthapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
)

// GetConsultationByAppointment returns the consultation recorded for an
// appointment, or nil when there is none.
func (c *Client) GetConsultationByAppointment(ctx context.Context, appointmentID entities.ID) (*entities.Consultation, error) {
	var out []entities.Consultation
	err := c.do(ctx, call{
		method:   http.MethodGet,
		route:    "/consultations",
		endpoint: c.resource(consultationsResource),
		query:    url.Values{"appointmentId": {appointmentID.String()}},
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// CreateConsultation records notes and a prescription for an appointment
func (c *Client) CreateConsultation(ctx context.Context, req entities.ConsultationRequest) (*entities.Consultation, error) {
	out := &entities.Consultation{}
	err := c.do(ctx, call{
		method:   http.MethodPost,
		route:    "/consultations",
		endpoint: c.resource(consultationsResource),
		body:     req,
		out:      out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateConsultation edits a consultation
func (c *Client) UpdateConsultation(ctx context.Context, req entities.ConsultationUpdateRequest) (*entities.Consultation, error) {
	out := &entities.Consultation{}
	err := c.do(ctx, call{
		method:   http.MethodPut,
		route:    "/consultations",
		endpoint: c.resource(consultationsResource),
		body:     req,
		out:      out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteConsultation removes a consultation
func (c *Client) DeleteConsultation(ctx context.Context, id entities.ID) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		route:    "/consultations/{id}",
		endpoint: c.resource(consultationsResource, id.String()),
	})
}
