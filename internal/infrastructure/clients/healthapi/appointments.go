package healthapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
)

// AppointmentFilter selects the appointments of one user
type AppointmentFilter struct {
	UserID      entities.ID
	Role        entities.Role
	Status      entities.AppointmentStatus
	PatientName string
	DoctorName  string
}

// Query encodes the non-empty filters. The user id is sent as patientId for
// patients and as doctorId for everyone else.
func (f AppointmentFilter) Query() url.Values {
	query := url.Values{}
	if f.UserID != "" {
		if f.Role == entities.RolePatient {
			query.Set("patientId", f.UserID.String())
		} else {
			query.Set("doctorId", f.UserID.String())
		}
	}
	if f.Status != "" {
		query.Set("status", string(f.Status))
	}
	if f.PatientName != "" {
		query.Set("patientName", f.PatientName)
	}
	if f.DoctorName != "" {
		query.Set("doctorName", f.DoctorName)
	}
	return query
}

// ListAppointments returns the appointments selected by filter
func (c *Client) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]entities.Appointment, error) {
	var out []entities.Appointment
	err := c.do(ctx, call{
		method:   http.MethodGet,
		route:    "/appointments",
		endpoint: c.resource(appointmentsResource),
		query:    filter.Query(),
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetAppointment fetches one appointment
func (c *Client) GetAppointment(ctx context.Context, id entities.ID) (*entities.Appointment, error) {
	out := &entities.Appointment{}
	err := c.do(ctx, call{
		method:   http.MethodGet,
		route:    "/appointments/{id}",
		endpoint: c.resource(appointmentsResource, id.String()),
		out:      out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BookAppointment books a slot for a patient
func (c *Client) BookAppointment(ctx context.Context, req entities.AppointmentRequest) (*entities.Appointment, error) {
	out := &entities.Appointment{}
	err := c.do(ctx, call{
		method:   http.MethodPost,
		route:    "/appointments",
		endpoint: c.resource(appointmentsResource),
		body:     req,
		out:      out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CancelAppointment moves a booked appointment to CANCELLED
func (c *Client) CancelAppointment(ctx context.Context, id entities.ID) (*entities.Appointment, error) {
	return c.transition(ctx, "cancel", id)
}

// CompleteAppointment moves a booked appointment to COMPLETED
func (c *Client) CompleteAppointment(ctx context.Context, id entities.ID) (*entities.Appointment, error) {
	return c.transition(ctx, "complete", id)
}

func (c *Client) transition(ctx context.Context, action string, id entities.ID) (*entities.Appointment, error) {
	out := &entities.Appointment{}
	err := c.do(ctx, call{
		method:   http.MethodPut,
		route:    "/appointments/" + action + "/{id}",
		endpoint: c.resource(appointmentsResource, action, id.String()),
		body:     struct{}{},
		out:      out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
