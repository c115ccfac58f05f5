package healthapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
)

// AvailabilityFilter narrows the open slot search
type AvailabilityFilter struct {
	DoctorName    string
	TimeSlotStart entities.LocalDateTime
	TimeSlotEnd   entities.LocalDateTime
}

// Query encodes the filter. Only open slots are ever searched.
func (f AvailabilityFilter) Query() url.Values {
	query := url.Values{}
	if f.DoctorName != "" {
		query.Set("namePrefix", f.DoctorName)
	}
	if !f.TimeSlotStart.IsZero() {
		query.Set("timeSlotStart", f.TimeSlotStart.String())
	}
	if !f.TimeSlotEnd.IsZero() {
		query.Set("timeSlotEnd", f.TimeSlotEnd.String())
	}
	query.Set("isAvailable", "true")
	return query
}

// ListAvailabilitiesByDoctor returns every slot of a doctor, booked or not
func (c *Client) ListAvailabilitiesByDoctor(ctx context.Context, doctorID entities.ID) ([]entities.Availability, error) {
	var out []entities.Availability
	err := c.do(ctx, call{
		method:   http.MethodGet,
		route:    "/availabilities",
		endpoint: c.resource(availabilitiesResource),
		query:    url.Values{"doctorId": {doctorID.String()}},
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SearchAvailabilities returns open slots matching filter
func (c *Client) SearchAvailabilities(ctx context.Context, filter AvailabilityFilter) ([]entities.Availability, error) {
	var out []entities.Availability
	err := c.do(ctx, call{
		method:   http.MethodGet,
		route:    "/availabilities",
		endpoint: c.resource(availabilitiesResource),
		query:    filter.Query(),
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAvailability publishes a new slot
func (c *Client) CreateAvailability(ctx context.Context, req entities.AvailabilityRequest) (*entities.Availability, error) {
	out := &entities.Availability{}
	err := c.do(ctx, call{
		method:   http.MethodPost,
		route:    "/availabilities",
		endpoint: c.resource(availabilitiesResource),
		body:     req,
		out:      out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAvailability changes the times of a slot
func (c *Client) UpdateAvailability(ctx context.Context, req entities.AvailabilityUpdateRequest) (*entities.Availability, error) {
	out := &entities.Availability{}
	err := c.do(ctx, call{
		method:   http.MethodPut,
		route:    "/availabilities",
		endpoint: c.resource(availabilitiesResource),
		body:     req,
		out:      out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAvailability removes a slot
func (c *Client) DeleteAvailability(ctx context.Context, id entities.ID) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		route:    "/availabilities/{id}",
		endpoint: c.resource(availabilitiesResource, id.String()),
	})
}
