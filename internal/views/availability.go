package views

import (
	"context"
	"sync"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/forms"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/clients/healthapi"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/observability"
)

// AvailabilityBoard backs the availabilities screen. Doctors see and manage
// their own slots; patients see open slots and book them.
type AvailabilityBoard struct {
	slots   AvailabilityAPI
	appts   AppointmentAPI
	session Session

	mu          sync.Mutex
	user        *entities.User
	pager       *Pager[entities.Availability]
	unsubscribe func()
	loadErr     error
}

// NewAvailabilityBoard creates a closed board
func NewAvailabilityBoard(slots AvailabilityAPI, appts AppointmentAPI, session Session) *AvailabilityBoard {
	return &AvailabilityBoard{
		slots:   slots,
		appts:   appts,
		session: session,
		pager:   NewPager[entities.Availability](DefaultPageSize),
	}
}

// Open follows the session and reloads slots whenever the user changes. The
// current user is loaded before Open returns and that load's error is
// returned.
func (b *AvailabilityBoard) Open(ctx context.Context) error {
	b.Close()
	ctx = context.WithoutCancel(ctx)

	b.mu.Lock()
	b.loadErr = nil
	b.mu.Unlock()

	unsubscribe := b.session.Subscribe(func(user *entities.User) {
		_ = b.load(ctx, user)
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	b.unsubscribe = unsubscribe
	return b.loadErr
}

// Close stops following the session
func (b *AvailabilityBoard) Close() {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (b *AvailabilityBoard) load(ctx context.Context, user *entities.User) error {
	var (
		slots []entities.Availability
		err   error
	)
	switch {
	case user.IsDoctor():
		slots, err = b.slots.ListAvailabilitiesByDoctor(ctx, user.UserID)
	case user.IsPatient():
		slots, err = b.slots.SearchAvailabilities(ctx, healthapi.AvailabilityFilter{})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.user = user
	b.loadErr = err
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to load availability slots")
		return err
	}
	b.pager.Set(slots)
	return nil
}

// User returns the user the board was loaded for
func (b *AvailabilityBoard) User() *entities.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.user
}

// Err returns the error of the last load
func (b *AvailabilityBoard) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadErr
}

// Slots returns every loaded slot
func (b *AvailabilityBoard) Slots() []entities.Availability {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entities.Availability(nil), b.pager.Items()...)
}

// Page returns the slots of the current page
func (b *AvailabilityBoard) Page() []entities.Availability {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entities.Availability(nil), b.pager.Page()...)
}

// SetPage selects a zero-based page and page size
func (b *AvailabilityBoard) SetPage(index, size int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pager.SetPage(index, size)
}

// PageCount returns the number of pages
func (b *AvailabilityBoard) PageCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pager.PageCount()
}

// Create publishes a new slot for the signed-in doctor and lists it first
func (b *AvailabilityBoard) Create(ctx context.Context, form forms.AvailabilityForm) (*entities.Availability, error) {
	doctor := b.User()
	if !doctor.IsDoctor() {
		return nil, ErrNotDoctor
	}
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	start, end, err := form.Times()
	if err != nil {
		return nil, err
	}

	created, err := b.slots.CreateAvailability(ctx, entities.AvailabilityRequest{
		DoctorID:      doctor.UserID,
		TimeSlotStart: start,
		TimeSlotEnd:   end,
	})
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.pager.Set(append([]entities.Availability{*created}, b.pager.Items()...))
	return created, nil
}

// Edit changes the times of a slot
func (b *AvailabilityBoard) Edit(ctx context.Context, id entities.ID, form forms.AvailabilityForm) (*entities.Availability, error) {
	doctor := b.User()
	if !doctor.IsDoctor() {
		return nil, ErrNotDoctor
	}
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	start, end, err := form.Times()
	if err != nil {
		return nil, err
	}

	updated, err := b.slots.UpdateAvailability(ctx, entities.AvailabilityUpdateRequest{
		AvailabilityID: id,
		DoctorID:       doctor.UserID,
		TimeSlotStart:  start,
		TimeSlotEnd:    end,
	})
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	items := b.pager.Items()
	for i := range items {
		if items[i].AvailabilityID == updated.AvailabilityID {
			items[i].TimeSlotStart = updated.TimeSlotStart
			items[i].TimeSlotEnd = updated.TimeSlotEnd
		}
	}
	return updated, nil
}

// Delete removes a slot
func (b *AvailabilityBoard) Delete(ctx context.Context, id entities.ID) error {
	if !b.User().IsDoctor() {
		return ErrNotDoctor
	}
	if err := b.slots.DeleteAvailability(ctx, id); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	items := b.pager.Items()
	kept := make([]entities.Availability, 0, len(items))
	for _, slot := range items {
		if slot.AvailabilityID != id {
			kept = append(kept, slot)
		}
	}
	b.pager.Set(kept)
	return nil
}

// Book books a loaded slot for the signed-in patient. The slot is marked
// taken locally; the list is not refetched.
func (b *AvailabilityBoard) Book(ctx context.Context, id entities.ID) (*entities.Appointment, error) {
	patient := b.User()
	if !patient.IsPatient() {
		return nil, ErrNotPatient
	}
	slot, ok := b.find(id)
	if !ok {
		return nil, ErrSlotNotFound
	}

	appt, err := b.appts.BookAppointment(ctx, entities.AppointmentRequest{
		PatientID:     patient.UserID,
		DoctorID:      slot.DoctorID(),
		TimeSlotStart: slot.TimeSlotStart,
		TimeSlotEnd:   slot.TimeSlotEnd,
	})
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	items := b.pager.Items()
	for i := range items {
		if items[i].AvailabilityID == id {
			items[i].Available = false
		}
	}
	return appt, nil
}

// Filter replaces the list with open slots matching form. A failed search
// empties the list.
func (b *AvailabilityBoard) Filter(ctx context.Context, form forms.AvailabilityFilterForm) ([]entities.Availability, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	doctorName, start, end, err := form.Normalize()
	if err != nil {
		return nil, err
	}

	slots, err := b.slots.SearchAvailabilities(ctx, healthapi.AvailabilityFilter{
		DoctorName:    doctorName,
		TimeSlotStart: start,
		TimeSlotEnd:   end,
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.pager.Set(nil)
		return nil, err
	}
	b.pager.Set(slots)
	return slots, nil
}

func (b *AvailabilityBoard) find(id entities.ID) (entities.Availability, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, slot := range b.pager.Items() {
		if slot.AvailabilityID == id {
			return slot, true
		}
	}
	return entities.Availability{}, false
}
