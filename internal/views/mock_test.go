package views

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/clients/healthapi"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/session"
)

// MockBackend is a mock of every backend resource
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) result(args mock.Arguments) error {
	return args.Error(1)
}

func (m *MockBackend) Register(ctx context.Context, req entities.RegisterRequest) (*entities.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*entities.User)
	return user, m.result(args)
}

func (m *MockBackend) Login(ctx context.Context, req entities.LoginRequest) (*entities.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*entities.LoginResponse)
	return resp, m.result(args)
}

func (m *MockBackend) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entities.User)
	return user, m.result(args)
}

func (m *MockBackend) GetUserByID(ctx context.Context, id entities.ID) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, m.result(args)
}

func (m *MockBackend) UpdateUser(ctx context.Context, req entities.UserUpdateRequest) (*entities.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*entities.User)
	return user, m.result(args)
}

func (m *MockBackend) ChangePassword(ctx context.Context, req entities.ChangePasswordRequest) (*entities.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*entities.User)
	return user, m.result(args)
}

func (m *MockBackend) DeleteUser(ctx context.Context, id entities.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) ListAvailabilitiesByDoctor(ctx context.Context, doctorID entities.ID) ([]entities.Availability, error) {
	args := m.Called(ctx, doctorID)
	slots, _ := args.Get(0).([]entities.Availability)
	return slots, m.result(args)
}

func (m *MockBackend) SearchAvailabilities(ctx context.Context, filter healthapi.AvailabilityFilter) ([]entities.Availability, error) {
	args := m.Called(ctx, filter)
	slots, _ := args.Get(0).([]entities.Availability)
	return slots, m.result(args)
}

func (m *MockBackend) CreateAvailability(ctx context.Context, req entities.AvailabilityRequest) (*entities.Availability, error) {
	args := m.Called(ctx, req)
	slot, _ := args.Get(0).(*entities.Availability)
	return slot, m.result(args)
}

func (m *MockBackend) UpdateAvailability(ctx context.Context, req entities.AvailabilityUpdateRequest) (*entities.Availability, error) {
	args := m.Called(ctx, req)
	slot, _ := args.Get(0).(*entities.Availability)
	return slot, m.result(args)
}

func (m *MockBackend) DeleteAvailability(ctx context.Context, id entities.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) ListAppointments(ctx context.Context, filter healthapi.AppointmentFilter) ([]entities.Appointment, error) {
	args := m.Called(ctx, filter)
	appts, _ := args.Get(0).([]entities.Appointment)
	return appts, m.result(args)
}

func (m *MockBackend) BookAppointment(ctx context.Context, req entities.AppointmentRequest) (*entities.Appointment, error) {
	args := m.Called(ctx, req)
	appt, _ := args.Get(0).(*entities.Appointment)
	return appt, m.result(args)
}

func (m *MockBackend) CancelAppointment(ctx context.Context, id entities.ID) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	appt, _ := args.Get(0).(*entities.Appointment)
	return appt, m.result(args)
}

func (m *MockBackend) CompleteAppointment(ctx context.Context, id entities.ID) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	appt, _ := args.Get(0).(*entities.Appointment)
	return appt, m.result(args)
}

func (m *MockBackend) GetConsultationByAppointment(ctx context.Context, appointmentID entities.ID) (*entities.Consultation, error) {
	args := m.Called(ctx, appointmentID)
	consultation, _ := args.Get(0).(*entities.Consultation)
	return consultation, m.result(args)
}

func (m *MockBackend) CreateConsultation(ctx context.Context, req entities.ConsultationRequest) (*entities.Consultation, error) {
	args := m.Called(ctx, req)
	consultation, _ := args.Get(0).(*entities.Consultation)
	return consultation, m.result(args)
}

func (m *MockBackend) UpdateConsultation(ctx context.Context, req entities.ConsultationUpdateRequest) (*entities.Consultation, error) {
	args := m.Called(ctx, req)
	consultation, _ := args.Get(0).(*entities.Consultation)
	return consultation, m.result(args)
}

func (m *MockBackend) DeleteConsultation(ctx context.Context, id entities.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	doctor  = &entities.User{UserID: "9", Name: "Lee", Role: entities.RoleDoctor, Email: "lee@x.com", Phone: "9876543210"}
	patient = &entities.User{UserID: "7", Name: "Ann", Role: entities.RolePatient, Email: "ann@x.com", Phone: "9123456780"}
)

func tokenFor(t *testing.T, email string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": email}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return raw
}

// signedIn returns a session store signed in as user, backed by backend
func signedIn(t *testing.T, backend *MockBackend, user *entities.User) *session.Store {
	t.Helper()
	store := session.NewStore(session.NewMemoryTokenStore(), backend)
	if user == nil {
		return store
	}
	backend.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	_, err := store.SignIn(context.Background(), tokenFor(t, user.Email))
	require.NoError(t, err)
	return store
}

func slotAt(t *testing.T, id entities.ID, start string) entities.Availability {
	t.Helper()
	from, err := entities.ParseLocalDateTime(start)
	require.NoError(t, err)
	return entities.Availability{
		AvailabilityID: id,
		Doctor:         doctor,
		TimeSlotStart:  from,
		TimeSlotEnd:    entities.NewLocalDateTime(from.Add(30 * time.Minute)),
		Available:      true,
	}
}
