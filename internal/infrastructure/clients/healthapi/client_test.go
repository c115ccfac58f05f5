package healthapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/config"
	apperrors "github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/errors"
)

type staticToken string

func (s staticToken) Token() string {
	return string(s)
}

// recorded is what the fake backend saw
type recorded struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   []byte
}

func newTestClient(t *testing.T, token string, status int, response string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.header = r.Header.Clone()
		rec.body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	return NewClient(config.APIConfig{BaseURL: server.URL}, staticToken(token)), rec
}

func TestClient_Login(t *testing.T) {
	client, rec := newTestClient(t, "stale-token", http.StatusOK, `{"email":"a@x.com","userId":1,"jwtToken":"h.p.s"}`)

	resp, err := client.Login(context.Background(), entities.LoginRequest{Email: "a@x.com", Password: "Secret1!x"})
	require.NoError(t, err)

	assert.Equal(t, "h.p.s", resp.JwtToken)
	assert.Equal(t, entities.ID("1"), resp.UserID)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/users/login", rec.path)
	assert.Empty(t, rec.header.Get("Authorization"))
	assert.Equal(t, "application/json", rec.header.Get("Content-Type"))
	assert.JSONEq(t, `{"email":"a@x.com","password":"Secret1!x"}`, string(rec.body))

	_, err = uuid.Parse(rec.header.Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestClient_Register(t *testing.T) {
	client, rec := newTestClient(t, "stale-token", http.StatusCreated, `{"userId":5,"name":"Ann","role":"PATIENT","email":"ann@x.com"}`)

	user, err := client.Register(context.Background(), entities.RegisterRequest{Name: "Ann", Email: "ann@x.com", Role: entities.RolePatient})
	require.NoError(t, err)

	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "/users/register", rec.path)
	assert.Empty(t, rec.header.Get("Authorization"))
}

func TestClient_BearerToken(t *testing.T) {
	t.Run("attached when present", func(t *testing.T) {
		client, rec := newTestClient(t, "h.p.s", http.StatusOK, `{"userId":1,"email":"a@x.com"}`)

		_, err := client.GetUserByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)

		assert.Equal(t, "Bearer h.p.s", rec.header.Get("Authorization"))
		assert.Equal(t, "/users/email/a@x.com", rec.path)
	})

	t.Run("omitted when signed out", func(t *testing.T) {
		client, rec := newTestClient(t, "", http.StatusOK, `{"userId":1}`)

		_, err := client.GetUserByID(context.Background(), "1")
		require.NoError(t, err)

		assert.Empty(t, rec.header.Get("Authorization"))
		assert.Equal(t, "/users/1", rec.path)
	})
}

func TestClient_SearchAvailabilities(t *testing.T) {
	client, rec := newTestClient(t, "tok", http.StatusOK, `[{"availabilityId":3,"doctor":{"userId":9,"name":"Lee"},"timeSlotStart":"2030-05-01T09:00:00","timeSlotEnd":"2030-05-01T09:30:00","available":true}]`)

	slots, err := client.SearchAvailabilities(context.Background(), AvailabilityFilter{DoctorName: "Lee"})
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, entities.ID("9"), slots[0].DoctorID())
	assert.Equal(t, url.Values{"namePrefix": {"Lee"}, "isAvailable": {"true"}}, rec.query)
}

func TestAvailabilityFilter_Query(t *testing.T) {
	start, err := entities.ParseLocalDateTime("2030-05-01T09:00")
	require.NoError(t, err)

	assert.Equal(t, url.Values{"isAvailable": {"true"}}, AvailabilityFilter{}.Query())
	assert.Equal(t, url.Values{
		"timeSlotStart": {"2030-05-01T09:00:00"},
		"isAvailable":   {"true"},
	}, AvailabilityFilter{TimeSlotStart: start}.Query())
}

func TestAppointmentFilter_Query(t *testing.T) {
	tests := []struct {
		name   string
		filter AppointmentFilter
		want   url.Values
	}{
		{
			name:   "patient",
			filter: AppointmentFilter{UserID: "7", Role: entities.RolePatient},
			want:   url.Values{"patientId": {"7"}},
		},
		{
			name:   "doctor with filters",
			filter: AppointmentFilter{UserID: "9", Role: entities.RoleDoctor, Status: entities.AppointmentStatusBooked, PatientName: "Ann"},
			want:   url.Values{"doctorId": {"9"}, "status": {"BOOKED"}, "patientName": {"Ann"}},
		},
		{
			name:   "unknown role maps to doctor",
			filter: AppointmentFilter{UserID: "1", DoctorName: "Lee"},
			want:   url.Values{"doctorId": {"1"}, "doctorName": {"Lee"}},
		},
		{
			name:   "no user id",
			filter: AppointmentFilter{Role: entities.RoleDoctor, Status: entities.AppointmentStatusBooked},
			want:   url.Values{"status": {"BOOKED"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Query())
		})
	}
}

func TestClient_AppointmentTransitions(t *testing.T) {
	client, rec := newTestClient(t, "tok", http.StatusOK, `{"appointmentId":4,"status":"CANCELLED"}`)

	appt, err := client.CancelAppointment(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, entities.AppointmentStatusCancelled, appt.Status)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/appointments/cancel/4", rec.path)

	_, err = client.CompleteAppointment(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "/appointments/complete/4", rec.path)
}

func TestClient_BookAppointment(t *testing.T) {
	client, rec := newTestClient(t, "tok", http.StatusCreated, `{"appointmentId":11,"status":"BOOKED"}`)
	start, _ := entities.ParseLocalDateTime("2030-05-01T09:00:00")
	end, _ := entities.ParseLocalDateTime("2030-05-01T09:30:00")

	appt, err := client.BookAppointment(context.Background(), entities.AppointmentRequest{
		PatientID: "7", DoctorID: "9", TimeSlotStart: start, TimeSlotEnd: end,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.ID("11"), appt.AppointmentID)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.Equal(t, "2030-05-01T09:00:00", body["timeSlotStart"])
	assert.Equal(t, float64(7), body["patientId"])
}

func TestClient_GetConsultationByAppointment(t *testing.T) {
	t.Run("first element", func(t *testing.T) {
		client, rec := newTestClient(t, "tok", http.StatusOK, `[{"consultationId":1,"notes":"rest well"},{"consultationId":2}]`)

		consultation, err := client.GetConsultationByAppointment(context.Background(), "4")
		require.NoError(t, err)
		require.NotNil(t, consultation)
		assert.Equal(t, entities.ID("1"), consultation.ConsultationID)
		assert.Equal(t, "4", rec.query.Get("appointmentId"))
	})

	t.Run("none recorded", func(t *testing.T) {
		client, _ := newTestClient(t, "tok", http.StatusOK, `[]`)

		consultation, err := client.GetConsultationByAppointment(context.Background(), "4")
		require.NoError(t, err)
		assert.Nil(t, consultation)
	})
}

func TestClient_Deletes(t *testing.T) {
	client, rec := newTestClient(t, "tok", http.StatusNoContent, ``)
	ctx := context.Background()

	require.NoError(t, client.DeleteAvailability(ctx, "3"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/availabilities/3", rec.path)

	require.NoError(t, client.DeleteConsultation(ctx, "8"))
	assert.Equal(t, "/consultations/8", rec.path)

	require.NoError(t, client.DeleteUser(ctx, "1"))
	assert.Equal(t, "/users/1", rec.path)
}

func TestClient_ErrorResponses(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		client, _ := newTestClient(t, "tok", http.StatusNotFound, `{"error":"Not Found","message":"User not found","statusCode":404}`)

		_, err := client.GetUserByID(context.Background(), "99")
		require.Error(t, err)

		apiErr, ok := apperrors.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "User not found", apiErr.Message)

		title, body := apperrors.Describe(err)
		assert.Equal(t, "Not Found", title)
		assert.Equal(t, "User not found", body)
	})

	t.Run("field errors", func(t *testing.T) {
		client, _ := newTestClient(t, "tok", http.StatusBadRequest, `{"error":"Bad Request","statusCode":400,"phone":"Phone must be 10 digits"}`)

		_, err := client.UpdateUser(context.Background(), entities.UserUpdateRequest{UserID: "1"})

		title, body := apperrors.Describe(err)
		assert.Equal(t, "Bad Request", title)
		assert.Equal(t, "Phone must be 10 digits", body)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		client := NewClient(config.APIConfig{BaseURL: "http://127.0.0.1:1"}, nil)

		_, err := client.GetUserByID(context.Background(), "1")
		require.Error(t, err)
		_, ok := apperrors.AsAPIError(err)
		assert.False(t, ok)

		title, body := apperrors.Describe(err)
		assert.Equal(t, apperrors.FallbackTitle, title)
		assert.Equal(t, apperrors.FallbackMessage, body)
	})
}

func TestClient_ContextCancel(t *testing.T) {
	client, _ := newTestClient(t, "tok", http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetAppointment(ctx, "1")
	assert.Error(t, err)
}
