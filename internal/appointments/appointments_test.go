package appointments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugevents/internal/notifications"
)

var testNow = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	published []*notifications.Notification
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, n *notifications.Notification) error {
	p.published = append(p.published, n)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func validRequest() *CreateAppointmentRequest {
	return &CreateAppointmentRequest{
		Name:      " Ada Obi ",
		Email:     "ada@example.com",
		Phone:     "+2348000000000",
		EventType: "wedding",
		Date:      "2025-03-01",
		Message:   "Around 200 guests",
	}
}

func TestService_Request(t *testing.T) {
	repo := NewMemoryRepository()
	publisher := &recordingPublisher{}
	svc := NewService(repo, "team@plugevents.ng", func() time.Time { return testNow })
	svc.SetNotificationPublisher(publisher)

	appointment, err := svc.Request(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "Ada Obi", appointment.Name)
	assert.Equal(t, StatusRequested, appointment.Status)
	assert.Equal(t, testNow, appointment.CreatedAt)

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, appointment.ID, stored[0].ID)

	require.Len(t, publisher.published, 1)
	n := publisher.published[0]
	assert.Equal(t, notifications.NotificationTypeAppointmentRequested, n.Type)
	assert.Equal(t, "team@plugevents.ng", n.RecipientEmail)
	assert.Equal(t, appointment.ID.String(), n.AppointmentID)
	assert.Equal(t, "New wedding appointment request", n.Subject)
}

func TestService_RequestValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "team@plugevents.ng", func() time.Time { return testNow })

	tests := []struct {
		name   string
		mutate func(r *CreateAppointmentRequest)
		want   error
	}{
		{"missing name", func(r *CreateAppointmentRequest) { r.Name = "" }, ErrInvalidAppointment},
		{"bad email", func(r *CreateAppointmentRequest) { r.Email = "ada" }, ErrInvalidAppointment},
		{"unknown event type", func(r *CreateAppointmentRequest) { r.EventType = "funeral" }, ErrInvalidAppointment},
		{"bad date", func(r *CreateAppointmentRequest) { r.Date = "01/03/2025" }, ErrInvalidAppointment},
		{"past date", func(r *CreateAppointmentRequest) { r.Date = "2024-12-31" }, ErrDateInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := svc.Request(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	req := validRequest()
	req.Date = "2025-01-01"
	req.Phone = ""
	req.Message = ""
	_, err := svc.Request(context.Background(), req)
	assert.NoError(t, err)
}

func TestService_PublishFailureIsNotFatal(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "team@plugevents.ng", func() time.Time { return testNow })
	svc.SetNotificationPublisher(&recordingPublisher{err: errors.New("broker down")})

	_, err := svc.Request(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestController_CreateAppointment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewService(NewMemoryRepository(), "team@plugevents.ng", func() time.Time { return testNow })
	router := gin.New()
	SetupAppointmentRoutes(router.Group("/api/v1"), NewController(svc))

	post := func(body interface{}) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post(validRequest())
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	bad := validRequest()
	bad.Email = ""
	w = post(bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
