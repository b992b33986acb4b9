package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"plugevents/internal/metrics"
	"plugevents/internal/notifications"
	"plugevents/pkg/logger"
)

type Service interface {
	SetNotificationPublisher(publisher notifications.Publisher)
	Request(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error)
}

type service struct {
	repo      Repository
	publisher notifications.Publisher
	validator *validator.Validate
	inbox     string
	now       func() time.Time
	logger    *logger.Logger
}

// NewService builds the appointment service. inbox is the team address that
// receives the request notifications.
func NewService(repo Repository, inbox string, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:      repo,
		publisher: notifications.NoopPublisher{},
		validator: validator.New(),
		inbox:     inbox,
		now:       now,
		logger:    logger.GetDefault(),
	}
}

// SetNotificationPublisher injects the notification publisher dependency
func (s *service) SetNotificationPublisher(publisher notifications.Publisher) {
	if publisher != nil {
		s.publisher = publisher
	}
}

func (s *service) Request(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAppointment, err.Error())
	}

	now := s.now()
	date, _ := time.Parse(DateLayout, req.Date)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return nil, ErrDateInPast
	}

	appointment := &Appointment{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		EventType: req.EventType,
		Date:      req.Date,
		Message:   strings.TrimSpace(req.Message),
		Status:    StatusRequested,
		CreatedAt: now.UTC(),
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("store appointment: %w", err)
	}

	metrics.AppointmentRequested()
	s.logger.LogAppointmentRequested(ctx, appointment.ID.String(), appointment.EventType)
	s.notify(ctx, appointment)
	return appointment, nil
}

func (s *service) notify(ctx context.Context, appointment *Appointment) {
	notification := notifications.NewNotificationBuilder().
		WithType(notifications.NotificationTypeAppointmentRequested).
		WithRecipient(s.inbox, "Plug Events").
		WithAppointmentContext(appointment.ID.String()).
		WithTemplateData(map[string]interface{}{
			"name":       appointment.Name,
			"email":      appointment.Email,
			"phone":      appointment.Phone,
			"event_type": appointment.EventType,
			"date":       appointment.Date,
			"message":    appointment.Message,
		}).
		Build()

	err := s.publisher.Publish(ctx, notification)
	metrics.NotificationPublished(string(notification.Type), err)
	if err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to publish appointment notification", err, map[string]interface{}{
			"appointment_id": appointment.ID.String(),
		})
	}
}
