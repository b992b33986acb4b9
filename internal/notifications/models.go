package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeTicketPurchased      NotificationType = "TICKET_PURCHASED"
	NotificationTypeAppointmentRequested NotificationType = "APPOINTMENT_REQUESTED"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityMedium NotificationPriority = "MEDIUM"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification is the message handed to downstream mailers. Delivery itself
// happens outside this service.
type Notification struct {
	ID       uuid.UUID            `json:"id"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`

	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name,omitempty"`

	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	EventID       string `json:"event_id,omitempty"`
	Reference     string `json:"reference,omitempty"`
	AppointmentID string `json:"appointment_id,omitempty"`

	Status    NotificationStatus `json:"status"`
	LastError *string            `json:"last_error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type NotificationBuilder struct {
	notification *Notification
}

func NewNotificationBuilder() *NotificationBuilder {
	now := time.Now().UTC()
	return &NotificationBuilder{
		notification: &Notification{
			ID:           uuid.New(),
			Status:       NotificationStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
			TemplateData: make(map[string]interface{}),
		},
	}
}

func (nb *NotificationBuilder) WithType(notType NotificationType) *NotificationBuilder {
	nb.notification.Type = notType
	nb.notification.Priority = defaultPriority(notType)
	return nb
}

func (nb *NotificationBuilder) WithRecipient(email, name string) *NotificationBuilder {
	nb.notification.RecipientEmail = email
	nb.notification.RecipientName = name
	return nb
}

func (nb *NotificationBuilder) WithTemplateData(data map[string]interface{}) *NotificationBuilder {
	nb.notification.TemplateData = data
	return nb
}

func (nb *NotificationBuilder) WithEventContext(eventID string) *NotificationBuilder {
	nb.notification.EventID = eventID
	return nb
}

func (nb *NotificationBuilder) WithPaymentContext(reference string) *NotificationBuilder {
	nb.notification.Reference = reference
	return nb
}

func (nb *NotificationBuilder) WithAppointmentContext(appointmentID string) *NotificationBuilder {
	nb.notification.AppointmentID = appointmentID
	return nb
}

func (nb *NotificationBuilder) Build() *Notification {
	if nb.notification.Subject == "" {
		nb.notification.Subject = generateSubject(nb.notification.Type, nb.notification.TemplateData)
	}
	return nb.notification
}

func defaultPriority(notType NotificationType) NotificationPriority {
	switch notType {
	case NotificationTypeTicketPurchased:
		return NotificationPriorityHigh
	case NotificationTypeAppointmentRequested:
		return NotificationPriorityMedium
	default:
		return NotificationPriorityLow
	}
}

func generateSubject(notType NotificationType, data map[string]interface{}) string {
	switch notType {
	case NotificationTypeTicketPurchased:
		if title, ok := data["event_name"]; ok {
			return fmt.Sprintf("Your tickets for %s", title)
		}
		return "Your tickets are confirmed"
	case NotificationTypeAppointmentRequested:
		if eventType, ok := data["event_type"]; ok && eventType != "" {
			return fmt.Sprintf("New %v appointment request", eventType)
		}
		return "New appointment request"
	default:
		return "Notification from Plug Events"
	}
}

// GetPartitionKey keeps all messages for one recipient on one partition.
func (n *Notification) GetPartitionKey() string {
	if n.RecipientEmail == "" {
		return n.ID.String()
	}
	return n.RecipientEmail
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	n.UpdatedAt = time.Now().UTC()
	errorStr := err.Error()
	n.LastError = &errorStr
}
