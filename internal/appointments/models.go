package appointments

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the format of the requested date, as sent by a date input.
const DateLayout = "2006-01-02"

var (
	ErrInvalidAppointment = errors.New("invalid appointment request")
	ErrDateInPast         = errors.New("requested date is in the past")
)

type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusContacted Status = "CONTACTED"
)

// Appointment is a request to talk to the team about organising an event.
type Appointment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null;index"`
	Phone     string    `json:"phone,omitempty" gorm:"size:50"`
	EventType string    `json:"event_type" gorm:"size:50;not null"`
	Date      string    `json:"date" gorm:"size:10;not null"`
	Message   string    `json:"message,omitempty" gorm:"type:text"`
	Status    Status    `json:"status" gorm:"size:20;not null;default:REQUESTED"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
