package receipts

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CollectionName is the name the website has always used for stored tickets.
const CollectionName = "userTickets"

var (
	ErrDuplicateReceipt = errors.New("receipt already recorded for reference")
	ErrInvalidReceipt   = errors.New("invalid receipt")
)

// Receipt is the durable record of one completed purchase. Records are only
// ever appended.
type Receipt struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	EventID      string    `json:"eventId" gorm:"not null;index"`
	EventName    string    `json:"eventName" gorm:"not null"`
	TicketType   string    `json:"ticketType" gorm:"not null"`
	Quantity     int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	Reference    string    `json:"reference" gorm:"not null;uniqueIndex"`
	PurchaseDate time.Time `json:"purchaseDate" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null;index"`
}

func (Receipt) TableName() string {
	return "user_tickets"
}

func (r *Receipt) validate() error {
	switch {
	case r.Reference == "":
		return fmt.Errorf("%w: reference is required", ErrInvalidReceipt)
	case r.EventID == "":
		return fmt.Errorf("%w: event id is required", ErrInvalidReceipt)
	case r.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidReceipt)
	}
	return nil
}

// ListQuery accepts any address the checkout accepted, which only asks for an "@".
type ListQuery struct {
	Email string `form:"email" binding:"required,contains=@"`
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func filterByEmail(all []Receipt, email string) []Receipt {
	out := make([]Receipt, 0)
	for _, r := range all {
		if sameEmail(r.Email, email) {
			out = append(out, r)
		}
	}
	return out
}
