package purchase

import (
	"time"

	"plugevents/internal/payments"
	"plugevents/internal/pricing"
)

// SessionResponse is what the booking widget renders.
type SessionResponse struct {
	ID            string            `json:"id"`
	EventID       string            `json:"event_id"`
	EventTitle    string            `json:"event_title"`
	State         State             `json:"state"`
	Selection     pricing.Selection `json:"selection"`
	Quote         pricing.Quote     `json:"quote"`
	Email         string            `json:"email"`
	CanPay        bool              `json:"can_pay"`
	Attempt       *Attempt          `json:"attempt,omitempty"`
	LastReference string            `json:"last_reference,omitempty"`
	LastFailure   string            `json:"last_failure,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type QuantityResponse struct {
	Session  *SessionResponse `json:"session"`
	Accepted bool             `json:"accepted"`
}

type PaymentResponse struct {
	Session  *SessionResponse   `json:"session"`
	Checkout *payments.Checkout `json:"checkout"`
}
