package payments

import (
	"errors"
	"fmt"
	"net/url"
)

// Status is the discriminant of a gateway Result.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusCancelled Status = "CANCELLED"
	StatusFailed    Status = "FAILED"
)

// Resolved reports whether the status ends an attempt.
func (s Status) Resolved() bool {
	return s == StatusSucceeded || s == StatusCancelled || s == StatusFailed
}

var (
	ErrUnknownReference   = errors.New("unknown payment reference")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrGatewayRejected    = errors.New("gateway rejected request")
	ErrInvalidCharge      = errors.New("invalid charge request")
	ErrUnsupportedGateway = errors.New("unsupported payment gateway")
)

// Metadata travels with a charge so the gateway dashboard shows what was bought.
type Metadata struct {
	EventName string `json:"event_name"`
	TierKey   string `json:"ticket_type"`
	Quantity  int    `json:"quantity"`
}

// ChargeRequest is what the purchase flow hands to a gateway. AmountMinor is
// already in the currency's smallest unit.
type ChargeRequest struct {
	AmountMinor int64
	Currency    string
	Email       string
	Reference   string
	Metadata    Metadata
	CallbackURL string
	CancelURL   string
}

func (r *ChargeRequest) validate() error {
	switch {
	case r == nil:
		return ErrInvalidCharge
	case r.Reference == "":
		return fmt.Errorf("%w: reference is required", ErrInvalidCharge)
	case r.Email == "":
		return fmt.Errorf("%w: email is required", ErrInvalidCharge)
	case r.AmountMinor < 0:
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidCharge)
	}
	return nil
}

// Checkout is where the viewer is sent to pay.
type Checkout struct {
	Reference string `json:"reference"`
	SessionID string `json:"gateway_session_id,omitempty"`
	URL       string `json:"checkout_url"`
}

// Result is the outcome a gateway reports for one reference.
type Result struct {
	Status        Status `json:"status"`
	Reference     string `json:"reference"`
	TransactionID string `json:"transaction_id,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// withReference appends ?reference=<ref> to a return URL.
func withReference(base, reference string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("reference", reference)
	u.RawQuery = q.Encode()
	return u.String()
}
