package purchase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"plugevents/internal/catalog"
	"plugevents/internal/payments"
	"plugevents/internal/pricing"
)

var (
	ErrSessionNotFound   = errors.New("purchase session not found")
	ErrInvalidTransition = errors.New("invalid purchase transition")
	ErrEventUnavailable  = errors.New("event has already taken place")
	ErrUnknownTier       = errors.New("unknown ticket tier")
	ErrInvalidEmail      = errors.New("a valid email is required")
	ErrReferenceMismatch = errors.New("payment reference does not match pending attempt")
	ErrPaymentInitiation = errors.New("payment could not be started")

	// errNothingToSettle means an outcome adds nothing to a resolved attempt.
	errNothingToSettle = errors.New("attempt already settled")

	// ErrAttemptNotFound matches payments.ErrUnknownReference with errors.Is.
	ErrAttemptNotFound = fmt.Errorf("payment attempt not found: %w", payments.ErrUnknownReference)

	// ErrEventNotFound is re-exported so callers need not import catalog.
	ErrEventNotFound = catalog.ErrEventNotFound
)

// maxHistory bounds how many resolved attempts a session remembers.
const maxHistory = 20

// Attempt is one pass through the payment sub-flow. Amount is frozen when the
// attempt starts and never recomputed.
type Attempt struct {
	Reference        string          `json:"reference"`
	Email            string          `json:"email"`
	Amount           int64           `json:"amount"`
	AmountMinor      int64           `json:"amount_minor"`
	EventID          string          `json:"event_id"`
	EventTitle       string          `json:"event_title"`
	TierKey          string          `json:"tier_key"`
	Quantity         int             `json:"quantity"`
	Outcome          payments.Status `json:"outcome"`
	Reason           string          `json:"reason,omitempty"`
	TransactionID    string          `json:"transaction_id,omitempty"`
	Gateway          string          `json:"gateway,omitempty"`
	GatewaySessionID string          `json:"gateway_session_id,omitempty"`
	CheckoutURL      string          `json:"checkout_url,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	ResolvedAt       *time.Time      `json:"resolved_at,omitempty"`
}

// Session is the serialisable state of one viewer's purchase flow for one event.
type Session struct {
	ID            string            `json:"id"`
	EventID       string            `json:"event_id"`
	State         State             `json:"state"`
	Selection     pricing.Selection `json:"selection"`
	Email         string            `json:"email"`
	Attempt       *Attempt          `json:"attempt,omitempty"`
	History       []Attempt         `json:"history,omitempty"`
	LastReference string            `json:"last_reference,omitempty"`
	LastFailure   string            `json:"last_failure,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ValidEmail is the only contact rule the website has ever enforced.
func ValidEmail(email string) bool {
	return strings.Contains(email, "@")
}

// References lists every payment reference the session has issued.
func (s *Session) References() []string {
	refs := make([]string, 0, len(s.History)+1)
	if s.Attempt != nil {
		refs = append(refs, s.Attempt.Reference)
	}
	for _, a := range s.History {
		refs = append(refs, a.Reference)
	}
	return refs
}

// FindAttempt returns the pending or resolved attempt carrying reference.
func (s *Session) FindAttempt(reference string) (*Attempt, bool) {
	if s.Attempt != nil && s.Attempt.Reference == reference {
		a := *s.Attempt
		return &a, true
	}
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Reference == reference {
			a := s.History[i]
			return &a, true
		}
	}
	return nil, false
}

func (s *Session) clone() *Session {
	c := *s
	if s.Attempt != nil {
		a := *s.Attempt
		c.Attempt = &a
	}
	c.History = append([]Attempt(nil), s.History...)
	return &c
}
