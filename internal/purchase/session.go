package purchase

import (
	"fmt"
	"time"

	"plugevents/internal/catalog"
	"plugevents/internal/payments"
	"plugevents/internal/pricing"
)

// NewSession starts a viewing session on event. Sessions for past events start
// in StateUnavailable and never leave it.
func NewSession(id string, event *catalog.Event, now time.Time) *Session {
	s := &Session{
		ID:        id,
		EventID:   event.ID,
		State:     StateBrowsing,
		Selection: pricing.DefaultSelection(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pricing.IsPast(event, now) {
		s.State = StateUnavailable
	}
	return s
}

func (s *Session) require(action string, allowed State) error {
	if s.State == StateUnavailable {
		return fmt.Errorf("%w: cannot %s: %w", ErrInvalidTransition, action, ErrEventUnavailable)
	}
	if s.State != allowed {
		return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, s.State)
	}
	return nil
}

func (s *Session) touch(now time.Time) {
	s.UpdatedAt = now
}

// SelectTier switches the selected tier. The key must name one of the event's tiers.
func (s *Session) SelectTier(event *catalog.Event, key string, now time.Time) error {
	if err := s.require("select tier", StateBrowsing); err != nil {
		return err
	}

	tier, ok := event.FindTier(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTier, key)
	}

	s.Selection.TierKey = catalog.NormalizeTierKey(tier.Name)
	s.touch(now)
	return nil
}

// ChangeQuantity applies delta when the result stays in range and reports
// whether it did. An out-of-range change is not an error.
func (s *Session) ChangeQuantity(delta int, now time.Time) (bool, error) {
	if err := s.require("change quantity", StateBrowsing); err != nil {
		return false, err
	}

	current := s.Selection.Quantity
	next := pricing.ClampQuantity(current, delta)
	if next != current+delta {
		return false, nil
	}

	s.Selection.Quantity = next
	s.touch(now)
	return true, nil
}

// RequestBooking moves to contact collection. A past event makes the session
// unavailable instead.
func (s *Session) RequestBooking(event *catalog.Event, now time.Time) error {
	if err := s.require("book", StateBrowsing); err != nil {
		return err
	}

	s.touch(now)
	if pricing.IsPast(event, now) {
		s.State = StateUnavailable
		return ErrEventUnavailable
	}

	s.State = StateCollectingContact
	return nil
}

// SetEmail stores the email exactly as typed. Validity only gates CanPay.
func (s *Session) SetEmail(email string, now time.Time) error {
	if err := s.require("set email", StateCollectingContact); err != nil {
		return err
	}
	s.Email = email
	s.touch(now)
	return nil
}

func (s *Session) CanPay() bool {
	return s.State == StateCollectingContact && ValidEmail(s.Email)
}

// CancelContact returns to browsing. The email is kept for the next booking.
func (s *Session) CancelContact(now time.Time) error {
	if err := s.require("cancel contact", StateCollectingContact); err != nil {
		return err
	}
	s.State = StateBrowsing
	s.touch(now)
	return nil
}

// BeginPayment freezes the current total into a new pending attempt.
func (s *Session) BeginPayment(event *catalog.Event, reference string, now time.Time) (*Attempt, error) {
	if err := s.require("pay", StateCollectingContact); err != nil {
		return nil, err
	}
	if !ValidEmail(s.Email) {
		return nil, ErrInvalidEmail
	}
	if pricing.IsPast(event, now) {
		s.State = StateUnavailable
		s.touch(now)
		return nil, ErrEventUnavailable
	}

	amount := pricing.Total(event, s.Selection.TierKey, s.Selection.Quantity)
	s.Attempt = &Attempt{
		Reference:   reference,
		Email:       s.Email,
		Amount:      amount,
		AmountMinor: pricing.ToMinorUnits(amount),
		EventID:     event.ID,
		EventTitle:  event.Title,
		TierKey:     s.Selection.TierKey,
		Quantity:    s.Selection.Quantity,
		Outcome:     payments.StatusPending,
		CreatedAt:   now,
	}
	s.State = StateAwaitingPayment
	s.LastFailure = ""
	s.touch(now)
	return s.Attempt, nil
}

// Resolve applies a gateway outcome to the pending attempt. Success ends in
// StateSucceeded with the selection reset; cancel and failure return to
// contact collection with the email intact.
func (s *Session) Resolve(result payments.Result, now time.Time) (*Attempt, error) {
	if err := s.require("resolve payment", StateAwaitingPayment); err != nil {
		return nil, err
	}
	if s.Attempt == nil || s.Attempt.Reference != result.Reference {
		return nil, fmt.Errorf("%w: %s", ErrReferenceMismatch, result.Reference)
	}
	if !result.Status.Resolved() {
		return nil, fmt.Errorf("%w: outcome %s does not resolve an attempt", ErrInvalidTransition, result.Status)
	}

	resolved := *s.Attempt
	resolved.Outcome = result.Status
	resolved.Reason = result.Reason
	resolved.TransactionID = result.TransactionID
	resolved.ResolvedAt = &now

	s.History = append(s.History, resolved)
	if len(s.History) > maxHistory {
		s.History = s.History[len(s.History)-maxHistory:]
	}
	s.Attempt = nil

	if result.Status == payments.StatusSucceeded {
		s.State = StateSucceeded
		s.LastReference = resolved.Reference
		s.LastFailure = ""
		s.Selection = pricing.DefaultSelection()
	} else {
		s.State = StateCollectingContact
		s.LastFailure = result.Reason
		if s.LastFailure == "" {
			s.LastFailure = string(result.Status)
		}
	}

	s.touch(now)
	return &resolved, nil
}

// SettleLate records a success that arrives after the attempt was already
// resolved as cancelled or failed. The gateway has taken the money, so the
// history entry becomes a success. A session idling in contact collection
// moves to StateSucceeded; a session busy with a newer attempt keeps its state.
func (s *Session) SettleLate(result payments.Result, now time.Time) (*Attempt, error) {
	if result.Status != payments.StatusSucceeded {
		return nil, errNothingToSettle
	}

	for i := len(s.History) - 1; i >= 0; i-- {
		a := &s.History[i]
		if a.Reference != result.Reference {
			continue
		}
		if a.Outcome == payments.StatusSucceeded {
			return nil, errNothingToSettle
		}

		a.Outcome = payments.StatusSucceeded
		a.Reason = ""
		a.TransactionID = result.TransactionID
		a.ResolvedAt = &now

		s.LastReference = a.Reference
		if s.State == StateCollectingContact && s.Attempt == nil {
			s.State = StateSucceeded
			s.LastFailure = ""
			s.Selection = pricing.DefaultSelection()
		}
		s.touch(now)

		settled := *a
		return &settled, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrReferenceMismatch, result.Reference)
}

// BookAnother starts over with the default selection.
func (s *Session) BookAnother(now time.Time) error {
	if err := s.require("book another", StateSucceeded); err != nil {
		return err
	}
	s.State = StateBrowsing
	s.Selection = pricing.DefaultSelection()
	s.touch(now)
	return nil
}

// Quote prices the current selection. Unavailable sessions are never bookable.
func (s *Session) Quote(event *catalog.Event, now time.Time) pricing.Quote {
	q := pricing.NewQuote(event, s.Selection, now)
	if s.State == StateUnavailable {
		q.Bookable = false
		q.CanIncrement = false
		q.CanDecrement = false
	}
	return q
}
