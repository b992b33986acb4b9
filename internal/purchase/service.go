package purchase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"plugevents/internal/catalog"
	"plugevents/internal/metrics"
	"plugevents/internal/notifications"
	"plugevents/internal/payments"
	"plugevents/internal/pricing"
	"plugevents/internal/receipts"
	"plugevents/pkg/logger"
)

type Service interface {
	SetNotificationPublisher(publisher notifications.Publisher)

	Open(ctx context.Context, eventID string) (*SessionResponse, error)
	Get(ctx context.Context, id string) (*SessionResponse, error)
	SelectTier(ctx context.Context, id, tier string) (*SessionResponse, error)
	ChangeQuantity(ctx context.Context, id string, delta int) (*QuantityResponse, error)
	RequestBooking(ctx context.Context, id string) (*SessionResponse, error)
	SetEmail(ctx context.Context, id, email string) (*SessionResponse, error)
	CancelContact(ctx context.Context, id string) (*SessionResponse, error)
	Pay(ctx context.Context, id string) (*PaymentResponse, error)
	BookAnother(ctx context.Context, id string) (*SessionResponse, error)
	Abandon(ctx context.Context, id string) error

	// Gateway callbacks
	Complete(ctx context.Context, result payments.Result) error
	Verify(ctx context.Context, reference string) (*payments.Result, error)
}

// Options carries the gateway-facing settings of the flow.
type Options struct {
	Currency    string
	CallbackURL string
	CancelURL   string

	Now          func() time.Time
	NewID        func() string
	NewReference func(now time.Time) string
}

type service struct {
	catalog   *catalog.Catalog
	store     SessionStore
	gateway   payments.Gateway
	receipts  receipts.Service
	publisher notifications.Publisher
	opts      Options
	locks     *keyedMutex
	logger    *logger.Logger
}

func NewService(cat *catalog.Catalog, store SessionStore, gateway payments.Gateway, receiptService receipts.Service, opts Options) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	if opts.NewReference == nil {
		opts.NewReference = GenerateReference
	}
	if opts.Currency == "" {
		opts.Currency = "NGN"
	}

	return &service{
		catalog:   cat,
		store:     store,
		gateway:   gateway,
		receipts:  receiptService,
		publisher: notifications.NoopPublisher{},
		opts:      opts,
		locks:     newKeyedMutex(),
		logger:    logger.GetDefault(),
	}
}

// SetNotificationPublisher injects the notification publisher dependency
func (s *service) SetNotificationPublisher(publisher notifications.Publisher) {
	if publisher != nil {
		s.publisher = publisher
	}
}

// GenerateReference builds a reference of the form PLUG-<unix ms>-<0..999999>.
// Uniqueness is probabilistic.
func GenerateReference(now time.Time) string {
	return fmt.Sprintf("PLUG-%d-%d", now.UnixMilli(), rand.Intn(1000000))
}

func (s *service) Open(ctx context.Context, eventID string) (*SessionResponse, error) {
	event, err := s.catalog.FindByID(eventID)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	session := NewSession(s.opts.NewID(), event, now)
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	metrics.SessionTransition(session.State.String())
	s.logger.LogSessionOpened(ctx, session.ID, event.ID, session.State.String())
	return s.view(session, event, now), nil
}

func (s *service) Get(ctx context.Context, id string) (*SessionResponse, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	event, err := s.catalog.FindByID(session.EventID)
	if err != nil {
		return nil, err
	}
	return s.view(session, event, s.opts.Now()), nil
}

// mutate runs fn on the stored session under the session's lock and saves the
// result. A failing fn is still saved when it changed the state.
func (s *service) mutate(ctx context.Context, id string, fn func(session *Session, event *catalog.Event, now time.Time) error) (*SessionResponse, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	event, err := s.catalog.FindByID(session.EventID)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	before := session.State
	fnErr := fn(session, event, now)

	if fnErr == nil || session.State != before {
		if err := s.store.Save(ctx, session); err != nil {
			return nil, err
		}
	}
	if session.State != before {
		metrics.SessionTransition(session.State.String())
	}

	return s.view(session, event, now), fnErr
}

func (s *service) SelectTier(ctx context.Context, id, tier string) (*SessionResponse, error) {
	return s.mutate(ctx, id, func(session *Session, event *catalog.Event, now time.Time) error {
		return session.SelectTier(event, tier, now)
	})
}

func (s *service) ChangeQuantity(ctx context.Context, id string, delta int) (*QuantityResponse, error) {
	var accepted bool
	view, err := s.mutate(ctx, id, func(session *Session, _ *catalog.Event, now time.Time) error {
		var err error
		accepted, err = session.ChangeQuantity(delta, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !accepted {
		metrics.QuantityRejected()
	}
	return &QuantityResponse{Session: view, Accepted: accepted}, nil
}

func (s *service) RequestBooking(ctx context.Context, id string) (*SessionResponse, error) {
	return s.mutate(ctx, id, func(session *Session, event *catalog.Event, now time.Time) error {
		return session.RequestBooking(event, now)
	})
}

func (s *service) SetEmail(ctx context.Context, id, email string) (*SessionResponse, error) {
	return s.mutate(ctx, id, func(session *Session, _ *catalog.Event, now time.Time) error {
		return session.SetEmail(email, now)
	})
}

func (s *service) CancelContact(ctx context.Context, id string) (*SessionResponse, error) {
	return s.mutate(ctx, id, func(session *Session, _ *catalog.Event, now time.Time) error {
		return session.CancelContact(now)
	})
}

func (s *service) BookAnother(ctx context.Context, id string) (*SessionResponse, error) {
	return s.mutate(ctx, id, func(session *Session, _ *catalog.Event, now time.Time) error {
		return session.BookAnother(now)
	})
}

// Pay starts a payment attempt and hands it to the gateway. The session is
// saved in AWAITING_PAYMENT before the gateway is called so a fast webhook can
// find it. A gateway error resolves the attempt as failed.
func (s *service) Pay(ctx context.Context, id string) (*PaymentResponse, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	event, err := s.catalog.FindByID(session.EventID)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	attempt, err := session.BeginPayment(event, s.opts.NewReference(now), now)
	if err != nil {
		if errors.Is(err, ErrEventUnavailable) {
			if saveErr := s.store.Save(ctx, session); saveErr != nil {
				return nil, fmt.Errorf("save unavailable session: %w", saveErr)
			}
			metrics.SessionTransition(session.State.String())
		}
		return &PaymentResponse{Session: s.view(session, event, now)}, err
	}
	attempt.Gateway = s.gateway.Name()

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	metrics.SessionTransition(session.State.String())

	checkout, err := s.gateway.Initiate(ctx, &payments.ChargeRequest{
		AmountMinor: attempt.AmountMinor,
		Currency:    s.opts.Currency,
		Email:       attempt.Email,
		Reference:   attempt.Reference,
		Metadata: payments.Metadata{
			EventName: attempt.EventTitle,
			TierKey:   attempt.TierKey,
			Quantity:  attempt.Quantity,
		},
		CallbackURL: s.opts.CallbackURL,
		CancelURL:   s.opts.CancelURL,
	})
	metrics.PaymentInitiated(s.gateway.Name(), err)

	if err != nil {
		reference := attempt.Reference
		sessionLogger := s.logger.WithSessionID(id)
		sessionLogger.ErrorWithContext(ctx, "Payment initiation failed", err, map[string]interface{}{
			"reference": reference,
		})

		if _, resolveErr := session.Resolve(payments.Result{
			Status:    payments.StatusFailed,
			Reference: reference,
			Reason:    err.Error(),
		}, s.opts.Now()); resolveErr != nil {
			return nil, errors.Join(fmt.Errorf("%w: %w", ErrPaymentInitiation, err), resolveErr)
		}
		// If this save fails the stored session still awaits a payment the
		// gateway never saw; Verify resolves it as failed later.
		if saveErr := s.store.Save(ctx, session); saveErr != nil {
			sessionLogger.ErrorWithContext(ctx, "Failed to save failed payment attempt", saveErr, map[string]interface{}{
				"reference": reference,
			})
			return nil, errors.Join(fmt.Errorf("%w: %w", ErrPaymentInitiation, err), saveErr)
		}
		metrics.SessionTransition(session.State.String())
		metrics.PaymentResolved(s.gateway.Name(), string(payments.StatusFailed))
		return &PaymentResponse{Session: s.view(session, event, now)}, fmt.Errorf("%w: %w", ErrPaymentInitiation, err)
	}

	attempt.GatewaySessionID = checkout.SessionID
	attempt.CheckoutURL = checkout.URL
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.LogPaymentInitiated(ctx, id, attempt.Reference, s.gateway.Name(), attempt.AmountMinor)
	return &PaymentResponse{
		Session:  s.view(session, event, now),
		Checkout: checkout,
	}, nil
}

// Complete applies a gateway outcome to the attempt carrying result.Reference.
// Pending outcomes and repeats for an already resolved reference are no-ops,
// except a success for an attempt resolved as cancelled or failed, which still
// earns its receipt.
func (s *service) Complete(ctx context.Context, result payments.Result) error {
	id, err := s.store.FindByReference(ctx, result.Reference)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("%w: %s", ErrAttemptNotFound, result.Reference)
		}
		return err
	}

	if !result.Status.Resolved() {
		return nil
	}

	now := s.opts.Now()
	var resolved *Attempt
	if session.Attempt != nil && session.Attempt.Reference == result.Reference {
		resolved, err = session.Resolve(result, now)
	} else {
		// A success may still arrive after a cancel for the same reference.
		resolved, err = session.SettleLate(result, now)
		if errors.Is(err, errNothingToSettle) {
			s.logger.DebugContext(ctx, "Ignoring repeated payment outcome", "reference", result.Reference)
			return nil
		}
	}
	if err != nil {
		return err
	}

	if resolved.Outcome == payments.StatusSucceeded {
		err := s.receipts.Record(ctx, receipts.Receipt{
			EventID:      resolved.EventID,
			EventName:    resolved.EventTitle,
			TicketType:   resolved.TierKey,
			Quantity:     resolved.Quantity,
			Reference:    resolved.Reference,
			PurchaseDate: now,
			Email:        resolved.Email,
		})
		// The session is left untouched on failure so a redelivered outcome can retry.
		if err != nil && !errors.Is(err, receipts.ErrDuplicateReceipt) {
			return fmt.Errorf("record receipt: %w", err)
		}
	}

	if err := s.store.Save(ctx, session); err != nil {
		return err
	}

	metrics.SessionTransition(session.State.String())
	metrics.PaymentResolved(resolved.Gateway, string(resolved.Outcome))
	s.logger.LogPaymentResolved(ctx, id, resolved.Reference, string(resolved.Outcome), resolved.Reason)

	if resolved.Outcome == payments.StatusSucceeded {
		metrics.TicketsSold(resolved.EventID, resolved.Quantity, resolved.Amount)
		s.notifyPurchase(ctx, resolved)
	}
	return nil
}

// Verify asks the gateway about a pending attempt and completes it when the
// outcome is final. Resolved attempts are answered from the session history.
func (s *service) Verify(ctx context.Context, reference string) (*payments.Result, error) {
	id, err := s.store.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(id)
	session, err := s.store.Get(ctx, id)
	unlock()
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAttemptNotFound, reference)
		}
		return nil, err
	}

	attempt, ok := session.FindAttempt(reference)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAttemptNotFound, reference)
	}
	if attempt.Outcome.Resolved() {
		return &payments.Result{
			Status:        attempt.Outcome,
			Reference:     attempt.Reference,
			TransactionID: attempt.TransactionID,
			Reason:        attempt.Reason,
		}, nil
	}

	result, err := s.gateway.Verify(ctx, reference, attempt.GatewaySessionID)
	if err != nil {
		// No checkout URL means initiation never completed on our side; a
		// gateway that has no record of the reference settles it as failed.
		if !errors.Is(err, payments.ErrUnknownReference) || attempt.CheckoutURL != "" {
			return nil, fmt.Errorf("verify payment: %w", err)
		}
		result = &payments.Result{
			Status:    payments.StatusFailed,
			Reference: reference,
			Reason:    "payment was never started",
		}
	}
	if err := s.Complete(ctx, *result); err != nil {
		return nil, err
	}
	return result, nil
}

// Abandon drops the session. Any outstanding attempt is forgotten; a late
// gateway outcome for it is reported as an unknown reference.
func (s *service) Abandon(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.locks.Forget(id)
	return nil
}

func (s *service) notifyPurchase(ctx context.Context, attempt *Attempt) {
	notification := notifications.NewNotificationBuilder().
		WithType(notifications.NotificationTypeTicketPurchased).
		WithRecipient(attempt.Email, "").
		WithEventContext(attempt.EventID).
		WithPaymentContext(attempt.Reference).
		WithTemplateData(map[string]interface{}{
			"event_name":  attempt.EventTitle,
			"ticket_type": attempt.TierKey,
			"quantity":    attempt.Quantity,
			"amount":      pricing.FormatNaira(attempt.Amount),
			"reference":   attempt.Reference,
		}).
		Build()

	err := s.publisher.Publish(ctx, notification)
	metrics.NotificationPublished(string(notification.Type), err)
	if err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to publish purchase notification", err, map[string]interface{}{
			"reference": attempt.Reference,
		})
	}
}

func (s *service) view(session *Session, event *catalog.Event, now time.Time) *SessionResponse {
	resp := &SessionResponse{
		ID:            session.ID,
		EventID:       session.EventID,
		EventTitle:    event.Title,
		State:         session.State,
		Selection:     session.Selection,
		Quote:         session.Quote(event, now),
		Email:         session.Email,
		CanPay:        session.CanPay(),
		LastReference: session.LastReference,
		LastFailure:   session.LastFailure,
		UpdatedAt:     session.UpdatedAt,
	}
	if session.Attempt != nil {
		a := *session.Attempt
		resp.Attempt = &a
	}
	return resp
}

// keyedMutex serialises work per session id within this process.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (k *keyedMutex) Forget(key string) {
	k.mu.Lock()
	delete(k.locks, key)
	k.mu.Unlock()
}
