package purchase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugevents/internal/catalog"
	"plugevents/internal/notifications"
	"plugevents/internal/payments"
	"plugevents/internal/pricing"
	"plugevents/internal/receipts"
	"plugevents/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.SetDefault(logger.Discard())
	os.Exit(m.Run())
}

type fixture struct {
	svc      Service
	gateway  *payments.MockGateway
	receipts receipts.Repository
	store    SessionStore
	now      time.Time
	refs     []string
}

func newFixture(t *testing.T, gateway payments.Gateway) (*fixture, Service) {
	t.Helper()
	return newFixtureWithStore(t, gateway, NewMemoryStore())
}

func newFixtureWithStore(t *testing.T, gateway payments.Gateway, store SessionStore) (*fixture, Service) {
	t.Helper()

	f := &fixture{
		receipts: receipts.NewMemoryRepository(),
		store:    store,
		now:      testNow,
		refs:     []string{"PLUG-123", "PLUG-456", "PLUG-789"},
	}
	if mock, ok := gateway.(*payments.MockGateway); ok {
		f.gateway = mock
	}

	next, sessions := 0, 0
	svc := NewService(catalog.MustNew(catalog.Seed()), f.store, gateway, receipts.NewService(f.receipts), Options{
		CallbackURL: "http://localhost/api/v1/payments/callback",
		CancelURL:   "http://localhost/api/v1/payments/cancel",
		Now:         func() time.Time { return f.now },
		NewID: func() string {
			sessions++
			return fmt.Sprintf("session-%d", sessions)
		},
		NewReference: func(time.Time) string {
			ref := f.refs[next%len(f.refs)]
			next++
			return ref
		},
	})
	f.svc = svc
	return f, svc
}

// readyToPay drives a fresh igbo session to COLLECTING_CONTACT with vip x2 and a@b.com.
func readyToPay(t *testing.T, svc Service) *SessionResponse {
	t.Helper()
	ctx := context.Background()

	view, err := svc.Open(ctx, "igbo-amaka-festival")
	require.NoError(t, err)
	_, err = svc.SelectTier(ctx, view.ID, "vip")
	require.NoError(t, err)
	q, err := svc.ChangeQuantity(ctx, view.ID, 1)
	require.NoError(t, err)
	require.True(t, q.Accepted)
	_, err = svc.RequestBooking(ctx, view.ID)
	require.NoError(t, err)
	view, err = svc.SetEmail(ctx, view.ID, "a@b.com")
	require.NoError(t, err)
	require.True(t, view.CanPay)
	return view
}

type recordingPublisher struct {
	published []*notifications.Notification
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, n *notifications.Notification) error {
	p.published = append(p.published, n)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type failingGateway struct{ payments.MockGateway }

func (g *failingGateway) Initiate(context.Context, *payments.ChargeRequest) (*payments.Checkout, error) {
	return nil, fmt.Errorf("%w: card processor offline", payments.ErrGatewayRejected)
}

var errStoreDown = errors.New("store unavailable")

// flakyStore fails every Save from the failAt-th call on. Zero never fails.
type flakyStore struct {
	SessionStore
	saves  int
	failAt int
}

func (s *flakyStore) Save(ctx context.Context, session *Session) error {
	s.saves++
	if s.failAt > 0 && s.saves >= s.failAt {
		return errStoreDown
	}
	return s.SessionStore.Save(ctx, session)
}

func TestService_SuccessfulPurchase(t *testing.T) {
	ctx := context.Background()
	f, svc := newFixture(t, payments.NewMockGateway(payments.MockSuccess))
	publisher := &recordingPublisher{}
	svc.SetNotificationPublisher(publisher)

	view := readyToPay(t, svc)
	assert.Equal(t, int64(10000), view.Quote.Total)
	assert.Equal(t, "₦10,000", pricing.FormatNaira(view.Quote.Total))

	paid, err := svc.Pay(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPayment, paid.Session.State)
	require.NotNil(t, paid.Checkout)
	assert.Equal(t, "PLUG-123", paid.Checkout.Reference)
	assert.Contains(t, paid.Checkout.URL, "reference=PLUG-123")
	require.NotNil(t, paid.Session.Attempt)
	assert.Equal(t, payments.ProviderMock, paid.Session.Attempt.Gateway)

	requests := f.gateway.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, int64(1000000), requests[0].AmountMinor)
	assert.Equal(t, "NGN", requests[0].Currency)
	assert.Equal(t, "a@b.com", requests[0].Email)
	assert.Equal(t, payments.Metadata{EventName: "Igbo Amaka Festival", TierKey: "vip", Quantity: 2}, requests[0].Metadata)

	require.NoError(t, svc.Complete(ctx, payments.Result{Status: payments.StatusSucceeded, Reference: "PLUG-123"}))

	after, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, after.State)
	assert.Equal(t, "PLUG-123", after.LastReference)
	assert.Equal(t, pricing.DefaultSelection(), after.Selection)

	stored, err := f.receipts.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, receipts.Receipt{
		EventID:      "igbo-amaka-festival",
		EventName:    "Igbo Amaka Festival",
		TicketType:   "vip",
		Quantity:     2,
		Reference:    "PLUG-123",
		PurchaseDate: testNow,
		Email:        "a@b.com",
	}, stored[0])

	require.Len(t, publisher.published, 1)
	assert.Equal(t, notifications.NotificationTypeTicketPurchased, publisher.published[0].Type)
	assert.Equal(t, "a@b.com", publisher.published[0].RecipientEmail)
	assert.Equal(t, "PLUG-123", publisher.published[0].Reference)

	// A redelivered outcome changes nothing.
	require.NoError(t, svc.Complete(ctx, payments.Result{Status: payments.StatusSucceeded, Reference: "PLUG-123"}))
	stored, _ = f.receipts.List(ctx)
	assert.Len(t, stored, 1)
	assert.Len(t, publisher.published, 1)

	again, err := svc.BookAnother(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, StateBrowsing, again.State)
}

func TestService_StandardTierSendsZeroAmount(t *testing.T) {
	ctx := context.Background()
	f, svc := newFixture(t, payments.NewMockGateway(payments.MockSuccess))

	view, err := svc.Open(ctx, "igbo-amaka-festival")
	require.NoError(t, err)
	_, err = svc.RequestBooking(ctx, view.ID)
	require.NoError(t, err)
	_, err = svc.SetEmail(ctx, view.ID, "a@b.com")
	require.NoError(t, err)

	_, err = svc.Pay(ctx, view.ID)
	require.NoError(t, err)
	require.Len(t, f.gateway.Requests(), 1)
	assert.Equal(t, int64(0), f.gateway.Requests()[0].AmountMinor)
}

func TestService_VIPSingleTicketAmountInMinorUnits(t *testing.T) {
	ctx := context.Background()
	f, svc := newFixture(t, payments.NewMockGateway(payments.MockSuccess))

	view, err := svc.Open(ctx, "igbo-amaka-festival")
	require.NoError(t, err)
	_, err = svc.SelectTier(ctx, view.ID, "vip")
	require.NoError(t, err)
	_, err = svc.RequestBooking(ctx, view.ID)
	require.NoError(t, err)
	_, err = svc.SetEmail(ctx, view.ID, "a@b.com")
	require.NoError(t, err)

	_, err = svc.Pay(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), f.gateway.Requests()[0].AmountMinor)
}

func TestService_CancelledPaymentKeepsContact(t *testing.T) {
	ctx := context.Background()
	f, svc := newFixture(t, payments.NewMockGateway(payments.MockCancel))

	view := readyToPay(t, svc)
	_, err := svc.Pay(ctx, view.ID)
	require.NoError(t, err)

	result, err := svc.Verify(ctx, "PLUG-123")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusCancelled, result.Status)

	after, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, StateCollectingContact, after.State)
	assert.Equal(t, "a@b.com", after.Email)
	assert.True(t, after.CanPay)
	assert.Equal(t, "vip", after.Selection.TierKey)
	assert.Equal(t, 2, after.Selection.Quantity)
	assert.NotEmpty(t, after.LastFailure)

	stored, _ := f.receipts.List(ctx)
	assert.Empty(t, stored)

	// Verify on a resolved reference answers from history.
	again, err := svc.Verify(ctx, "PLUG-123")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusCancelled, again.Status)

	// A retry issues a fresh reference.
	f.gateway.SetOutcome(payments.MockSuccess)
	paid, err := svc.Pay(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "PLUG-456", paid.Checkout.Reference)
}

func TestService_SuccessAfterCancelStillRecordsReceipt(t *testing.T) {
	ctx := context.Background()
	f, svc := newFixture(t, payments.NewMockGateway(payments.MockPending))
	publisher := &recordingPublisher{}
	svc.SetNotificationPublisher(publisher)

	view := readyToPay(t, svc)
	_, err := svc.Pay(ctx, view.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Complete(ctx, payments.Result{Status: payments.StatusCancelled, Reference: "PLUG-123"}))
	cancelled, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, StateCollectingContact, cancelled.State)

	// The gateway reports the charge as paid after all.
	late := payments.Result{Status: payments.StatusSucceeded, Reference: "PLUG-123", TransactionID: "txn-9"}
	require.NoError(t, svc.Complete(ctx, late))
	require.NoError(t, svc.Complete(ctx, late))

	stored, err := f.receipts.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "PLUG-123", stored[0].Reference)
	assert.Equal(t, 2, stored[0].Quantity)
	assert.Len(t, publisher.published, 1)

	after, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, after.State)
	assert.Equal(t, "PLUG-123", after.LastReference)

	result, err := svc.Verify(ctx, "PLUG-123")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusSucceeded, result.Status)
	assert.Equal(t, "txn-9", result.TransactionID)
}

func TestService_LateSuccessKeepsNewerAttempt(t *testing.T) {
	ctx := context.Background()
	f, svc := newFixture(t, payments.NewMockGateway(payments.MockPending))

	view := readyToPay(t, svc)
	_, err := svc.Pay(ctx, view.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, payments.Result{Status: payments.StatusCancelled, Reference: "PLUG-123"}))

	retry, err := svc.Pay(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "PLUG-456", retry.Checkout.Reference)

	require.NoError(t, svc.Complete(ctx, payments.Result{Status: payments.StatusSucceeded, Reference: "PLUG-123"}))

	stored, err := f.receipts.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "PLUG-123", stored[0].Reference)

	after, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPayment, after.State)
	require.NotNil(t, after.Attempt)
	assert.Equal(t, "PLUG-456", after.Attempt.Reference)
}

func TestService_PendingVerifyLeavesAttemptOpen(t *testing.T) {
	ctx := context.Background()
	_, svc := newFixture(t, payments.NewMockGateway(payments.MockPending))

	view := readyToPay(t, svc)
	_, err := svc.Pay(ctx, view.ID)
	require.NoError(t, err)

	result, err := svc.Verify(ctx, "PLUG-123")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusPending, result.Status)

	after, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPayment, after.State)
	require.NotNil(t, after.Attempt)
}

func TestService_GatewayFailureResolvesAttempt(t *testing.T) {
	ctx := context.Background()
	_, svc := newFixture(t, &failingGateway{})

	view := readyToPay(t, svc)
	resp, err := svc.Pay(ctx, view.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaymentInitiation)
	assert.ErrorIs(t, err, payments.ErrGatewayRejected)
	require.NotNil(t, resp)
	assert.Equal(t, StateCollectingContact, resp.Session.State)
	assert.NotEmpty(t, resp.Session.LastFailure)

	result, err := svc.Verify(ctx, "PLUG-123")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusFailed, result.Status)
}

func TestService_GatewayFailureWithSaveFailure(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{SessionStore: NewMemoryStore()}
	_, svc := newFixtureWithStore(t, &failingGateway{}, store)

	view := readyToPay(t, svc)

	// The save into AWAITING_PAYMENT succeeds; the save of the failed attempt does not.
	store.failAt = store.saves + 2
	resp, err := svc.Pay(ctx, view.ID)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrPaymentInitiation)
	assert.ErrorIs(t, err, errStoreDown)

	stuck, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPayment, stuck.State)

	// Once the store recovers, verifying the reference the gateway never saw
	// settles it as failed and the viewer can pay again.
	store.failAt = 0
	result, err := svc.Verify(ctx, "PLUG-123")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusFailed, result.Status)

	after, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, StateCollectingContact, after.State)
	assert.True(t, after.CanPay)
}

func TestService_UnavailableSaveFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{SessionStore: NewMemoryStore()}
	f, svc := newFixtureWithStore(t, payments.NewMockGateway(payments.MockSuccess), store)

	view := readyToPay(t, svc)
	f.now = time.Date(2025, 4, 14, 0, 0, 1, 0, time.UTC)
	store.failAt = store.saves + 1

	resp, err := svc.Pay(ctx, view.ID)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestService_PastEventBecomesUnavailable(t *testing.T) {
	ctx := context.Background()
	f, svc := newFixture(t, payments.NewMockGateway(payments.MockSuccess))

	past, err := svc.Open(ctx, "night-of-fashion")
	require.NoError(t, err)
	assert.Equal(t, StateUnavailable, past.State)
	assert.False(t, past.Quote.Bookable)

	_, err = svc.RequestBooking(ctx, past.ID)
	assert.ErrorIs(t, err, ErrEventUnavailable)

	// An event that passes mid-flow refuses payment.
	f.refs = []string{"PLUG-LATE"}
	view := readyToPay(t, svc)
	f.now = time.Date(2025, 4, 14, 0, 0, 1, 0, time.UTC)

	resp, err := svc.Pay(ctx, view.ID)
	assert.ErrorIs(t, err, ErrEventUnavailable)
	assert.Equal(t, StateUnavailable, resp.Session.State)
	assert.Empty(t, f.gateway.Requests())
}

func TestService_InvalidEmailBlocksPay(t *testing.T) {
	ctx := context.Background()
	f, svc := newFixture(t, payments.NewMockGateway(payments.MockSuccess))

	view, err := svc.Open(ctx, "igbo-amaka-festival")
	require.NoError(t, err)
	_, err = svc.RequestBooking(ctx, view.ID)
	require.NoError(t, err)
	view, err = svc.SetEmail(ctx, view.ID, "ab.com")
	require.NoError(t, err)
	assert.False(t, view.CanPay)

	_, err = svc.Pay(ctx, view.ID)
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Empty(t, f.gateway.Requests())
}

func TestService_QuantityRejectionIsNotAnError(t *testing.T) {
	ctx := context.Background()
	_, svc := newFixture(t, payments.NewMockGateway(payments.MockSuccess))

	view, err := svc.Open(ctx, "igbo-amaka-festival")
	require.NoError(t, err)

	resp, err := svc.ChangeQuantity(ctx, view.ID, -1)
	require.NoError(t, err)
	assert.False(t, resp.Accepted)
	assert.Equal(t, 1, resp.Session.Selection.Quantity)
	assert.False(t, resp.Session.Quote.CanDecrement)
}

func TestService_UnknownLookups(t *testing.T) {
	ctx := context.Background()
	_, svc := newFixture(t, payments.NewMockGateway(payments.MockSuccess))

	_, err := svc.Open(ctx, "nope")
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = svc.Complete(ctx, payments.Result{Status: payments.StatusSucceeded, Reference: "PLUG-0"})
	assert.ErrorIs(t, err, payments.ErrUnknownReference)

	_, err = svc.Verify(ctx, "PLUG-0")
	assert.True(t, errors.Is(err, payments.ErrUnknownReference))
}

func TestService_AbandonForgetsReferences(t *testing.T) {
	ctx := context.Background()
	_, svc := newFixture(t, payments.NewMockGateway(payments.MockSuccess))

	view := readyToPay(t, svc)
	_, err := svc.Pay(ctx, view.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Abandon(ctx, view.ID))
	_, err = svc.Get(ctx, view.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = svc.Complete(ctx, payments.Result{Status: payments.StatusSucceeded, Reference: "PLUG-123"})
	assert.ErrorIs(t, err, payments.ErrUnknownReference)

	assert.ErrorIs(t, svc.Abandon(ctx, view.ID), ErrSessionNotFound)
}

func TestService_NotificationFailureDoesNotFailPurchase(t *testing.T) {
	ctx := context.Background()
	_, svc := newFixture(t, payments.NewMockGateway(payments.MockSuccess))
	svc.SetNotificationPublisher(&recordingPublisher{err: errors.New("broker down")})

	view := readyToPay(t, svc)
	_, err := svc.Pay(ctx, view.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Complete(ctx, payments.Result{Status: payments.StatusSucceeded, Reference: "PLUG-123"}))
	after, _ := svc.Get(ctx, view.ID)
	assert.Equal(t, StateSucceeded, after.State)
}

func TestGenerateReference(t *testing.T) {
	now := time.UnixMilli(1736000000000)
	ref := GenerateReference(now)
	assert.Regexp(t, `^PLUG-1736000000000-\d{1,6}$`, ref)
}
