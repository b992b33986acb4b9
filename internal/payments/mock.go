package payments

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MockOutcome is the result the mock gateway reports for every charge.
type MockOutcome string

const (
	MockSuccess MockOutcome = "success"
	MockCancel  MockOutcome = "cancel"
	MockFail    MockOutcome = "fail"
	MockPending MockOutcome = "pending"
)

// MockGateway settles every charge in process with a configurable outcome.
// It is used for local runs without gateway credentials and in tests.
type MockGateway struct {
	mu       sync.RWMutex
	outcome  MockOutcome
	charges  map[string]ChargeRequest
	requests []ChargeRequest
}

func NewMockGateway(outcome MockOutcome) *MockGateway {
	g := &MockGateway{charges: make(map[string]ChargeRequest)}
	g.SetOutcome(outcome)
	return g
}

func (g *MockGateway) Name() string {
	return ProviderMock
}

// SetOutcome changes the outcome reported by later Verify calls.
func (g *MockGateway) SetOutcome(outcome MockOutcome) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch MockOutcome(strings.ToLower(string(outcome))) {
	case MockCancel:
		g.outcome = MockCancel
	case MockFail:
		g.outcome = MockFail
	case MockPending:
		g.outcome = MockPending
	default:
		g.outcome = MockSuccess
	}
}

func (g *MockGateway) Initiate(ctx context.Context, req *ChargeRequest) (*Checkout, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.charges[req.Reference] = *req
	g.requests = append(g.requests, *req)

	target := req.CallbackURL
	if g.outcome == MockCancel && req.CancelURL != "" {
		target = req.CancelURL
	}

	return &Checkout{
		Reference: req.Reference,
		SessionID: "mock_cs_" + uuid.New().String()[:8],
		URL:       withReference(target, req.Reference),
	}, nil
}

func (g *MockGateway) Verify(ctx context.Context, reference, sessionID string) (*Result, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.charges[reference]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReference, reference)
	}

	result := &Result{Reference: reference}
	switch g.outcome {
	case MockCancel:
		result.Status = StatusCancelled
		result.Reason = "closed by viewer"
	case MockFail:
		result.Status = StatusFailed
		result.Reason = "card_declined"
	case MockPending:
		result.Status = StatusPending
	default:
		result.Status = StatusSucceeded
		result.TransactionID = "mock_txn_" + reference
	}
	return result, nil
}

// Requests returns every charge the gateway has seen, oldest first.
func (g *MockGateway) Requests() []ChargeRequest {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]ChargeRequest(nil), g.requests...)
}
