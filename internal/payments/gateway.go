package payments

import (
	"context"
	"fmt"
	"net/http"

	"plugevents/internal/shared/config"
)

// Gateway is an external payment processor. Initiate starts a hosted checkout
// and returns immediately; the outcome arrives later through Verify or a webhook.
type Gateway interface {
	Name() string
	Initiate(ctx context.Context, req *ChargeRequest) (*Checkout, error)
	Verify(ctx context.Context, reference, sessionID string) (*Result, error)
}

// WebhookParser is implemented by gateways that push outcomes. A nil Result
// with a nil error means the event is irrelevant and should be acknowledged.
type WebhookParser interface {
	ParseWebhook(payload []byte, header http.Header) (*Result, error)
}

const (
	ProviderMock     = "mock"
	ProviderPaystack = "paystack"
	ProviderStripe   = "stripe"
)

// NewGateway builds the gateway selected by cfg.Provider.
func NewGateway(cfg config.PaymentConfig) (Gateway, error) {
	switch cfg.Provider {
	case ProviderMock, "":
		return NewMockGateway(MockOutcome(cfg.MockOutcome)), nil
	case ProviderPaystack:
		return NewPaystackGateway(&PaystackConfig{
			SecretKey: cfg.PaystackSecretKey,
			BaseURL:   cfg.PaystackBaseURL,
		})
	case ProviderStripe:
		return NewStripeGateway(&StripeConfig{
			SecretKey:     cfg.StripeSecretKey,
			WebhookSecret: cfg.StripeWebhookSecret,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGateway, cfg.Provider)
	}
}
