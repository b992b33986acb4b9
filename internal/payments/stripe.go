package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

const stripeSignatureHeader = "Stripe-Signature"

// StripeConfig holds configuration for the Stripe gateway.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// StripeGateway charges through hosted Stripe Checkout sessions. The payment
// reference is carried as the session's client_reference_id.
type StripeGateway struct {
	config *StripeConfig
}

func NewStripeGateway(config *StripeConfig) (*StripeGateway, error) {
	if config == nil || config.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}

	stripe.Key = config.SecretKey

	return &StripeGateway{config: config}, nil
}

func (g *StripeGateway) Name() string {
	return ProviderStripe
}

func (g *StripeGateway) Initiate(ctx context.Context, req *ChargeRequest) (*Checkout, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(req.Reference),
		CustomerEmail:     stripe.String(req.Email),
		SuccessURL:        stripe.String(withReference(req.CallbackURL, req.Reference)),
		CancelURL:         stripe.String(withReference(req.CancelURL, req.Reference)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%s (%s x%d)", req.Metadata.EventName, req.Metadata.TierKey, req.Metadata.Quantity)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: stripeMetadata(req),
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe checkout: %v", ErrGatewayRejected, err)
	}

	return &Checkout{
		Reference: req.Reference,
		SessionID: s.ID,
		URL:       s.URL,
	}, nil
}

func (g *StripeGateway) Verify(ctx context.Context, reference, sessionID string) (*Result, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: stripe session id is required", ErrInvalidCharge)
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe verify: %w", err)
	}
	if s.ClientReferenceID != "" && s.ClientReferenceID != reference {
		return nil, fmt.Errorf("%w: session %s belongs to %s", ErrUnknownReference, sessionID, s.ClientReferenceID)
	}

	return checkoutResult(s, reference), nil
}

// ParseWebhook verifies the Stripe-Signature header and maps checkout session
// events to a Result.
func (g *StripeGateway) ParseWebhook(payload []byte, header http.Header) (*Result, error) {
	sigHeader := header.Get(stripeSignatureHeader)
	if sigHeader == "" {
		return nil, ErrInvalidSignature
	}

	event, err := webhook.ConstructEvent(payload, sigHeader, g.config.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	switch event.Type {
	case "checkout.session.completed",
		"checkout.session.async_payment_succeeded",
		"checkout.session.async_payment_failed",
		"checkout.session.expired":
	default:
		return nil, nil
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("stripe webhook: %w", err)
	}

	result := checkoutResult(&s, s.ClientReferenceID)
	if event.Type == "checkout.session.async_payment_failed" {
		result.Status = StatusFailed
		result.Reason = "async payment failed"
	}
	return result, nil
}

func checkoutResult(s *stripe.CheckoutSession, reference string) *Result {
	result := &Result{Reference: reference}
	if s.PaymentIntent != nil {
		result.TransactionID = s.PaymentIntent.ID
	}

	switch {
	case s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		s.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		result.Status = StatusSucceeded
	case s.Status == stripe.CheckoutSessionStatusExpired:
		result.Status = StatusCancelled
		result.Reason = "checkout session expired"
	default:
		result.Status = StatusPending
	}
	return result
}

func stripeMetadata(req *ChargeRequest) map[string]string {
	return map[string]string{
		"reference":   req.Reference,
		"event_name":  req.Metadata.EventName,
		"ticket_type": req.Metadata.TierKey,
		"quantity":    fmt.Sprint(req.Metadata.Quantity),
	}
}
