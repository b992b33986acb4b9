package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	paystackSignatureHeader = "X-Paystack-Signature"
	paystackDefaultBaseURL  = "https://api.paystack.co"
)

// PaystackConfig holds configuration for the Paystack gateway.
type PaystackConfig struct {
	SecretKey  string
	BaseURL    string
	HTTPClient *http.Client
}

// PaystackGateway talks to the Paystack transaction API. Amounts are in kobo.
type PaystackGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewPaystackGateway(cfg *PaystackConfig) (*PaystackGateway, error) {
	if cfg == nil || cfg.SecretKey == "" {
		return nil, fmt.Errorf("paystack secret key is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = paystackDefaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &PaystackGateway{
		secretKey: cfg.SecretKey,
		baseURL:   baseURL,
		client:    client,
	}, nil
}

func (g *PaystackGateway) Name() string {
	return ProviderPaystack
}

type paystackCustomField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

type paystackMetadata struct {
	CustomFields []paystackCustomField `json:"custom_fields"`
	CancelAction string                `json:"cancel_action,omitempty"`
}

type paystackInitializeRequest struct {
	Email       string           `json:"email"`
	Amount      string           `json:"amount"`
	Currency    string           `json:"currency,omitempty"`
	Reference   string           `json:"reference"`
	CallbackURL string           `json:"callback_url,omitempty"`
	Metadata    paystackMetadata `json:"metadata"`
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackAuthorization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackTransaction struct {
	ID              int64  `json:"id"`
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	GatewayResponse string `json:"gateway_response"`
}

type paystackWebhook struct {
	Event string              `json:"event"`
	Data  paystackTransaction `json:"data"`
}

func (g *PaystackGateway) Initiate(ctx context.Context, req *ChargeRequest) (*Checkout, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	body := paystackInitializeRequest{
		Email:       req.Email,
		Amount:      strconv.FormatInt(req.AmountMinor, 10),
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata: paystackMetadata{
			CustomFields: []paystackCustomField{
				{DisplayName: "Event Name", VariableName: "event_name", Value: req.Metadata.EventName},
				{DisplayName: "Ticket Type", VariableName: "ticket_type", Value: req.Metadata.TierKey},
				{DisplayName: "Quantity", VariableName: "quantity", Value: strconv.Itoa(req.Metadata.Quantity)},
			},
			CancelAction: withReference(req.CancelURL, req.Reference),
		},
	}
	if req.CancelURL == "" {
		body.Metadata.CancelAction = ""
	}

	var auth paystackAuthorization
	if err := g.do(ctx, http.MethodPost, "/transaction/initialize", body, &auth); err != nil {
		return nil, fmt.Errorf("paystack initialize: %w", err)
	}

	return &Checkout{
		Reference: req.Reference,
		SessionID: auth.AccessCode,
		URL:       auth.AuthorizationURL,
	}, nil
}

func (g *PaystackGateway) Verify(ctx context.Context, reference, _ string) (*Result, error) {
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidCharge)
	}

	var txn paystackTransaction
	path := "/transaction/verify/" + url.PathEscape(reference)
	if err := g.do(ctx, http.MethodGet, path, nil, &txn); err != nil {
		return nil, fmt.Errorf("paystack verify: %w", err)
	}

	if txn.Reference == "" {
		txn.Reference = reference
	}
	return txn.result(), nil
}

// ParseWebhook checks the HMAC-SHA512 signature Paystack puts on every event
// and maps charge events to a Result.
func (g *PaystackGateway) ParseWebhook(payload []byte, header http.Header) (*Result, error) {
	signature := header.Get(paystackSignatureHeader)
	if signature == "" || !g.validSignature(payload, signature) {
		return nil, ErrInvalidSignature
	}

	var event paystackWebhook
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("paystack webhook: %w", err)
	}

	switch event.Event {
	case "charge.success", "charge.failed":
		return event.Data.result(), nil
	default:
		return nil, nil
	}
}

func (g *PaystackGateway) validSignature(payload []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(g.secretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

func (t paystackTransaction) result() *Result {
	result := &Result{
		Reference: t.Reference,
		Reason:    t.GatewayResponse,
	}
	if t.ID != 0 {
		result.TransactionID = strconv.FormatInt(t.ID, 10)
	}

	switch t.Status {
	case "success":
		result.Status = StatusSucceeded
		result.Reason = ""
	case "abandoned":
		result.Status = StatusCancelled
	case "failed", "reversed":
		result.Status = StatusFailed
	default:
		result.Status = StatusPending
	}
	return result
}

func (g *PaystackGateway) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.secretKey)
	httpReq.Header.Set("Accept", "application/json")
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope paystackEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrUnknownReference, envelope.Message)
	}
	if resp.StatusCode >= http.StatusBadRequest || !envelope.Status {
		return fmt.Errorf("%w: HTTP %d: %s", ErrGatewayRejected, resp.StatusCode, envelope.Message)
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}
