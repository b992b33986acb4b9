package payments

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCharge(reference string) *ChargeRequest {
	return &ChargeRequest{
		AmountMinor: 500000,
		Currency:    "NGN",
		Email:       "a@b.com",
		Reference:   reference,
		Metadata:    Metadata{EventName: "Igbo Amaka Festival", TierKey: "vip", Quantity: 1},
		CallbackURL: "http://localhost/api/v1/payments/callback",
		CancelURL:   "http://localhost/api/v1/payments/cancel",
	}
}

func TestMockGateway_InitiateAndVerify(t *testing.T) {
	ctx := context.Background()
	g := NewMockGateway(MockSuccess)

	checkout, err := g.Initiate(ctx, sampleCharge("PLUG-1"))
	require.NoError(t, err)
	assert.Equal(t, "PLUG-1", checkout.Reference)

	u, err := url.Parse(checkout.URL)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/payments/callback", u.Path)
	assert.Equal(t, "PLUG-1", u.Query().Get("reference"))

	result, err := g.Verify(ctx, "PLUG-1", checkout.SessionID)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, result.Status)
	assert.Equal(t, "PLUG-1", result.Reference)

	require.Len(t, g.Requests(), 1)
	assert.Equal(t, int64(500000), g.Requests()[0].AmountMinor)
}

func TestMockGateway_Outcomes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		outcome MockOutcome
		want    Status
	}{
		{MockCancel, StatusCancelled},
		{MockFail, StatusFailed},
		{MockPending, StatusPending},
		{"", StatusSucceeded},
		{"SUCCESS", StatusSucceeded},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			g := NewMockGateway(tt.outcome)
			_, err := g.Initiate(ctx, sampleCharge("PLUG-2"))
			require.NoError(t, err)

			result, err := g.Verify(ctx, "PLUG-2", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Status)
		})
	}
}

func TestMockGateway_CancelRedirectsToCancelURL(t *testing.T) {
	g := NewMockGateway(MockCancel)

	checkout, err := g.Initiate(context.Background(), sampleCharge("PLUG-3"))
	require.NoError(t, err)
	assert.Contains(t, checkout.URL, "/payments/cancel?reference=PLUG-3")
}

func TestMockGateway_RejectsInvalidCharges(t *testing.T) {
	g := NewMockGateway(MockSuccess)
	ctx := context.Background()

	_, err := g.Initiate(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidCharge)

	noEmail := sampleCharge("PLUG-4")
	noEmail.Email = ""
	_, err = g.Initiate(ctx, noEmail)
	assert.ErrorIs(t, err, ErrInvalidCharge)

	_, err = g.Verify(ctx, "PLUG-unknown", "")
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestStatus_Resolved(t *testing.T) {
	assert.True(t, StatusSucceeded.Resolved())
	assert.True(t, StatusCancelled.Resolved())
	assert.True(t, StatusFailed.Resolved())
	assert.False(t, StatusPending.Resolved())
}
