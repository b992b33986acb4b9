package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugevents/internal/shared/config"
)

func TestNewGateway(t *testing.T) {
	g, err := NewGateway(config.PaymentConfig{Provider: ""})
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, g.Name())

	g, err = NewGateway(config.PaymentConfig{Provider: ProviderPaystack, PaystackSecretKey: "sk"})
	require.NoError(t, err)
	assert.Equal(t, ProviderPaystack, g.Name())
	assert.Implements(t, (*WebhookParser)(nil), g)

	_, err = NewGateway(config.PaymentConfig{Provider: ProviderPaystack})
	assert.Error(t, err)

	g, err = NewGateway(config.PaymentConfig{Provider: ProviderStripe, StripeSecretKey: "sk_test"})
	require.NoError(t, err)
	assert.Equal(t, ProviderStripe, g.Name())

	_, err = NewGateway(config.PaymentConfig{Provider: "flutterwave"})
	assert.ErrorIs(t, err, ErrUnsupportedGateway)
}
