package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PAYMENT_PROVIDER", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, ":8080", cfg.GetServerAddress())
	assert.Equal(t, "mock", cfg.Payment.Provider)
	assert.Equal(t, "NGN", cfg.Payment.Currency)
	assert.Equal(t, 24*time.Hour, cfg.Redis.SessionTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PAYMENT_PROVIDER", "Paystack")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_SESSION_TTL", "30m")
	t.Setenv("RATE_LIMIT_CHECKOUT_REQUESTS", "not-a-number")
	t.Setenv("DB_HOST", "db")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.GetServerAddress())
	assert.Equal(t, "paystack", cfg.Payment.Provider)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Minute, cfg.Redis.SessionTTL)
	assert.Equal(t, 20, cfg.RateLimit.CheckoutRequests)
	assert.Contains(t, cfg.Database.DSN, "host=db ")
}

func TestConfig_Mode(t *testing.T) {
	cfg := &Config{GinMode: "release"}
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	cfg.GinMode = "debug"
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.IsDevelopment())
}
