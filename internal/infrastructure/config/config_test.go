package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "PAYMENT_PROVIDER", "PAYMENT_CURRENCY", "PAYMENT_GATEWAY_MOCK",
		"BOOKINGS_TABLE", "SERVICES_TABLE", "PAYMENT_TIMEOUT", "NOTIFICATION_TIMEOUT", "EMAILJS_API_URL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "stripe", cfg.Payment.Provider)
	assert.Equal(t, "eur", cfg.Currency)
	assert.Equal(t, "reservas", cfg.BookingsTable)
	assert.Equal(t, "servicios", cfg.ServicesTable)
	assert.Equal(t, 10*time.Second, cfg.Payment.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Email.Timeout)
	assert.Equal(t, "https://api.emailjs.com/api/v1.0/email/send", cfg.APIURL)
	assert.False(t, cfg.MockPayments())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PAYMENT_PROVIDER", " MercadoPago ")
	t.Setenv("PAYMENT_CURRENCY", "BRL")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "mock")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("ADMIN_TOKEN_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mercadopago", cfg.Payment.Provider)
	assert.Equal(t, "brl", cfg.Currency)
	assert.True(t, cfg.MockPayments())
	assert.Equal(t, "whsec_test", cfg.StripeWebhookSecret)
	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}

// unsetEnv clears keys for the test and restores them afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}
