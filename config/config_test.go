package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPaymentRequiresCredentials(t *testing.T) {
	t.Setenv("PAYMENT_MERCHANT_ID", "")
	t.Setenv("PAYMENT_SALT_KEY", "")

	_, err := LoadPayment()

	assert.Error(t, err, "missing gateway credentials must fail loudly at startup")
}

func TestLoadPaymentDefaults(t *testing.T) {
	t.Setenv("PAYMENT_MERCHANT_ID", "MERCHANT1")
	t.Setenv("PAYMENT_SALT_KEY", "salt")

	p, err := LoadPayment()
	require.NoError(t, err)

	assert.Equal(t, "1", p.SaltIndex)
	assert.False(t, p.Production)
	assert.Equal(t, gatewaySandboxURL, p.BaseURL(), "sandbox unless production is opted into")
}

func TestPaymentBaseURLSelection(t *testing.T) {
	p := Payment{Production: true}
	assert.Equal(t, gatewayProductionURL, p.BaseURL())

	p.BaseURLOverride = "http://localhost:9999"
	assert.Equal(t, "http://localhost:9999", p.BaseURL(), "explicit override wins")
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("BOOKSHOP_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("BOOKSHOP_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BOOKSHOP_TEST_KEY_MISSING", "fallback"))
}
