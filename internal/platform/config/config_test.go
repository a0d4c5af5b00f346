package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setBaseEnv sets the minimum environment required for Load to succeed.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/nutrilens_test")
	t.Setenv("SESSION_SECRET", "test-secret")
	// Isolate from the host environment
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("RUN_MIGRATIONS", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("FREE_SCAN_LIMIT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(3), cfg.FreeScanLimit)
	assert.True(t, cfg.RunMigrations, "migrations run by default")
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()

	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()

	assert.ErrorContains(t, err, "SESSION_SECRET")
}

func TestLoad_StripeKeyWithoutWebhookSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	_, err := Load()

	assert.ErrorContains(t, err, "STRIPE_WEBHOOK_SECRET")

	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "whsec_123", cfg.StripeWebhookSecret)
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL_HOURS", "72")
	t.Setenv("FREE_SCAN_LIMIT", "10")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(10), cfg.FreeScanLimit)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidFreeScanLimit(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("FREE_SCAN_LIMIT", "unlimited")

	_, err := Load()

	assert.ErrorContains(t, err, "FREE_SCAN_LIMIT")
}
