package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "pasar")
	t.Setenv("DB_NAME", "pasar")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "50000", cfg.Courier.PickupPostcode)
	assert.Equal(t, 30*time.Second, cfg.Worker.NotifyInterval)
	assert.Equal(t, 10*time.Minute, cfg.Worker.ShipmentInterval)
	assert.Equal(t, 24*time.Hour, cfg.Worker.OrderExpiryAfter)
}

func TestLoadRequiresDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_SECRET", "x")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database configuration incomplete")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NOTIFY_INTERVAL", "often")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTIFY_INTERVAL")
}

func TestLoadParsesCustomDurations(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ORDER_EXPIRY_AFTER", "48h")
	t.Setenv("SHIPMENT_CHECK_INTERVAL", "5m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, cfg.Worker.OrderExpiryAfter)
	assert.Equal(t, 5*time.Minute, cfg.Worker.ShipmentInterval)
}
