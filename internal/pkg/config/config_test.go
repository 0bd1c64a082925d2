package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ORDER_API_BASE_URL", "ORDER_API_TIMEOUT", "REDIS_ADDR", "CATALOG_CACHE_TTL", "SYNC_LOG_PATH", "OTEL_ENABLED", "OTEL_SAMPLE_RATIO", "STUB_ADDR"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 5*time.Minute, cfg.CatalogTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, ":8000", cfg.StubAddr)
	assert.Equal(t, 1.0, cfg.SampleRatio)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ORDER_API_BASE_URL", "http://orders:9000/api")
	t.Setenv("ORDER_API_TIMEOUT", "0s")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("SYNC_LOG_PATH", "/tmp/sync.db")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://orders:9000/api", cfg.APIBaseURL)
	assert.Zero(t, cfg.APITimeout)
	assert.True(t, cfg.TracingEnabled)
	assert.Equal(t, "/tmp/sync.db", cfg.SyncLogPath)
	assert.InDelta(t, 0.1, cfg.SampleRatio, 1e-9)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("ORDER_API_TIMEOUT", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "ORDER_API_TIMEOUT")

	t.Setenv("ORDER_API_TIMEOUT", "")
	t.Setenv("OTEL_ENABLED", "maybe")
	_, err = Load()
	assert.ErrorContains(t, err, "OTEL_ENABLED")
}
