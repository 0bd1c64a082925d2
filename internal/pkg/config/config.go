// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// APIBaseURL is the remote order API root, including the /api prefix.
	APIBaseURL string
	// APITimeout bounds each remote call. Zero disables the timeout.
	APITimeout time.Duration

	// RedisAddr enables the catalog cache when set.
	RedisAddr  string
	CatalogTTL time.Duration

	// SyncLogPath enables the SQLite sync journal when set.
	SyncLogPath string

	TracingEnabled bool
	OTLPEndpoint   string
	ServiceName    string
	Environment    string
	// SampleRatio of traces exported; 0 or 1 samples everything.
	SampleRatio float64

	LogLevel string

	// StubAddr is the listen address of the stub order API.
	StubAddr string
}

func Load() (Config, error) {
	cfg := Config{
		APIBaseURL:   getEnv("ORDER_API_BASE_URL", "http://localhost:8000/api"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		SyncLogPath:  os.Getenv("SYNC_LOG_PATH"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "cart-sync"),
		Environment:  getEnv("DEPLOY_ENV", "local"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		StubAddr:     getEnv("STUB_ADDR", ":8000"),
	}

	var err error
	if cfg.APITimeout, err = getDuration("ORDER_API_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CatalogTTL, err = getDuration("CATALOG_CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.TracingEnabled, err = getBool("OTEL_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.SampleRatio, err = getFloat("OTEL_SAMPLE_RATIO", 1); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}
