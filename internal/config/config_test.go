package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"GOOGLE_API_KEY", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL",
		"GEMINI_REQUEST_TIMEOUT", "PORT", "APP_ENV", "LOG_LEVEL",
		"RATE_LIMIT", "MAX_UPLOAD_MB", "PLAN_CACHE_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "", cfg.APIKey)
	assert.False(t, cfg.HasAPIKey())
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, float64(DefaultRateLimit), cfg.RateLimit)
	assert.Equal(t, DefaultMaxUploadMB, cfg.MaxUploadMB)
	assert.Equal(t, DefaultPlanCacheSize, cfg.PlanCacheSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "fallback-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("GEMINI_BASE_URL", "http://localhost:9999/")
	t.Setenv("GEMINI_REQUEST_TIMEOUT", "45")
	t.Setenv("PORT", "3000")
	t.Setenv("RATE_LIMIT", "0")
	t.Setenv("MAX_UPLOAD_MB", "4")
	t.Setenv("PLAN_CACHE_SIZE", "16")
	t.Setenv("APP_ENV", "local")

	cfg := Load()

	assert.Equal(t, "fallback-key", cfg.APIKey)
	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, float64(0), cfg.RateLimit)
	assert.Equal(t, 4, cfg.MaxUploadMB)
	assert.Equal(t, 16, cfg.PlanCacheSize)
	assert.True(t, cfg.IsLocal())
}

func TestLoadPrefersGoogleAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "primary")
	t.Setenv("GEMINI_API_KEY", "secondary")

	assert.Equal(t, "primary", Load().APIKey)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")
	t.Setenv("RATE_LIMIT", "-1")
	t.Setenv("MAX_UPLOAD_MB", "zero")
	t.Setenv("GEMINI_REQUEST_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, float64(DefaultRateLimit), cfg.RateLimit)
	assert.Equal(t, DefaultMaxUploadMB, cfg.MaxUploadMB)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
}
