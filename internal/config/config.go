// Package config loads the process-wide settings once at startup.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultModel         = "gemini-1.5-flash"
	DefaultBaseURL       = "https://generativelanguage.googleapis.com"
	DefaultPort          = 8080
	DefaultRateLimit     = 2
	DefaultMaxUploadMB   = 10
	DefaultPlanCacheSize = 128
)

// Config holds all configuration for the application.
// It is built once by Load and must not be mutated afterwards.
type Config struct {
	// APIKey is the Gemini credential. An empty key is not an error here;
	// it surfaces when the first model call fails.
	APIKey string

	Model          string
	BaseURL        string
	RequestTimeout time.Duration

	Port     int
	Env      string
	LogLevel string

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables the limiter.
	RateLimit     float64
	MaxUploadMB   int
	PlanCacheSize int
}

// Load reads the configuration from the environment, after loading a .env
// file if one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment only")
	}

	cfg := &Config{
		APIKey:   firstNonEmpty(os.Getenv("GOOGLE_API_KEY"), os.Getenv("GEMINI_API_KEY")),
		Model:    os.Getenv("GEMINI_MODEL"),
		BaseURL:  strings.TrimRight(os.Getenv("GEMINI_BASE_URL"), "/"),
		Env:      os.Getenv("APP_ENV"),
		LogLevel: os.Getenv("LOG_LEVEL"),
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if secs, err := strconv.Atoi(os.Getenv("GEMINI_REQUEST_TIMEOUT")); err == nil && secs > 0 {
		cfg.RequestTimeout = time.Duration(secs) * time.Second
	}

	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil && port > 0 {
		cfg.Port = port
	} else {
		cfg.Port = DefaultPort
	}

	if limit, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT"), 64); err == nil && limit >= 0 {
		cfg.RateLimit = limit
	} else {
		cfg.RateLimit = DefaultRateLimit
	}

	if mb, err := strconv.Atoi(os.Getenv("MAX_UPLOAD_MB")); err == nil && mb > 0 {
		cfg.MaxUploadMB = mb
	} else {
		cfg.MaxUploadMB = DefaultMaxUploadMB
	}

	if size, err := strconv.Atoi(os.Getenv("PLAN_CACHE_SIZE")); err == nil && size > 0 {
		cfg.PlanCacheSize = size
	} else {
		cfg.PlanCacheSize = DefaultPlanCacheSize
	}

	return cfg
}

// HasAPIKey reports whether a credential was found. Only its presence is
// ever logged.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// IsLocal reports whether the process runs in a developer environment.
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == "development"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
