package google

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/core/ports/driven"
)

// DefaultUserAgent identifies the library to servers.
const DefaultUserAgent = "gdata-go/1.0"

// Config holds the HTTP service configuration.
type Config struct {
	// Service names the API for rate limiting and metrics (optional).
	Service ServiceType `validate:"omitempty,oneof=calendar tasks youtube documents freebase picasaweb contacts"`
	// BaseURL is prefixed to feed URIs that are not absolute (optional).
	BaseURL string `validate:"omitempty,url"`
	// UserAgent is sent with every request.
	UserAgent string `validate:"required"`
	// Timeout bounds each request; zero means no timeout.
	Timeout time.Duration `validate:"gte=0"`
	// RequestsPerSecond overrides the service's default rate limit when > 0.
	RequestsPerSecond float64 `validate:"gte=0"`
	// Burst overrides the service's default burst size when > 0.
	Burst int `validate:"gte=0"`
	// APIKey is appended as key= to every request URI (optional).
	APIKey string
	// Token is a static bearer token (optional).
	Token string
	// Locale is a BCP 47 tag used for language defaults (optional).
	Locale string `validate:"omitempty,bcp47_language_tag"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		UserAgent: DefaultUserAgent,
		Timeout:   30 * time.Second,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return ValidateStruct(c)
}

// Configuration keys read by ConfigFromStore.
const (
	KeyBaseURL           = "service.base_url"
	KeyUserAgent         = "service.user_agent"
	KeyTimeoutSeconds    = "service.timeout_seconds"
	KeyRequestsPerSecond = "service.requests_per_second"
	KeyBurst             = "service.burst"
	KeyLocale            = "service.locale"
	KeyAPIKey            = "auth.api_key"
	KeyToken             = "auth.token"
)

// ConfigFromStore overlays stored settings on the defaults.
func ConfigFromStore(store driven.ConfigStore) (Config, error) {
	cfg := DefaultConfig()

	if v := store.GetString(KeyBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := store.GetString(KeyUserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := store.GetInt(KeyTimeoutSeconds); v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
	if raw, ok := store.Get(KeyRequestsPerSecond); ok {
		switch v := raw.(type) {
		case float64:
			cfg.RequestsPerSecond = v
		case int64:
			cfg.RequestsPerSecond = float64(v)
		case int:
			cfg.RequestsPerSecond = float64(v)
		default:
			return Config{}, fmt.Errorf("%s: %w", KeyRequestsPerSecond, domain.ErrInvalidInput)
		}
	}
	if v := store.GetInt(KeyBurst); v > 0 {
		cfg.Burst = v
	}
	if v := store.GetString(KeyLocale); v != "" {
		cfg.Locale = v
	}
	if v := store.GetString(KeyAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := store.GetString(KeyToken); v != "" {
		cfg.Token = v
	}

	return cfg, cfg.Validate()
}

// ApplyEnv overlays GDATA_* environment variables on the configuration.
func (c Config) ApplyEnv() (Config, error) {
	c.BaseURL = envOrDefault("GDATA_BASE_URL", c.BaseURL)
	c.UserAgent = envOrDefault("GDATA_USER_AGENT", c.UserAgent)
	c.APIKey = envOrDefault("GDATA_API_KEY", c.APIKey)
	c.Token = envOrDefault("GDATA_TOKEN", c.Token)
	c.Locale = envOrDefault("GDATA_LOCALE", c.Locale)

	if v := strings.TrimSpace(os.Getenv("GDATA_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GDATA_TIMEOUT %q: %w", v, domain.ErrInvalidInput)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv("GDATA_REQUESTS_PER_SECOND")); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GDATA_REQUESTS_PER_SECOND %q: %w", v, domain.ErrInvalidInput)
		}
		c.RequestsPerSecond = rps
	}

	return c, c.Validate()
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// rateLimit returns the limiter configuration for the service with any
// overrides applied.
func (c Config) rateLimit() RateLimitConfig {
	cfg, ok := DefaultRateLimits[c.Service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}
	}
	if c.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = c.RequestsPerSecond
	}
	if c.Burst > 0 {
		cfg.BurstSize = c.Burst
	}
	return cfg
}
