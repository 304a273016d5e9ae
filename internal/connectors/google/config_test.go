package google

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdata-go/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gdata-go/internal/core/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid service", func(c *Config) { c.Service = ServiceTasks }, false},
		{"unknown service", func(c *Config) { c.Service = "gmail" }, true},
		{"valid base url", func(c *Config) { c.BaseURL = "https://www.googleapis.com" }, false},
		{"invalid base url", func(c *Config) { c.BaseURL = "not a url" }, true},
		{"missing user agent", func(c *Config) { c.UserAgent = "" }, true},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, true},
		{"negative rate", func(c *Config) { c.RequestsPerSecond = -1 }, true},
		{"valid locale", func(c *Config) { c.Locale = "en-GB" }, false},
		{"invalid locale", func(c *Config) { c.Locale = "not_a_locale!" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidQuery)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfigFromStore(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		KeyBaseURL:           "https://www.googleapis.com",
		KeyUserAgent:         "custom/2.0",
		KeyTimeoutSeconds:    int64(10),
		KeyRequestsPerSecond: 2.5,
		KeyBurst:             int64(3),
		KeyLocale:            "fr",
		KeyAPIKey:            "key",
		KeyToken:             "tok",
	})

	cfg, err := ConfigFromStore(store)
	require.NoError(t, err)

	assert.Equal(t, "https://www.googleapis.com", cfg.BaseURL)
	assert.Equal(t, "custom/2.0", cfg.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.InDelta(t, 2.5, cfg.RequestsPerSecond, 0.001)
	assert.Equal(t, 3, cfg.Burst)
	assert.Equal(t, "fr", cfg.Locale)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "tok", cfg.Token)

	limits := cfg.rateLimit()
	assert.InDelta(t, 2.5, limits.RequestsPerSecond, 0.001)
	assert.Equal(t, 3, limits.BurstSize)
}

func TestConfigFromStore_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		want   error
	}{
		{"rate wrong type", map[string]any{KeyRequestsPerSecond: "fast"}, domain.ErrInvalidInput},
		{"bad url", map[string]any{KeyBaseURL: "::"}, domain.ErrInvalidQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConfigFromStore(memory.NewConfigStore(tt.values))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("GDATA_BASE_URL", "https://example.com")
	t.Setenv("GDATA_USER_AGENT", "env-agent")
	t.Setenv("GDATA_API_KEY", "env-key")
	t.Setenv("GDATA_TIMEOUT", "5s")
	t.Setenv("GDATA_REQUESTS_PER_SECOND", "1.5")

	cfg, err := DefaultConfig().ApplyEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.BaseURL)
	assert.Equal(t, "env-agent", cfg.UserAgent)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.InDelta(t, 1.5, cfg.RequestsPerSecond, 0.001)
}

func TestConfig_ApplyEnvInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"GDATA_TIMEOUT", "forever"},
		{"GDATA_REQUESTS_PER_SECOND", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := DefaultConfig().ApplyEnv()
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
