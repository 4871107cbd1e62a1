package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		RateLimitStore:                RateLimitStoreMemory,
		FacebookPageSubscriptionToken: PageSubscriptionTokenPage,
		FrontendURL:                   "http://localhost:3000/",
		ErrorPageURL:                  "http://localhost:3000/error",
		ConnectorTimeout:              30 * time.Second,
		EnableRateLimit:               true,
		ConnectorRateLimit:            30,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:   "valid memory store",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid redis store",
			mutate: func(c *Config) { c.RateLimitStore = RateLimitStoreRedis },
		},
		{
			name:        "invalid store - typo",
			mutate:      func(c *Config) { c.RateLimitStore = "reddis" },
			expectError: true,
			errorMsg:    `invalid RATE_LIMIT_STORE value: "reddis"`,
		},
		{
			name:        "invalid store - uppercase",
			mutate:      func(c *Config) { c.RateLimitStore = "MEMORY" },
			expectError: true,
			errorMsg:    `invalid RATE_LIMIT_STORE value: "MEMORY"`,
		},
		{
			name:   "user token for page subscription",
			mutate: func(c *Config) { c.FacebookPageSubscriptionToken = PageSubscriptionTokenUser },
		},
		{
			name:        "unknown page subscription token",
			mutate:      func(c *Config) { c.FacebookPageSubscriptionToken = "app" },
			expectError: true,
			errorMsg:    `invalid FACEBOOK_PAGE_SUBSCRIPTION_TOKEN value: "app"`,
		},
		{
			name:        "missing error page",
			mutate:      func(c *Config) { c.ErrorPageURL = "" },
			expectError: true,
			errorMsg:    "ERROR_PAGE_URL must not be empty",
		},
		{
			name:        "zero connector timeout",
			mutate:      func(c *Config) { c.ConnectorTimeout = 0 },
			expectError: true,
			errorMsg:    "CONNECTOR_TIMEOUT must be positive",
		},
		{
			name:        "negative retries",
			mutate:      func(c *Config) { c.ProviderMaxRetries = -1 },
			expectError: true,
			errorMsg:    "PROVIDER_MAX_RETRIES must not be negative",
		},
		{
			name:   "rate limit disabled ignores limit",
			mutate: func(c *Config) { c.EnableRateLimit = false; c.ConnectorRateLimit = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("PROVIDER_MAX_RETRIES", "")
	t.Setenv("FACEBOOK_WEBHOOK_FIELDS", "")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 0, cfg.ProviderMaxRetries)
	assert.Equal(t, 30*time.Second, cfg.ConnectorTimeout)
	assert.Equal(t, PageSubscriptionTokenPage, cfg.FacebookPageSubscriptionToken)
	assert.Contains(t, cfg.FacebookWebhookFields, "messages")
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("BASE_URL", "https://chat.example.com/")
	t.Setenv("CONNECTOR_TIMEOUT", "45s")
	t.Setenv("FACEBOOK_SCOPES", "pages_show_list, pages_messaging ,")
	t.Setenv("ZALO_ENABLED", "false")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "https://chat.example.com", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.ConnectorTimeout)
	assert.Equal(t, []string{"pages_show_list", "pages_messaging"}, cfg.FacebookScopes)
	assert.False(t, cfg.ZaloEnabled)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CONNECTOR_TIMEOUT", "soon")
	t.Setenv("LOG_BUFFER_SIZE", "many")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.ConnectorTimeout)
	assert.Equal(t, 1000, cfg.LogBufferSize)
}
