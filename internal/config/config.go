package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Page subscription token sources. "page" subscribes each page with its own
// page access token, "user" reuses the long-lived user token for every page.
const (
	PageSubscriptionTokenPage = "page"
	PageSubscriptionTokenUser = "user"
)

type Config struct {
	// Server settings
	ServerAddr   string
	BaseURL      string // Public base URL used to build provider callback URLs
	IsProduction bool
	LogLevel     string

	// Session settings (shared with the dashboard that starts onboarding)
	SessionSecret  string
	SessionName    string
	SessionMaxAge  int    // seconds
	SessionUserKey string // session key holding the acting user id

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string
	DBInitTimeout  time.Duration

	// Onboarding flow
	FrontendURL      string        // success redirect target
	ErrorPageURL     string        // failure redirect target, receives ?logId=
	ConnectorTimeout time.Duration // upper bound for one callback run

	// Outbound provider HTTP client
	ProviderTimeout            time.Duration
	ProviderInsecureSkipVerify bool
	ProviderMaxRetries         int // 0 keeps the pipeline single-shot
	ProviderRetryDelay         time.Duration
	ProviderMaxRetryDelay      time.Duration

	// Facebook
	FacebookEnabled               bool
	FacebookAppID                 string
	FacebookAppSecret             string
	FacebookScopes                []string
	FacebookWebhookURL            string
	FacebookVerifyToken           string
	FacebookGraphURL              string
	FacebookDialogURL             string
	FacebookGraphVersion          string
	FacebookWebhookFields         []string
	FacebookPageSubscriptionToken string
	FacebookMaxPages              int

	// Zalo
	ZaloEnabled     bool
	ZaloAppID       string
	ZaloAppSecret   string
	ZaloWebhookURL  string
	ZaloVerifyToken string
	ZaloOAuthURL    string
	ZaloOpenAPIURL  string

	// Diagnostics
	LogBufferSize      int
	LogRetention       time.Duration // 0 disables cleanup
	LogCleanupInterval time.Duration

	// Prometheus metrics
	MetricsEnabled             bool
	MetricsToken               string
	MetricsGaugeUpdateEnabled  bool
	MetricsGaugeUpdateInterval time.Duration

	// Operator API (log and channel lookup)
	AdminToken string

	// Rate limiting
	EnableRateLimit          bool
	RateLimitStore           string // "memory" or "redis"
	ConnectorRateLimit       int    // requests per minute per client IP
	RateLimitCleanupInterval time.Duration

	// Redis (rate limit store)
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisConnTimeout time.Duration
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", getEnv("DATABASE_PATH", "channels.db"))
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		ServerAddr:   getEnv("SERVER_ADDR", ":8080"),
		BaseURL:      strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		IsProduction: getEnv("ENVIRONMENT", "development") == "production",
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		SessionSecret:  getEnv("SESSION_SECRET", "session-secret-change-in-production"),
		SessionName:    getEnv("SESSION_NAME", "mia_session"),
		SessionMaxAge:  getEnvInt("SESSION_MAX_AGE", 86400),
		SessionUserKey: getEnv("SESSION_USER_KEY", "user_id"),

		DatabaseDriver: driver,
		DatabaseDSN:    dsn,
		DBInitTimeout:  getEnvDuration("DB_INIT_TIMEOUT", 30*time.Second),

		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:3000/"),
		ErrorPageURL:     getEnv("ERROR_PAGE_URL", "http://localhost:3000/error"),
		ConnectorTimeout: getEnvDuration("CONNECTOR_TIMEOUT", 30*time.Second),

		ProviderTimeout:            getEnvDuration("PROVIDER_HTTP_TIMEOUT", 15*time.Second),
		ProviderInsecureSkipVerify: getEnvBool("PROVIDER_INSECURE_SKIP_VERIFY", false),
		ProviderMaxRetries:         getEnvInt("PROVIDER_MAX_RETRIES", 0),
		ProviderRetryDelay:         getEnvDuration("PROVIDER_RETRY_DELAY", 1*time.Second),
		ProviderMaxRetryDelay:      getEnvDuration("PROVIDER_MAX_RETRY_DELAY", 5*time.Second),

		FacebookEnabled:   getEnvBool("FACEBOOK_ENABLED", true),
		FacebookAppID:     getEnv("FACEBOOK_APP_ID", ""),
		FacebookAppSecret: getEnv("FACEBOOK_APP_SECRET", ""),
		FacebookScopes: getEnvSlice("FACEBOOK_SCOPES", []string{
			"pages_show_list",
			"pages_messaging",
			"pages_manage_metadata",
			"pages_read_engagement",
		}),
		FacebookWebhookURL:   getEnv("FACEBOOK_WEBHOOK_URL", ""),
		FacebookVerifyToken:  getEnv("FACEBOOK_VERIFY_TOKEN", ""),
		FacebookGraphURL:     strings.TrimRight(getEnv("FACEBOOK_GRAPH_URL", "https://graph.facebook.com"), "/"),
		FacebookDialogURL:    strings.TrimRight(getEnv("FACEBOOK_DIALOG_URL", "https://www.facebook.com"), "/"),
		FacebookGraphVersion: getEnv("FACEBOOK_GRAPH_VERSION", "v19.0"),
		FacebookWebhookFields: getEnvSlice("FACEBOOK_WEBHOOK_FIELDS", []string{
			"messages",
			"messaging_postbacks",
			"message_reads",
			"message_deliveries",
		}),
		FacebookPageSubscriptionToken: getEnv(
			"FACEBOOK_PAGE_SUBSCRIPTION_TOKEN",
			PageSubscriptionTokenPage,
		),
		FacebookMaxPages: getEnvInt("FACEBOOK_MAX_PAGES", 10),

		ZaloEnabled:     getEnvBool("ZALO_ENABLED", true),
		ZaloAppID:       getEnv("ZALO_APP_ID", ""),
		ZaloAppSecret:   getEnv("ZALO_APP_SECRET", ""),
		ZaloWebhookURL:  getEnv("ZALO_WEBHOOK_URL", ""),
		ZaloVerifyToken: getEnv("ZALO_VERIFY_TOKEN", ""),
		ZaloOAuthURL:    strings.TrimRight(getEnv("ZALO_OAUTH_URL", "https://oauth.zaloapp.com"), "/"),
		ZaloOpenAPIURL:  strings.TrimRight(getEnv("ZALO_OPENAPI_URL", "https://openapi.zalo.me"), "/"),

		LogBufferSize:      getEnvInt("LOG_BUFFER_SIZE", 1000),
		LogRetention:       getEnvDuration("LOG_RETENTION", 90*24*time.Hour),
		LogCleanupInterval: getEnvDuration("LOG_CLEANUP_INTERVAL", 24*time.Hour),

		MetricsEnabled:             getEnvBool("METRICS_ENABLED", false),
		MetricsToken:               getEnv("METRICS_TOKEN", ""),
		MetricsGaugeUpdateEnabled:  getEnvBool("METRICS_GAUGE_UPDATE_ENABLED", true),
		MetricsGaugeUpdateInterval: getEnvDuration("METRICS_GAUGE_UPDATE_INTERVAL", 5*time.Minute),

		AdminToken: getEnv("ADMIN_TOKEN", ""),

		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", true),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		ConnectorRateLimit:       getEnvInt("CONNECTOR_RATE_LIMIT", 30),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),

		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisConnTimeout: getEnvDuration("REDIS_CONN_TIMEOUT", 5*time.Second),
	}
}

// Validate checks the settings that cannot be defaulted safely
func (c *Config) Validate() error {
	if c.RateLimitStore != RateLimitStoreMemory && c.RateLimitStore != RateLimitStoreRedis {
		return fmt.Errorf(
			"invalid RATE_LIMIT_STORE value: %q (must be %q or %q)",
			c.RateLimitStore, RateLimitStoreMemory, RateLimitStoreRedis,
		)
	}

	switch c.FacebookPageSubscriptionToken {
	case PageSubscriptionTokenPage, PageSubscriptionTokenUser:
	default:
		return fmt.Errorf(
			"invalid FACEBOOK_PAGE_SUBSCRIPTION_TOKEN value: %q (must be %q or %q)",
			c.FacebookPageSubscriptionToken, PageSubscriptionTokenPage, PageSubscriptionTokenUser,
		)
	}

	if c.FrontendURL == "" {
		return errors.New("FRONTEND_URL must not be empty")
	}
	if c.ErrorPageURL == "" {
		return errors.New("ERROR_PAGE_URL must not be empty")
	}
	if c.ConnectorTimeout <= 0 {
		return fmt.Errorf("CONNECTOR_TIMEOUT must be positive, got %s", c.ConnectorTimeout)
	}
	if c.ProviderMaxRetries < 0 {
		return fmt.Errorf("PROVIDER_MAX_RETRIES must not be negative, got %d", c.ProviderMaxRetries)
	}
	if c.MetricsEnabled && c.MetricsGaugeUpdateEnabled && c.MetricsGaugeUpdateInterval <= 0 {
		return fmt.Errorf(
			"METRICS_GAUGE_UPDATE_INTERVAL must be positive, got %s",
			c.MetricsGaugeUpdateInterval,
		)
	}
	if c.EnableRateLimit && c.ConnectorRateLimit <= 0 {
		return fmt.Errorf("CONNECTOR_RATE_LIMIT must be positive, got %d", c.ConnectorRateLimit)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		if parts := splitAndTrim(value, ","); len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}

func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
