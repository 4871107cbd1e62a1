package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/config"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/metrics"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/middleware"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	h handlerSet,
	recorder core.Recorder,
	rateLimitRedisClient *redis.Client,
	logger *zap.Logger,
) (*gin.Engine, error) {
	// Setup Gin mode
	setupGinMode(cfg, logger)
	r := gin.New()

	// Setup middleware
	r.Use(metrics.HTTPMetricsMiddleware(recorder))
	r.Use(middleware.RequestContext(logger), gin.Recovery())

	// Setup session middleware
	setupSessionMiddleware(r, cfg)

	// Health check endpoint
	r.GET("/health", createHealthCheckHandler(db))

	// Setup metrics endpoint
	setupMetricsEndpoint(r, cfg, logger)

	// Setup rate limiting
	rateLimiters, err := setupRateLimiting(cfg, rateLimitRedisClient, logger)
	if err != nil {
		return nil, err
	}

	// Setup all routes
	setupAllRoutes(r, cfg, h, rateLimiters)

	// Log server startup info
	logServerStartup(cfg, logger)

	return r, nil
}

// setupSessionMiddleware configures session handling middleware. The
// dashboard session carries the ID of the operator linking channels.
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) {
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.SessionName, sessionStore))
	r.Use(middleware.SessionUser(cfg.SessionUserKey))
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	switch {
	case !cfg.MetricsEnabled:
		logger.Info("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		logger.Info("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		logger.Info("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(
	r *gin.Engine,
	cfg *config.Config,
	h handlerSet,
	rateLimiters rateLimitMiddlewares,
) {
	api := r.Group("/api")

	// Operator routes (bearer token)
	admin := api.Group("")
	admin.Use(middleware.AdminAuthMiddleware(cfg.AdminToken))
	{
		admin.GET("/logs", h.logs.ListLogEvents)
		admin.GET("/logs/:id", h.logs.GetLogEvent)
		admin.GET("/channels", h.channels.ListChannels)
		admin.GET("/channels/:source/:external_id", h.channels.GetChannel)
	}

	// Onboarding routes (browser)
	api.GET("/:provider/auth", rateLimiters.authorize, h.connector.Authorize)
	api.GET("/:provider/auth/callback", rateLimiters.callback, h.connector.Callback)

	// Webhook handshake (provider)
	api.GET("/:provider/webhook", h.webhook.Verify)
}

// createHealthCheckHandler creates health check endpoint handler
func createHealthCheckHandler(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		switch err := db.Health(ctx); err {
		case nil:
			c.JSON(http.StatusOK, gin.H{
				"status":   "healthy",
				"database": "connected",
			})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config, logger *zap.Logger) {
	mode := ginModeMap[cfg.IsProduction]
	gin.SetMode(mode)
	logger.Info("gin mode", zap.String("mode", ginModeLogMessage[cfg.IsProduction]))
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config, logger *zap.Logger) {
	logger.Info("channel connector starting",
		zap.String("addr", cfg.ServerAddr),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("facebook", cfg.FacebookEnabled),
		zap.Bool("zalo", cfg.ZaloEnabled),
		zap.Bool("operator_api", cfg.AdminToken != ""))
}
