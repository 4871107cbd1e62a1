package bootstrap

import (
	"fmt"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/config"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// rateLimitMiddlewares holds rate limiting middlewares for different endpoints
type rateLimitMiddlewares struct {
	authorize gin.HandlerFunc
	callback  gin.HandlerFunc
}

// setupRateLimiting configures rate limiting middlewares based on configuration
// Accepts an optional go-redis client
func setupRateLimiting(
	cfg *config.Config,
	redisClient *redis.Client,
	logger *zap.Logger,
) (rateLimitMiddlewares, error) {
	if !cfg.EnableRateLimit {
		noOpMiddleware := func(c *gin.Context) { c.Next() }
		return rateLimitMiddlewares{
			authorize: noOpMiddleware,
			callback:  noOpMiddleware,
		}, nil
	}

	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)
	logger.Info("rate limiting enabled",
		zap.String("store", cfg.RateLimitStore),
		zap.Int("requests_per_minute", cfg.ConnectorRateLimit))

	createLimiter := func(prefix string) (gin.HandlerFunc, error) {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: cfg.ConnectorRateLimit,
			CleanupInterval:   cfg.RateLimitCleanupInterval,
			Prefix:            prefix,
			StoreType:         storeType,
			RedisClient:       redisClient, // nil for memory store
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter %s: %w", prefix, err)
		}
		return limiter, nil
	}

	authorize, err := createLimiter("ratelimit:authorize")
	if err != nil {
		return rateLimitMiddlewares{}, err
	}
	callback, err := createLimiter("ratelimit:callback")
	if err != nil {
		return rateLimitMiddlewares{}, err
	}

	return rateLimitMiddlewares{authorize: authorize, callback: callback}, nil
}
