package bootstrap

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/config"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/services"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/store"

	"github.com/appleboy/graceful"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultWriteTimeout = 30 * time.Second
	// time left after the callback deadline to store the error record and
	// send the redirect
	callbackWriteMargin = 10 * time.Second
)

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout(cfg),
		IdleTimeout:       120 * time.Second,
	}
}

// writeTimeout keeps the response deadline past the callback deadline, so
// a callback that runs out of time still answers with its redirect
func writeTimeout(cfg *config.Config) time.Duration {
	return max(defaultWriteTimeout, cfg.ConnectorTimeout+callbackWriteMargin)
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server, logger *zap.Logger) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("failed to start server", zap.Error(err))
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds HTTP server shutdown handler
func addServerShutdownJob(m *graceful.Manager, srv *http.Server, logger *zap.Logger) {
	m.AddShutdownJob(func() error {
		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
			return err
		}

		logger.Info("server exited")
		return nil
	})
}

// addRedisClientShutdownJob adds Redis client shutdown handler
func addRedisClientShutdownJob(m *graceful.Manager, redisClient *redis.Client, logger *zap.Logger) {
	if redisClient == nil {
		return
	}

	m.AddShutdownJob(func() error {
		logger.Info("closing Redis connection")
		if err := redisClient.Close(); err != nil {
			logger.Error("error closing Redis client", zap.Error(err))
			return err
		}
		logger.Info("Redis connection closed")
		return nil
	})
}

// addDiagnosticsShutdownJob flushes buffered info records on shutdown
func addDiagnosticsShutdownJob(
	m *graceful.Manager,
	diagnostics *services.DiagnosticsService,
	logger *zap.Logger,
) {
	m.AddShutdownJob(func() error {
		logger.Info("shutting down diagnostics service")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := diagnostics.Shutdown(ctx); err != nil {
			logger.Error("error shutting down diagnostics service", zap.Error(err))
			return err
		}
		return nil
	})
}

// addLogCleanupJob adds periodic log event cleanup job
func addLogCleanupJob(
	m *graceful.Manager,
	cfg *config.Config,
	diagnostics *services.DiagnosticsService,
	logger *zap.Logger,
) {
	if cfg.LogRetention <= 0 {
		return
	}

	interval := cfg.LogCleanupInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Run cleanup immediately on startup
		cleanupLogEvents(ctx, diagnostics, cfg.LogRetention, logger)

		for {
			select {
			case <-ticker.C:
				cleanupLogEvents(ctx, diagnostics, cfg.LogRetention, logger)
			case <-ctx.Done():
				return nil
			}
		}
	})
}

func cleanupLogEvents(
	ctx context.Context,
	diagnostics *services.DiagnosticsService,
	retention time.Duration,
	logger *zap.Logger,
) {
	deleted, err := diagnostics.CleanupOldLogs(ctx, retention)
	switch {
	case err != nil:
		logger.Error("failed to cleanup old log events", zap.Error(err))
	case deleted > 0:
		logger.Info("cleaned up old log events", zap.Int64("deleted", deleted))
	}
}

// addMetricsGaugeUpdateJob adds periodic metrics gauge update job
func addMetricsGaugeUpdateJob(
	m *graceful.Manager,
	cfg *config.Config,
	db *store.Store,
	recorder core.Recorder,
	logger *zap.Logger,
) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.MetricsGaugeUpdateInterval)
		defer ticker.Stop()

		errLog := newErrorLogger(logger)

		// Update immediately on startup
		updateGaugeMetrics(ctx, db, recorder, errLog)

		for {
			select {
			case <-ticker.C:
				updateGaugeMetrics(ctx, db, recorder, errLog)
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// addDatabaseCloseJob closes the connection pool last
func addDatabaseCloseJob(m *graceful.Manager, db *store.Store, logger *zap.Logger) {
	m.AddShutdownJob(func() error {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", zap.Error(err))
			return err
		}
		logger.Info("database connection closed")
		return nil
	})
}

// errorLogger handles rate-limited error logging
type errorLogger struct {
	mu              sync.Mutex
	logger          *zap.Logger
	lastErrorTimes  map[string]time.Time
	rateLimitWindow time.Duration
	now             func() time.Time
}

// newErrorLogger creates a new error logger with rate limiting
func newErrorLogger(logger *zap.Logger) *errorLogger {
	return &errorLogger{
		logger:          logger,
		lastErrorTimes:  make(map[string]time.Time),
		rateLimitWindow: 5 * time.Minute, // at most once per 5 minutes per operation
		now:             time.Now,
	}
}

// logIfNeeded logs an error only if rate limit allows. It reports whether
// the error was written.
func (e *errorLogger) logIfNeeded(operation string, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	lastTime, exists := e.lastErrorTimes[operation]
	if exists && now.Sub(lastTime) < e.rateLimitWindow {
		return false
	}

	e.logger.Error("database query failed",
		zap.String("operation", operation),
		zap.Error(err),
		zap.Duration("suppressed_for", e.rateLimitWindow))
	e.lastErrorTimes[operation] = now
	return true
}

var gaugeSources = []models.ChannelSource{
	models.ChannelSourceFacebook,
	models.ChannelSourceZalo,
}

// updateGaugeMetrics refreshes the linked channel count per source
func updateGaugeMetrics(
	ctx context.Context,
	db *store.Store,
	recorder core.Recorder,
	errLog *errorLogger,
) {
	for _, source := range gaugeSources {
		operation := "count_channels_" + string(source)
		count, err := db.CountOmniChannels(ctx, source)
		if err != nil {
			recorder.RecordDatabaseQueryError(operation)
			errLog.logIfNeeded(operation, err)
			continue
		}
		recorder.SetLinkedChannels(string(source), int(count))
	}
}
