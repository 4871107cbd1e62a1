package bootstrap

import (
	"context"
	"net/http"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/config"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/connector"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/services"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/store"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config
	Logger *zap.Logger

	// Core infrastructure
	DB                   *store.Store
	MetricsRecorder      core.Recorder
	RateLimitRedisClient *redis.Client

	// Connectors
	Registry *connector.Registry

	// Services
	SettingsService    *services.SettingsService
	ChannelService     *services.ChannelService
	DiagnosticsService *services.DiagnosticsService
	OnboardingService  *services.OnboardingService

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	// Phase 1: Validate configuration
	if err := validateAllConfiguration(cfg); err != nil {
		return err
	}

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(ctx); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	if err := app.initializeBusinessLayer(ctx); err != nil {
		return err
	}

	// Phase 4: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		return err
	}

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database, metrics and Redis
func (app *Application) initializeInfrastructure(ctx context.Context) error {
	var err error

	// Database
	app.DB, err = initializeDatabase(ctx, app.Config)
	if err != nil {
		return err
	}

	// Metrics
	app.MetricsRecorder = initializeMetrics(app.Config, app.Logger)

	// Redis (for rate limiting)
	app.RateLimitRedisClient, err = initializeRateLimitRedisClient(ctx, app.Config, app.Logger)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up connectors and services
func (app *Application) initializeBusinessLayer(ctx context.Context) error {
	var err error

	app.Registry, err = initializeConnectors(app.Config, app.MetricsRecorder, app.Logger)
	if err != nil {
		return err
	}

	app.SettingsService,
		app.ChannelService,
		app.DiagnosticsService,
		app.OnboardingService = initializeServices(
		app.Config,
		app.DB,
		app.MetricsRecorder,
		app.Logger,
	)

	return seedIntegrationSettings(ctx, app.Config, app.SettingsService)
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() error {
	app.HandlerSet = initializeHandlers(
		app.Config,
		app.Registry,
		app.SettingsService,
		app.ChannelService,
		app.DiagnosticsService,
		app.OnboardingService,
		app.MetricsRecorder,
		app.Logger,
	)

	var err error
	app.Router, err = setupRouter(
		app.Config,
		app.DB,
		app.HandlerSet,
		app.MetricsRecorder,
		app.RateLimitRedisClient,
		app.Logger,
	)
	if err != nil {
		return err
	}

	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	// Add jobs
	addServerRunningJob(m, app.Server, app.Logger)
	addServerShutdownJob(m, app.Server, app.Logger)
	addRedisClientShutdownJob(m, app.RateLimitRedisClient, app.Logger)
	addDiagnosticsShutdownJob(m, app.DiagnosticsService, app.Logger)
	addLogCleanupJob(m, app.Config, app.DiagnosticsService, app.Logger)
	addMetricsGaugeUpdateJob(m, app.Config, app.DB, app.MetricsRecorder, app.Logger)
	addDatabaseCloseJob(m, app.DB, app.Logger)

	// Wait for graceful shutdown
	<-m.Done()
}
