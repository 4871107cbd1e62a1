package bootstrap

import (
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/config"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/connector"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/handlers"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/services"

	"go.uber.org/zap"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	connector *handlers.ConnectorHandler
	webhook   *handlers.WebhookHandler
	logs      *handlers.LogHandler
	channels  *handlers.ChannelHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	cfg *config.Config,
	registry *connector.Registry,
	settingsService *services.SettingsService,
	channelService *services.ChannelService,
	diagnosticsService *services.DiagnosticsService,
	onboardingService *services.OnboardingService,
	recorder core.Recorder,
	logger *zap.Logger,
) handlerSet {
	return handlerSet{
		connector: handlers.NewConnectorHandler(
			registry,
			settingsService,
			channelService,
			diagnosticsService,
			onboardingService,
			recorder,
			logger,
			handlers.ConnectorHandlerConfig{
				FrontendURL:  cfg.FrontendURL,
				ErrorPageURL: cfg.ErrorPageURL,
				Timeout:      cfg.ConnectorTimeout,
			},
		),
		webhook:  handlers.NewWebhookHandler(registry, settingsService, logger),
		logs:     handlers.NewLogHandler(diagnosticsService),
		channels: handlers.NewChannelHandler(channelService),
	}
}
