package bootstrap

import (
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/config"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/services"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/store"

	"go.uber.org/zap"
)

// initializeServices creates all business services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	recorder core.Recorder,
	logger *zap.Logger,
) (
	*services.SettingsService,
	*services.ChannelService,
	*services.DiagnosticsService,
	*services.OnboardingService,
) {
	settingsService := services.NewSettingsService(db, logger)
	channelService := services.NewChannelService(db, recorder)
	diagnosticsService := services.NewDiagnosticsService(db, cfg.LogBufferSize, recorder, logger)
	onboardingService := services.NewOnboardingService(recorder, logger)

	return settingsService, channelService, diagnosticsService, onboardingService
}
