package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/store"

	"go.uber.org/zap"
)

var _ core.SettingsProvider = (*SettingsService)(nil)

// SettingsService reads integration settings from the database on every
// call. Nothing is cached so operator edits apply to the next request.
type SettingsService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(s *store.Store, logger *zap.Logger) *SettingsService {
	return &SettingsService{store: s, logger: logger.Named("settings")}
}

// GetIntegrationSetting loads the settings row for provider
func (s *SettingsService) GetIntegrationSetting(
	ctx context.Context,
	provider string,
) (*models.IntegrationSetting, error) {
	setting, err := s.store.GetIntegrationSetting(ctx, provider)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", core.ErrSettingsNotFound, provider)
		}
		return nil, fmt.Errorf("failed to load %s settings: %w", provider, err)
	}
	return setting, nil
}

// Seed inserts settings for providers that have no row yet. Existing rows
// are operator-owned and left as they are.
func (s *SettingsService) Seed(ctx context.Context, settings ...*models.IntegrationSetting) error {
	for _, setting := range settings {
		if setting.AppID == "" {
			s.logger.Warn("no app id configured, skipping settings seed",
				zap.String("provider", setting.Provider))
			continue
		}
		created, err := s.store.SeedIntegrationSetting(ctx, setting)
		if err != nil {
			return fmt.Errorf("failed to seed %s settings: %w", setting.Provider, err)
		}
		if created {
			s.logger.Info("seeded integration settings", zap.String("provider", setting.Provider))
		}
	}
	return nil
}
