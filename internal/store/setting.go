package store

import (
	"context"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// GetIntegrationSetting loads the settings row for a provider
func (s *Store) GetIntegrationSetting(
	ctx context.Context,
	provider string,
) (*models.IntegrationSetting, error) {
	var setting models.IntegrationSetting
	if err := s.db.WithContext(ctx).
		Where("provider = ?", provider).
		First(&setting).Error; err != nil {
		return nil, notFound(err)
	}
	return &setting, nil
}

// SeedIntegrationSetting inserts the settings row for a provider unless one
// already exists. Rows edited by operators are left untouched. Reports whether
// a row was created.
func (s *Store) SeedIntegrationSetting(
	ctx context.Context,
	setting *models.IntegrationSetting,
) (bool, error) {
	if setting.ID == "" {
		setting.ID = uuid.New().String()
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}},
			DoNothing: true,
		}).
		Create(setting)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
