package store

import (
	"context"
	"fmt"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// channelUpdateColumns are overwritten when a channel is onboarded again.
// created_by and created_at keep their first values.
var channelUpdateColumns = []string{
	"name",
	"enabled",
	"access_token",
	"refresh_token",
	"token_expires_at",
	"channel_access_token",
	"avatar_url",
	"category",
	"verified",
	"updated_by",
	"updated_at",
}

// UpsertOmniChannel inserts the channel or updates the row already keyed by
// (external_id, source) in a single transaction, then returns the stored row.
func (s *Store) UpsertOmniChannel(
	ctx context.Context,
	ch *models.OmniChannel,
) (*models.OmniChannel, error) {
	if ch.ExternalID == "" || ch.Source == "" {
		return nil, ErrInvalidChannel
	}
	if ch.ID == "" {
		ch.ID = uuid.New().String()
	}
	now := time.Now()
	if ch.CreatedAt.IsZero() {
		ch.CreatedAt = now
	}
	ch.UpdatedAt = now

	var stored models.OmniChannel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "external_id"},
				{Name: "source"},
			},
			DoUpdates: clause.AssignmentColumns(channelUpdateColumns),
		}).Create(ch).Error; err != nil {
			return err
		}

		return tx.Where("external_id = ? AND source = ?", ch.ExternalID, ch.Source).
			First(&stored).
			Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert channel %s/%s: %w", ch.Source, ch.ExternalID, err)
	}

	return &stored, nil
}

// GetOmniChannel finds a channel by its external identity
func (s *Store) GetOmniChannel(
	ctx context.Context,
	externalID string,
	source models.ChannelSource,
) (*models.OmniChannel, error) {
	var ch models.OmniChannel
	if err := s.db.WithContext(ctx).
		Where("external_id = ? AND source = ?", externalID, source).
		First(&ch).Error; err != nil {
		return nil, notFound(err)
	}
	return &ch, nil
}

// CountOmniChannels returns the number of channels for a source, or all
// channels when source is empty
func (s *Store) CountOmniChannels(ctx context.Context, source models.ChannelSource) (int64, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&models.OmniChannel{})
	if source != "" {
		query = query.Where("source = ?", source)
	}
	err := query.Count(&count).Error
	return count, err
}

// ListOmniChannelsPaginated returns channels ordered by most recently updated
func (s *Store) ListOmniChannelsPaginated(
	ctx context.Context,
	params PaginationParams,
	source models.ChannelSource,
) ([]models.OmniChannel, PaginationResult, error) {
	query := s.db.WithContext(ctx).Model(&models.OmniChannel{})
	if source != "" {
		query = query.Where("source = ?", source)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR external_id LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var channels []models.OmniChannel
	if err := query.
		Order("updated_at DESC").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&channels).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	return channels, CalculatePagination(total, params.Page, params.PageSize), nil
}
