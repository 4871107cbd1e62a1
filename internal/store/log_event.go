package store

import (
	"context"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
)

// LogEventFilters contains filter criteria for querying diagnostics records
type LogEventFilters struct {
	Level     models.LogLevel `json:"level,omitempty"`
	Kind      string          `json:"kind,omitempty"`
	Provider  string          `json:"provider,omitempty"`
	Context   string          `json:"context,omitempty"`
	UserID    string          `json:"user_id,omitempty"`
	StartTime time.Time       `json:"start_time,omitzero"`
	EndTime   time.Time       `json:"end_time,omitzero"`
}

// CreateLogEvent writes a single diagnostics record
func (s *Store) CreateLogEvent(ctx context.Context, event *models.LogEvent) error {
	return s.db.WithContext(ctx).Create(event).Error
}

// CreateLogEventBatch writes several diagnostics records in one round trip
func (s *Store) CreateLogEventBatch(ctx context.Context, events []*models.LogEvent) error {
	if len(events) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(events, 100).Error
}

// GetLogEvent loads a diagnostics record by ID
func (s *Store) GetLogEvent(ctx context.Context, id string) (*models.LogEvent, error) {
	var event models.LogEvent
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, notFound(err)
	}
	return &event, nil
}

// ListLogEventsPaginated returns diagnostics records, newest first
func (s *Store) ListLogEventsPaginated(
	ctx context.Context,
	params PaginationParams,
	filters LogEventFilters,
) ([]models.LogEvent, PaginationResult, error) {
	query := s.db.WithContext(ctx).Model(&models.LogEvent{})

	if filters.Level != "" {
		query = query.Where("level = ?", filters.Level)
	}
	if filters.Kind != "" {
		query = query.Where("kind = ?", filters.Kind)
	}
	if filters.Provider != "" {
		query = query.Where("provider = ?", filters.Provider)
	}
	if filters.Context != "" {
		query = query.Where("context = ?", filters.Context)
	}
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if !filters.StartTime.IsZero() {
		query = query.Where("created_at >= ?", filters.StartTime)
	}
	if !filters.EndTime.IsZero() {
		query = query.Where("created_at <= ?", filters.EndTime)
	}
	if params.Search != "" {
		query = query.Where("message LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var events []models.LogEvent
	if err := query.
		Order("created_at DESC").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&events).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	return events, CalculatePagination(total, params.Page, params.PageSize), nil
}

// CountLogEvents counts diagnostics records by level for one context label
func (s *Store) CountLogEvents(
	ctx context.Context,
	level models.LogLevel,
	contextLabel string,
) (int64, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&models.LogEvent{}).Where("level = ?", level)
	if contextLabel != "" {
		query = query.Where("context = ?", contextLabel)
	}
	err := query.Count(&count).Error
	return count, err
}

// DeleteOldLogEvents removes records created before the cutoff
func (s *Store) DeleteOldLogEvents(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("created_at < ?", before).Delete(&models.LogEvent{})
	return result.RowsAffected, result.Error
}
