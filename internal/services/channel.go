package services

import (
	"context"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/store"
)

// ChannelService owns the omnichannel registry
type ChannelService struct {
	store    *store.Store
	recorder core.Recorder
}

// NewChannelService creates a new channel service
func NewChannelService(s *store.Store, recorder core.Recorder) *ChannelService {
	return &ChannelService{store: s, recorder: recorder}
}

// ForRequest returns a repository handle bound to the acting user of one
// request. Handles are cheap and must not be shared across requests.
func (s *ChannelService) ForRequest(userID string) core.ChannelRepository {
	return &channelRepository{store: s.store, recorder: s.recorder, userID: userID}
}

// ListChannels returns channels with pagination, optionally for one source
func (s *ChannelService) ListChannels(
	ctx context.Context,
	params store.PaginationParams,
	source models.ChannelSource,
) ([]models.OmniChannel, store.PaginationResult, error) {
	return s.store.ListOmniChannelsPaginated(ctx, params, source)
}

// GetChannel returns one channel by its external identity
func (s *ChannelService) GetChannel(
	ctx context.Context,
	externalID string,
	source models.ChannelSource,
) (*models.OmniChannel, error) {
	return s.store.GetOmniChannel(ctx, externalID, source)
}

type channelRepository struct {
	store    *store.Store
	recorder core.Recorder
	userID   string
}

// UpsertChannel stores the account with the final token. The user/OA token
// and the channel-scoped token are kept in separate columns.
func (r *channelRepository) UpsertChannel(
	ctx context.Context,
	account core.ChannelAccount,
	token *core.TokenPair,
	enabled bool,
) (*models.OmniChannel, error) {
	ch := &models.OmniChannel{
		ExternalID:         account.ExternalID,
		Source:             account.Source,
		Name:               account.Name,
		Enabled:            enabled,
		ChannelAccessToken: account.AccessToken,
		AvatarURL:          account.AvatarURL,
		Category:           account.Category,
		Verified:           account.Verified,
		CreatedBy:          r.userID,
		UpdatedBy:          r.userID,
	}
	if token != nil {
		ch.AccessToken = token.AccessToken
		ch.RefreshToken = token.RefreshToken
		ch.TokenExpiresAt = token.ExpiresAt
	}

	stored, err := r.store.UpsertOmniChannel(ctx, ch)
	if err != nil {
		r.recorder.RecordDatabaseQueryError("upsert_channel")
		return nil, err
	}
	return stored, nil
}
