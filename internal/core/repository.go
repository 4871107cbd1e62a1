package core

import (
	"context"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
)

// SettingsProvider loads provider settings. Implementations must not cache
// across requests.
type SettingsProvider interface {
	GetIntegrationSetting(ctx context.Context, provider string) (*models.IntegrationSetting, error)
}

// ChannelRepository persists discovered channels. A handle is bound to the
// acting user of one request.
type ChannelRepository interface {
	UpsertChannel(
		ctx context.Context,
		account ChannelAccount,
		token *TokenPair,
		enabled bool,
	) (*models.OmniChannel, error)
}
