package core

import (
	"context"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/pkce"
)

// TokenExchanger turns an authorization code into the durable user token.
// Two-tier providers perform both exchanges and return only the final pair.
type TokenExchanger interface {
	ExchangeToken(
		ctx context.Context,
		settings *models.IntegrationSetting,
		payload CallbackPayload,
	) (*TokenPair, error)
}

// ChannelDiscoverer lists the channels the token grants access to.
type ChannelDiscoverer interface {
	DiscoverChannels(
		ctx context.Context,
		settings *models.IntegrationSetting,
		token *TokenPair,
	) ([]ChannelAccount, error)
}

// WebhookSubscriber registers the app webhook and binds channels to it.
// SubscribeApp runs once per flow before any SubscribeChannel call.
type WebhookSubscriber interface {
	SubscribeApp(ctx context.Context, settings *models.IntegrationSetting) error
	SubscribeChannel(
		ctx context.Context,
		settings *models.IntegrationSetting,
		account ChannelAccount,
		token *TokenPair,
	) error
}

// Connector is one messaging provider wired into the onboarding flow.
type Connector interface {
	// Name is the lowercase route segment, e.g. "facebook"
	Name() string
	// DisplayName is used in diagnostics context labels, e.g. "Facebook"
	DisplayName() string
	Source() models.ChannelSource
	// PKCEMethod is empty for providers that do not use PKCE
	PKCEMethod() pkce.Method
	AuthURL(settings *models.IntegrationSetting, req AuthorizationRequest) (string, error)

	TokenExchanger
	ChannelDiscoverer
	WebhookSubscriber
}

// UsesPKCE reports whether the connector requires a code verifier
func UsesPKCE(c Connector) bool {
	return c.PKCEMethod() != ""
}
