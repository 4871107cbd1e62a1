package core

import (
	"net/url"
	"strings"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/pkce"
)

// AuthorizationRequest describes one redirect to a provider consent screen.
// It is never persisted.
type AuthorizationRequest struct {
	Provider    string
	RedirectURI string
	State       string
	PKCE        *pkce.Pair // nil for providers without PKCE
}

// CallbackPayload is what the provider sent back to the callback endpoint.
type CallbackPayload struct {
	Code         string
	CodeVerifier string
	State        string

	// Set when the user declined consent or the provider rejected the request
	ProviderError            string
	ProviderErrorDescription string
}

// TokenPair is the final user/OA credential after every exchange step.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}

// ChannelAccount is one channel found by discovery.
type ChannelAccount struct {
	ExternalID  string
	Name        string
	Source      models.ChannelSource
	AvatarURL   string
	Category    string
	Verified    bool
	AccessToken string // channel-scoped token (Facebook page token), may be empty
}

// CallbackURL builds the redirect URI registered with the provider. For PKCE
// providers the verifier rides along so the callback can present it.
func CallbackURL(baseURL, provider, codeVerifier string) string {
	u := strings.TrimRight(baseURL, "/") + "/api/" + provider + "/auth/callback"
	if codeVerifier != "" {
		u += "?" + url.Values{"code_verifier": {codeVerifier}}.Encode()
	}
	return u
}
