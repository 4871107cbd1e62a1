package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/pkce"

	retry "github.com/appleboy/go-httpretry"
	"go.uber.org/zap"
)

const ProviderZalo = "zalo"

// ZaloOptions configures the Zalo OAuth and Official Account API endpoints
type ZaloOptions struct {
	OAuthURL   string // e.g. https://oauth.zaloapp.com
	OpenAPIURL string // e.g. https://openapi.zalo.me
}

// Zalo connects a Zalo Official Account. Token exchange is a single call
// bound to the PKCE verifier.
type Zalo struct {
	opts   ZaloOptions
	api    *apiClient
	logger *zap.Logger
}

var _ core.Connector = (*Zalo)(nil)

// NewZalo creates the Zalo connector
func NewZalo(
	opts ZaloOptions,
	retryClient *retry.Client,
	recorder core.Recorder,
	logger *zap.Logger,
) *Zalo {
	opts.OAuthURL = strings.TrimRight(opts.OAuthURL, "/")
	opts.OpenAPIURL = strings.TrimRight(opts.OpenAPIURL, "/")
	return &Zalo{
		opts: opts,
		api: &apiClient{
			provider:   ProviderZalo,
			retry:      retryClient,
			recorder:   recorder,
			parseError: parseZaloError,
		},
		logger: logger.With(zap.String("provider", ProviderZalo)),
	}
}

func (z *Zalo) Name() string                 { return ProviderZalo }
func (z *Zalo) DisplayName() string          { return "Zalo" }
func (z *Zalo) Source() models.ChannelSource { return models.ChannelSourceZalo }
func (z *Zalo) PKCEMethod() pkce.Method      { return pkce.MethodS256 }

// AuthURL builds the OA permission URL. The challenge is mandatory and Zalo
// only verifies S256 challenges, so no method parameter is sent.
func (z *Zalo) AuthURL(
	settings *models.IntegrationSetting,
	req core.AuthorizationRequest,
) (string, error) {
	if err := requireSettings(settings, false); err != nil {
		return "", err
	}
	if req.PKCE == nil || req.PKCE.Challenge == "" {
		return "", fmt.Errorf("zalo authorization requires a PKCE challenge: %w", pkce.ErrInvalidVerifier)
	}

	redirectURI := req.RedirectURI
	if redirectURI == "" {
		redirectURI = core.CallbackURL(settings.PublicBaseURL, ProviderZalo, req.PKCE.Verifier)
	}

	q := url.Values{
		"app_id":         {settings.AppID},
		"redirect_uri":   {redirectURI},
		"code_challenge": {req.PKCE.Challenge},
	}
	if req.State != "" {
		q.Set("state", req.State)
	}
	return z.opts.OAuthURL + "/v4/oa/permission?" + q.Encode(), nil
}

type zaloTokenResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    flexInt `json:"expires_in"`

	// error envelope, returned with status 200
	Error            flexInt `json:"error"`
	ErrorName        string  `json:"error_name"`
	ErrorReason      string  `json:"error_reason"`
	ErrorDescription string  `json:"error_description"`
	Message          string  `json:"message"`
}

// ExchangeToken trades code and verifier for the OA access token
func (z *Zalo) ExchangeToken(
	ctx context.Context,
	settings *models.IntegrationSetting,
	payload core.CallbackPayload,
) (*core.TokenPair, error) {
	if payload.Code == "" {
		return nil, core.ErrMissingCode
	}
	if payload.CodeVerifier == "" {
		return nil, core.ErrMissingVerifier
	}
	if err := requireSettings(settings, true); err != nil {
		return nil, err
	}

	form := url.Values{
		"code":          {payload.Code},
		"app_id":        {settings.AppID},
		"grant_type":    {"authorization_code"},
		"code_verifier": {payload.CodeVerifier},
	}

	var resp zaloTokenResponse
	body, err := z.api.call("token_exchange", &resp, func() (*http.Response, error) {
		return z.api.retry.Post(ctx, z.opts.OAuthURL+"/v4/oa/access_token",
			retry.WithBody(contentTypeForm, bytes.NewBufferString(form.Encode())),
			retry.WithHeader("secret_key", settings.AppSecret),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	if resp.Error != 0 || resp.AccessToken == "" {
		perr := &core.ProviderError{
			Provider:   ProviderZalo,
			Operation:  "token_exchange",
			StatusCode: http.StatusOK,
			Code:       int(resp.Error),
			Type:       resp.ErrorName,
			Message:    firstNonEmpty(resp.ErrorDescription, resp.ErrorReason, resp.Message),
			Body:       preview(body),
		}
		if resp.Error == 0 {
			return nil, fmt.Errorf("token exchange: %w: %w", core.ErrEmptyToken, perr)
		}
		return nil, fmt.Errorf("token exchange: %w", perr)
	}

	return &core.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiresAt(int64(resp.ExpiresIn)),
	}, nil
}

type zaloOAResponse struct {
	Error   flexInt `json:"error"`
	Message string  `json:"message"`
	Data    struct {
		OAID        flexString `json:"oa_id"`
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Avatar      string     `json:"avatar"`
		IsVerified  bool       `json:"is_verified"`
		CateName    string     `json:"cate_name"`
	} `json:"data"`
}

// DiscoverChannels reads the single OA the token belongs to. An empty
// profile yields no channels.
func (z *Zalo) DiscoverChannels(
	ctx context.Context,
	_ *models.IntegrationSetting,
	token *core.TokenPair,
) ([]core.ChannelAccount, error) {
	if token == nil || token.AccessToken == "" {
		return nil, core.ErrEmptyToken
	}

	var resp zaloOAResponse
	body, err := z.api.call("discover_oa", &resp, func() (*http.Response, error) {
		return z.api.retry.Get(ctx, z.opts.OpenAPIURL+"/v2.0/oa/getoa",
			retry.WithHeader("access_token", token.AccessToken),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("get OA profile: %w", err)
	}
	if resp.Error != 0 {
		return nil, fmt.Errorf("get OA profile: %w", &core.ProviderError{
			Provider:   ProviderZalo,
			Operation:  "discover_oa",
			StatusCode: http.StatusOK,
			Code:       int(resp.Error),
			Message:    resp.Message,
			Body:       preview(body),
		})
	}
	if resp.Data.OAID == "" {
		return nil, nil
	}

	return []core.ChannelAccount{{
		ExternalID: string(resp.Data.OAID),
		Name:       resp.Data.Name,
		Source:     models.ChannelSourceZalo,
		AvatarURL:  resp.Data.Avatar,
		Category:   resp.Data.CateName,
		Verified:   resp.Data.IsVerified,
	}}, nil
}

// SubscribeApp is a no-op: Zalo webhooks are configured in the developer
// console, not through the API.
func (z *Zalo) SubscribeApp(_ context.Context, settings *models.IntegrationSetting) error {
	if settings == nil {
		return core.ErrSettingsNotFound
	}
	if settings.WebhookURL == "" {
		z.logger.Debug("no webhook URL configured for Zalo app")
	}
	return nil
}

// SubscribeChannel is a no-op for the same reason; the OA receives events
// for the app once it has granted permission.
func (z *Zalo) SubscribeChannel(
	_ context.Context,
	_ *models.IntegrationSetting,
	account core.ChannelAccount,
	_ *core.TokenPair,
) error {
	if account.ExternalID == "" {
		return errors.New("OA id is empty")
	}
	return nil
}

type zaloErrorEnvelope struct {
	Error            flexInt `json:"error"`
	ErrorName        string  `json:"error_name"`
	ErrorDescription string  `json:"error_description"`
	Message          string  `json:"message"`
}

func parseZaloError(status int, body []byte) *core.ProviderError {
	perr := &core.ProviderError{StatusCode: status, Body: preview(body)}
	var env zaloErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		perr.Code = int(env.Error)
		perr.Type = env.ErrorName
		perr.Message = firstNonEmpty(env.ErrorDescription, env.Message)
	}
	return perr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
