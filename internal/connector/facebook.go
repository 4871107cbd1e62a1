package connector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/pkce"

	retry "github.com/appleboy/go-httpretry"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	ProviderFacebook = "facebook"

	// Token used to bind a page to the app webhook
	SubscribeWithPageToken = "page"
	SubscribeWithUserToken = "user"

	defaultFacebookMaxPages = 10
	facebookAccountFields   = "id,name,access_token,category,tasks,picture{url}"
)

// FacebookOptions configures the Graph API endpoints and webhook fields
type FacebookOptions struct {
	GraphURL              string // e.g. https://graph.facebook.com
	DialogURL             string // e.g. https://www.facebook.com
	GraphVersion          string // e.g. v19.0
	WebhookFields         []string
	PageSubscriptionToken string // SubscribeWithPageToken or SubscribeWithUserToken
	MaxPages              int    // cap on /me/accounts pages followed
}

// Facebook connects Facebook Pages. Token exchange is two-tier: the code
// yields a short-lived user token that is traded for a long-lived one.
type Facebook struct {
	opts       FacebookOptions
	httpClient *http.Client
	api        *apiClient
	recorder   core.Recorder
	logger     *zap.Logger
}

var _ core.Connector = (*Facebook)(nil)

// NewFacebook creates the Facebook connector. httpClient is used by x/oauth2,
// retryClient for every other Graph call.
func NewFacebook(
	opts FacebookOptions,
	httpClient *http.Client,
	retryClient *retry.Client,
	recorder core.Recorder,
	logger *zap.Logger,
) *Facebook {
	opts.GraphURL = strings.TrimRight(opts.GraphURL, "/")
	opts.DialogURL = strings.TrimRight(opts.DialogURL, "/")
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultFacebookMaxPages
	}
	if opts.PageSubscriptionToken == "" {
		opts.PageSubscriptionToken = SubscribeWithPageToken
	}
	return &Facebook{
		opts:       opts,
		httpClient: httpClient,
		api: &apiClient{
			provider:   ProviderFacebook,
			retry:      retryClient,
			recorder:   recorder,
			parseError: parseGraphError,
		},
		recorder: recorder,
		logger:   logger.With(zap.String("provider", ProviderFacebook)),
	}
}

func (f *Facebook) Name() string                 { return ProviderFacebook }
func (f *Facebook) DisplayName() string          { return "Facebook" }
func (f *Facebook) Source() models.ChannelSource { return models.ChannelSourceFacebook }
func (f *Facebook) PKCEMethod() pkce.Method      { return "" }

func (f *Facebook) graphURL(path string) string {
	return f.opts.GraphURL + "/" + f.opts.GraphVersion + "/" + strings.TrimLeft(path, "/")
}

func (f *Facebook) oauthConfig(settings *models.IntegrationSetting, redirectURI string) *oauth2.Config {
	if redirectURI == "" {
		redirectURI = core.CallbackURL(settings.PublicBaseURL, ProviderFacebook, "")
	}
	return &oauth2.Config{
		ClientID:     settings.AppID,
		ClientSecret: settings.AppSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   f.opts.DialogURL + "/" + f.opts.GraphVersion + "/dialog/oauth",
			TokenURL:  f.graphURL("oauth/access_token"),
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: redirectURI,
		Scopes:      settings.Scopes,
	}
}

// AuthURL builds the Facebook Login dialog URL
func (f *Facebook) AuthURL(
	settings *models.IntegrationSetting,
	req core.AuthorizationRequest,
) (string, error) {
	if err := requireSettings(settings, false); err != nil {
		return "", err
	}
	return f.oauthConfig(settings, req.RedirectURI).AuthCodeURL(req.State), nil
}

// ExchangeToken trades the code for a short-lived token, then upgrades it.
// Only the long-lived token leaves this method.
func (f *Facebook) ExchangeToken(
	ctx context.Context,
	settings *models.IntegrationSetting,
	payload core.CallbackPayload,
) (*core.TokenPair, error) {
	if payload.Code == "" {
		return nil, core.ErrMissingCode
	}
	if err := requireSettings(settings, true); err != nil {
		return nil, err
	}

	short, err := f.exchangeCode(ctx, settings, payload.Code)
	if err != nil {
		return nil, err
	}
	return f.exchangeLongLived(ctx, settings, short)
}

func (f *Facebook) exchangeCode(
	ctx context.Context,
	settings *models.IntegrationSetting,
	code string,
) (string, error) {
	start := time.Now()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
	token, err := f.oauthConfig(settings, "").Exchange(ctx, code)
	f.recorder.RecordProviderCall(ProviderFacebook, "code_exchange", err == nil, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("short-lived token exchange: %w", oauthError(err, "code_exchange"))
	}
	return token.AccessToken, nil
}

type graphTokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   flexInt `json:"expires_in"`
}

func (f *Facebook) exchangeLongLived(
	ctx context.Context,
	settings *models.IntegrationSetting,
	shortToken string,
) (*core.TokenPair, error) {
	q := url.Values{
		"grant_type":        {"fb_exchange_token"},
		"client_id":         {settings.AppID},
		"client_secret":     {settings.AppSecret},
		"fb_exchange_token": {shortToken},
	}

	var resp graphTokenResponse
	if _, err := f.api.get(ctx, "long_lived_exchange",
		f.graphURL("oauth/access_token")+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("long-lived token exchange: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("long-lived token exchange: %w", core.ErrEmptyToken)
	}

	return &core.TokenPair{
		AccessToken: resp.AccessToken,
		ExpiresAt:   expiresAt(int64(resp.ExpiresIn)),
	}, nil
}

type graphAccount struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	AccessToken string   `json:"access_token"`
	Category    string   `json:"category"`
	Tasks       []string `json:"tasks"`
	Picture     struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

type graphAccountsResponse struct {
	Data   []graphAccount `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

// DiscoverChannels lists the pages the user granted, following Graph paging
// up to MaxPages requests.
func (f *Facebook) DiscoverChannels(
	ctx context.Context,
	_ *models.IntegrationSetting,
	token *core.TokenPair,
) ([]core.ChannelAccount, error) {
	if token == nil || token.AccessToken == "" {
		return nil, core.ErrEmptyToken
	}

	q := url.Values{
		"fields":       {facebookAccountFields},
		"limit":        {"100"},
		"access_token": {token.AccessToken},
	}
	next := f.graphURL("me/accounts") + "?" + q.Encode()

	var accounts []core.ChannelAccount
	seen := make(map[string]struct{})
	for page := 0; next != "" && page < f.opts.MaxPages; page++ {
		var resp graphAccountsResponse
		if _, err := f.api.get(ctx, "discover_pages", next, &resp); err != nil {
			return nil, fmt.Errorf("list pages: %w", err)
		}
		for _, a := range resp.Data {
			if a.ID == "" {
				continue
			}
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
			accounts = append(accounts, core.ChannelAccount{
				ExternalID:  a.ID,
				Name:        a.Name,
				Source:      models.ChannelSourceFacebook,
				AvatarURL:   a.Picture.Data.URL,
				Category:    a.Category,
				AccessToken: a.AccessToken,
			})
		}
		next = resp.Paging.Next
	}
	if next != "" {
		f.logger.Warn("page listing truncated",
			zap.Int("max_pages", f.opts.MaxPages),
			zap.Int("pages_found", len(accounts)))
	}

	return accounts, nil
}

type graphSuccessResponse struct {
	Success bool `json:"success"`
}

// SubscribeApp registers the app-level page webhook using an app access
// token from the client credentials grant. Without a webhook URL there is
// nothing to register.
func (f *Facebook) SubscribeApp(ctx context.Context, settings *models.IntegrationSetting) error {
	if settings.WebhookURL == "" {
		f.logger.Warn("webhook URL not configured, skipping app subscription")
		return nil
	}
	if err := requireSettings(settings, true); err != nil {
		return err
	}

	appToken, err := f.appAccessToken(ctx, settings)
	if err != nil {
		return err
	}

	form := url.Values{
		"object":         {"page"},
		"callback_url":   {settings.WebhookURL},
		"verify_token":   {settings.WebhookVerifyToken},
		"fields":         {strings.Join(f.opts.WebhookFields, ",")},
		"include_values": {"true"},
		"access_token":   {appToken},
	}

	var resp graphSuccessResponse
	if _, err := f.api.postForm(ctx, "subscribe_app",
		f.graphURL(url.PathEscape(settings.AppID)+"/subscriptions"), form.Encode(), &resp); err != nil {
		return fmt.Errorf("app webhook subscription: %w", err)
	}
	if !resp.Success {
		return &core.ProviderError{
			Provider:  ProviderFacebook,
			Operation: "subscribe_app",
			Message:   "subscription was not confirmed",
		}
	}
	return nil
}

func (f *Facebook) appAccessToken(
	ctx context.Context,
	settings *models.IntegrationSetting,
) (string, error) {
	cc := &clientcredentials.Config{
		ClientID:     settings.AppID,
		ClientSecret: settings.AppSecret,
		TokenURL:     f.graphURL("oauth/access_token"),
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	start := time.Now()
	token, err := cc.Token(context.WithValue(ctx, oauth2.HTTPClient, f.httpClient))
	f.recorder.RecordProviderCall(ProviderFacebook, "app_token", err == nil, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("app access token: %w", oauthError(err, "app_token"))
	}
	return token.AccessToken, nil
}

// SubscribeChannel binds one page to the app webhook
func (f *Facebook) SubscribeChannel(
	ctx context.Context,
	_ *models.IntegrationSetting,
	account core.ChannelAccount,
	token *core.TokenPair,
) error {
	if account.ExternalID == "" {
		return errors.New("page id is empty")
	}

	accessToken := account.AccessToken
	if f.opts.PageSubscriptionToken == SubscribeWithUserToken || accessToken == "" {
		if token == nil {
			return core.ErrEmptyToken
		}
		accessToken = token.AccessToken
	}

	form := url.Values{
		"subscribed_fields": {strings.Join(f.opts.WebhookFields, ",")},
		"access_token":      {accessToken},
	}

	var resp graphSuccessResponse
	if _, err := f.api.postForm(ctx, "subscribe_page",
		f.graphURL(url.PathEscape(account.ExternalID)+"/subscribed_apps"), form.Encode(), &resp); err != nil {
		return fmt.Errorf("page %s webhook subscription: %w", account.ExternalID, err)
	}
	if !resp.Success {
		return &core.ProviderError{
			Provider:  ProviderFacebook,
			Operation: "subscribe_page",
			Message:   "page subscription was not confirmed",
		}
	}
	return nil
}

type graphErrorEnvelope struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

// parseGraphError decodes the Graph API error envelope
func parseGraphError(status int, body []byte) *core.ProviderError {
	perr := &core.ProviderError{StatusCode: status, Body: preview(body)}
	var env graphErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		perr.Code = env.Error.Code
		perr.Type = env.Error.Type
		perr.Message = env.Error.Message
	}
	return perr
}

// oauthError maps an x/oauth2 token endpoint failure to a ProviderError so
// the Graph message survives into diagnostics
func oauthError(err error, operation string) error {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) || re.Response == nil {
		return err
	}
	perr := parseGraphError(re.Response.StatusCode, re.Body)
	perr.Provider = ProviderFacebook
	perr.Operation = operation
	if perr.Message == "" {
		perr.Message = re.ErrorDescription
	}
	return perr
}

// requireSettings rejects settings that would produce a malformed provider
// request
func requireSettings(settings *models.IntegrationSetting, needSecret bool) error {
	switch {
	case settings == nil:
		return core.ErrSettingsNotFound
	case settings.AppID == "":
		return fmt.Errorf("%w: app id is empty", core.ErrIncompleteSettings)
	case needSecret && settings.AppSecret == "":
		return fmt.Errorf("%w: app secret is empty", core.ErrIncompleteSettings)
	case settings.PublicBaseURL == "":
		return fmt.Errorf("%w: public base URL is empty", core.ErrIncompleteSettings)
	}
	if _, err := url.ParseRequestURI(settings.PublicBaseURL); err != nil {
		return fmt.Errorf("%w: public base URL: %v", core.ErrIncompleteSettings, err)
	}
	return nil
}
