package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/client"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/connector"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/connector/connectortest"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/metrics"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/middleware"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/pkce"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/services"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testBaseURL     = "https://chat.example.com"
	testFrontendURL = "https://app.example.com/channels"
	testErrorURL    = "https://app.example.com/error"
	testUserID      = "user-1"
)

type testEnv struct {
	router      *gin.Engine
	store       *store.Store
	graph       *connectortest.Graph
	zalo        *connectortest.Zalo
	settings    *services.SettingsService
	diagnostics *services.DiagnosticsService
}

type envOption func(*envOptions)

type envOptions struct {
	seed      bool
	errorPage string
}

func withoutSettings() envOption {
	return func(o *envOptions) { o.seed = false }
}

func withErrorPage(u string) envOption {
	return func(o *envOptions) { o.errorPage = u }
}

// newTestEnv wires real services against fake providers and an isolated
// in-memory SQLite database
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	o := envOptions{seed: true, errorPage: testErrorURL}
	for _, opt := range opts {
		opt(&o)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	s, err := store.New(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	recorder := metrics.NewNoopMetrics()
	logger := zap.NewNop()

	g := connectortest.NewGraph(t)
	z := connectortest.NewZalo(t)

	fbRetry, err := client.CreateRetryClient(g.Client(), 0, 10*time.Millisecond, 10*time.Millisecond)
	require.NoError(t, err)
	zaloRetry, err := client.CreateRetryClient(z.Client(), 0, 10*time.Millisecond, 10*time.Millisecond)
	require.NoError(t, err)

	registry := connector.NewRegistry(
		connector.NewFacebook(connector.FacebookOptions{
			GraphURL:      g.URL,
			DialogURL:     "https://www.facebook.com",
			GraphVersion:  connectortest.GraphVersion,
			WebhookFields: []string{"messages"},
		}, g.Client(), fbRetry, recorder, logger),
		connector.NewZalo(connector.ZaloOptions{
			OAuthURL:   z.URL,
			OpenAPIURL: z.URL,
		}, zaloRetry, recorder, logger),
	)

	settings := services.NewSettingsService(s, logger)
	if o.seed {
		require.NoError(t, settings.Seed(context.Background(), g.Settings(testBaseURL), z.Settings(testBaseURL)))
	}

	diagnostics := services.NewDiagnosticsService(s, 100, recorder, logger)
	t.Cleanup(func() { _ = diagnostics.Shutdown(context.Background()) })

	channels := services.NewChannelService(s, recorder)

	h := NewConnectorHandler(
		registry,
		settings,
		channels,
		diagnostics,
		services.NewOnboardingService(recorder, logger),
		recorder,
		logger,
		ConnectorHandlerConfig{
			FrontendURL:  testFrontendURL,
			ErrorPageURL: o.errorPage,
			Timeout:      5 * time.Second,
		},
	)
	webhook := NewWebhookHandler(registry, settings, logger)
	logs := NewLogHandler(diagnostics)
	channelHandler := NewChannelHandler(channels)

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-User") != "" {
			sessions.Default(c).Set("user_id", c.GetHeader("X-Test-User"))
		}
		c.Next()
	})
	r.Use(middleware.SessionUser("user_id"))

	r.GET("/api/logs", logs.ListLogEvents)
	r.GET("/api/logs/:id", logs.GetLogEvent)
	r.GET("/api/channels", channelHandler.ListChannels)
	r.GET("/api/channels/:source/:external_id", channelHandler.GetChannel)
	r.GET("/api/:provider/auth", h.Authorize)
	r.GET("/api/:provider/auth/callback", h.Callback)
	r.GET("/api/:provider/webhook", webhook.Verify)

	return &testEnv{
		router:      r,
		store:       s,
		graph:       g,
		zalo:        z,
		settings:    settings,
		diagnostics: diagnostics,
	}
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, target, nil)
	require.NoError(t, err)
	req.Header.Set("X-Test-User", testUserID)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// location parses the redirect target of a 302 response
func location(t *testing.T, w *httptest.ResponseRecorder) *url.URL {
	t.Helper()
	require.Equal(t, http.StatusFound, w.Code)
	u, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	return u
}

func (e *testEnv) countErrors(t *testing.T, contextLabel string) int64 {
	t.Helper()
	n, err := e.store.CountLogEvents(context.Background(), models.LogLevelError, contextLabel)
	require.NoError(t, err)
	return n
}

func (e *testEnv) countChannels(t *testing.T) int64 {
	t.Helper()
	n, err := e.store.CountOmniChannels(context.Background(), "")
	require.NoError(t, err)
	return n
}

func TestCallback_FacebookSuccess(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/api/facebook/auth/callback?code=abc123")

	u := location(t, w)
	assert.Equal(t, testFrontendURL, u.String())
	assert.Empty(t, u.Query().Get("logId"))

	ch, err := env.store.GetOmniChannel(context.Background(), "page_1", models.ChannelSourceFacebook)
	require.NoError(t, err)
	assert.Equal(t, "page_1", ch.ExternalID)
	assert.Equal(t, models.ChannelSourceFacebook, ch.Source)
	assert.Equal(t, "Acme Page", ch.Name)
	assert.Equal(t, "LONG", ch.AccessToken)
	assert.Equal(t, "PAGE_TOKEN", ch.ChannelAccessToken)
	assert.True(t, ch.Enabled)
	assert.Equal(t, testUserID, ch.CreatedBy)

	assert.Equal(t, "abc123", env.graph.Form("code_exchange")["code"])
	assert.Equal(t, "SHORT", env.graph.Form("long_lived_exchange")["fb_exchange_token"])
	assert.Equal(t, 1, env.graph.Count("subscribe_app"))
	assert.Equal(t, 1, env.graph.Count("subscribe_page:page_1"))

	assert.Zero(t, env.countErrors(t, ""))

	// token, discovery and webhook milestones
	require.Eventually(t, func() bool {
		env.diagnostics.Flush()
		n, err := env.store.CountLogEvents(context.Background(), models.LogLevelInfo, "handleFacebookCallback")
		return err == nil && n == 3
	}, 2*time.Second, 20*time.Millisecond)
}

func TestCallback_FacebookRepeatUpdatesInPlace(t *testing.T) {
	env := newTestEnv(t)

	location(t, env.get(t, "/api/facebook/auth/callback?code=abc123"))
	env.graph.LongToken = "LONG_2"
	env.graph.Pages[0].Name = "Acme Page Renamed"
	env.graph.Pages[0].AccessToken = "PAGE_TOKEN_2"
	location(t, env.get(t, "/api/facebook/auth/callback?code=abc123"))

	assert.Equal(t, int64(1), env.countChannels(t))
	ch, err := env.store.GetOmniChannel(context.Background(), "page_1", models.ChannelSourceFacebook)
	require.NoError(t, err)
	assert.Equal(t, "LONG_2", ch.AccessToken)
	assert.Equal(t, "Acme Page Renamed", ch.Name)
}

func TestCallback_ZaloMissingVerifier(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/api/zalo/auth/callback?code=zalo-code")

	u := location(t, w)
	assert.Equal(t, "/error", u.Path)
	logID := u.Query().Get("logId")
	require.NotEmpty(t, logID)

	assert.Equal(t, int64(1), env.countErrors(t, "handleZaloCallback"))
	assert.Equal(t, int64(1), env.countErrors(t, ""))

	event, err := env.store.GetLogEvent(context.Background(), logID)
	require.NoError(t, err)
	assert.Equal(t, models.LogLevelError, event.Level)
	assert.Equal(t, "MissingAuthorizationCode", event.Kind)
	assert.Equal(t, "handleZaloCallback", event.Context)
	require.NotNil(t, event.UserID)
	assert.Equal(t, testUserID, *event.UserID)

	assert.Zero(t, env.countChannels(t))
	assert.Empty(t, env.zalo.Calls())
}

func TestCallback_ZaloSuccess(t *testing.T) {
	env := newTestEnv(t)
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"

	w := env.get(t, "/api/zalo/auth/callback?code=zalo-code&code_verifier="+verifier)

	assert.Equal(t, testFrontendURL, location(t, w).String())
	assert.Equal(t, verifier, env.zalo.LastVerifier())

	ch, err := env.store.GetOmniChannel(context.Background(), "2491302944280861639", models.ChannelSourceZalo)
	require.NoError(t, err)
	assert.Equal(t, "Acme OA", ch.Name)
	assert.Equal(t, "ZALO_ACCESS", ch.AccessToken)
	assert.True(t, ch.Enabled)
	assert.Zero(t, env.countErrors(t, ""))
}

func TestCallback_MissingCode(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		context string
	}{
		{"facebook", "/api/facebook/auth/callback", "handleFacebookCallback"},
		{"facebook empty code", "/api/facebook/auth/callback?code=", "handleFacebookCallback"},
		{"zalo", "/api/zalo/auth/callback?code_verifier=abc", "handleZaloCallback"},
		{
			"provider denial",
			"/api/facebook/auth/callback?error=access_denied&error_description=Permissions+error",
			"handleFacebookCallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			u := location(t, env.get(t, tt.target))
			logID := u.Query().Get("logId")
			require.NotEmpty(t, logID)

			event, err := env.store.GetLogEvent(context.Background(), logID)
			require.NoError(t, err)
			assert.Equal(t, "MissingAuthorizationCode", event.Kind)
			assert.Equal(t, tt.context, event.Context)

			assert.Equal(t, int64(1), env.countErrors(t, ""))
			assert.Empty(t, env.graph.Calls())
			assert.Empty(t, env.zalo.Calls())
			assert.Zero(t, env.countChannels(t))
		})
	}
}

func TestCallback_FacebookLongLivedExchangeFails(t *testing.T) {
	env := newTestEnv(t)
	body := `{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`
	env.graph.Fail("long_lived_exchange", connectortest.Failure{Status: http.StatusBadRequest, Body: body})

	u := location(t, env.get(t, "/api/facebook/auth/callback?code=abc123"))
	logID := u.Query().Get("logId")
	require.NotEmpty(t, logID)

	event, err := env.store.GetLogEvent(context.Background(), logID)
	require.NoError(t, err)
	assert.Equal(t, "TokenExchangeError", event.Kind)
	assert.Equal(t, "handleFacebookCallback", event.Context)
	require.NotNil(t, event.Response)
	assert.Equal(t, body, *event.Response)

	// the short token never reaches discovery
	assert.Zero(t, env.graph.Count("me_accounts"))
	assert.Zero(t, env.countChannels(t))
	assert.Equal(t, int64(1), env.countErrors(t, ""))
}

func TestCallback_TransportFailureKeepsCredentialsOutOfRecord(t *testing.T) {
	tests := []struct {
		name string
		op   string
		kind string
	}{
		{name: "long-lived exchange", op: "long_lived_exchange", kind: "TokenExchangeError"},
		{name: "discovery", op: "me_accounts", kind: "DiscoveryError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, withoutSettings())
			env.graph.AppSecret = "TOP_SECRET_APP_SECRET"
			env.graph.ShortToken = "SHORT_USER_TOKEN"
			env.graph.LongToken = "LONG_USER_TOKEN"
			require.NoError(t, env.settings.Seed(context.Background(), env.graph.Settings(testBaseURL)))
			env.graph.Fail(tt.op, connectortest.Failure{Drop: true})

			u := location(t, env.get(t, "/api/facebook/auth/callback?code=abc123"))
			logID := u.Query().Get("logId")
			require.NotEmpty(t, logID)

			event, err := env.store.GetLogEvent(context.Background(), logID)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, event.Kind)

			raw, err := json.Marshal(event)
			require.NoError(t, err)
			for _, secret := range []string{"TOP_SECRET_APP_SECRET", "SHORT_USER_TOKEN", "LONG_USER_TOKEN"} {
				assert.NotContains(t, string(raw), secret)
			}
			assert.Equal(t, int64(1), env.countErrors(t, "handleFacebookCallback"))
		})
	}
}

func TestCallback_WebhookFailureLeavesRegistryUntouched(t *testing.T) {
	env := newTestEnv(t)
	env.graph.Fail("subscribe_page:page_1", connectortest.Failure{
		Status: http.StatusForbidden,
		Body:   `{"error":{"message":"Requires pages_manage_metadata permission","type":"OAuthException","code":200}}`,
	})

	u := location(t, env.get(t, "/api/facebook/auth/callback?code=abc123"))
	event, err := env.store.GetLogEvent(context.Background(), u.Query().Get("logId"))
	require.NoError(t, err)
	assert.Equal(t, "WebhookSubscriptionError", event.Kind)
	assert.Zero(t, env.countChannels(t))
}

func TestCallback_SecretsAreMaskedInRecord(t *testing.T) {
	env := newTestEnv(t)
	env.zalo.Fail("token_exchange", connectortest.Failure{
		Status: http.StatusBadRequest,
		Body:   `{"error":-14019,"message":"Invalid code"}`,
	})
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"

	u := location(t, env.get(t, "/api/zalo/auth/callback?code=zalo-authorization-code&code_verifier="+verifier))
	event, err := env.store.GetLogEvent(context.Background(), u.Query().Get("logId"))
	require.NoError(t, err)
	assert.Equal(t, "TokenExchangeError", event.Kind)

	require.NotNil(t, event.Request)
	assert.NotContains(t, *event.Request, verifier)
	assert.NotContains(t, *event.Request, "zalo-authorization-code")
	assert.Contains(t, *event.Request, "/api/zalo/auth/callback")
}

func TestCallback_UnknownProvider(t *testing.T) {
	env := newTestEnv(t)

	u := location(t, env.get(t, "/api/telegram/auth/callback?code=abc"))
	logID := u.Query().Get("logId")
	require.NotEmpty(t, logID)

	event, err := env.store.GetLogEvent(context.Background(), logID)
	require.NoError(t, err)
	assert.Equal(t, "handleCallback", event.Context)
	assert.Equal(t, "UnexpectedError", event.Kind)
}

func TestCallback_SettingsMissing(t *testing.T) {
	env := newTestEnv(t, withoutSettings())

	u := location(t, env.get(t, "/api/facebook/auth/callback?code=abc123"))
	event, err := env.store.GetLogEvent(context.Background(), u.Query().Get("logId"))
	require.NoError(t, err)
	assert.Equal(t, "UnexpectedError", event.Kind)
	assert.Empty(t, env.graph.Calls())
}

func TestCallback_ErrorPageKeepsExistingQuery(t *testing.T) {
	env := newTestEnv(t, withErrorPage(testErrorURL+"?lang=vi"))

	u := location(t, env.get(t, "/api/facebook/auth/callback"))
	assert.Equal(t, "vi", u.Query().Get("lang"))
	assert.NotEmpty(t, u.Query().Get("logId"))
}

func TestAuthorize_Facebook(t *testing.T) {
	env := newTestEnv(t)

	u := location(t, env.get(t, "/api/facebook/auth"))
	assert.Equal(t, "www.facebook.com", u.Host)
	assert.Equal(t, "/"+connectortest.GraphVersion+"/dialog/oauth", u.Path)

	q := u.Query()
	assert.Equal(t, "fb-app", q.Get("client_id"))
	assert.Equal(t, testBaseURL+"/api/facebook/auth/callback", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Contains(t, q.Get("scope"), "pages_show_list")
	assert.NotEmpty(t, q.Get("state"))
	assert.Empty(t, q.Get("code_challenge"))
}

func TestAuthorize_ZaloCarriesVerifierInRedirect(t *testing.T) {
	env := newTestEnv(t)

	u := location(t, env.get(t, "/api/zalo/auth"))
	q := u.Query()
	assert.Equal(t, "zalo-app", q.Get("app_id"))

	redirect, err := url.Parse(q.Get("redirect_uri"))
	require.NoError(t, err)
	assert.Equal(t, "/api/zalo/auth/callback", redirect.Path)

	verifier := redirect.Query().Get("code_verifier")
	require.True(t, pkce.ValidVerifier(verifier))
	challenge, err := pkce.Challenge(verifier, pkce.MethodS256)
	require.NoError(t, err)
	assert.Equal(t, challenge, q.Get("code_challenge"))

	// a second request gets a fresh pair
	second := location(t, env.get(t, "/api/zalo/auth")).Query()
	assert.NotEqual(t, q.Get("code_challenge"), second.Get("code_challenge"))
}

func TestAuthorize_Failures(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		env := newTestEnv(t)
		u := location(t, env.get(t, "/api/telegram/auth"))
		require.Equal(t, "/error", u.Path)
		event, err := env.store.GetLogEvent(context.Background(), u.Query().Get("logId"))
		require.NoError(t, err)
		assert.Equal(t, "handleAuth", event.Context)
	})

	t.Run("settings missing", func(t *testing.T) {
		env := newTestEnv(t, withoutSettings())
		u := location(t, env.get(t, "/api/zalo/auth"))
		require.Equal(t, "/error", u.Path)
		event, err := env.store.GetLogEvent(context.Background(), u.Query().Get("logId"))
		require.NoError(t, err)
		assert.Equal(t, "handleZaloAuth", event.Context)
		assert.Equal(t, "UnexpectedError", event.Kind)
	})
}

func TestErrorPageURL(t *testing.T) {
	h := &ConnectorHandler{cfg: ConnectorHandlerConfig{ErrorPageURL: testErrorURL}}
	assert.Equal(t, testErrorURL, h.errorPageURL(""))
	assert.Equal(t, testErrorURL+"?logId=abc", h.errorPageURL("abc"))
}

func TestOperatorEndpoints(t *testing.T) {
	env := newTestEnv(t)

	location(t, env.get(t, "/api/facebook/auth/callback?code=abc123"))
	logID := location(t, env.get(t, "/api/zalo/auth/callback?code=zalo-code")).Query().Get("logId")

	t.Run("log by id", func(t *testing.T) {
		w := env.get(t, "/api/logs/"+logID)
		require.Equal(t, http.StatusOK, w.Code)
		var event models.LogEvent
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
		assert.Equal(t, logID, event.ID)
		assert.Equal(t, "MissingAuthorizationCode", event.Kind)
	})

	t.Run("unknown log id", func(t *testing.T) {
		w := env.get(t, "/api/logs/"+uuid.New().String())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list error logs", func(t *testing.T) {
		w := env.get(t, "/api/logs?level=error&context=handleZaloCallback")
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Logs       []models.LogEvent      `json:"logs"`
			Pagination store.PaginationResult `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, int64(1), body.Pagination.Total)
		require.Len(t, body.Logs, 1)
		assert.Equal(t, logID, body.Logs[0].ID)
	})

	t.Run("channels hide tokens", func(t *testing.T) {
		w := env.get(t, "/api/channels?source=Facebook")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "page_1")
		assert.NotContains(t, w.Body.String(), "LONG")
		assert.NotContains(t, w.Body.String(), "PAGE_TOKEN")
	})

	t.Run("channel by id", func(t *testing.T) {
		w := env.get(t, "/api/channels/Facebook/page_1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Acme Page")

		w = env.get(t, "/api/channels/Zalo/page_1")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
