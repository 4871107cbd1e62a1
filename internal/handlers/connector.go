package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/connector"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/pkce"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChannelRepositoryFactory hands out a repository bound to one request
type ChannelRepositoryFactory interface {
	ForRequest(userID string) core.ChannelRepository
}

// ConnectorHandlerConfig holds the redirect targets and limits of the
// onboarding endpoints
type ConnectorHandlerConfig struct {
	FrontendURL  string
	ErrorPageURL string
	Timeout      time.Duration // upper bound for one callback run
}

// ConnectorHandler serves GET /api/{provider}/auth and
// GET /api/{provider}/auth/callback
type ConnectorHandler struct {
	registry    *connector.Registry
	settings    core.SettingsProvider
	channels    ChannelRepositoryFactory
	diagnostics core.DiagnosticsLogger
	onboarding  *services.OnboardingService
	recorder    core.Recorder
	logger      *zap.Logger
	cfg         ConnectorHandlerConfig
}

// NewConnectorHandler creates the onboarding handler
func NewConnectorHandler(
	registry *connector.Registry,
	settings core.SettingsProvider,
	channels ChannelRepositoryFactory,
	diagnostics core.DiagnosticsLogger,
	onboarding *services.OnboardingService,
	recorder core.Recorder,
	logger *zap.Logger,
	cfg ConnectorHandlerConfig,
) *ConnectorHandler {
	return &ConnectorHandler{
		registry:    registry,
		settings:    settings,
		channels:    channels,
		diagnostics: diagnostics,
		onboarding:  onboarding,
		recorder:    recorder,
		logger:      logger.Named("connector"),
		cfg:         cfg,
	}
}

// Authorize redirects the browser to the provider consent screen
func (h *ConnectorHandler) Authorize(c *gin.Context) {
	provider := c.Param("provider")
	ctx := c.Request.Context()

	conn, err := h.registry.Get(provider)
	if err != nil {
		h.recorder.RecordAuthorizationRedirect(provider, false)
		h.redirectWithError(c, "handleAuth", provider, err)
		return
	}
	label := "handle" + conn.DisplayName() + "Auth"

	settings, err := h.settings.GetIntegrationSetting(ctx, conn.Name())
	if err != nil {
		h.recorder.RecordAuthorizationRedirect(conn.Name(), false)
		h.redirectWithError(c, label, conn.Name(), err)
		return
	}

	req := core.AuthorizationRequest{
		Provider: conn.Name(),
		State:    uuid.New().String(),
	}
	verifier := ""
	if core.UsesPKCE(conn) {
		pair, err := pkce.Generate(conn.PKCEMethod())
		if err != nil {
			h.recorder.RecordAuthorizationRedirect(conn.Name(), false)
			h.redirectWithError(c, label, conn.Name(), err)
			return
		}
		req.PKCE = pair
		verifier = pair.Verifier
	}
	req.RedirectURI = core.CallbackURL(settings.PublicBaseURL, conn.Name(), verifier)

	authURL, err := conn.AuthURL(settings, req)
	if err != nil {
		h.recorder.RecordAuthorizationRedirect(conn.Name(), false)
		h.redirectWithError(c, label, conn.Name(), err)
		return
	}

	h.recorder.RecordAuthorizationRedirect(conn.Name(), true)
	h.logger.Info("redirecting to provider consent screen",
		zap.String("provider", conn.Name()),
		zap.Bool("pkce", req.PKCE != nil))
	c.Redirect(http.StatusFound, authURL)
}

// Callback completes onboarding and redirects to the frontend, or to the
// error page with the ID of the error record
func (h *ConnectorHandler) Callback(c *gin.Context) {
	provider := c.Param("provider")

	conn, err := h.registry.Get(provider)
	if err != nil {
		h.redirectWithError(c, "handleCallback", provider, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.Timeout)
	defer cancel()

	userID := c.GetString("user_id")
	payload := core.CallbackPayload{
		Code:                     c.Query("code"),
		CodeVerifier:             c.Query("code_verifier"),
		State:                    c.Query("state"),
		ProviderError:            c.Query("error"),
		ProviderErrorDescription: c.Query("error_description"),
	}

	// fresh collaborators for every request
	scope := services.RequestScope{
		Connector:   conn,
		Settings:    h.settings,
		Channels:    h.channels.ForRequest(userID),
		Diagnostics: h.diagnostics,
		UserID:      userID,
		Request:     requestSnapshot(c, payload),
	}

	result := h.onboarding.HandleCallback(ctx, scope, payload)
	if result.Succeeded() {
		c.Redirect(http.StatusFound, h.cfg.FrontendURL)
		return
	}
	c.Redirect(http.StatusFound, h.errorPageURL(result.LogID))
}

// redirectWithError writes one error record for a failure outside the
// callback pipeline and sends the browser to the error page
func (h *ConnectorHandler) redirectWithError(c *gin.Context, label, provider string, err error) {
	kind := core.KindUnexpected
	logID, logErr := h.diagnostics.LogError(context.WithoutCancel(c.Request.Context()), core.LogEntry{
		Context:  label,
		Provider: provider,
		Kind:     kind,
		Message:  fmt.Sprintf("%s: %v", kind, err),
		Err:      err,
		UserID:   c.GetString("user_id"),
		Request:  requestSnapshot(c, core.CallbackPayload{}),
		Details: map[string]any{
			"unknown_provider": errors.Is(err, core.ErrUnknownProvider),
		},
	})
	if logErr != nil {
		h.logger.Error("failed to write error record",
			zap.String("context", label),
			zap.NamedError("cause", err),
			zap.Error(logErr))
	}
	c.Redirect(http.StatusFound, h.errorPageURL(logID))
}

// errorPageURL appends logId to the configured error page. An empty ID
// leaves the page URL untouched.
func (h *ConnectorHandler) errorPageURL(logID string) string {
	if logID == "" {
		return h.cfg.ErrorPageURL
	}
	u, err := url.Parse(h.cfg.ErrorPageURL)
	if err != nil {
		return h.cfg.ErrorPageURL
	}
	q := u.Query()
	q.Set("logId", logID)
	u.RawQuery = q.Encode()
	return u.String()
}

// requestSnapshot is the request context stored with error records
func requestSnapshot(c *gin.Context, payload core.CallbackPayload) map[string]any {
	snapshot := map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"provider":   c.Param("provider"),
		"client_ip":  c.ClientIP(),
		"user_agent": c.Request.UserAgent(),
	}
	if requestID := c.GetString("request_id"); requestID != "" {
		snapshot["request_id"] = requestID
	}
	query := map[string]any{}
	if payload.Code != "" {
		query["code"] = payload.Code
	}
	if payload.CodeVerifier != "" {
		query["code_verifier"] = payload.CodeVerifier
	}
	if payload.State != "" {
		query["state"] = payload.State
	}
	if payload.ProviderError != "" {
		query["error"] = payload.ProviderError
		query["error_description"] = payload.ProviderErrorDescription
	}
	if len(query) > 0 {
		snapshot["query"] = query
	}
	return snapshot
}
