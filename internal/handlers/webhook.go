package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/connector"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler answers the provider's subscription handshake. Event
// payloads are handled elsewhere.
type WebhookHandler struct {
	registry *connector.Registry
	settings core.SettingsProvider
	logger   *zap.Logger
}

// NewWebhookHandler creates a new webhook verification handler
func NewWebhookHandler(
	registry *connector.Registry,
	settings core.SettingsProvider,
	logger *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{registry: registry, settings: settings, logger: logger.Named("webhook")}
}

// Verify echoes hub.challenge when hub.verify_token matches the stored
// verify token
func (h *WebhookHandler) Verify(c *gin.Context) {
	conn, err := h.registry.Get(c.Param("provider"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": "Unknown provider",
		})
		return
	}

	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	settings, err := h.settings.GetIntegrationSetting(c.Request.Context(), conn.Name())
	if err != nil {
		h.logger.Warn("webhook verification without settings",
			zap.String("provider", conn.Name()), zap.Error(err))
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if mode != "subscribe" || settings.WebhookVerifyToken == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(settings.WebhookVerifyToken)) != 1 {
		h.logger.Warn("webhook verification rejected",
			zap.String("provider", conn.Name()), zap.String("mode", mode))
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	h.logger.Info("webhook verified", zap.String("provider", conn.Name()))
	c.String(http.StatusOK, challenge)
}
