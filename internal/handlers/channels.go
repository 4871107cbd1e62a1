package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/services"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/store"

	"github.com/gin-gonic/gin"
)

// ChannelHandler lists linked channels. Tokens never leave the service.
type ChannelHandler struct {
	channels *services.ChannelService
}

// NewChannelHandler creates a new channel listing handler
func NewChannelHandler(channels *services.ChannelService) *ChannelHandler {
	return &ChannelHandler{channels: channels}
}

// ListChannels returns channels with pagination, optionally for one source
func (h *ChannelHandler) ListChannels(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	params := store.NewPaginationParams(page, pageSize, c.Query("search"))

	channels, pagination, err := h.channels.ListChannels(
		c.Request.Context(),
		params,
		models.ChannelSource(c.Query("source")),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve channels"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channels":   channels,
		"pagination": pagination,
	})
}

// GetChannel returns one channel by source and external ID
func (h *ChannelHandler) GetChannel(c *gin.Context) {
	ch, err := h.channels.GetChannel(
		c.Request.Context(),
		c.Param("external_id"),
		models.ChannelSource(c.Param("source")),
	)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":             "not_found",
				"error_description": "Channel not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve channel"})
		return
	}

	c.JSON(http.StatusOK, ch)
}
