package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/services"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/store"

	"github.com/gin-gonic/gin"
)

// LogHandler exposes diagnostics records to operators. The logId shown on
// the error page is looked up here.
type LogHandler struct {
	diagnostics *services.DiagnosticsService
}

// NewLogHandler creates a new diagnostics lookup handler
func NewLogHandler(diagnostics *services.DiagnosticsService) *LogHandler {
	return &LogHandler{diagnostics: diagnostics}
}

// GetLogEvent returns one record by ID
func (h *LogHandler) GetLogEvent(c *gin.Context) {
	event, err := h.diagnostics.GetLogEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":             "not_found",
				"error_description": "Log record not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve log record"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// ListLogEvents retrieves records with pagination and filtering
func (h *LogHandler) ListLogEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	params := store.NewPaginationParams(page, pageSize, c.Query("search"))

	filters := store.LogEventFilters{
		Level:    models.LogLevel(c.Query("level")),
		Kind:     c.Query("kind"),
		Provider: c.Query("provider"),
		Context:  c.Query("context"),
		UserID:   c.Query("user_id"),
	}

	// Parse time range
	if startTimeStr := c.Query("start_time"); startTimeStr != "" {
		if t, err := time.Parse(time.RFC3339, startTimeStr); err == nil {
			filters.StartTime = t
		}
	}
	if endTimeStr := c.Query("end_time"); endTimeStr != "" {
		if t, err := time.Parse(time.RFC3339, endTimeStr); err == nil {
			filters.EndTime = t
		}
	}

	logs, pagination, err := h.diagnostics.ListLogEvents(c.Request.Context(), params, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve log records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":       logs,
		"pagination": pagination,
	})
}
