package handler

import (
	"fiilar/internal/adapter/http/dto"
	"fiilar/internal/adapter/http/middleware"
	"fiilar/internal/core/ports"
	"fiilar/pkg/apperror"
	"fiilar/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	notificationSvc ports.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationSvc ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List handles GET /api/v1/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.notificationSvc.List(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// UnreadCount handles GET /api/v1/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationSvc.UnreadCount(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.UnreadCountResponse{Count: count})
}

// MarkRead handles POST /api/v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid notification id"))
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), id, middleware.CallerID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"read": true})
}

// MarkAllRead handles POST /api/v1/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationSvc.MarkAllRead(c.Request.Context(), middleware.CallerID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"read": true})
}

// Clear handles DELETE /api/v1/notifications.
func (h *NotificationHandler) Clear(c *gin.Context) {
	if err := h.notificationSvc.Clear(c.Request.Context(), middleware.CallerID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"cleared": true})
}
