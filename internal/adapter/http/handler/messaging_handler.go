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

// MessagingHandler handles conversation and message endpoints.
type MessagingHandler struct {
	messagingSvc ports.MessagingService
}

// NewMessagingHandler creates a new MessagingHandler.
func NewMessagingHandler(messagingSvc ports.MessagingService) *MessagingHandler {
	return &MessagingHandler{messagingSvc: messagingSvc}
}

// StartConversation handles POST /api/v1/conversations.
func (h *MessagingHandler) StartConversation(c *gin.Context) {
	var req dto.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	hostID, err := uuid.Parse(req.HostID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid host_id"))
		return
	}
	var listingID *uuid.UUID
	if req.ListingID != nil {
		id, err := uuid.Parse(*req.ListingID)
		if err != nil {
			response.Error(c, apperror.Validation("invalid listing_id"))
			return
		}
		listingID = &id
	}

	conv, err := h.messagingSvc.StartConversation(c.Request.Context(), middleware.CallerID(c), hostID, listingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, conv)
}

// ListConversations handles GET /api/v1/conversations.
func (h *MessagingHandler) ListConversations(c *gin.Context) {
	convs, err := h.messagingSvc.ListConversations(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, convs)
}

// SendMessage handles POST /api/v1/conversations/:id/messages.
func (h *MessagingHandler) SendMessage(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid conversation id"))
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	msg, err := h.messagingSvc.SendMessage(c.Request.Context(), conversationID, middleware.CallerID(c), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, msg)
}

// ListMessages handles GET /api/v1/conversations/:id/messages.
func (h *MessagingHandler) ListMessages(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid conversation id"))
		return
	}

	msgs, err := h.messagingSvc.ListMessages(c.Request.Context(), conversationID, middleware.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msgs)
}

// MarkRead handles POST /api/v1/conversations/:id/read.
func (h *MessagingHandler) MarkRead(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid conversation id"))
		return
	}

	if err := h.messagingSvc.MarkAsRead(c.Request.Context(), conversationID, middleware.CallerID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"read": true})
}
