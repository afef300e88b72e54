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

// ListingHandler handles listing endpoints.
type ListingHandler struct {
	listingSvc ports.ListingService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listingSvc ports.ListingService) *ListingHandler {
	return &ListingHandler{listingSvc: listingSvc}
}

// Create handles POST /api/v1/listings.
func (h *ListingHandler) Create(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	listing, err := h.listingSvc.Create(c.Request.Context(), ports.CreateListingRequest{
		HostID:       middleware.CallerID(c),
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		NightlyPrice: req.NightlyPrice,
		Publish:      req.Publish,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, listing)
}

// Get handles GET /api/v1/listings/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid listing id"))
		return
	}

	listing, err := h.listingSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, listing)
}

// ListMine handles GET /api/v1/listings.
func (h *ListingHandler) ListMine(c *gin.Context) {
	listings, err := h.listingSvc.ListByHost(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, listings)
}
