package handler

import (
	"fiilar/internal/adapter/http/dto"
	"fiilar/internal/adapter/http/middleware"
	"fiilar/internal/core/domain"
	"fiilar/internal/core/ports"
	"fiilar/pkg/apperror"
	"fiilar/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler handles booking and booking-draft endpoints.
type BookingHandler struct {
	bookingSvc ports.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingSvc ports.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Create handles POST /api/v1/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid listing_id"))
		return
	}

	booking, err := h.bookingSvc.Create(c.Request.Context(), ports.BookingRequest{
		GuestID:   middleware.CallerID(c),
		ListingID: listingID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Method:    domain.PaymentMethod(req.Method),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// List handles GET /api/v1/bookings.
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingSvc.ListForGuest(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bookings)
}

// Complete handles POST /api/v1/bookings/:id/complete.
func (h *BookingHandler) Complete(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid booking id"))
		return
	}

	booking, err := h.bookingSvc.Complete(c.Request.Context(), bookingID, middleware.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, booking)
}

// Cancel handles POST /api/v1/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid booking id"))
		return
	}

	booking, err := h.bookingSvc.Cancel(c.Request.Context(), bookingID, middleware.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, booking)
}

// SaveDraft handles PUT /api/v1/drafts/:listingID.
func (h *BookingHandler) SaveDraft(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid listing id"))
		return
	}

	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	draft := &domain.BookingDraft{
		UserID:    middleware.CallerID(c),
		ListingID: listingID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Guests:    req.Guests,
		Step:      req.Step,
	}
	if err := h.bookingSvc.SaveDraft(c.Request.Context(), draft); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, draft)
}

// GetDraft handles GET /api/v1/drafts/:listingID.
func (h *BookingHandler) GetDraft(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid listing id"))
		return
	}

	draft, err := h.bookingSvc.GetDraft(c.Request.Context(), middleware.CallerID(c), listingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if draft == nil {
		response.Error(c, apperror.ErrNotFound("draft"))
		return
	}
	response.OK(c, draft)
}

// DeleteDraft handles DELETE /api/v1/drafts/:listingID.
func (h *BookingHandler) DeleteDraft(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid listing id"))
		return
	}

	if err := h.bookingSvc.DeleteDraft(c.Request.Context(), middleware.CallerID(c), listingID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
