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

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviewSvc ports.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewSvc ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

// Create handles POST /api/v1/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid listing_id"))
		return
	}

	callerID := middleware.CallerID(c)
	review, err := h.reviewSvc.AddReview(c.Request.Context(), ports.ReviewRequest{
		CallerID:  callerID,
		UserID:    callerID,
		ListingID: listingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, review)
}

// ListByListing handles GET /api/v1/listings/:id/reviews.
func (h *ReviewHandler) ListByListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid listing id"))
		return
	}

	reviews, err := h.reviewSvc.ListReviews(c.Request.Context(), listingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, reviews)
}

// Rating handles GET /api/v1/listings/:id/rating.
func (h *ReviewHandler) Rating(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid listing id"))
		return
	}

	avg, err := h.reviewSvc.AverageRating(c.Request.Context(), listingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RatingResponse{ListingID: listingID.String(), AverageRating: avg})
}
