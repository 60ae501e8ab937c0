package handler

import (
	"context"
	"errors"
	"net/http"

	"campusrate/internal/app/campus/entity"
	"campusrate/internal/app/campus/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, userID, userName string, req *entity.CreateReviewRequest) (*entity.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID uuid.UUID, userID string, req *entity.UpdateReviewRequest) (*entity.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID uuid.UUID, userID string) error
	ToggleLike(ctx context.Context, reviewID uuid.UUID, userID string) (*entity.ToggleLikeResponse, error)
	GetCollegeReviews(ctx context.Context, collegeID uuid.UUID, userID string, page, limit int) (*entity.ReviewListResponse, error)
}

// ReviewHandler обрабатывает HTTP запросы для отзывов
type ReviewHandler struct {
	reviewService ReviewServiceInterface
	validator     *validator.Validate
}

// NewReviewHandler создает новый обработчик отзывов
func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// CreateReview обрабатывает POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, currentUserName(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrCollegeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "College not found"})
			return
		}
		if errors.Is(err, service.ErrAlreadyReviewed) {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this college"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetCollegeReviews обрабатывает GET /colleges/:id/reviews
func (h *ReviewHandler) GetCollegeReviews(c *gin.Context) {
	collegeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid college ID"})
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 0)

	response, err := h.reviewService.GetCollegeReviews(c.Request.Context(), collegeID, currentUserID(c), page, limit)
	if err != nil {
		if errors.Is(err, service.ErrCollegeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "College not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateReview обрабатывает PATCH /reviews/:review_id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reviewID, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var req entity.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), reviewID, userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview обрабатывает DELETE /reviews/:review_id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reviewID, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), reviewID, userID); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Review deleted successfully",
	})
}

// ToggleLike обрабатывает POST /reviews/:review_id/like
func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reviewID, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	response, err := h.reviewService.ToggleLike(c.Request.Context(), reviewID, userID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, response)
}
