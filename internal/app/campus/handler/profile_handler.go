package handler

import (
	"context"
	"net/http"

	"campusrate/internal/app/campus/entity"

	"github.com/gin-gonic/gin"
)

type ProfileServiceInterface interface {
	GetUserReviews(ctx context.Context, userID string, page, limit int) (*entity.ReviewListResponse, error)
	GetLikedReviews(ctx context.Context, userID string, page, limit int) (*entity.ReviewListResponse, error)
	GetUserStats(ctx context.Context, userID string) (*entity.UserStatsResponse, error)
}

// ProfileHandler обрабатывает HTTP запросы профиля пользователя.
// Все эндпоинты требуют аутентификации
type ProfileHandler struct {
	reviewService  ProfileServiceInterface
	collegeService CollegeServiceInterface
}

// NewProfileHandler создает новый обработчик профиля
func NewProfileHandler(reviewService ProfileServiceInterface, collegeService CollegeServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		reviewService:  reviewService,
		collegeService: collegeService,
	}
}

// GetMyReviews обрабатывает GET /profile/reviews
func (h *ProfileHandler) GetMyReviews(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	response, err := h.reviewService.GetUserReviews(c.Request.Context(), userID, queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetLikedReviews обрабатывает GET /profile/liked-reviews
func (h *ProfileHandler) GetLikedReviews(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	response, err := h.reviewService.GetLikedReviews(c.Request.Context(), userID, queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get liked reviews"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSavedColleges обрабатывает GET /profile/saved-colleges
func (h *ProfileHandler) GetSavedColleges(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	response, err := h.collegeService.GetSavedColleges(c.Request.Context(), userID, queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get saved colleges"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetStats обрабатывает GET /profile/stats
func (h *ProfileHandler) GetStats(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	response, err := h.reviewService.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, response)
}
