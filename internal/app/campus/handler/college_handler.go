package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"campusrate/internal/app/campus/entity"
	"campusrate/internal/app/campus/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CollegeServiceInterface interface {
	CreateCollege(ctx context.Context, req *entity.CreateCollegeRequest) (*entity.College, error)
	GetCollege(ctx context.Context, id uuid.UUID, userID string) (*entity.CollegeResponse, error)
	ListColleges(ctx context.Context, userID string, q *entity.ListCollegesQuery) (*entity.CollegeListResponse, error)
	ToggleBookmark(ctx context.Context, collegeID uuid.UUID, userID string) (*entity.ToggleBookmarkResponse, error)
	GetSavedColleges(ctx context.Context, userID string, page, limit int) (*entity.SavedCollegeListResponse, error)
}

// CollegeHandler обрабатывает HTTP запросы для колледжей
type CollegeHandler struct {
	collegeService CollegeServiceInterface
	validator      *validator.Validate
}

// NewCollegeHandler создает новый обработчик колледжей
func NewCollegeHandler(collegeService CollegeServiceInterface) *CollegeHandler {
	return &CollegeHandler{
		collegeService: collegeService,
		validator:      validator.New(),
	}
}

// CreateCollege обрабатывает POST /colleges
func (h *CollegeHandler) CreateCollege(c *gin.Context) {
	var req entity.CreateCollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	college, err := h.collegeService.CreateCollege(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create college"})
		return
	}

	c.JSON(http.StatusCreated, college)
}

// GetCollege обрабатывает GET /colleges/:id
func (h *CollegeHandler) GetCollege(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid college ID"})
		return
	}

	college, err := h.collegeService.GetCollege(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrCollegeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "College not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get college"})
		return
	}

	c.JSON(http.StatusOK, college)
}

// ListColleges обрабатывает GET /colleges
// Параметры: page, limit, search, city, state, streams, min_fee, max_fee,
// scholarships, sort_by
func (h *CollegeHandler) ListColleges(c *gin.Context) {
	var q entity.ListCollegesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if err := h.validator.Struct(q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	response, err := h.collegeService.ListColleges(c.Request.Context(), currentUserID(c), &q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list colleges"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ToggleBookmark обрабатывает POST /colleges/:id/save
func (h *CollegeHandler) ToggleBookmark(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid college ID"})
		return
	}

	response, err := h.collegeService.ToggleBookmark(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrCollegeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "College not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle bookmark"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// queryInt читает целочисленный query-параметр с дефолтом
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
