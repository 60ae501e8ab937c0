package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrCollegeNotFound = errors.New("college not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("user has already reviewed this college")
	ErrForbidden       = errors.New("access to review denied")
)
