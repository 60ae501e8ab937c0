package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReviewEvent - событие изменения отзыва из топика review_events
// Формат совпадает с тем, что публикует Campus API
type ReviewEvent struct {
	EventType string    `json:"event_type"` // REVIEW_CREATED, REVIEW_UPDATED, REVIEW_DELETED
	ReviewID  uuid.UUID `json:"review_id"`
	CollegeID uuid.UUID `json:"college_id"`
	UserID    string    `json:"user_id"`
	Rating    float64   `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Типы событий отзывов
const (
	EventReviewCreated = "REVIEW_CREATED"
	EventReviewUpdated = "REVIEW_UPDATED"
	EventReviewDeleted = "REVIEW_DELETED"
)

// PlatformStats - снапшот статистики платформы
// Строится периодически из PostgreSQL и хранится в Redis с TTL
type PlatformStats struct {
	TotalColleges    int64        `json:"total_colleges"`
	TotalReviews     int64        `json:"total_reviews"`
	TotalLikes       int64        `json:"total_likes"`
	TotalBookmarks   int64        `json:"total_bookmarks"`
	AverageRating    float64      `json:"average_rating"` // Средний рейтинг по всем отзывам
	ReviewsLast24h   int64        `json:"reviews_last_24h"`
	TopRatedColleges []TopCollege `json:"top_rated_colleges"`
	GeneratedAt      time.Time    `json:"generated_at"`
}

// TopCollege - строка рейтинга лучших колледжей в снапшоте
type TopCollege struct {
	CollegeID     uuid.UUID `json:"college_id"`
	Name          string    `json:"name"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
}

// PlatformStatsRedisKey - ключ снапшота в Redis
const PlatformStatsRedisKey = "campus:platform_stats"
