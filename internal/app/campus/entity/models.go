package entity

import (
	"time"

	"github.com/google/uuid"
)

// College представляет учебное заведение в системе
type College struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name            string          `json:"name" gorm:"type:varchar(255);not null;index"`
	Location        string          `json:"location" gorm:"type:varchar(255)"`
	City            string          `json:"city" gorm:"type:varchar(100);index"`
	State           string          `json:"state" gorm:"type:varchar(100);index"`
	Country         string          `json:"country" gorm:"type:varchar(100);default:'India'"`
	Website         string          `json:"website" gorm:"type:varchar(255)"`
	Phone           string          `json:"phone" gorm:"type:varchar(50)"`
	Email           string          `json:"email" gorm:"type:varchar(255)"`
	EstablishedYear int             `json:"established_year"`
	CollegeType     string          `json:"college_type" gorm:"type:varchar(50)"` // Public/Private/Autonomous
	Affiliation     string          `json:"affiliation" gorm:"type:varchar(255)"`
	Description     string          `json:"description" gorm:"type:text"`
	LogoURL         string          `json:"logo_url" gorm:"type:varchar(512)"`
	Images          []string        `json:"images" gorm:"serializer:json"`
	Programs        []string        `json:"programs" gorm:"serializer:json"`
	Facilities      []string        `json:"facilities" gorm:"serializer:json"`
	AverageRating   float64         `json:"average_rating" gorm:"type:decimal(2,1);not null;default:0"` // Денормализованный агрегат, пишется только пересчётом
	TotalReviews    int             `json:"total_reviews" gorm:"not null;default:0"`
	Metadata        CollegeMetadata `json:"metadata" gorm:"serializer:json"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (College) TableName() string {
	return "colleges"
}

// CollegeMetadata - типизированные опциональные атрибуты колледжа.
// Все поля могут отсутствовать; отсутствие min/max fee означает,
// что фильтр по стоимости колледж не исключает
type CollegeMetadata struct {
	Streams      []string `json:"streams,omitempty"`      // science, commerce, humanities
	MinFee       *int     `json:"min_fee,omitempty"`      // Нижняя граница стоимости обучения
	MaxFee       *int     `json:"max_fee,omitempty"`      // Верхняя граница стоимости обучения
	Scholarships *bool    `json:"scholarships,omitempty"` // Доступны ли стипендии
}

// Review представляет отзыв о колледже
// Уникальный индекс (college_id, user_id) гарантирует один отзыв на пользователя
type Review struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CollegeID      uuid.UUID `json:"college_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_college_user;index"`
	UserID         string    `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_reviews_college_user;index"` // UUID пользователя из Auth Service
	UserName       string    `json:"user_name" gorm:"type:varchar(100)"`                                                  // Имя автора из JWT на момент создания
	Rating         float64   `json:"rating" gorm:"type:decimal(2,1);not null"`                                            // Оценка от 1 до 5
	Title          string    `json:"title" gorm:"type:varchar(255);not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	Program        string    `json:"program" gorm:"type:varchar(255)"` // Программа/курс автора
	GraduationYear string    `json:"graduation_year" gorm:"type:varchar(10)"`
	Images         []string  `json:"images" gorm:"serializer:json"`
	IsVerified     bool      `json:"is_verified" gorm:"not null;default:false"`
	LikesCount     int       `json:"likes_count" gorm:"not null;default:0"` // Всегда равен числу строк в review_likes
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (Review) TableName() string {
	return "reviews"
}

// ReviewLike - лайк отзыва
// Уникальный индекс (review_id, user_id) не даёт лайкнуть дважды
type ReviewLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ReviewID  uuid.UUID `json:"review_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_likes_review_user"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_review_likes_review_user;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (ReviewLike) TableName() string {
	return "review_likes"
}

// SavedCollege - закладка колледжа пользователем
// Уникальный индекс (college_id, user_id) - одна закладка на пару
type SavedCollege struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CollegeID uuid.UUID `json:"college_id" gorm:"type:uuid;not null;uniqueIndex:idx_saved_colleges_college_user"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_saved_colleges_college_user;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	College   College   `json:"-" gorm:"foreignKey:CollegeID"`
}

// TableName указывает имя таблицы для GORM
func (SavedCollege) TableName() string {
	return "saved_colleges"
}

// ReviewEvent представляет событие изменения отзыва для Kafka
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
