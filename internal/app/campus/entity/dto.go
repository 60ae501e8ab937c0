package entity

import (
	"time"

	"github.com/google/uuid"
)

// CreateCollegeRequest - запрос на создание колледжа
type CreateCollegeRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=255"`
	Location        string          `json:"location" validate:"omitempty,max=255"`
	City            string          `json:"city" validate:"omitempty,max=100"`
	State           string          `json:"state" validate:"omitempty,max=100"`
	Country         string          `json:"country" validate:"omitempty,max=100"`
	Website         string          `json:"website" validate:"omitempty,url"`
	Phone           string          `json:"phone" validate:"omitempty,max=50"`
	Email           string          `json:"email" validate:"omitempty,email"`
	EstablishedYear int             `json:"established_year" validate:"omitempty,min=1800,max=2100"`
	CollegeType     string          `json:"college_type" validate:"omitempty,max=50"`
	Affiliation     string          `json:"affiliation" validate:"omitempty,max=255"`
	Description     string          `json:"description"`
	LogoURL         string          `json:"logo_url" validate:"omitempty,url"`
	Images          []string        `json:"images"`
	Programs        []string        `json:"programs"`
	Facilities      []string        `json:"facilities"`
	Metadata        CollegeMetadata `json:"metadata"`
}

// CreateReviewRequest - запрос на создание отзыва
type CreateReviewRequest struct {
	CollegeID      uuid.UUID `json:"college_id" validate:"required"`
	Rating         float64   `json:"rating" validate:"required,min=1,max=5"`
	Title          string    `json:"title" validate:"required,min=3,max=255"`
	Content        string    `json:"content" validate:"required,min=10,max=5000"`
	Program        string    `json:"program" validate:"omitempty,max=255"`
	GraduationYear string    `json:"graduation_year" validate:"omitempty,max=10"`
	Images         []string  `json:"images"`
}

// UpdateReviewRequest - запрос на обновление отзыва
// Нулевые значения означают "поле не меняется"
type UpdateReviewRequest struct {
	Rating         float64 `json:"rating" validate:"omitempty,min=1,max=5"`
	Title          string  `json:"title" validate:"omitempty,min=3,max=255"`
	Content        string  `json:"content" validate:"omitempty,min=10,max=5000"`
	Program        string  `json:"program" validate:"omitempty,max=255"`
	GraduationYear string  `json:"graduation_year" validate:"omitempty,max=10"`
}

// ListCollegesQuery - параметры листинга колледжей.
// search/city/state уходят в SQL, streams/min_fee/max_fee/scholarships
// применяются к уже выбранной странице, sort_by выбирает политику ранжирования
type ListCollegesQuery struct {
	Page         int    `form:"page" validate:"omitempty,min=1"`
	Limit        int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Search       string `form:"search"`
	City         string `form:"city"`
	State        string `form:"state"`
	Streams      string `form:"streams"` // Список через запятую: science,commerce
	MinFee       *int   `form:"min_fee" validate:"omitempty,min=0"`
	MaxFee       *int   `form:"max_fee" validate:"omitempty,min=0"`
	Scholarships bool   `form:"scholarships"`
	SortBy       string `form:"sort_by"` // highest | most | weighted
}

// CollegeResponse - колледж с флагом закладки текущего пользователя
type CollegeResponse struct {
	College
	IsSavedByCurrentUser bool `json:"is_saved_by_current_user"`
}

// ReviewResponse - отзыв с флагами и именами для отображения
type ReviewResponse struct {
	Review
	CollegeName          string `json:"college_name"`
	IsLikedByCurrentUser bool   `json:"is_liked_by_current_user"`
	IsOwnedByCurrentUser bool   `json:"is_owned_by_current_user"`
}

// CollegeListResponse - страница листинга колледжей
// Total - число строк до metadata-фильтра
type CollegeListResponse struct {
	Colleges []CollegeResponse `json:"colleges"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Pages    int               `json:"pages"`
}

// ReviewListResponse - страница отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Pages   int              `json:"pages"`
}

// SavedCollegeResponse - закладка с данными колледжа для списка профиля
type SavedCollegeResponse struct {
	ID                   uuid.UUID `json:"id"`
	CollegeID            uuid.UUID `json:"college_id"`
	CollegeName          string    `json:"college_name"`
	CollegeLocation      string    `json:"college_location"`
	CollegeLogoURL       string    `json:"college_logo_url"`
	CollegeAverageRating float64   `json:"college_average_rating"`
	CollegeTotalReviews  int       `json:"college_total_reviews"`
	SavedAt              time.Time `json:"saved_at"`
}

// SavedCollegeListResponse - страница закладок
type SavedCollegeListResponse struct {
	SavedColleges []SavedCollegeResponse `json:"saved_colleges"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	Pages         int                    `json:"pages"`
}

// UserStatsResponse - статистика пользователя для профиля
type UserStatsResponse struct {
	TotalReviews       int64 `json:"total_reviews"`
	TotalLikesReceived int64 `json:"total_likes_received"`
	PeopleHelped       int64 `json:"people_helped"`
	SavedCollegesCount int64 `json:"saved_colleges_count"`
}

// ToggleLikeResponse - результат переключения лайка
type ToggleLikeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// ToggleBookmarkResponse - результат переключения закладки
type ToggleBookmarkResponse struct {
	Saved     bool      `json:"saved"`
	CollegeID uuid.UUID `json:"college_id"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
