package repository

import (
	"context"
	"errors"

	"campusrate/internal/app/campus/entity"

	"github.com/google/uuid"
)

var (
	ErrCollegeNotFound = errors.New("college not found")
	ErrReviewNotFound  = errors.New("review not found")
	// ErrAlreadyReviewed - нарушение уникальности (college_id, user_id)
	ErrAlreadyReviewed = errors.New("user has already reviewed this college")
	// ErrToggleConflict - гонка двух toggle-запросов одного пользователя:
	// оба увидели "строки нет" и оба попытались вставить. Caller может повторить
	ErrToggleConflict = errors.New("concurrent toggle conflict")
)

// CollegeListFilter - нативные фильтры листинга, уходящие в SQL
type CollegeListFilter struct {
	Search string // Подстрока имени, без учёта регистра
	City   string
	State  string
	Offset int
	Limit  int
}

type CollegeRepository interface {
	Create(ctx context.Context, college *entity.College) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.College, error)
	Update(ctx context.Context, college *entity.College) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List возвращает страницу и число строк ДО metadata-фильтра
	List(ctx context.Context, filter CollegeListFilter) ([]entity.College, int64, error)
}

type ReviewRepository interface {
	// Create вставляет отзыв и пересчитывает агрегат колледжа в одной транзакции
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	// Update сохраняет отзыв; при ratingChanged агрегат пересчитывается в той же транзакции
	Update(ctx context.Context, review *entity.Review, ratingChanged bool) error
	// Delete удаляет отзыв вместе с его лайками и пересчитывает агрегат
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCollege(ctx context.Context, collegeID uuid.UUID, offset, limit int) ([]entity.Review, int64, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]entity.Review, int64, error)
	// ListLikedByUser возвращает отзывы, лайкнутые пользователем,
	// в порядке убывания времени лайка
	ListLikedByUser(ctx context.Context, userID string, offset, limit int) ([]entity.Review, int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	SumLikesReceived(ctx context.Context, userID string) (int64, error)
}

type ReviewLikeRepository interface {
	// Toggle атомарно переключает лайк и счётчик likes_count
	Toggle(ctx context.Context, reviewID uuid.UUID, userID string) (liked bool, likesCount int, err error)
	// LikedSet возвращает множество reviewID, лайкнутых пользователем
	LikedSet(ctx context.Context, userID string, reviewIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type SavedCollegeRepository interface {
	// Toggle атомарно переключает существование закладки
	Toggle(ctx context.Context, collegeID uuid.UUID, userID string) (saved bool, err error)
	// SavedSet возвращает множество collegeID, сохранённых пользователем
	SavedSet(ctx context.Context, userID string, collegeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]entity.SavedCollege, int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
