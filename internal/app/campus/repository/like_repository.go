package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusrate/internal/app/campus/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reviewLikeRepository struct {
	db *gorm.DB
}

// NewReviewLikeRepository создает новый репозиторий лайков отзывов
func NewReviewLikeRepository(db *gorm.DB) ReviewLikeRepository {
	return &reviewLikeRepository{db: db}
}

// Toggle атомарно переключает лайк: удаляет существующую связь и уменьшает
// счётчик, либо вставляет связь и увеличивает его. Строка отзыва берётся
// под FOR UPDATE, поэтому likes_count и существование связи меняются вместе.
// Гонка вставки от одного пользователя ловится уникальным индексом
// и возвращается как ErrToggleConflict
func (r *reviewLikeRepository) Toggle(ctx context.Context, reviewID uuid.UUID, userID string) (bool, int, error) {
	var liked bool
	var likesCount int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review entity.Review
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&review, "id = ?", reviewID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return fmt.Errorf("failed to lock review: %w", err)
		}

		var like entity.ReviewLike
		err = tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&like).Error

		switch {
		case err == nil:
			// Связь есть - снимаем лайк
			if err := tx.Delete(&entity.ReviewLike{}, "id = ?", like.ID).Error; err != nil {
				return fmt.Errorf("failed to delete like: %w", err)
			}
			likesCount = review.LikesCount - 1
			liked = false

		case errors.Is(err, gorm.ErrRecordNotFound):
			// Связи нет - ставим лайк
			newLike := entity.ReviewLike{
				ID:        uuid.New(),
				ReviewID:  reviewID,
				UserID:    userID,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(&newLike).Error; err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
					return ErrToggleConflict
				}
				return fmt.Errorf("failed to create like: %w", err)
			}
			likesCount = review.LikesCount + 1
			liked = true

		default:
			return fmt.Errorf("failed to check like existence: %w", err)
		}

		result := tx.Model(&entity.Review{}).
			Where("id = ?", reviewID).
			Update("likes_count", likesCount)
		if result.Error != nil {
			return fmt.Errorf("failed to update likes count: %w", result.Error)
		}

		return nil
	})

	if err != nil {
		return false, 0, err
	}

	return liked, likesCount, nil
}

// LikedSet возвращает множество reviewID из переданного списка,
// которые пользователь лайкнул. Один запрос на всю страницу
func (r *reviewLikeRepository) LikedSet(ctx context.Context, userID string, reviewIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return liked, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.ReviewLike{}).
		Where("user_id = ? AND review_id IN ?", userID, reviewIDs).
		Pluck("review_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load liked set: %w", err)
	}

	for _, id := range ids {
		liked[id] = true
	}

	return liked, nil
}
