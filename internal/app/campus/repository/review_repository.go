package repository

import (
	"context"
	"errors"
	"fmt"

	"campusrate/internal/app/campus/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Код PostgreSQL для нарушения уникального индекса
const pgUniqueViolation = "23505"

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository создает новый репозиторий отзывов
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create вставляет отзыв и пересчитывает агрегат колледжа.
// Вставка и пересчёт идут в одной транзакции: читатель никогда не видит
// отзыв без обновлённого агрегата. Дубликат (college_id, user_id)
// ловится уникальным индексом и возвращается как ErrAlreadyReviewed
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return ErrAlreadyReviewed
			}
			return fmt.Errorf("failed to create review: %w", err)
		}

		// Пересчёт читает уже вставленную строку - порядок важен
		return recalcCollegeRating(tx, review.CollegeID)
	})
}

// GetByID получает отзыв по ID
func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	result := r.db.WithContext(ctx).First(&review, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, result.Error
	}

	return &review, nil
}

// Update сохраняет изменённые поля отзыва.
// Если менялся rating, агрегат колледжа пересчитывается в той же транзакции
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review, ratingChanged bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(review).
			Where("id = ?", review.ID).
			Updates(map[string]interface{}{
				"rating":          review.Rating,
				"title":           review.Title,
				"content":         review.Content,
				"program":         review.Program,
				"graduation_year": review.GraduationYear,
			})

		if result.Error != nil {
			return fmt.Errorf("failed to update review: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrReviewNotFound
		}

		if !ratingChanged {
			return nil
		}

		return recalcCollegeRating(tx, review.CollegeID)
	})
}

// Delete удаляет отзыв вместе с лайками и пересчитывает агрегат колледжа.
// Всё в одной транзакции: либо исчезают отзыв, лайки и вклад в агрегат, либо ничего
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review entity.Review
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return err
		}

		if err := tx.Where("review_id = ?", id).Delete(&entity.ReviewLike{}).Error; err != nil {
			return fmt.Errorf("failed to delete review likes: %w", err)
		}

		if err := tx.Delete(&entity.Review{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		return recalcCollegeRating(tx, review.CollegeID)
	})
}

// ListByCollege получает страницу отзывов колледжа, свежие первыми
func (r *reviewRepository) ListByCollege(ctx context.Context, collegeID uuid.UUID, offset, limit int) ([]entity.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Review{}).Where("college_id = ?", collegeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []entity.Review
	result := query.
		Order("created_at DESC, id").
		Offset(offset).
		Limit(limit).
		Find(&reviews)

	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", result.Error)
	}

	return reviews, total, nil
}

// ListByUser получает страницу отзывов пользователя
func (r *reviewRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]entity.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Review{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count user reviews: %w", err)
	}

	var reviews []entity.Review
	result := query.
		Order("created_at DESC, id").
		Offset(offset).
		Limit(limit).
		Find(&reviews)

	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list user reviews: %w", result.Error)
	}

	return reviews, total, nil
}

// ListLikedByUser получает отзывы, лайкнутые пользователем,
// в порядке убывания времени лайка
func (r *reviewRepository) ListLikedByUser(ctx context.Context, userID string, offset, limit int) ([]entity.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Review{}).
		Joins("JOIN review_likes ON review_likes.review_id = reviews.id").
		Where("review_likes.user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count liked reviews: %w", err)
	}

	var reviews []entity.Review
	result := query.
		Order("review_likes.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews)

	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list liked reviews: %w", result.Error)
	}

	return reviews, total, nil
}

// CountByUser возвращает число отзывов пользователя
func (r *reviewRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Review{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count user reviews: %w", err)
	}
	return total, nil
}

// SumLikesReceived возвращает суммарное число лайков на отзывах пользователя
func (r *reviewRepository) SumLikesReceived(ctx context.Context, userID string) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&entity.Review{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(likes_count), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum likes received: %w", err)
	}
	return sum, nil
}

// recalcCollegeRating пересчитывает денормализованный агрегат колледжа
// по текущему набору отзывов. Вызывается только внутри транзакции мутации,
// поэтому агрегирующий запрос видит пост-мутационное состояние.
// При нуле отзывов средний рейтинг ровно 0.0
func recalcCollegeRating(tx *gorm.DB, collegeID uuid.UUID) error {
	var agg struct {
		Total int64
		Avg   float64
	}

	err := tx.Model(&entity.Review{}).
		Select("COUNT(*) AS total, COALESCE(AVG(rating), 0) AS avg").
		Where("college_id = ?", collegeID).
		Scan(&agg).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate college reviews: %w", err)
	}

	average := 0.0
	if agg.Total > 0 {
		average = entity.RoundRating(agg.Avg)
	}

	result := tx.Model(&entity.College{}).
		Where("id = ?", collegeID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_reviews":  agg.Total,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update college rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCollegeNotFound
	}

	return nil
}
