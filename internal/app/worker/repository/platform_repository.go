package repository

import (
	"context"
	"fmt"

	"campusrate/internal/app/worker/entity"

	"gorm.io/gorm"
)

// platformRepository реализует PlatformRepository поверх GORM
// Все запросы только на чтение: снапшот не должен влиять на Campus API
type platformRepository struct {
	db *gorm.DB
}

// NewPlatformRepository создает новый репозиторий агрегатов платформы
func NewPlatformRepository(db *gorm.DB) PlatformRepository {
	return &platformRepository{db: db}
}

// CountColleges возвращает общее число колледжей
func (r *platformRepository) CountColleges(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("colleges").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count colleges: %w", err)
	}
	return count, nil
}

// CountReviews возвращает общее число отзывов
func (r *platformRepository) CountReviews(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("reviews").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// CountLikes возвращает общее число лайков отзывов
func (r *platformRepository) CountLikes(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("review_likes").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// CountBookmarks возвращает общее число закладок
func (r *platformRepository) CountBookmarks(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("saved_colleges").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return count, nil
}

// AverageRating возвращает средний рейтинг по всем отзывам
// COALESCE защищает от NULL на пустой таблице
func (r *platformRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg, nil
}

// CountReviewsSince возвращает число отзывов за последние hours часов
func (r *platformRepository) CountReviewsSince(ctx context.Context, hours int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("reviews").
		Where(fmt.Sprintf("created_at > NOW() - INTERVAL '%d hours'", hours)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recent reviews: %w", err)
	}
	return count, nil
}

// TopRatedColleges возвращает лучшие колледжи по рейтингу
// Колледжи без отзывов в рейтинг не попадают
func (r *platformRepository) TopRatedColleges(ctx context.Context, limit int) ([]entity.TopCollege, error) {
	var top []entity.TopCollege
	err := r.db.WithContext(ctx).
		Table("colleges").
		Select("id AS college_id, name, average_rating, total_reviews").
		Where("total_reviews > 0").
		Order("average_rating DESC, total_reviews DESC").
		Limit(limit).
		Scan(&top).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get top rated colleges: %w", err)
	}
	return top, nil
}
