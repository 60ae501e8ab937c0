package repository

import (
	"context"

	"campusrate/internal/app/worker/entity"
)

// StatsRepository - хранилище снапшота статистики платформы (Redis)
type StatsRepository interface {
	// Get получает последний снапшот статистики
	Get(ctx context.Context) (*entity.PlatformStats, error)
	// Set сохраняет снапшот статистики с TTL
	Set(ctx context.Context, stats *entity.PlatformStats) error
	// Exists проверяет наличие снапшота
	Exists(ctx context.Context) (bool, error)
}

// PlatformRepository - чтение агрегатов платформы из PostgreSQL
// Worker никогда не пишет в БД Campus API
type PlatformRepository interface {
	// CountColleges возвращает общее число колледжей
	CountColleges(ctx context.Context) (int64, error)
	// CountReviews возвращает общее число отзывов
	CountReviews(ctx context.Context) (int64, error)
	// CountLikes возвращает общее число лайков отзывов
	CountLikes(ctx context.Context) (int64, error)
	// CountBookmarks возвращает общее число закладок
	CountBookmarks(ctx context.Context) (int64, error)
	// AverageRating возвращает средний рейтинг по всем отзывам
	AverageRating(ctx context.Context) (float64, error)
	// CountReviewsSince возвращает число отзывов, созданных за период
	CountReviewsSince(ctx context.Context, hours int) (int64, error)
	// TopRatedColleges возвращает лучшие колледжи по рейтингу
	TopRatedColleges(ctx context.Context, limit int) ([]entity.TopCollege, error)
}
