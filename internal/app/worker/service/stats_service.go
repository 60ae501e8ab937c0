package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"campusrate/internal/app/worker/entity"
	"campusrate/internal/app/worker/repository"
	"campusrate/pkg/metrics"
)

const topCollegesLimit = 10

// StatsService строит снапшот статистики платформы.
// Снапшот собирается из PostgreSQL и кладётся в Redis с TTL;
// события из Kafka служат триггером для внеочередного пересчёта
type StatsService struct {
	platformRepo repository.PlatformRepository
	statsRepo    repository.StatsRepository
}

// NewStatsService создает новый сервис статистики
func NewStatsService(
	platformRepo repository.PlatformRepository,
	statsRepo repository.StatsRepository,
) *StatsService {
	return &StatsService{
		platformRepo: platformRepo,
		statsRepo:    statsRepo,
	}
}

// BuildSnapshot строит снапшот из PostgreSQL и сохраняет его в Redis
func (s *StatsService) BuildSnapshot(ctx context.Context) (*entity.PlatformStats, error) {
	start := time.Now()

	stats, err := s.collectStats(ctx)
	if err != nil {
		metrics.WorkerStatsSnapshots.WithLabelValues("failed").Inc()
		return nil, err
	}

	if err := s.statsRepo.Set(ctx, stats); err != nil {
		metrics.WorkerStatsSnapshots.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	metrics.WorkerStatsSnapshots.WithLabelValues("success").Inc()
	metrics.WorkerSnapshotDuration.Observe(time.Since(start).Seconds())

	log.Printf("Platform stats snapshot built: %d colleges, %d reviews, avg rating %.2f",
		stats.TotalColleges, stats.TotalReviews, stats.AverageRating)

	return stats, nil
}

// RecordEvent учитывает событие отзыва: снапшот помечается устаревшим
// пересборкой. Пересборка на каждое событие допустима, поток событий
// отзывов на порядки меньше потока чтений
func (s *StatsService) RecordEvent(ctx context.Context, event *entity.ReviewEvent) error {
	log.Printf("Recording %s event for review %s (college %s)",
		event.EventType, event.ReviewID, event.CollegeID)

	if _, err := s.BuildSnapshot(ctx); err != nil {
		return fmt.Errorf("failed to rebuild snapshot after %s: %w", event.EventType, err)
	}

	return nil
}

// SnapshotAvailable сообщает, есть ли снапшот в Redis
func (s *StatsService) SnapshotAvailable(ctx context.Context) (bool, error) {
	return s.statsRepo.Exists(ctx)
}

// collectStats собирает агрегаты платформы из PostgreSQL
func (s *StatsService) collectStats(ctx context.Context) (*entity.PlatformStats, error) {
	totalColleges, err := s.platformRepo.CountColleges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect college count: %w", err)
	}

	totalReviews, err := s.platformRepo.CountReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect review count: %w", err)
	}

	totalLikes, err := s.platformRepo.CountLikes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect like count: %w", err)
	}

	totalBookmarks, err := s.platformRepo.CountBookmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect bookmark count: %w", err)
	}

	avgRating, err := s.platformRepo.AverageRating(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect average rating: %w", err)
	}

	reviewsLast24h, err := s.platformRepo.CountReviewsSince(ctx, 24)
	if err != nil {
		return nil, fmt.Errorf("failed to collect recent review count: %w", err)
	}

	topColleges, err := s.platformRepo.TopRatedColleges(ctx, topCollegesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to collect top colleges: %w", err)
	}

	return &entity.PlatformStats{
		TotalColleges:    totalColleges,
		TotalReviews:     totalReviews,
		TotalLikes:       totalLikes,
		TotalBookmarks:   totalBookmarks,
		AverageRating:    avgRating,
		ReviewsLast24h:   reviewsLast24h,
		TopRatedColleges: topColleges,
		GeneratedAt:      time.Now(),
	}, nil
}
