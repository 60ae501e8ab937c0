package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campusrate/internal/app/worker/entity"
	"campusrate/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// statsRepository реализует StatsRepository для работы с Redis
type statsRepository struct {
	client *redis.Client
	ttl    time.Duration // TTL снапшота статистики
}

// NewStatsRepository создает новый репозиторий снапшота статистики
func NewStatsRepository(client *redis.Client, ttl time.Duration) StatsRepository {
	return &statsRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get получает снапшот статистики из Redis
func (r *statsRepository) Get(ctx context.Context) (*entity.PlatformStats, error) {
	timer := metrics.NewRedisTimer("stats-worker", metrics.RedisOpGet)
	data, err := r.client.Get(ctx, entity.PlatformStatsRedisKey).Result()
	timer.ObserveDuration()

	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("platform stats snapshot not found")
		}
		metrics.RecordRedisError("stats-worker", metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get platform stats from redis: %w", err)
	}

	var stats entity.PlatformStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal platform stats: %w", err)
	}

	return &stats, nil
}

// Set сохраняет снапшот статистики в Redis с TTL
func (r *statsRepository) Set(ctx context.Context, stats *entity.PlatformStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal platform stats: %w", err)
	}

	timer := metrics.NewRedisTimer("stats-worker", metrics.RedisOpSet)
	err = r.client.Set(ctx, entity.PlatformStatsRedisKey, data, r.ttl).Err()
	timer.ObserveDuration()

	if err != nil {
		metrics.RecordRedisError("stats-worker", metrics.RedisOpSet)
		return fmt.Errorf("failed to set platform stats in redis: %w", err)
	}

	return nil
}

// Exists проверяет наличие снапшота в Redis
func (r *statsRepository) Exists(ctx context.Context) (bool, error) {
	exists, err := r.client.Exists(ctx, entity.PlatformStatsRedisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return exists > 0, nil
}
