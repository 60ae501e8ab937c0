package service

import (
	"context"

	"campusrate/internal/app/worker/entity"
)

// StatsServiceInterface - построение и хранение снапшота статистики платформы
type StatsServiceInterface interface {
	// BuildSnapshot строит снапшот из PostgreSQL и сохраняет его в Redis
	BuildSnapshot(ctx context.Context) (*entity.PlatformStats, error)
	// RecordEvent учитывает событие отзыва из Kafka
	RecordEvent(ctx context.Context, event *entity.ReviewEvent) error
	// SnapshotAvailable сообщает, есть ли актуальный снапшот в Redis
	SnapshotAvailable(ctx context.Context) (bool, error)
}
