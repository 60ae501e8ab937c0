package mocks

import (
	"context"

	"campusrate/internal/app/worker/entity"

	"github.com/stretchr/testify/mock"
)

// MockStatsRepository мок для StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Get(ctx context.Context) (*entity.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PlatformStats), args.Error(1)
}

func (m *MockStatsRepository) Set(ctx context.Context, stats *entity.PlatformStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsRepository) Exists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockPlatformRepository мок для PlatformRepository
type MockPlatformRepository struct {
	mock.Mock
}

func (m *MockPlatformRepository) CountColleges(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlatformRepository) CountReviews(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlatformRepository) CountLikes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlatformRepository) CountBookmarks(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlatformRepository) AverageRating(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPlatformRepository) CountReviewsSince(ctx context.Context, hours int) (int64, error) {
	args := m.Called(ctx, hours)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlatformRepository) TopRatedColleges(ctx context.Context, limit int) ([]entity.TopCollege, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TopCollege), args.Error(1)
}

// MockStatsService мок для StatsServiceInterface
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) BuildSnapshot(ctx context.Context) (*entity.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PlatformStats), args.Error(1)
}

func (m *MockStatsService) RecordEvent(ctx context.Context, event *entity.ReviewEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockStatsService) SnapshotAvailable(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
