package mocks

import (
	"context"

	"campusrate/internal/app/campus/entity"
	"campusrate/internal/app/campus/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCollegeRepository мок для CollegeRepository
type MockCollegeRepository struct {
	mock.Mock
}

func (m *MockCollegeRepository) Create(ctx context.Context, college *entity.College) error {
	args := m.Called(ctx, college)
	return args.Error(0)
}

func (m *MockCollegeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.College, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.College), args.Error(1)
}

func (m *MockCollegeRepository) Update(ctx context.Context, college *entity.College) error {
	args := m.Called(ctx, college)
	return args.Error(0)
}

func (m *MockCollegeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCollegeRepository) List(ctx context.Context, filter repository.CollegeListFilter) ([]entity.College, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.College), args.Get(1).(int64), args.Error(2)
}

// MockReviewRepository мок для ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *entity.Review, ratingChanged bool) error {
	args := m.Called(ctx, review, ratingChanged)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByCollege(ctx context.Context, collegeID uuid.UUID, offset, limit int) ([]entity.Review, int64, error) {
	args := m.Called(ctx, collegeID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]entity.Review, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ListLikedByUser(ctx context.Context, userID string, offset, limit int) ([]entity.Review, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) SumLikesReceived(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewLikeRepository мок для ReviewLikeRepository
type MockReviewLikeRepository struct {
	mock.Mock
}

func (m *MockReviewLikeRepository) Toggle(ctx context.Context, reviewID uuid.UUID, userID string) (bool, int, error) {
	args := m.Called(ctx, reviewID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockReviewLikeRepository) LikedSet(ctx context.Context, userID string, reviewIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, userID, reviewIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

// MockSavedCollegeRepository мок для SavedCollegeRepository
type MockSavedCollegeRepository struct {
	mock.Mock
}

func (m *MockSavedCollegeRepository) Toggle(ctx context.Context, collegeID uuid.UUID, userID string) (bool, error) {
	args := m.Called(ctx, collegeID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedCollegeRepository) SavedSet(ctx context.Context, userID string, collegeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, userID, collegeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

func (m *MockSavedCollegeRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]entity.SavedCollege, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.SavedCollege), args.Get(1).(int64), args.Error(2)
}

func (m *MockSavedCollegeRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockMessagePublisher мок для MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
