package service

import (
	"context"
	"errors"
	"testing"

	"campusrate/internal/app/campus/entity"
	"campusrate/internal/app/campus/repository"
	"campusrate/internal/app/campus/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewService(
	reviewRepo *mocks.MockReviewRepository,
	likeRepo *mocks.MockReviewLikeRepository,
	collegeRepo *mocks.MockCollegeRepository,
	savedRepo *mocks.MockSavedCollegeRepository,
	publisher *mocks.MockMessagePublisher,
) *ReviewService {
	return NewReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)
}

// ===================== CreateReview Tests =====================

func TestCreateReview_Success(t *testing.T) {
	// Arrange
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	collegeID := uuid.New()

	collegeRepo.On("GetByID", ctx, collegeID).Return(&entity.College{
		ID:   collegeID,
		Name: "Test College",
	}, nil)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*entity.Review")).Return(nil)
	publisher.On("PublishMessage", ctx, collegeID.String(), mock.Anything).Return(nil)

	req := &entity.CreateReviewRequest{
		CollegeID: collegeID,
		Rating:    4.5,
		Title:     "Good college",
		Content:   "Detailed review content here",
	}

	// Act
	result, err := svc.CreateReview(ctx, "user-123", "Alice", req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "user-123", result.UserID)
	assert.Equal(t, "Alice", result.UserName)
	assert.Equal(t, "Test College", result.CollegeName)
	assert.True(t, result.IsOwnedByCurrentUser)
	reviewRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateReview_CollegeNotFound(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	collegeID := uuid.New()

	collegeRepo.On("GetByID", ctx, collegeID).Return(nil, repository.ErrCollegeNotFound)

	// Act
	result, err := svc.CreateReview(ctx, "user-123", "Alice", &entity.CreateReviewRequest{
		CollegeID: collegeID,
		Rating:    4.0,
		Title:     "Title here",
		Content:   "Content long enough",
	})

	// Assert
	assert.ErrorIs(t, err, ErrCollegeNotFound)
	assert.Nil(t, result)
	reviewRepo.AssertNotCalled(t, "Create")
}

func TestCreateReview_Duplicate(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	collegeID := uuid.New()

	collegeRepo.On("GetByID", ctx, collegeID).Return(&entity.College{ID: collegeID}, nil)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*entity.Review")).
		Return(repository.ErrAlreadyReviewed)

	// Act
	result, err := svc.CreateReview(ctx, "user-123", "Alice", &entity.CreateReviewRequest{
		CollegeID: collegeID,
		Rating:    4.0,
		Title:     "Title here",
		Content:   "Content long enough",
	})

	// Assert
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Nil(t, result)
	publisher.AssertNotCalled(t, "PublishMessage") // Событие не публикуется
}

func TestCreateReview_KafkaFailureDoesNotFailRequest(t *testing.T) {
	// Отказ Kafka не откатывает уже закоммиченный отзыв
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	collegeID := uuid.New()

	collegeRepo.On("GetByID", ctx, collegeID).Return(&entity.College{ID: collegeID}, nil)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*entity.Review")).Return(nil)
	publisher.On("PublishMessage", ctx, collegeID.String(), mock.Anything).
		Return(errors.New("kafka unavailable"))

	// Act
	result, err := svc.CreateReview(ctx, "user-123", "Alice", &entity.CreateReviewRequest{
		CollegeID: collegeID,
		Rating:    4.0,
		Title:     "Title here",
		Content:   "Content long enough",
	})

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
}

// ===================== UpdateReview Tests =====================

func TestUpdateReview_Forbidden(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	reviewID := uuid.New()

	reviewRepo.On("GetByID", ctx, reviewID).Return(&entity.Review{
		ID:     reviewID,
		UserID: "owner-user",
	}, nil)

	// Act - чужой пользователь пытается обновить отзыв
	result, err := svc.UpdateReview(ctx, reviewID, "other-user", &entity.UpdateReviewRequest{Rating: 3})

	// Assert
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, result)
	reviewRepo.AssertNotCalled(t, "Update")
}

func TestUpdateReview_RatingChangedTriggersRecalc(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	reviewID := uuid.New()
	collegeID := uuid.New()

	reviewRepo.On("GetByID", ctx, reviewID).Return(&entity.Review{
		ID:        reviewID,
		CollegeID: collegeID,
		UserID:    "user-123",
		Rating:    3.0,
	}, nil)
	// ratingChanged = true, так как 3.0 -> 5.0
	reviewRepo.On("Update", ctx, mock.AnythingOfType("*entity.Review"), true).Return(nil)
	publisher.On("PublishMessage", ctx, collegeID.String(), mock.Anything).Return(nil)
	collegeRepo.On("GetByID", ctx, collegeID).Return(&entity.College{ID: collegeID, Name: "C"}, nil)
	likeRepo.On("LikedSet", ctx, "user-123", []uuid.UUID{reviewID}).
		Return(map[uuid.UUID]bool{}, nil)

	// Act
	result, err := svc.UpdateReview(ctx, reviewID, "user-123", &entity.UpdateReviewRequest{Rating: 5.0})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 5.0, result.Rating)
	reviewRepo.AssertExpectations(t)
}

func TestUpdateReview_ContentOnly_NoRecalc(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	reviewID := uuid.New()
	collegeID := uuid.New()

	reviewRepo.On("GetByID", ctx, reviewID).Return(&entity.Review{
		ID:        reviewID,
		CollegeID: collegeID,
		UserID:    "user-123",
		Rating:    4.0,
	}, nil)
	// Нулевой Rating в запросе означает "оценка не меняется"
	reviewRepo.On("Update", ctx, mock.AnythingOfType("*entity.Review"), false).Return(nil)
	publisher.On("PublishMessage", ctx, collegeID.String(), mock.Anything).Return(nil)
	collegeRepo.On("GetByID", ctx, collegeID).Return(&entity.College{ID: collegeID}, nil)
	likeRepo.On("LikedSet", ctx, "user-123", []uuid.UUID{reviewID}).
		Return(map[uuid.UUID]bool{}, nil)

	// Act
	result, err := svc.UpdateReview(ctx, reviewID, "user-123", &entity.UpdateReviewRequest{
		Content: "Updated content long enough",
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 4.0, result.Rating)
	reviewRepo.AssertExpectations(t)
}

// ===================== DeleteReview Tests =====================

func TestDeleteReview_Success(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	reviewID := uuid.New()
	collegeID := uuid.New()

	reviewRepo.On("GetByID", ctx, reviewID).Return(&entity.Review{
		ID:        reviewID,
		CollegeID: collegeID,
		UserID:    "user-123",
	}, nil)
	reviewRepo.On("Delete", ctx, reviewID).Return(nil)
	publisher.On("PublishMessage", ctx, collegeID.String(), mock.Anything).Return(nil)

	// Act
	err := svc.DeleteReview(ctx, reviewID, "user-123")

	// Assert
	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestDeleteReview_Forbidden(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	reviewID := uuid.New()

	reviewRepo.On("GetByID", ctx, reviewID).Return(&entity.Review{
		ID:     reviewID,
		UserID: "owner-user",
	}, nil)

	// Act
	err := svc.DeleteReview(ctx, reviewID, "other-user")

	// Assert
	assert.ErrorIs(t, err, ErrForbidden)
	reviewRepo.AssertNotCalled(t, "Delete")
}

// ===================== ToggleLike Tests =====================

func TestToggleLike_Liked(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	reviewID := uuid.New()

	likeRepo.On("Toggle", ctx, reviewID, "user-123").Return(true, 6, nil)

	// Act
	result, err := svc.ToggleLike(ctx, reviewID, "user-123")

	// Assert
	assert.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 6, result.LikesCount)
}

func TestToggleLike_RetriesOnceOnConflict(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	reviewID := uuid.New()

	likeRepo.On("Toggle", ctx, reviewID, "user-123").
		Return(false, 0, repository.ErrToggleConflict).Once()
	likeRepo.On("Toggle", ctx, reviewID, "user-123").
		Return(false, 5, nil).Once()

	// Act
	result, err := svc.ToggleLike(ctx, reviewID, "user-123")

	// Assert
	assert.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 5, result.LikesCount)
	likeRepo.AssertExpectations(t)
}

func TestToggleLike_ReviewNotFound(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	reviewID := uuid.New()

	likeRepo.On("Toggle", ctx, reviewID, "user-123").
		Return(false, 0, repository.ErrReviewNotFound)

	// Act
	result, err := svc.ToggleLike(ctx, reviewID, "user-123")

	// Assert
	assert.ErrorIs(t, err, ErrReviewNotFound)
	assert.Nil(t, result)
}

// ===================== GetCollegeReviews Tests =====================

func TestGetCollegeReviews_FlagsResolved(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	collegeID := uuid.New()
	userID := "user-123"

	mine := entity.Review{ID: uuid.New(), CollegeID: collegeID, UserID: userID}
	other := entity.Review{ID: uuid.New(), CollegeID: collegeID, UserID: "other-user"}

	collegeRepo.On("GetByID", ctx, collegeID).Return(&entity.College{
		ID:   collegeID,
		Name: "Test College",
	}, nil)
	reviewRepo.On("ListByCollege", ctx, collegeID, 0, 10).
		Return([]entity.Review{mine, other}, int64(2), nil)
	likeRepo.On("LikedSet", ctx, userID, []uuid.UUID{mine.ID, other.ID}).
		Return(map[uuid.UUID]bool{other.ID: true}, nil)

	// Act
	result, err := svc.GetCollegeReviews(ctx, collegeID, userID, 1, 10)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, result.Reviews, 2)
	assert.True(t, result.Reviews[0].IsOwnedByCurrentUser)
	assert.False(t, result.Reviews[0].IsLikedByCurrentUser)
	assert.False(t, result.Reviews[1].IsOwnedByCurrentUser)
	assert.True(t, result.Reviews[1].IsLikedByCurrentUser)
	assert.Equal(t, "Test College", result.Reviews[0].CollegeName)
}

func TestGetCollegeReviews_Anonymous_NoLikeLookup(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	collegeID := uuid.New()

	collegeRepo.On("GetByID", ctx, collegeID).Return(&entity.College{ID: collegeID}, nil)
	reviewRepo.On("ListByCollege", ctx, collegeID, 0, 10).
		Return([]entity.Review{{ID: uuid.New(), CollegeID: collegeID, UserID: "someone"}}, int64(1), nil)

	// Act
	result, err := svc.GetCollegeReviews(ctx, collegeID, "", 1, 10)

	// Assert
	assert.NoError(t, err)
	assert.False(t, result.Reviews[0].IsLikedByCurrentUser)
	assert.False(t, result.Reviews[0].IsOwnedByCurrentUser)
	likeRepo.AssertNotCalled(t, "LikedSet")
}

// ===================== GetUserStats Tests =====================

func TestGetUserStats_Success(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	likeRepo := new(mocks.MockReviewLikeRepository)
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	publisher := new(mocks.MockMessagePublisher)
	svc := newReviewService(reviewRepo, likeRepo, collegeRepo, savedRepo, publisher)

	ctx := context.Background()
	userID := "user-123"

	reviewRepo.On("CountByUser", ctx, userID).Return(int64(4), nil)
	reviewRepo.On("SumLikesReceived", ctx, userID).Return(int64(17), nil)
	savedRepo.On("CountByUser", ctx, userID).Return(int64(3), nil)

	// Act
	result, err := svc.GetUserStats(ctx, userID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(4), result.TotalReviews)
	assert.Equal(t, int64(17), result.TotalLikesReceived)
	assert.Equal(t, int64(17), result.PeopleHelped)
	assert.Equal(t, int64(3), result.SavedCollegesCount)
}
