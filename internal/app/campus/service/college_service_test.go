package service

import (
	"context"
	"testing"

	"campusrate/internal/app/campus/entity"
	"campusrate/internal/app/campus/repository"
	"campusrate/internal/app/campus/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===================== GetCollege Tests =====================

func TestGetCollege_Success(t *testing.T) {
	// Arrange
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	svc := NewCollegeService(collegeRepo, savedRepo)

	ctx := context.Background()
	collegeID := uuid.New()
	userID := "user-123"

	collegeRepo.On("GetByID", ctx, collegeID).Return(&entity.College{
		ID:   collegeID,
		Name: "Test College",
	}, nil)
	savedRepo.On("SavedSet", ctx, userID, []uuid.UUID{collegeID}).
		Return(map[uuid.UUID]bool{collegeID: true}, nil)

	// Act
	result, err := svc.GetCollege(ctx, collegeID, userID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Test College", result.Name)
	assert.True(t, result.IsSavedByCurrentUser)
	collegeRepo.AssertExpectations(t)
	savedRepo.AssertExpectations(t)
}

func TestGetCollege_Anonymous_NoBookmarkLookup(t *testing.T) {
	// Arrange
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	svc := NewCollegeService(collegeRepo, savedRepo)

	ctx := context.Background()
	collegeID := uuid.New()

	collegeRepo.On("GetByID", ctx, collegeID).Return(&entity.College{ID: collegeID}, nil)

	// Act
	result, err := svc.GetCollege(ctx, collegeID, "")

	// Assert
	assert.NoError(t, err)
	assert.False(t, result.IsSavedByCurrentUser)
	savedRepo.AssertNotCalled(t, "SavedSet")
}

func TestGetCollege_NotFound(t *testing.T) {
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	svc := NewCollegeService(collegeRepo, savedRepo)

	ctx := context.Background()
	collegeID := uuid.New()

	collegeRepo.On("GetByID", ctx, collegeID).Return(nil, repository.ErrCollegeNotFound)

	// Act
	result, err := svc.GetCollege(ctx, collegeID, "")

	// Assert
	assert.ErrorIs(t, err, ErrCollegeNotFound)
	assert.Nil(t, result)
}

// ===================== ListColleges Tests =====================

func TestListColleges_FullPipeline(t *testing.T) {
	// Arrange
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	svc := NewCollegeService(collegeRepo, savedRepo)

	ctx := context.Background()
	userID := "user-123"

	top := entity.College{ID: uuid.New(), Name: "Top", AverageRating: 4.8, TotalReviews: 10}
	mid := entity.College{ID: uuid.New(), Name: "Mid", AverageRating: 3.5, TotalReviews: 5}

	collegeRepo.On("List", ctx, repository.CollegeListFilter{
		Search: "college",
		Offset: 0,
		Limit:  10,
	}).Return([]entity.College{mid, top}, int64(23), nil)

	savedRepo.On("SavedSet", ctx, userID, []uuid.UUID{top.ID, mid.ID}).
		Return(map[uuid.UUID]bool{mid.ID: true}, nil)

	// Act
	result, err := svc.ListColleges(ctx, userID, &entity.ListCollegesQuery{
		Search: "college",
		SortBy: "highest",
	})

	// Assert
	assert.NoError(t, err)
	// Ранжирование highest: Top впереди Mid
	assert.Equal(t, "Top", result.Colleges[0].Name)
	assert.Equal(t, "Mid", result.Colleges[1].Name)
	assert.False(t, result.Colleges[0].IsSavedByCurrentUser)
	assert.True(t, result.Colleges[1].IsSavedByCurrentUser)
	// total - число строк до metadata-фильтра, pages = ceil(23/10)
	assert.Equal(t, int64(23), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 3, result.Pages)
}

func TestListColleges_MetadataFilterShrinksPage(t *testing.T) {
	// Arrange
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	svc := NewCollegeService(collegeRepo, savedRepo)

	ctx := context.Background()

	science := entity.College{ID: uuid.New(), Name: "Science", Programs: []string{"+2 Science"}}
	commerce := entity.College{ID: uuid.New(), Name: "Commerce", Programs: []string{"BBA"}}

	collegeRepo.On("List", ctx, mock.AnythingOfType("repository.CollegeListFilter")).
		Return([]entity.College{science, commerce}, int64(2), nil)

	// Act
	result, err := svc.ListColleges(ctx, "", &entity.ListCollegesQuery{
		Streams: "commerce",
	})

	// Assert
	assert.NoError(t, err)
	// Страница после metadata-фильтра короче, total остаётся числом строк до него
	assert.Len(t, result.Colleges, 1)
	assert.Equal(t, "Commerce", result.Colleges[0].Name)
	assert.Equal(t, int64(2), result.Total)
}

func TestListColleges_PagingNormalized(t *testing.T) {
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	svc := NewCollegeService(collegeRepo, savedRepo)

	ctx := context.Background()

	// page=0 и limit=0 приводятся к page=1, limit=10
	collegeRepo.On("List", ctx, repository.CollegeListFilter{
		Offset: 0,
		Limit:  10,
	}).Return([]entity.College{}, int64(0), nil)

	result, err := svc.ListColleges(ctx, "", &entity.ListCollegesQuery{Page: 0, Limit: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 0, result.Pages)
	collegeRepo.AssertExpectations(t)
}

// ===================== ToggleBookmark Tests =====================

func TestToggleBookmark_Saved(t *testing.T) {
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	svc := NewCollegeService(collegeRepo, savedRepo)

	ctx := context.Background()
	collegeID := uuid.New()
	userID := "user-123"

	savedRepo.On("Toggle", ctx, collegeID, userID).Return(true, nil)

	// Act
	result, err := svc.ToggleBookmark(ctx, collegeID, userID)

	// Assert
	assert.NoError(t, err)
	assert.True(t, result.Saved)
	assert.Equal(t, collegeID, result.CollegeID)
}

func TestToggleBookmark_RetriesOnceOnConflict(t *testing.T) {
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	svc := NewCollegeService(collegeRepo, savedRepo)

	ctx := context.Background()
	collegeID := uuid.New()
	userID := "user-123"

	// Первый вызов проигрывает гонку вставки, второй снимает закладку
	savedRepo.On("Toggle", ctx, collegeID, userID).
		Return(false, repository.ErrToggleConflict).Once()
	savedRepo.On("Toggle", ctx, collegeID, userID).
		Return(false, nil).Once()

	// Act
	result, err := svc.ToggleBookmark(ctx, collegeID, userID)

	// Assert
	assert.NoError(t, err)
	assert.False(t, result.Saved)
	savedRepo.AssertExpectations(t)
}

func TestToggleBookmark_CollegeNotFound(t *testing.T) {
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	svc := NewCollegeService(collegeRepo, savedRepo)

	ctx := context.Background()
	collegeID := uuid.New()

	savedRepo.On("Toggle", ctx, collegeID, "user-123").
		Return(false, repository.ErrCollegeNotFound)

	// Act
	result, err := svc.ToggleBookmark(ctx, collegeID, "user-123")

	// Assert
	assert.ErrorIs(t, err, ErrCollegeNotFound)
	assert.Nil(t, result)
}

// ===================== GetSavedColleges Tests =====================

func TestGetSavedColleges_Success(t *testing.T) {
	collegeRepo := new(mocks.MockCollegeRepository)
	savedRepo := new(mocks.MockSavedCollegeRepository)
	svc := NewCollegeService(collegeRepo, savedRepo)

	ctx := context.Background()
	userID := "user-123"
	collegeID := uuid.New()

	savedRepo.On("ListByUser", ctx, userID, 0, 10).Return([]entity.SavedCollege{
		{
			ID:        uuid.New(),
			CollegeID: collegeID,
			UserID:    userID,
			College: entity.College{
				ID:            collegeID,
				Name:          "Saved College",
				AverageRating: 4.2,
				TotalReviews:  7,
			},
		},
	}, int64(1), nil)

	// Act
	result, err := svc.GetSavedColleges(ctx, userID, 1, 10)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, result.SavedColleges, 1)
	assert.Equal(t, "Saved College", result.SavedColleges[0].CollegeName)
	assert.Equal(t, 4.2, result.SavedColleges[0].CollegeAverageRating)
	assert.Equal(t, int64(1), result.Total)
}
