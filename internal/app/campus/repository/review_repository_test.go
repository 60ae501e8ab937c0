package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"campusrate/internal/app/campus/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ReviewRepositoryTestSuite тестовый suite для репозитория отзывов.
// Проверяет главный инвариант: мутация отзыва и пересчёт агрегата
// колледжа идут в одной транзакции
type ReviewRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  ReviewRepository
	sqlDB *sql.DB
}

func TestReviewRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReviewRepositoryTestSuite))
}

func (s *ReviewRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewReviewRepository(s.db)
}

func (s *ReviewRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// expectRecalc ожидает агрегирующий запрос и UPDATE колледжа внутри транзакции
func (s *ReviewRepositoryTestSuite) expectRecalc(collegeID uuid.UUID, total int64, avg float64, stored float64) {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) AS total, COALESCE(AVG(rating), 0) AS avg FROM "reviews" WHERE college_id = $1`)).
		WithArgs(collegeID).
		WillReturnRows(sqlmock.NewRows([]string{"total", "avg"}).AddRow(total, avg))

	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "colleges" SET`)).
		WithArgs(stored, total, sqlmock.AnyArg(), collegeID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

// ===================== Create Tests =====================

func (s *ReviewRepositoryTestSuite) TestCreate_RecalculatesInSameTransaction() {
	ctx := context.Background()
	collegeID := uuid.New()

	review := &entity.Review{
		ID:        uuid.New(),
		CollegeID: collegeID,
		UserID:    "user-123",
		Rating:    5,
		Title:     "Great college",
		Content:   "Strong faculty and good labs overall",
	}

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reviews"`)).
		WillReturnRows(sqlmock.NewRows([]string{"is_verified", "likes_count"}).AddRow(false, 0))
	// AVG 4.55 хранится округлённым до одного знака
	s.expectRecalc(collegeID, 2, 4.55, 4.6)
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Create(ctx, review)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestCreate_Duplicate() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reviews"`)).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Create(ctx, &entity.Review{
		ID:        uuid.New(),
		CollegeID: uuid.New(),
		UserID:    "user-123",
		Rating:    4,
	})

	// Assert: дубликат откатывает транзакцию, агрегат не трогается
	s.ErrorIs(err, ErrAlreadyReviewed)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Update Tests =====================

func (s *ReviewRepositoryTestSuite) TestUpdate_ContentOnly_SkipsRecalc() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reviews" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Update(ctx, &entity.Review{
		ID:        uuid.New(),
		CollegeID: uuid.New(),
		Rating:    4,
		Content:   "Updated content only, rating unchanged",
	}, false)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestUpdate_RatingChanged_Recalculates() {
	ctx := context.Background()
	collegeID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reviews" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.expectRecalc(collegeID, 3, 3.8, 3.8)
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Update(ctx, &entity.Review{
		ID:        uuid.New(),
		CollegeID: collegeID,
		Rating:    2,
	}, true)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reviews" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Update(ctx, &entity.Review{ID: uuid.New()}, true)

	// Assert
	s.ErrorIs(err, ErrReviewNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Delete Tests =====================

func (s *ReviewRepositoryTestSuite) TestDelete_LastReview_ResetsAggregate() {
	ctx := context.Background()
	reviewID := uuid.New()
	collegeID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" WHERE id = $1`)).
		WithArgs(reviewID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "college_id", "user_id", "rating"}).
			AddRow(reviewID, collegeID, "user-123", 5.0))
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "review_likes" WHERE review_id = $1`)).
		WithArgs(reviewID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reviews" WHERE id = $1`)).
		WithArgs(reviewID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Удалён последний отзыв: агрегат возвращается к 0.0 / 0
	s.expectRecalc(collegeID, 0, 0, 0.0)
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Delete(ctx, reviewID)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestDelete_NotFound() {
	ctx := context.Background()
	reviewID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" WHERE id = $1`)).
		WithArgs(reviewID, 1).
		WillReturnError(gorm.ErrRecordNotFound)
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Delete(ctx, reviewID)

	// Assert
	s.ErrorIs(err, ErrReviewNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}
