package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusrate/internal/app/campus/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type savedCollegeRepository struct {
	db *gorm.DB
}

// NewSavedCollegeRepository создает новый репозиторий закладок колледжей
func NewSavedCollegeRepository(db *gorm.DB) SavedCollegeRepository {
	return &savedCollegeRepository{db: db}
}

// Toggle атомарно переключает существование закладки.
// У закладки нет счётчика на колледже, поэтому блокировка строки не нужна -
// достаточно уникального индекса (college_id, user_id) для защиты от гонок
func (r *savedCollegeRepository) Toggle(ctx context.Context, collegeID uuid.UUID, userID string) (bool, error) {
	var saved bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var college entity.College
		if err := tx.Select("id").First(&college, "id = ?", collegeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCollegeNotFound
			}
			return fmt.Errorf("failed to check college: %w", err)
		}

		var bookmark entity.SavedCollege
		err := tx.Where("college_id = ? AND user_id = ?", collegeID, userID).First(&bookmark).Error

		switch {
		case err == nil:
			// Закладка есть - убираем
			if err := tx.Delete(&entity.SavedCollege{}, "id = ?", bookmark.ID).Error; err != nil {
				return fmt.Errorf("failed to delete bookmark: %w", err)
			}
			saved = false

		case errors.Is(err, gorm.ErrRecordNotFound):
			// Закладки нет - сохраняем
			newBookmark := entity.SavedCollege{
				ID:        uuid.New(),
				CollegeID: collegeID,
				UserID:    userID,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(&newBookmark).Error; err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
					return ErrToggleConflict
				}
				return fmt.Errorf("failed to create bookmark: %w", err)
			}
			saved = true

		default:
			return fmt.Errorf("failed to check bookmark existence: %w", err)
		}

		return nil
	})

	if err != nil {
		return false, err
	}

	return saved, nil
}

// SavedSet возвращает множество collegeID из переданного списка,
// которые пользователь сохранил. Один запрос на всю страницу листинга
func (r *savedCollegeRepository) SavedSet(ctx context.Context, userID string, collegeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	saved := make(map[uuid.UUID]bool, len(collegeIDs))
	if len(collegeIDs) == 0 {
		return saved, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.SavedCollege{}).
		Where("user_id = ? AND college_id IN ?", userID, collegeIDs).
		Pluck("college_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load saved set: %w", err)
	}

	for _, id := range ids {
		saved[id] = true
	}

	return saved, nil
}

// ListByUser получает страницу закладок пользователя с данными колледжей
func (r *savedCollegeRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]entity.SavedCollege, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.SavedCollege{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count saved colleges: %w", err)
	}

	var bookmarks []entity.SavedCollege
	result := query.
		Preload("College").
		Order("created_at DESC, id").
		Offset(offset).
		Limit(limit).
		Find(&bookmarks)

	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list saved colleges: %w", result.Error)
	}

	return bookmarks, total, nil
}

// CountByUser возвращает число закладок пользователя
func (r *savedCollegeRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.SavedCollege{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count saved colleges: %w", err)
	}
	return total, nil
}
