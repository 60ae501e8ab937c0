package repository

import (
	"context"
	"errors"
	"fmt"

	"campusrate/internal/app/campus/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type collegeRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewCollegeRepository создает новый репозиторий колледжей
func NewCollegeRepository(db *gorm.DB) CollegeRepository {
	return &collegeRepository{db: db}
}

// Create создает новый колледж в PostgreSQL
func (r *collegeRepository) Create(ctx context.Context, college *entity.College) error {
	result := r.db.WithContext(ctx).Create(college)
	return result.Error
}

// GetByID получает колледж по ID из PostgreSQL
func (r *collegeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.College, error) {
	var college entity.College
	result := r.db.WithContext(ctx).First(&college, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, result.Error
	}

	return &college, nil
}

// Update обновляет описательные поля колледжа.
// Агрегат (average_rating, total_reviews) здесь не трогается -
// его пишет только пересчёт внутри мутаций отзывов
func (r *collegeRepository) Update(ctx context.Context, college *entity.College) error {
	result := r.db.WithContext(ctx).Model(college).
		Where("id = ?", college.ID).
		Updates(map[string]interface{}{
			"name":             college.Name,
			"location":         college.Location,
			"city":             college.City,
			"state":            college.State,
			"country":          college.Country,
			"website":          college.Website,
			"phone":            college.Phone,
			"email":            college.Email,
			"established_year": college.EstablishedYear,
			"college_type":     college.CollegeType,
			"affiliation":      college.Affiliation,
			"description":      college.Description,
			"logo_url":         college.LogoURL,
			"images":           college.Images,
			"programs":         college.Programs,
			"facilities":       college.Facilities,
			"metadata":         college.Metadata,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCollegeNotFound
	}

	return nil
}

// Delete удаляет колледж из PostgreSQL
func (r *collegeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.College{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCollegeNotFound
	}

	return nil
}

// List возвращает страницу колледжей по нативным фильтрам.
// total считается до применения metadata-фильтра в service layer,
// порядок строк стабильный (created_at DESC, id)
func (r *collegeRepository) List(ctx context.Context, filter CollegeListFilter) ([]entity.College, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.College{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.City != "" {
		query = query.Where("city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.State != "" {
		query = query.Where("state ILIKE ?", "%"+filter.State+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count colleges: %w", err)
	}

	var colleges []entity.College
	result := query.
		Order("created_at DESC, id").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&colleges)

	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list colleges: %w", result.Error)
	}

	return colleges, total, nil
}
