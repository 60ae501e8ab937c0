package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusrate/internal/app/campus/entity"
	"campusrate/internal/app/campus/repository"
	"campusrate/pkg/metrics"

	"github.com/google/uuid"
)

// CollegeService обрабатывает бизнес-логику колледжей:
// листинг с фильтрами и ранжированием, карточки, закладки
type CollegeService struct {
	collegeRepo repository.CollegeRepository
	savedRepo   repository.SavedCollegeRepository
}

// NewCollegeService создает новый сервис колледжей с внедрением зависимостей
func NewCollegeService(
	collegeRepo repository.CollegeRepository,
	savedRepo repository.SavedCollegeRepository,
) *CollegeService {
	return &CollegeService{
		collegeRepo: collegeRepo,
		savedRepo:   savedRepo,
	}
}

// CreateCollege создает новый колледж
func (s *CollegeService) CreateCollege(ctx context.Context, req *entity.CreateCollegeRequest) (*entity.College, error) {
	college := &entity.College{
		ID:              uuid.New(),
		Name:            req.Name,
		Location:        req.Location,
		City:            req.City,
		State:           req.State,
		Country:         req.Country,
		Website:         req.Website,
		Phone:           req.Phone,
		Email:           req.Email,
		EstablishedYear: req.EstablishedYear,
		CollegeType:     req.CollegeType,
		Affiliation:     req.Affiliation,
		Description:     req.Description,
		LogoURL:         req.LogoURL,
		Images:          req.Images,
		Programs:        req.Programs,
		Facilities:      req.Facilities,
		Metadata:        req.Metadata,
		CreatedAt:       time.Now(),
	}

	if err := s.collegeRepo.Create(ctx, college); err != nil {
		return nil, fmt.Errorf("failed to create college: %w", err)
	}

	return college, nil
}

// GetCollege получает колледж по ID с флагом закладки текущего пользователя.
// Пустой userID означает анонимный запрос - флаг остаётся false
func (s *CollegeService) GetCollege(ctx context.Context, id uuid.UUID, userID string) (*entity.CollegeResponse, error) {
	college, err := s.collegeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCollegeNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, fmt.Errorf("failed to get college: %w", err)
	}

	response := &entity.CollegeResponse{College: *college}

	if userID != "" {
		saved, err := s.savedRepo.SavedSet(ctx, userID, []uuid.UUID{id})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve bookmark flag: %w", err)
		}
		response.IsSavedByCurrentUser = saved[id]
	}

	return response, nil
}

// ListColleges выполняет полный конвейер листинга:
// нативные SQL-фильтры + пагинация -> metadata-фильтр -> ранжирование ->
// флаги закладок одним батч-запросом.
// Metadata-фильтр применяется к уже выбранной странице, поэтому страница
// может быть короче limit, а total остаётся числом строк до фильтра -
// поведение зафиксировано для совместимости (см. DESIGN.md)
func (s *CollegeService) ListColleges(ctx context.Context, userID string, q *entity.ListCollegesQuery) (*entity.CollegeListResponse, error) {
	page, limit := normalizePaging(q.Page, q.Limit)

	colleges, total, err := s.collegeRepo.List(ctx, repository.CollegeListFilter{
		Search: q.Search,
		City:   q.City,
		State:  q.State,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list colleges: %w", err)
	}

	filters := CollegeFilters{
		Streams:      parseStreams(q.Streams),
		MinFee:       q.MinFee,
		MaxFee:       q.MaxFee,
		Scholarships: q.Scholarships,
	}
	candidates := applyFilters(colleges, filters)

	policy := ParseSortPolicy(q.SortBy)
	metrics.CollegeListRequests.WithLabelValues(string(policy)).Inc()
	ranked := rankColleges(candidates, policy)

	savedSet := map[uuid.UUID]bool{}
	if userID != "" && len(ranked) > 0 {
		ids := make([]uuid.UUID, len(ranked))
		for i := range ranked {
			ids[i] = ranked[i].ID
		}
		savedSet, err = s.savedRepo.SavedSet(ctx, userID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve bookmark flags: %w", err)
		}
	}

	responses := make([]entity.CollegeResponse, len(ranked))
	for i := range ranked {
		responses[i] = entity.CollegeResponse{
			College:              ranked[i],
			IsSavedByCurrentUser: savedSet[ranked[i].ID],
		}
	}

	return &entity.CollegeListResponse{
		Colleges: responses,
		Total:    total,
		Page:     page,
		Pages:    totalPages(total, limit),
	}, nil
}

// ToggleBookmark переключает закладку колледжа.
// Гонка двух одновременных toggle от одного пользователя проявляется
// как конфликт уникальности - повторяем один раз, второй вызов увидит
// уже вставленную строку и корректно её снимет
func (s *CollegeService) ToggleBookmark(ctx context.Context, collegeID uuid.UUID, userID string) (*entity.ToggleBookmarkResponse, error) {
	saved, err := s.savedRepo.Toggle(ctx, collegeID, userID)
	if errors.Is(err, repository.ErrToggleConflict) {
		metrics.RecordTxConflict("campus-api", "saved_college")
		saved, err = s.savedRepo.Toggle(ctx, collegeID, userID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrCollegeNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, fmt.Errorf("failed to toggle bookmark: %w", err)
	}

	if saved {
		metrics.CollegeBookmarksToggled.WithLabelValues("saved").Inc()
	} else {
		metrics.CollegeBookmarksToggled.WithLabelValues("removed").Inc()
	}

	return &entity.ToggleBookmarkResponse{
		Saved:     saved,
		CollegeID: collegeID,
	}, nil
}

// GetSavedColleges получает страницу закладок пользователя
func (s *CollegeService) GetSavedColleges(ctx context.Context, userID string, page, limit int) (*entity.SavedCollegeListResponse, error) {
	page, limit = normalizePaging(page, limit)

	bookmarks, total, err := s.savedRepo.ListByUser(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get saved colleges: %w", err)
	}

	responses := make([]entity.SavedCollegeResponse, len(bookmarks))
	for i, b := range bookmarks {
		responses[i] = entity.SavedCollegeResponse{
			ID:                   b.ID,
			CollegeID:            b.CollegeID,
			CollegeName:          b.College.Name,
			CollegeLocation:      b.College.Location,
			CollegeLogoURL:       b.College.LogoURL,
			CollegeAverageRating: b.College.AverageRating,
			CollegeTotalReviews:  b.College.TotalReviews,
			SavedAt:              b.CreatedAt,
		}
	}

	return &entity.SavedCollegeListResponse{
		SavedColleges: responses,
		Total:         total,
		Page:          page,
		Pages:         totalPages(total, limit),
	}, nil
}
