package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campusrate/internal/app/campus/entity"
	"campusrate/internal/app/campus/repository"
	"campusrate/pkg/logger"
	"campusrate/pkg/metrics"

	"github.com/google/uuid"
)

// ReviewService обрабатывает бизнес-логику отзывов.
// Координирует репозитории, пересчёт агрегата (внутри репозитория,
// в транзакции мутации) и отправку событий в Kafka
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	likeRepo      repository.ReviewLikeRepository
	collegeRepo   repository.CollegeRepository
	savedRepo     repository.SavedCollegeRepository
	kafkaProducer MessagePublisher
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	likeRepo repository.ReviewLikeRepository,
	collegeRepo repository.CollegeRepository,
	savedRepo repository.SavedCollegeRepository,
	kafkaProducer MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		likeRepo:      likeRepo,
		collegeRepo:   collegeRepo,
		savedRepo:     savedRepo,
		kafkaProducer: kafkaProducer,
	}
}

// CreateReview создает отзыв.
// Вставка и пересчёт агрегата колледжа происходят в одной транзакции
// на уровне репозитория; событие REVIEW_CREATED уходит в Kafka после коммита
func (s *ReviewService) CreateReview(ctx context.Context, userID, userName string, req *entity.CreateReviewRequest) (*entity.ReviewResponse, error) {
	college, err := s.collegeRepo.GetByID(ctx, req.CollegeID)
	if err != nil {
		if errors.Is(err, repository.ErrCollegeNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, fmt.Errorf("failed to check college: %w", err)
	}

	review := &entity.Review{
		ID:             uuid.New(),
		CollegeID:      req.CollegeID,
		UserID:         userID,
		UserName:       userName,
		Rating:         req.Rating,
		Title:          req.Title,
		Content:        req.Content,
		Program:        req.Program,
		GraduationYear: req.GraduationYear,
		Images:         req.Images,
		CreatedAt:      time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrAlreadyReviewed) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(review.Rating)

	s.publishReviewEvent(ctx, entity.EventReviewCreated, review)

	return &entity.ReviewResponse{
		Review:               *review,
		CollegeName:          college.Name,
		IsOwnedByCurrentUser: true,
	}, nil
}

// UpdateReview обновляет отзыв с проверкой прав доступа.
// Агрегат пересчитывается только если менялась оценка
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID uuid.UUID, userID string, req *entity.UpdateReviewRequest) (*entity.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if review.UserID != userID {
		return nil, ErrForbidden
	}

	ratingChanged := req.Rating > 0 && req.Rating != review.Rating
	if req.Rating > 0 {
		review.Rating = req.Rating
	}
	if req.Title != "" {
		review.Title = req.Title
	}
	if req.Content != "" {
		review.Content = req.Content
	}
	if req.Program != "" {
		review.Program = req.Program
	}
	if req.GraduationYear != "" {
		review.GraduationYear = req.GraduationYear
	}

	if err := s.reviewRepo.Update(ctx, review, ratingChanged); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.publishReviewEvent(ctx, entity.EventReviewUpdated, review)

	college, err := s.collegeRepo.GetByID(ctx, review.CollegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get college: %w", err)
	}

	liked, err := s.likeRepo.LikedSet(ctx, userID, []uuid.UUID{review.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve like flag: %w", err)
	}

	return &entity.ReviewResponse{
		Review:               *review,
		CollegeName:          college.Name,
		IsLikedByCurrentUser: liked[review.ID],
		IsOwnedByCurrentUser: true,
	}, nil
}

// DeleteReview удаляет отзыв с проверкой прав доступа.
// Лайки и вклад в агрегат исчезают в той же транзакции
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID, userID string) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to get review: %w", err)
	}

	if review.UserID != userID {
		return ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	metrics.ReviewsDeleted.Inc()

	s.publishReviewEvent(ctx, entity.EventReviewDeleted, review)

	return nil
}

// ToggleLike переключает лайк отзыва.
// Конфликт уникальности от гонки того же пользователя повторяется один раз:
// повторный вызов увидит вставленную соперником строку и снимет её
func (s *ReviewService) ToggleLike(ctx context.Context, reviewID uuid.UUID, userID string) (*entity.ToggleLikeResponse, error) {
	liked, likesCount, err := s.likeRepo.Toggle(ctx, reviewID, userID)
	if errors.Is(err, repository.ErrToggleConflict) {
		metrics.RecordTxConflict("campus-api", "review_like")
		liked, likesCount, err = s.likeRepo.Toggle(ctx, reviewID, userID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	if liked {
		metrics.ReviewLikesToggled.WithLabelValues("liked").Inc()
	} else {
		metrics.ReviewLikesToggled.WithLabelValues("unliked").Inc()
	}

	return &entity.ToggleLikeResponse{
		Liked:      liked,
		LikesCount: likesCount,
	}, nil
}

// GetCollegeReviews получает страницу отзывов колледжа с флагами
// liked/owned для текущего пользователя. Пустой userID - анонимный запрос
func (s *ReviewService) GetCollegeReviews(ctx context.Context, collegeID uuid.UUID, userID string, page, limit int) (*entity.ReviewListResponse, error) {
	college, err := s.collegeRepo.GetByID(ctx, collegeID)
	if err != nil {
		if errors.Is(err, repository.ErrCollegeNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, fmt.Errorf("failed to check college: %w", err)
	}

	page, limit = normalizePaging(page, limit)

	reviews, total, err := s.reviewRepo.ListByCollege(ctx, collegeID, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	likedSet := map[uuid.UUID]bool{}
	if userID != "" && len(reviews) > 0 {
		ids := make([]uuid.UUID, len(reviews))
		for i := range reviews {
			ids[i] = reviews[i].ID
		}
		likedSet, err = s.likeRepo.LikedSet(ctx, userID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve like flags: %w", err)
		}
	}

	responses := make([]entity.ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = entity.ReviewResponse{
			Review:               review,
			CollegeName:          college.Name,
			IsLikedByCurrentUser: likedSet[review.ID],
			IsOwnedByCurrentUser: userID != "" && review.UserID == userID,
		}
	}

	return &entity.ReviewListResponse{
		Reviews: responses,
		Total:   total,
		Page:    page,
		Pages:   totalPages(total, limit),
	}, nil
}

// GetUserReviews получает страницу отзывов текущего пользователя
func (s *ReviewService) GetUserReviews(ctx context.Context, userID string, page, limit int) (*entity.ReviewListResponse, error) {
	page, limit = normalizePaging(page, limit)

	reviews, total, err := s.reviewRepo.ListByUser(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reviews: %w", err)
	}

	responses, err := s.buildReviewResponses(ctx, reviews, userID, true)
	if err != nil {
		return nil, err
	}

	return &entity.ReviewListResponse{
		Reviews: responses,
		Total:   total,
		Page:    page,
		Pages:   totalPages(total, limit),
	}, nil
}

// GetLikedReviews получает страницу отзывов, лайкнутых текущим пользователем
func (s *ReviewService) GetLikedReviews(ctx context.Context, userID string, page, limit int) (*entity.ReviewListResponse, error) {
	page, limit = normalizePaging(page, limit)

	reviews, total, err := s.reviewRepo.ListLikedByUser(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get liked reviews: %w", err)
	}

	responses := make([]entity.ReviewResponse, len(reviews))
	for i, review := range reviews {
		collegeName := ""
		if college, err := s.collegeRepo.GetByID(ctx, review.CollegeID); err == nil {
			collegeName = college.Name
		}
		responses[i] = entity.ReviewResponse{
			Review:               review,
			CollegeName:          collegeName,
			IsLikedByCurrentUser: true,
			IsOwnedByCurrentUser: review.UserID == userID,
		}
	}

	return &entity.ReviewListResponse{
		Reviews: responses,
		Total:   total,
		Page:    page,
		Pages:   totalPages(total, limit),
	}, nil
}

// GetUserStats собирает статистику профиля
func (s *ReviewService) GetUserStats(ctx context.Context, userID string) (*entity.UserStatsResponse, error) {
	totalReviews, err := s.reviewRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	likesReceived, err := s.reviewRepo.SumLikesReceived(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum likes: %w", err)
	}

	savedCount, err := s.savedRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count saved colleges: %w", err)
	}

	return &entity.UserStatsResponse{
		TotalReviews:       totalReviews,
		TotalLikesReceived: likesReceived,
		PeopleHelped:       likesReceived,
		SavedCollegesCount: savedCount,
	}, nil
}

// buildReviewResponses дополняет отзывы флагами и именами колледжей
func (s *ReviewService) buildReviewResponses(ctx context.Context, reviews []entity.Review, userID string, owned bool) ([]entity.ReviewResponse, error) {
	likedSet := map[uuid.UUID]bool{}
	if userID != "" && len(reviews) > 0 {
		ids := make([]uuid.UUID, len(reviews))
		for i := range reviews {
			ids[i] = reviews[i].ID
		}
		var err error
		likedSet, err = s.likeRepo.LikedSet(ctx, userID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve like flags: %w", err)
		}
	}

	responses := make([]entity.ReviewResponse, len(reviews))
	for i, review := range reviews {
		collegeName := ""
		if college, err := s.collegeRepo.GetByID(ctx, review.CollegeID); err == nil {
			collegeName = college.Name
		}
		responses[i] = entity.ReviewResponse{
			Review:               review,
			CollegeName:          collegeName,
			IsLikedByCurrentUser: likedSet[review.ID],
			IsOwnedByCurrentUser: owned || review.UserID == userID,
		}
	}

	return responses, nil
}

// publishReviewEvent отправляет событие об отзыве в Kafka.
// Ключ - collegeID, чтобы события одного колледжа шли по порядку.
// Ошибка Kafka не откатывает мутацию: отзыв уже закоммичен
func (s *ReviewService) publishReviewEvent(ctx context.Context, eventType string, review *entity.Review) {
	event := entity.ReviewEvent{
		EventType: eventType,
		ReviewID:  review.ID,
		CollegeID: review.CollegeID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Timestamp: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("Failed to marshal review event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, review.CollegeID.String(), eventData); err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("Failed to publish review event")
	}
}
