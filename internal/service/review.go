package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"lexmx/internal/domain"
	"lexmx/internal/repository"
	"lexmx/pkg/sanitize"
)

const maxCommentLength = 1000

type ReviewServiceImpl struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	logger     *zap.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository, logger *zap.Logger) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Create guarda la reseña y recalcula el agregado del abogado de forma
// síncrona, de modo que la siguiente lectura del perfil ya refleja la nueva
// calificación.
func (s *ReviewServiceImpl) Create(ctx context.Context, authorID string, dto domain.CreateReviewDTO) (*domain.Review, error) {
	if dto.Rating < 1 || dto.Rating > 5 {
		return nil, errors.New("la calificación debe estar entre 1 y 5")
	}

	if authorID == dto.LawyerID {
		return nil, errors.New("no puedes dejarte una reseña a ti mismo")
	}

	lawyer, err := s.userRepo.GetByID(ctx, dto.LawyerID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if !lawyer.IsLawyer() {
		return nil, domain.ErrNotFound
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	if _, err := s.reviewRepo.GetByLawyerAndAuthor(ctx, dto.LawyerID, authorID); err == nil {
		return nil, domain.ErrAlreadyReviewed
	}

	dto.Comment = sanitize.Text(dto.Comment, maxCommentLength)

	id, err := s.reviewRepo.Create(ctx, authorID, author.DisplayName, dto)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyReviewed) {
			return nil, domain.ErrAlreadyReviewed
		}
		s.logger.Error("error al crear la reseña",
			zap.String("lawyerId", dto.LawyerID),
			zap.String("authorId", authorID),
			zap.Error(err),
		)
		return nil, errors.New("error al crear la reseña")
	}

	if err := s.recomputeRating(ctx, dto.LawyerID); err != nil {
		s.logger.Error("error al recalcular la calificación",
			zap.String("lawyerId", dto.LawyerID),
			zap.Error(err),
		)
	}

	review, err := s.reviewRepo.GetByLawyerAndAuthor(ctx, dto.LawyerID, authorID)
	if err != nil {
		return &domain.Review{
			ID:         id,
			LawyerID:   dto.LawyerID,
			AuthorID:   authorID,
			AuthorName: author.DisplayName,
			Rating:     dto.Rating,
			Comment:    dto.Comment,
		}, nil
	}

	return review, nil
}

// GetMine devuelve la reseña que el autor ya dejó sobre el abogado, si existe.
func (s *ReviewServiceImpl) GetMine(ctx context.Context, authorID, lawyerID string) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByLawyerAndAuthor(ctx, lawyerID, authorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("error al consultar la reseña del autor",
			zap.String("lawyerId", lawyerID),
			zap.String("authorId", authorID),
			zap.Error(err),
		)
		return nil, errors.New("error al consultar la reseña")
	}

	return review, nil
}

func (s *ReviewServiceImpl) ListByLawyer(ctx context.Context, lawyerID string, limit int) ([]domain.Review, error) {
	reviews, err := s.reviewRepo.ListByLawyer(ctx, lawyerID, limit)
	if err != nil {
		s.logger.Error("error al listar las reseñas", zap.String("lawyerId", lawyerID), zap.Error(err))
		return nil, errors.New("error al listar las reseñas")
	}

	return reviews, nil
}

// recomputeRating recalcula el promedio desde cero sobre todas las reseñas
// del abogado y lo redondea a un decimal.
func (s *ReviewServiceImpl) recomputeRating(ctx context.Context, lawyerID string) error {
	ratings, err := s.reviewRepo.ListRatingsByLawyer(ctx, lawyerID)
	if err != nil {
		return err
	}

	if len(ratings) == 0 {
		return s.userRepo.UpdateRating(ctx, lawyerID, 0, 0)
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	average := math.Round(float64(sum)/float64(len(ratings))*10) / 10

	return s.userRepo.UpdateRating(ctx, lawyerID, average, len(ratings))
}
