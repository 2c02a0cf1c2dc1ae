package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lexmx/internal/domain"
)

func reviewTestUsers(updateRating func(ctx context.Context, id string, rating float64, count int) error) *stubUserRepo {
	return &stubUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id == "l1" {
				return &domain.User{ID: "l1", Role: domain.UserRoleLawyer, DisplayName: "Lic. García"}, nil
			}
			return &domain.User{ID: id, Role: domain.UserRoleClient, DisplayName: "Ana Cliente"}, nil
		},
		updateRatingFn: updateRating,
	}
}

func TestCreateReviewRecomputesRating(t *testing.T) {
	var gotRating float64
	var gotCount int

	users := reviewTestUsers(func(ctx context.Context, id string, rating float64, count int) error {
		gotRating = rating
		gotCount = count
		return nil
	})

	reviews := &stubReviewRepo{
		getByLawyerAndAuthorFn: func(ctx context.Context, lawyerID, authorID string) (*domain.Review, error) {
			return nil, domain.ErrNotFound
		},
		createFn: func(ctx context.Context, authorID, authorName string, dto domain.CreateReviewDTO) (string, error) {
			assert.Equal(t, "Ana Cliente", authorName)
			return "r1", nil
		},
		// Con la nueva reseña el abogado tiene 5, 4 y 4: promedio 4.333…
		listRatingsFn: func(ctx context.Context, lawyerID string) ([]int, error) {
			return []int{5, 4, 4}, nil
		},
	}

	svc := NewReviewService(reviews, users, zap.NewNop())

	review, err := svc.Create(context.Background(), "c1", domain.CreateReviewDTO{
		LawyerID: "l1",
		Rating:   4,
		Comment:  "muy profesional",
	})

	require.NoError(t, err)
	assert.Equal(t, "r1", review.ID)

	// Redondeado a un decimal.
	assert.Equal(t, 4.3, gotRating)
	assert.Equal(t, 3, gotCount)
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	users := reviewTestUsers(nil)

	reviews := &stubReviewRepo{
		getByLawyerAndAuthorFn: func(ctx context.Context, lawyerID, authorID string) (*domain.Review, error) {
			return &domain.Review{ID: "r1"}, nil
		},
		createFn: func(ctx context.Context, authorID, authorName string, dto domain.CreateReviewDTO) (string, error) {
			t.Fatal("no debería llegar al repositorio")
			return "", nil
		},
	}

	svc := NewReviewService(reviews, users, zap.NewNop())

	_, err := svc.Create(context.Background(), "c1", domain.CreateReviewDTO{
		LawyerID: "l1",
		Rating:   5,
		Comment:  "otra reseña",
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)
}

func TestCreateReviewValidation(t *testing.T) {
	users := reviewTestUsers(nil)
	svc := NewReviewService(&stubReviewRepo{}, users, zap.NewNop())

	_, err := svc.Create(context.Background(), "c1", domain.CreateReviewDTO{
		LawyerID: "l1",
		Rating:   6,
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), "l1", domain.CreateReviewDTO{
		LawyerID: "l1",
		Rating:   5,
	})
	assert.Error(t, err)
}

func TestCreateReviewSanitizesComment(t *testing.T) {
	users := reviewTestUsers(func(ctx context.Context, id string, rating float64, count int) error {
		return nil
	})

	var savedComment string
	reviews := &stubReviewRepo{
		getByLawyerAndAuthorFn: func(ctx context.Context, lawyerID, authorID string) (*domain.Review, error) {
			return nil, domain.ErrNotFound
		},
		createFn: func(ctx context.Context, authorID, authorName string, dto domain.CreateReviewDTO) (string, error) {
			savedComment = dto.Comment
			return "r1", nil
		},
		listRatingsFn: func(ctx context.Context, lawyerID string) ([]int, error) {
			return []int{5}, nil
		},
	}

	svc := NewReviewService(reviews, users, zap.NewNop())

	_, err := svc.Create(context.Background(), "c1", domain.CreateReviewDTO{
		LawyerID: "l1",
		Rating:   5,
		Comment:  "<b>excelente</b> servicio",
	})

	require.NoError(t, err)
	assert.Equal(t, "excelente servicio", savedComment)
}
