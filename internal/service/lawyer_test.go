package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lexmx/internal/domain"
)

func TestSearchDegradesToEmptyOnError(t *testing.T) {
	users := &stubUserRepo{
		searchLawyersFn: func(ctx context.Context, filter domain.LawyerFilter) ([]domain.User, error) {
			return nil, errors.New("base de datos caída")
		},
	}

	svc := NewLawyerService(users, &stubSlotRepo{}, nil, zap.NewNop())

	result := svc.Search(context.Background(), domain.LawyerFilter{})

	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestSearchHidesPrivateFields(t *testing.T) {
	users := &stubUserRepo{
		searchLawyersFn: func(ctx context.Context, filter domain.LawyerFilter) ([]domain.User, error) {
			return []domain.User{
				{ID: "l1", Email: "abogado@example.com", PasswordHash: "hash", Role: domain.UserRoleLawyer},
			}, nil
		},
	}

	svc := NewLawyerService(users, &stubSlotRepo{}, nil, zap.NewNop())

	result := svc.Search(context.Background(), domain.LawyerFilter{})

	require.Len(t, result, 1)
	assert.Empty(t, result[0].Email)
	assert.Empty(t, result[0].PasswordHash)
}

func TestSearchRejectsUnknownSpecialty(t *testing.T) {
	users := &stubUserRepo{
		searchLawyersFn: func(ctx context.Context, filter domain.LawyerFilter) ([]domain.User, error) {
			t.Fatal("no debería consultar el repositorio")
			return nil, nil
		},
	}

	svc := NewLawyerService(users, &stubSlotRepo{}, nil, zap.NewNop())

	result := svc.Search(context.Background(), domain.LawyerFilter{Specialty: "astrología"})

	assert.Empty(t, result)
}

func TestBookableTimesExcludesBookedSlots(t *testing.T) {
	users := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{
				ID:   id,
				Role: domain.UserRoleLawyer,
				Availability: []domain.AvailabilitySlot{
					{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
				},
			}, nil
		},
	}

	slots := &stubSlotRepo{
		listBookedTimesFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			return []string{"09:30", "10:30"}, nil
		},
	}

	svc := NewLawyerService(users, slots, nil, zap.NewNop())

	// 2026-03-02 es lunes.
	times, err := svc.BookableTimes(context.Background(), "l1", "2026-03-02")

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, times)
}

func TestBookableTimesEmptyDay(t *testing.T) {
	users := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.UserRoleLawyer}, nil
		},
	}

	slots := &stubSlotRepo{
		listBookedTimesFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			t.Fatal("sin disponibilidad no hay que consultar las reservas")
			return nil, nil
		},
	}

	svc := NewLawyerService(users, slots, nil, zap.NewNop())

	times, err := svc.BookableTimes(context.Background(), "l1", "2026-03-02")

	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestBookableTimesInvalidDate(t *testing.T) {
	svc := NewLawyerService(&stubUserRepo{}, &stubSlotRepo{}, nil, zap.NewNop())

	_, err := svc.BookableTimes(context.Background(), "l1", "02/03/2026")

	assert.Error(t, err)
}

func TestUpdateProfileValidatesAvailability(t *testing.T) {
	svc := NewLawyerService(&stubUserRepo{}, &stubSlotRepo{}, nil, zap.NewNop())

	bad := []domain.AvailabilitySlot{{DayOfWeek: 8, StartTime: "09:00", EndTime: "10:00"}}

	err := svc.UpdateProfile(context.Background(), "l1", domain.UpdateLawyerProfileDTO{
		Availability: &bad,
	})

	assert.Error(t, err)
}
