package service

import (
	"context"

	"lexmx/internal/domain"
	"lexmx/internal/repository"
)

// Dobles de prueba con campos de función, para fijar solo el comportamiento
// que cada caso necesita.

type stubUserRepo struct {
	createFn          func(ctx context.Context, user domain.User) (string, error)
	getByIDFn         func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	updateRatingFn    func(ctx context.Context, id string, rating float64, reviewCount int) error
	searchLawyersFn   func(ctx context.Context, filter domain.LawyerFilter) ([]domain.User, error)
	getDisplayNamesFn func(ctx context.Context, ids []string) (map[string]string, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user domain.User) (string, error) {
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getByEmailFn == nil {
		return nil, domain.ErrNotFound
	}
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserRepo) Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error {
	return nil
}

func (s *stubUserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return nil
}

func (s *stubUserRepo) UpdateLawyerProfile(ctx context.Context, id string, dto domain.UpdateLawyerProfileDTO) error {
	return nil
}

func (s *stubUserRepo) UpdatePhotoURL(ctx context.Context, id string, photoURL string) error {
	return nil
}

func (s *stubUserRepo) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	return s.updateRatingFn(ctx, id, rating, reviewCount)
}

func (s *stubUserRepo) SearchLawyers(ctx context.Context, filter domain.LawyerFilter) ([]domain.User, error) {
	return s.searchLawyersFn(ctx, filter)
}

func (s *stubUserRepo) GetDisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	if s.getDisplayNamesFn == nil {
		return map[string]string{}, nil
	}
	return s.getDisplayNamesFn(ctx, ids)
}

type stubAppointmentRepo struct {
	createFn       func(ctx context.Context, clientID string, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)
	getByIDFn      func(ctx context.Context, id string) (*domain.Appointment, error)
	updateStatusFn func(ctx context.Context, id string, from, to domain.AppointmentStatus) error
	cancelFn       func(ctx context.Context, id string, from domain.AppointmentStatus) error
	listByUserFn   func(ctx context.Context, uid string, asClient bool, limit int) ([]domain.Appointment, error)
}

func (s *stubAppointmentRepo) Create(ctx context.Context, clientID string, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	return s.createFn(ctx, clientID, dto)
}

func (s *stubAppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubAppointmentRepo) UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus) error {
	return s.updateStatusFn(ctx, id, from, to)
}

func (s *stubAppointmentRepo) Cancel(ctx context.Context, id string, from domain.AppointmentStatus) error {
	return s.cancelFn(ctx, id, from)
}

func (s *stubAppointmentRepo) ListByUser(ctx context.Context, uid string, asClient bool, limit int) ([]domain.Appointment, error) {
	return s.listByUserFn(ctx, uid, asClient, limit)
}

type stubReviewRepo struct {
	createFn               func(ctx context.Context, authorID, authorName string, dto domain.CreateReviewDTO) (string, error)
	listByLawyerFn         func(ctx context.Context, lawyerID string, limit int) ([]domain.Review, error)
	getByLawyerAndAuthorFn func(ctx context.Context, lawyerID, authorID string) (*domain.Review, error)
	listRatingsFn          func(ctx context.Context, lawyerID string) ([]int, error)
}

func (s *stubReviewRepo) Create(ctx context.Context, authorID, authorName string, dto domain.CreateReviewDTO) (string, error) {
	return s.createFn(ctx, authorID, authorName, dto)
}

func (s *stubReviewRepo) ListByLawyer(ctx context.Context, lawyerID string, limit int) ([]domain.Review, error) {
	return s.listByLawyerFn(ctx, lawyerID, limit)
}

func (s *stubReviewRepo) GetByLawyerAndAuthor(ctx context.Context, lawyerID, authorID string) (*domain.Review, error) {
	return s.getByLawyerAndAuthorFn(ctx, lawyerID, authorID)
}

func (s *stubReviewRepo) ListRatingsByLawyer(ctx context.Context, lawyerID string) ([]int, error) {
	return s.listRatingsFn(ctx, lawyerID)
}

type stubAuthRepo struct {
	sessions map[string]domain.Session
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{sessions: make(map[string]domain.Session)}
}

func (s *stubAuthRepo) CreateSession(ctx context.Context, session domain.Session) error {
	s.sessions[session.RefreshToken] = session
	return nil
}

func (s *stubAuthRepo) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	session, ok := s.sessions[refreshToken]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

func (s *stubAuthRepo) DeleteSession(ctx context.Context, id string) error {
	for token, session := range s.sessions {
		if session.ID == id {
			delete(s.sessions, token)
		}
	}
	return nil
}

func (s *stubAuthRepo) DeleteSessionsByUserID(ctx context.Context, userID string) error {
	for token, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, token)
		}
	}
	return nil
}

type stubSlotRepo struct {
	listBookedTimesFn func(ctx context.Context, lawyerID, date string) ([]string, error)
}

func (s *stubSlotRepo) TryClaim(ctx context.Context, q repository.Querier, key domain.SlotKey) error {
	return nil
}

func (s *stubSlotRepo) Release(ctx context.Context, q repository.Querier, key domain.SlotKey) error {
	return nil
}

func (s *stubSlotRepo) ListBookedTimes(ctx context.Context, lawyerID, date string) ([]string, error) {
	return s.listBookedTimesFn(ctx, lawyerID, date)
}
