package service

import (
	"context"

	"go.uber.org/zap"

	"lexmx/config"
	"lexmx/internal/domain"
	"lexmx/internal/repository"
	"lexmx/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
}

type Services struct {
	User    UserService
	Auth    AuthService
	Lawyer  LawyerService
	Booking BookingService
	Review  ReviewService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:    NewUserService(deps.Repos.User, deps.Logger),
		Auth:    NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Lawyer:  NewLawyerService(deps.Repos.User, deps.Repos.Slots, deps.FileStorage, deps.Logger),
		Booking: NewBookingService(deps.Repos.Appointment, deps.Repos.User, deps.Logger),
		Review:  NewReviewService(deps.Repos.Review, deps.Repos.User, deps.Logger),
	}
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id string, dto domain.PasswordUpdateDTO) error
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (string, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (string, domain.UserRole, error)
}

type LawyerService interface {
	// Search nunca propaga el error del repositorio: ante un fallo devuelve
	// la lista vacía para que el buscador se degrade en vez de romperse.
	Search(ctx context.Context, filter domain.LawyerFilter) []domain.User
	GetProfile(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, dto domain.UpdateLawyerProfileDTO) error
	UploadProfilePhoto(ctx context.Context, id string, photo []byte, filename string) (string, error)
	DeleteProfilePhoto(ctx context.Context, id string) error
	// BookableTimes devuelve las horas de la fecha dada que la disponibilidad
	// semanal del abogado ofrece y que nadie ha reservado todavía.
	BookableTimes(ctx context.Context, lawyerID, date string) ([]string, error)
}

type BookingService interface {
	Book(ctx context.Context, clientID string, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	// Transition aplica el cambio de estado comprobando el grafo de
	// transiciones y el rol del actor; cancelar libera el horario reservado.
	Transition(ctx context.Context, actorID string, role domain.UserRole, id string, status domain.AppointmentStatus) error
	ListUpcoming(ctx context.Context, uid string, role domain.UserRole, limit int) ([]domain.Appointment, error)
	ListAll(ctx context.Context, uid string, role domain.UserRole, limit int) ([]domain.Appointment, error)
}

type ReviewService interface {
	Create(ctx context.Context, authorID string, dto domain.CreateReviewDTO) (*domain.Review, error)
	GetMine(ctx context.Context, authorID, lawyerID string) (*domain.Review, error)
	ListByLawyer(ctx context.Context, lawyerID string, limit int) ([]domain.Review, error)
}
