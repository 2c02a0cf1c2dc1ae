package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lexmx/internal/domain"
)

// DB es el contrato mínimo que necesitan los repositorios; lo satisface
// *pgxpool.Pool en producción y un pool simulado en los tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Querier cubre tanto el pool como una transacción en curso, para que el
// libro de reservas pueda operar dentro de la transacción de otra escritura.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repositories struct {
	User        UserRepository
	Slots       SlotLedgerRepository
	Appointment AppointmentRepository
	Review      ReviewRepository
	Auth        AuthRepository
}

func NewRepositories(db DB) *Repositories {
	slots := NewSlotLedgerRepository(db)
	return &Repositories{
		User:        NewUserRepository(db),
		Slots:       slots,
		Appointment: NewAppointmentRepository(db, slots),
		Review:      NewReviewRepository(db),
		Auth:        NewAuthRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdateLawyerProfile(ctx context.Context, id string, dto domain.UpdateLawyerProfileDTO) error
	UpdatePhotoURL(ctx context.Context, id string, photoURL string) error
	UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error
	SearchLawyers(ctx context.Context, filter domain.LawyerFilter) ([]domain.User, error)
	GetDisplayNames(ctx context.Context, ids []string) (map[string]string, error)
}

// SlotLedgerRepository es el único componente autorizado a escribir en
// booked_slots. TryClaim y Release aceptan un Querier para poder ejecutarse
// dentro de la misma transacción que la escritura de la cita.
type SlotLedgerRepository interface {
	TryClaim(ctx context.Context, q Querier, key domain.SlotKey) error
	Release(ctx context.Context, q Querier, key domain.SlotKey) error
	ListBookedTimes(ctx context.Context, lawyerID, date string) ([]string, error)
}

type AppointmentRepository interface {
	// Create reclama el horario y crea la cita en una única transacción;
	// devuelve domain.ErrSlotTaken si el horario ya estaba reservado.
	Create(ctx context.Context, clientID string, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	// UpdateStatus aplica la transición solo si el estado actual coincide
	// con from; devuelve domain.ErrInvalidTransition en caso contrario.
	UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus) error
	// Cancel pasa la cita a cancelada y libera su entrada del libro de
	// reservas en la misma transacción.
	Cancel(ctx context.Context, id string, from domain.AppointmentStatus) error
	ListByUser(ctx context.Context, uid string, asClient bool, limit int) ([]domain.Appointment, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, authorID, authorName string, dto domain.CreateReviewDTO) (string, error)
	ListByLawyer(ctx context.Context, lawyerID string, limit int) ([]domain.Review, error)
	GetByLawyerAndAuthor(ctx context.Context, lawyerID, authorID string) (*domain.Review, error)
	ListRatingsByLawyer(ctx context.Context, lawyerID string) ([]int, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID string) error
}
