package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lexmx/internal/domain"
)

type AppointmentRepo struct {
	db    DB
	slots SlotLedgerRepository
}

func NewAppointmentRepository(db DB, slots SlotLedgerRepository) *AppointmentRepo {
	return &AppointmentRepo{
		db:    db,
		slots: slots,
	}
}

// Create reclama la entrada del libro de reservas y escribe la cita dentro
// de una misma transacción, de modo que no existe ninguna ventana en la que
// el horario esté reclamado sin cita ni al revés.
func (r *AppointmentRepo) Create(ctx context.Context, clientID string, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error al iniciar la transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	key := domain.SlotKey{LawyerID: dto.LawyerID, Date: dto.Date, Time: dto.Time}
	if err := r.slots.TryClaim(ctx, tx, key); err != nil {
		return nil, err
	}

	now := time.Now()
	appointment := domain.Appointment{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		LawyerID:  dto.LawyerID,
		Date:      dto.Date,
		Time:      dto.Time,
		Status:    domain.AppointmentStatusPending,
		Notes:     dto.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO appointments (id, client_id, lawyer_id, date, time, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	_, err = tx.Exec(ctx, query,
		appointment.ID,
		appointment.ClientID,
		appointment.LawyerID,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		appointment.Notes,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("error al crear la cita: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error al confirmar la transacción: %w", err)
	}

	return &appointment, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	query := `
		SELECT id, client_id, lawyer_id, date, time, status, notes, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	var appointment domain.Appointment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&appointment.ID,
		&appointment.ClientID,
		&appointment.LawyerID,
		&appointment.Date,
		&appointment.Time,
		&appointment.Status,
		&appointment.Notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error al obtener la cita: %w", err)
	}

	return &appointment, nil
}

// UpdateStatus aplica la transición con una comparación sobre el estado
// actual: si otra petición lo cambió entre la lectura y la escritura la
// actualización no afecta filas y se rechaza.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`

	tag, err := r.db.Exec(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return fmt.Errorf("error al actualizar el estado de la cita: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}

	return nil
}

// Cancel cambia el estado a cancelada y libera la entrada del libro de
// reservas en la misma transacción; no existe ningún camino que cancele una
// cita sin liberar su horario.
func (r *AppointmentRepo) Cancel(ctx context.Context, id string, from domain.AppointmentStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error al iniciar la transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	updateQuery := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING lawyer_id, date, time
	`

	var key domain.SlotKey
	err = tx.QueryRow(ctx, updateQuery, domain.AppointmentStatusCancelled, time.Now(), id, from).
		Scan(&key.LawyerID, &key.Date, &key.Time)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrInvalidTransition
		}
		return fmt.Errorf("error al cancelar la cita: %w", err)
	}

	if err := r.slots.Release(ctx, tx, key); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("error al confirmar la transacción: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) ListByUser(ctx context.Context, uid string, asClient bool, limit int) ([]domain.Appointment, error) {
	ownColumn := "lawyer_id"
	if asClient {
		ownColumn = "client_id"
	}

	query := fmt.Sprintf(`
		SELECT id, client_id, lawyer_id, date, time, status, notes, created_at, updated_at
		FROM appointments
		WHERE %s = $1
		ORDER BY date DESC, time DESC
		LIMIT $2
	`, ownColumn)

	rows, err := r.db.Query(ctx, query, uid, limit)
	if err != nil {
		return nil, fmt.Errorf("error al consultar las citas: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		var appointment domain.Appointment
		if err := rows.Scan(
			&appointment.ID,
			&appointment.ClientID,
			&appointment.LawyerID,
			&appointment.Date,
			&appointment.Time,
			&appointment.Status,
			&appointment.Notes,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error al escanear la cita: %w", err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al procesar los resultados: %w", err)
	}

	return appointments, nil
}
