package repository

import (
	"context"
	"fmt"
	"time"

	"lexmx/internal/domain"
)

type SlotLedgerRepo struct {
	db DB
}

func NewSlotLedgerRepository(db DB) *SlotLedgerRepo {
	return &SlotLedgerRepo{
		db: db,
	}
}

// TryClaim intenta reclamar la clave (abogado, fecha, hora) con una única
// inserción condicional: la clave primaria compuesta de booked_slots
// garantiza que de dos reclamaciones concurrentes solo una puede insertar.
func (r *SlotLedgerRepo) TryClaim(ctx context.Context, q Querier, key domain.SlotKey) error {
	query := `
		INSERT INTO booked_slots (lawyer_id, date, time, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lawyer_id, date, time) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, key.LawyerID, key.Date, key.Time, time.Now())
	if err != nil {
		return fmt.Errorf("error al reclamar el horario: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSlotTaken
	}

	return nil
}

// Release elimina la reserva; es idempotente, la ausencia de la fila no es
// un error.
func (r *SlotLedgerRepo) Release(ctx context.Context, q Querier, key domain.SlotKey) error {
	query := `
		DELETE FROM booked_slots
		WHERE lawyer_id = $1 AND date = $2 AND time = $3
	`

	_, err := q.Exec(ctx, query, key.LawyerID, key.Date, key.Time)
	if err != nil {
		return fmt.Errorf("error al liberar el horario: %w", err)
	}

	return nil
}

func (r *SlotLedgerRepo) ListBookedTimes(ctx context.Context, lawyerID, date string) ([]string, error) {
	query := `
		SELECT time
		FROM booked_slots
		WHERE lawyer_id = $1 AND date = $2
	`

	rows, err := r.db.Query(ctx, query, lawyerID, date)
	if err != nil {
		return nil, fmt.Errorf("error al consultar los horarios ocupados: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("error al escanear el horario: %w", err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al procesar los resultados: %w", err)
	}

	return times, nil
}
