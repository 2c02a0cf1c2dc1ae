package repository

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexmx/internal/domain"
)

func newAppointmentRepo(t *testing.T) (*AppointmentRepo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewAppointmentRepository(mock, NewSlotLedgerRepository(mock)), mock
}

func TestAppointmentCreate(t *testing.T) {
	repo, mock := newAppointmentRepo(t)

	dto := domain.CreateAppointmentDTO{
		LawyerID: "l1",
		Date:     "2026-03-02",
		Time:     "09:00",
		Notes:    "primera consulta",
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO booked_slots").
		WithArgs(dto.LawyerID, dto.Date, dto.Time, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), "c1", dto.LawyerID, dto.Date, dto.Time,
			domain.AppointmentStatusPending, dto.Notes, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	appointment, err := repo.Create(context.Background(), "c1", dto)

	require.NoError(t, err)
	assert.NotEmpty(t, appointment.ID)
	assert.Equal(t, domain.AppointmentStatusPending, appointment.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Si el horario ya está reclamado la transacción se revierte y no se escribe
// ninguna cita.
func TestAppointmentCreateSlotTaken(t *testing.T) {
	repo, mock := newAppointmentRepo(t)

	dto := domain.CreateAppointmentDTO{LawyerID: "l1", Date: "2026-03-02", Time: "09:00"}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO booked_slots").
		WithArgs(dto.LawyerID, dto.Date, dto.Time, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectRollback()

	appointment, err := repo.Create(context.Background(), "c1", dto)

	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	assert.Nil(t, appointment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdateStatus(t *testing.T) {
	repo, mock := newAppointmentRepo(t)

	mock.ExpectExec("UPDATE appointments").
		WithArgs(domain.AppointmentStatusConfirmed, pgxmock.AnyArg(), "a1", domain.AppointmentStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateStatus(context.Background(), "a1", domain.AppointmentStatusPending, domain.AppointmentStatusConfirmed)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Si otra petición cambió el estado entre la lectura y la escritura, la
// actualización condicional no afecta filas.
func TestAppointmentUpdateStatusLostRace(t *testing.T) {
	repo, mock := newAppointmentRepo(t)

	mock.ExpectExec("UPDATE appointments").
		WithArgs(domain.AppointmentStatusConfirmed, pgxmock.AnyArg(), "a1", domain.AppointmentStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateStatus(context.Background(), "a1", domain.AppointmentStatusPending, domain.AppointmentStatusConfirmed)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Cancelar marca la cita y libera el horario dentro de la misma transacción.
func TestAppointmentCancelReleasesSlot(t *testing.T) {
	repo, mock := newAppointmentRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE appointments").
		WithArgs(domain.AppointmentStatusCancelled, pgxmock.AnyArg(), "a1", domain.AppointmentStatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"lawyer_id", "date", "time"}).
			AddRow("l1", "2026-03-02", "09:00"))
	mock.ExpectExec("DELETE FROM booked_slots").
		WithArgs("l1", "2026-03-02", "09:00").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := repo.Cancel(context.Background(), "a1", domain.AppointmentStatusPending)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCancelInvalidState(t *testing.T) {
	repo, mock := newAppointmentRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE appointments").
		WithArgs(domain.AppointmentStatusCancelled, pgxmock.AnyArg(), "a1", domain.AppointmentStatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"lawyer_id", "date", "time"}))
	mock.ExpectRollback()

	err := repo.Cancel(context.Background(), "a1", domain.AppointmentStatusPending)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}
