package repository

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexmx/internal/domain"
)

var testKey = domain.SlotKey{LawyerID: "l1", Date: "2026-03-02", Time: "09:00"}

func TestSlotLedgerTryClaim(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO booked_slots").
		WithArgs(testKey.LawyerID, testKey.Date, testKey.Time, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewSlotLedgerRepository(mock)
	err = repo.TryClaim(context.Background(), mock, testKey)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// De dos reclamaciones del mismo horario solo gana una: la inserción
// condicional no afecta filas y la segunda recibe ErrSlotTaken.
func TestSlotLedgerTryClaimConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO booked_slots").
		WithArgs(testKey.LawyerID, testKey.Date, testKey.Time, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	repo := NewSlotLedgerRepository(mock)
	err = repo.TryClaim(context.Background(), mock, testKey)

	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Liberar un horario que ya no existe no es un error.
func TestSlotLedgerReleaseIdempotent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM booked_slots").
		WithArgs(testKey.LawyerID, testKey.Date, testKey.Time).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewSlotLedgerRepository(mock)
	err = repo.Release(context.Background(), mock, testKey)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotLedgerListBookedTimes(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"time"}).
		AddRow("09:00").
		AddRow("10:30")

	mock.ExpectQuery("SELECT time").
		WithArgs("l1", "2026-03-02").
		WillReturnRows(rows)

	repo := NewSlotLedgerRepository(mock)
	times, err := repo.ListBookedTimes(context.Background(), "l1", "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:30"}, times)
	assert.NoError(t, mock.ExpectationsWereMet())
}
