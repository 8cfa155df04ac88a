package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmCompletedTxFlipsPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET payment_status = 'COMPLETED'").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewBookingRepo(db)
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	already, err := repo.ConfirmCompletedTx(context.Background(), tx, 42)
	require.NoError(t, err)
	assert.False(t, already)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmCompletedTxIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The conditional UPDATE misses because a prior confirmation won.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET payment_status = 'COMPLETED'").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT payment_status FROM bookings").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status"}).AddRow("COMPLETED"))

	repo := NewBookingRepo(db)
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	already, err := repo.ConfirmCompletedTx(context.Background(), tx, 42)
	require.NoError(t, err)
	assert.True(t, already)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmCompletedTxClosedBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET payment_status = 'COMPLETED'").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT payment_status FROM bookings").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status"}).AddRow("FAILED"))

	repo := NewBookingRepo(db)
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	already, err := repo.ConfirmCompletedTx(context.Background(), tx, 42)
	assert.Equal(t, ErrBookingClosed, err)
	assert.False(t, already)
	assert.NoError(t, mock.ExpectationsWereMet())
}
