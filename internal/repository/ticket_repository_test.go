package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictNamesCollidingSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	showDate := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
	recs := []TicketRecord{
		{SectionID: 2, Row: 0, Col: 0},
		{SectionID: 2, Row: 0, Col: 1},
	}
	dup := errors.New(`Error 1062 (23000): Duplicate entry for key 'tickets.uq_seat'`)

	// Occupancy re-query after rollback: the first seat is free, the
	// second is held by the winner.
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(false))
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(true))

	repo := NewTicketRepo(db)
	cerr := repo.Conflict(context.Background(), dup, 1, showDate, recs)

	var taken *SeatTakenError
	require.True(t, errors.As(cerr, &taken))
	assert.Equal(t, uint64(2), taken.Seat.SectionID)
	assert.Equal(t, uint32(0), taken.Seat.Row)
	assert.Equal(t, uint32(1), taken.Seat.Col)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictPassesThroughOtherErrors(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	showDate := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
	recs := []TicketRecord{{SectionID: 2}}
	cause := errors.New("invalid connection")

	// Non-duplicate failures are not conflicts; the original error
	// must survive so the handler can log it.
	repo := NewTicketRepo(db)
	assert.Equal(t, cause, repo.Conflict(context.Background(), cause, 1, showDate, recs))
}
