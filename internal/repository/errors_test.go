package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eventmate/ticketing/internal/model"
)

func TestIsDuplicateKey(t *testing.T) {
	// Shape of the mysql driver's duplicate-entry error text.
	dup := errors.New(`Error 1062 (23000): Duplicate entry '1-2024-01-03 10:00:00-2-3-4-1' for key 'tickets.uq_seat'`)
	assert.True(t, isDuplicateKey(dup))

	assert.False(t, isDuplicateKey(nil))
	assert.False(t, isDuplicateKey(errors.New("Error 1146 (42S02): Table 'tickets' doesn't exist")))
}

func TestSeatTakenErrorMessage(t *testing.T) {
	err := &SeatTakenError{Seat: model.SeatID{
		EventID:   1,
		ShowDate:  time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
		SectionID: 7,
		Row:       2,
		Col:       5,
	}}
	assert.Equal(t, "seat already booked: section 7 row 2 col 5", err.Error())

	// Handlers match on the concrete type, not the message.
	var target *SeatTakenError
	assert.True(t, errors.As(error(err), &target))
	assert.Equal(t, uint64(7), target.Seat.SectionID)
}
