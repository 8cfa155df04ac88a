package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShowTimeString(t *testing.T) {
	assert.Equal(t, "10:00:00", ShowTime{Hour: 10}.String())
	assert.Equal(t, "09:05:30", ShowTime{Hour: 9, Minute: 5, Second: 30}.String())
}

func TestShowTimeMatches(t *testing.T) {
	st := ShowTime{Hour: 14}
	assert.True(t, st.Matches(time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC)))
	assert.False(t, st.Matches(time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC)))
	assert.False(t, st.Matches(time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)))
}

func TestSectionInBounds(t *testing.T) {
	s := EventSection{RowCount: 5, ColCount: 8}
	assert.True(t, s.InBounds(0, 0))
	assert.True(t, s.InBounds(4, 7))
	assert.False(t, s.InBounds(5, 0))
	assert.False(t, s.InBounds(0, 8))
}

func TestSeatIDEqual(t *testing.T) {
	date := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
	a := SeatID{EventID: 1, ShowDate: date, SectionID: 2, Row: 3, Col: 4}
	b := a
	assert.True(t, a.Equal(b))

	// Same instant in another zone is still the same seat.
	b.ShowDate = date.In(time.FixedZone("X", 3600))
	assert.True(t, a.Equal(b))

	b = a
	b.Col = 5
	assert.False(t, a.Equal(b))
}

func TestSeatLabel(t *testing.T) {
	assert.Equal(t, "VIP-2-7", SeatLabel("VIP", 2, 7))
}
