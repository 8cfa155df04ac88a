package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventmate/ticketing/internal/model"
)

func scheduleFixture() *model.Event {
	return &model.Event{
		ID:        1,
		Title:     "Winter Concert",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		ShowTimes: []model.ShowTime{
			{Hour: 10},
			{Hour: 14},
		},
	}
}

func TestValidShowDate(t *testing.T) {
	ev := scheduleFixture()

	ok := func(s string) bool {
		ts, parsed := parseShowDate(s)
		require.True(t, parsed, "fixture date %q must parse", s)
		return validShowDate(ev, ts)
	}

	assert.True(t, ok("2024-01-03 10:00"))
	assert.True(t, ok("2024-01-03 14:00:00"))
	assert.True(t, ok("2024-01-01 10:00"), "range start is inclusive")
	assert.True(t, ok("2024-01-05 14:00"), "range end is inclusive")

	assert.False(t, ok("2024-01-03 11:00"), "time not in schedule")
	assert.False(t, ok("2024-01-03 10:30"), "time must match exactly")
	assert.False(t, ok("2024-01-06 10:00"), "day after range")
	assert.False(t, ok("2023-12-31 10:00"), "day before range")
}

func TestParseShowDate(t *testing.T) {
	ts, ok := parseShowDate("2024-01-03 10:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), ts)

	ts, ok = parseShowDate("2024-01-03 10:00:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), ts)

	ts, ok = parseShowDate("2024-01-03T10:00:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), ts)

	_, ok = parseShowDate("")
	assert.False(t, ok)
	_, ok = parseShowDate("not-a-date")
	assert.False(t, ok)
	_, ok = parseShowDate("2024-01-03")
	assert.False(t, ok, "date without a show time is ambiguous")
}
