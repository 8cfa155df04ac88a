package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventmate/ticketing/internal/model"
)

func TestParseShowTime(t *testing.T) {
	st, err := ParseShowTime("10:00:00")
	require.NoError(t, err)
	assert.Equal(t, model.ShowTime{Hour: 10}, st)

	st, err = ParseShowTime("14:30")
	require.NoError(t, err)
	assert.Equal(t, model.ShowTime{Hour: 14, Minute: 30}, st)

	st, err = ParseShowTime(" 09:05:07 ")
	require.NoError(t, err)
	assert.Equal(t, model.ShowTime{Hour: 9, Minute: 5, Second: 7}, st)

	_, err = ParseShowTime("10")
	assert.Error(t, err)
	_, err = ParseShowTime("ten:00")
	assert.Error(t, err)
	_, err = ParseShowTime("")
	assert.Error(t, err)
}

func TestSectionsByIDsMissingSection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Section 9 belongs to another event, so the IN query returns only
	// section 2 and the lookup must fail rather than silently shrink.
	mock.ExpectQuery("SELECT id, event_id, name, price_cents").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "event_id", "name", "price_cents", "row_count", "col_count", "layout_config"}).
			AddRow(2, 1, "VIP", 5000, 5, 8, nil))

	repo := NewEventRepo(db)
	_, err = repo.SectionsByIDs(context.Background(), 1, []uint64{2, 9})
	assert.True(t, errors.Is(err, ErrSectionNotFound))
	assert.Contains(t, err.Error(), "9")
	assert.NoError(t, mock.ExpectationsWereMet())
}
