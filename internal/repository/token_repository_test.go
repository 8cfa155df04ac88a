package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRefreshLiveToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("hash-a").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, time.Now().UTC().Add(time.Hour), nil))

	repo := NewTokenRepo(db)
	uid, err := repo.ValidateRefresh(context.Background(), "hash-a")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uid)
}

func TestValidateRefreshRejectsDeadTokens(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTokenRepo(db)

	// Unknown hash.
	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}))
	_, err = repo.ValidateRefresh(context.Background(), "unknown")
	assert.Equal(t, ErrRefreshInvalid, err)

	// Expired.
	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("expired").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, time.Now().UTC().Add(-time.Hour), nil))
	_, err = repo.ValidateRefresh(context.Background(), "expired")
	assert.Equal(t, ErrRefreshInvalid, err)

	// Revoked, even though not yet expired.
	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("revoked").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, time.Now().UTC().Add(time.Hour), time.Now().UTC()))
	_, err = repo.ValidateRefresh(context.Background(), "revoked")
	assert.Equal(t, ErrRefreshInvalid, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
