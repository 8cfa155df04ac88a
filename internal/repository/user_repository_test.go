package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func otpTestRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func TestConsumeOtpSuccess(t *testing.T) {
	repo, mock := otpTestRepo(t)
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	// The conditional UPDATE both checks and clears in one statement;
	// RowsAffected == 1 is the whole success signal, no follow-up read.
	mock.ExpectExec("UPDATE users SET otp_code=NULL").
		WithArgs(uint64(7), "004217", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ConsumeOtp(context.Background(), 7, "004217", now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeOtpSpentCode(t *testing.T) {
	repo, mock := otpTestRepo(t)
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	// Second use of a consumed code: the UPDATE misses and the
	// diagnosis read finds both fields already cleared.
	mock.ExpectExec("UPDATE users SET otp_code=NULL").
		WithArgs(uint64(7), "004217", now).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT otp_code, otp_expiry FROM users").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"otp_code", "otp_expiry"}).AddRow(nil, nil))

	err := repo.ConsumeOtp(context.Background(), 7, "004217", now)
	assert.Equal(t, ErrNoOtp, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeOtpMismatchKeepsCode(t *testing.T) {
	repo, mock := otpTestRepo(t)
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE users SET otp_code=NULL").
		WithArgs(uint64(7), "999999", now).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT otp_code, otp_expiry FROM users").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"otp_code", "otp_expiry"}).
			AddRow("004217", now.Add(5*time.Minute)))

	err := repo.ConsumeOtp(context.Background(), 7, "999999", now)
	assert.Equal(t, ErrOtpMismatch, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeOtpExpired(t *testing.T) {
	repo, mock := otpTestRepo(t)
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE users SET otp_code=NULL").
		WithArgs(uint64(7), "004217", now).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT otp_code, otp_expiry FROM users").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"otp_code", "otp_expiry"}).
			AddRow("004217", now.Add(-time.Minute)))

	err := repo.ConsumeOtp(context.Background(), 7, "004217", now)
	assert.Equal(t, ErrOtpExpired, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
