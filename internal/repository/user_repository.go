package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/eventmate/ticketing/internal/model"
	"github.com/eventmate/ticketing/internal/utils"
)

// UserRepo provides access to the users table, including the OTP
// fields used for one-time-code login.  OTP issue and consume are
// each a single statement so they stay atomic under concurrent
// requests without any in-process locking.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
		name, email, hash, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.get(ctx, "email=?", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.get(ctx, "id=?", id)
}

func (r *UserRepo) get(ctx context.Context, where string, arg interface{}) (model.User, error) {
	var u model.User
	var otpCode sql.NullString
	var otpExpiry sql.NullTime
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,role,is_active,otp_code,otp_expiry,created_at,updated_at FROM users WHERE "+where+" LIMIT 1",
		arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&otpCode, &otpExpiry, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return u, ErrUserNotFound
		}
		return u, err
	}
	if otpCode.Valid {
		code := otpCode.String
		u.OtpCode = &code
	}
	if otpExpiry.Valid {
		t := otpExpiry.Time
		u.OtpExpiry = &t
	}
	return u, nil
}

// SetOtp stores a freshly issued code and its expiry, overwriting any
// live code.  One UPDATE writes both fields, so a user never ends up
// with a code and no expiry or vice versa.
func (r *UserRepo) SetOtp(ctx context.Context, userID uint64, code string, expiry time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET otp_code=?, otp_expiry=? WHERE id=?",
		code, expiry.UTC(), userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ConsumeOtp validates and clears a user's code in one conditional
// UPDATE: the row changes only when the stored code matches and has
// not expired.  Because check and clear are a single statement, two
// concurrent validations of the same code cannot both succeed; the
// storage layer lets exactly one of them through.  When the UPDATE
// touches no row, the user's current state is read back to decide
// which sentinel to return.
func (r *UserRepo) ConsumeOtp(ctx context.Context, userID uint64, code string, now time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET otp_code=NULL, otp_expiry=NULL WHERE id=? AND otp_code=? AND otp_expiry>=?",
		userID, code, now.UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	return r.diagnoseOtp(ctx, userID, code, now)
}

// ConsumeOtpAndSetPassword is ConsumeOtp fused with a password change
// for the reset flow: the new hash is written in the same statement
// that checks and clears the code.
func (r *UserRepo) ConsumeOtpAndSetPassword(ctx context.Context, userID uint64, code, passwordHash string, now time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, otp_code=NULL, otp_expiry=NULL WHERE id=? AND otp_code=? AND otp_expiry>=?",
		passwordHash, userID, code, now.UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	return r.diagnoseOtp(ctx, userID, code, now)
}

// ClearOtp removes any live code without consuming it (explicit reset).
func (r *UserRepo) ClearOtp(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET otp_code=NULL, otp_expiry=NULL WHERE id=?", userID)
	return err
}

// diagnoseOtp explains a failed ConsumeOtp. The answer is advisory
// (the state may have changed since the UPDATE) but the UPDATE already
// settled the outcome, so this read only picks the error category.
func (r *UserRepo) diagnoseOtp(ctx context.Context, userID uint64, code string, now time.Time) error {
	var otpCode sql.NullString
	var otpExpiry sql.NullTime
	err := r.DB.QueryRowContext(ctx,
		"SELECT otp_code, otp_expiry FROM users WHERE id=? LIMIT 1", userID).
		Scan(&otpCode, &otpExpiry)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		return err
	}
	if !otpCode.Valid || !otpExpiry.Valid {
		return ErrNoOtp
	}
	if otpCode.String != code {
		return ErrOtpMismatch
	}
	if now.UTC().After(otpExpiry.Time) {
		return ErrOtpExpired
	}
	// Matching, unexpired code yet the UPDATE missed: another request
	// consumed and re-issued between our two statements. Treat as spent.
	return ErrNoOtp
}
