// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors. SeatTakenError is special in that it
// carries the identity of the colliding seat so callers can tell the
// client exactly which seat to refresh.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eventmate/ticketing/internal/model"
)

// ErrEventNotFound is returned when an event lookup matches no row.
var ErrEventNotFound = errors.New("event not found")

// ErrSectionNotFound is returned when a section lookup matches no row.
var ErrSectionNotFound = errors.New("section not found")

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registering a user with an email
// that already has an account.
var ErrEmailExists = errors.New("email already exists")

// ErrRefreshInvalid is returned when a refresh token hash is unknown,
// expired or revoked. The three cases are deliberately collapsed so a
// caller cannot probe which one applied.
var ErrRefreshInvalid = errors.New("refresh token invalid")

// ErrBookingClosed is returned when a payment confirmation is attempted
// on a booking that already reached the FAILED terminal state.
var ErrBookingClosed = errors.New("booking is closed")

// OTP validation sentinels. Handlers should collapse ErrOtpMismatch and
// ErrOtpExpired into one generic client-facing message so the response
// does not reveal which check failed.
var (
	ErrNoOtp       = errors.New("no otp issued")
	ErrOtpMismatch = errors.New("otp mismatch")
	ErrOtpExpired  = errors.New("otp expired")
)

// SeatTakenError reports that a seat in a reservation batch is already
// held by a non-cancelled ticket. The whole batch is aborted; Seat
// names the first colliding seat found.
type SeatTakenError struct {
	Seat model.SeatID
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat already booked: section %d row %d col %d",
		e.Seat.SectionID, e.Seat.Row, e.Seat.Col)
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062), the signal that the tickets unique key rejected an
// insert. The driver's error text always contains the numeric code.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
