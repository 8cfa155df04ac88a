package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/eventmate/ticketing/internal/model"
)

// BookingRepo provides persistence for bookings and their payments.
// A booking and its tickets are written as one unit inside a caller
// supplied transaction, and the payment-status flip plus payment row
// share a transaction as well.  All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// BookingRecord mirrors the bookings table.  It is used by the
// repository when constructing or scanning rows; business logic
// should use model.Booking.
type BookingRecord struct {
	ID               uint64
	UserID           uint64
	EventID          uint64
	ShowDate         time.Time
	BookingDate      time.Time
	PaymentStatus    model.PaymentStatus
	TotalAmountCents uint32
}

// CreateTx inserts a new booking in PENDING state within the scope of
// an existing transaction and populates the generated ID and booking
// date on the record.  The caller must commit or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *BookingRecord) error {
	const q = `INSERT INTO bookings (user_id, event_id, show_date, payment_status, total_amount_cents)
	           VALUES (?, ?, ?, 'PENDING', ?)`
	res, err := tx.ExecContext(ctx, q, rec.UserID, rec.EventID, rec.ShowDate.UTC(), rec.TotalAmountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	rec.PaymentStatus = model.PaymentPending
	const sel = `SELECT booking_date FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, rec.ID).Scan(&rec.BookingDate)
}

// StatusTx reads a booking's payment status inside a transaction.
// Returns ErrBookingNotFound when the booking does not exist.
func (r *BookingRepo) StatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (model.PaymentStatus, error) {
	var status string
	err := tx.QueryRowContext(ctx,
		`SELECT payment_status FROM bookings WHERE id = ?`, bookingID).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrBookingNotFound
		}
		return "", err
	}
	return model.PaymentStatus(status), nil
}

// MarkCompletedTx flips a PENDING booking to COMPLETED and reports
// whether this call performed the transition.  The conditional
// UPDATE is the arbiter: of any number of concurrent confirmations,
// exactly one observes a row count of 1.
func (r *BookingRepo) MarkCompletedTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET payment_status = 'COMPLETED' WHERE id = ? AND payment_status = 'PENDING'`,
		bookingID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ConfirmCompletedTx settles a payment confirmation inside an open
// transaction. When this call performed the PENDING to COMPLETED flip
// it returns (false, nil); when the booking was COMPLETED before the
// call it returns (true, nil) so the caller can answer idempotently;
// a booking in the terminal FAILED state yields ErrBookingClosed.
func (r *BookingRepo) ConfirmCompletedTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (already bool, err error) {
	did, err := r.MarkCompletedTx(ctx, tx, bookingID)
	if err != nil {
		return false, err
	}
	if did {
		return false, nil
	}
	status, err := r.StatusTx(ctx, tx, bookingID)
	if err != nil {
		return false, err
	}
	if status == model.PaymentCompleted {
		return true, nil
	}
	return false, ErrBookingClosed
}

// CreatePaymentTx records the payment for a booking in the same
// transaction as the status flip.  The unique key on booking_id
// guarantees at most one payment row even if two confirmations race
// past the status check.
func (r *BookingRepo) CreatePaymentTx(ctx context.Context, tx *sql.Tx, bookingID uint64, amountCents uint32, method string) error {
	const q = `INSERT INTO payments (booking_id, amount_cents, method, status) VALUES (?, ?, ?, 'COMPLETED')`
	_, err := tx.ExecContext(ctx, q, bookingID, amountCents, method)
	return err
}

// TotalTx reads a booking's frozen total inside a transaction.
func (r *BookingRepo) TotalTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (uint32, error) {
	var total uint32
	err := tx.QueryRowContext(ctx,
		`SELECT total_amount_cents FROM bookings WHERE id = ?`, bookingID).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, ErrBookingNotFound
	}
	return total, err
}

// BookingDetail is the shape returned to clients when listing or
// fetching bookings: the booking itself plus its event title and the
// rendered labels of its seats.
type BookingDetail struct {
	ID               uint64    `json:"id"`
	EventID          uint64    `json:"event_id"`
	EventTitle       string    `json:"event_title"`
	ShowDate         time.Time `json:"show_date"`
	BookingDate      time.Time `json:"booking_date"`
	PaymentStatus    string    `json:"payment_status"`
	TotalAmountCents uint32    `json:"total_amount_cents"`
	Seats            []string  `json:"seats"`
}

// GetByIDForUser returns one booking belonging to the given user.
// When no such booking exists for that user, ErrBookingNotFound is
// returned; ownership failures are indistinguishable from absence on
// purpose.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*BookingDetail, error) {
	const q = `SELECT b.id, b.event_id, e.title, b.show_date, b.booking_date, b.payment_status, b.total_amount_cents
	           FROM bookings b
	           JOIN events e ON e.id = b.event_id
	           WHERE b.id = ? AND b.user_id = ?`
	var d BookingDetail
	err := r.db.QueryRowContext(ctx, q, bookingID, userID).Scan(
		&d.ID, &d.EventID, &d.EventTitle, &d.ShowDate, &d.BookingDate, &d.PaymentStatus, &d.TotalAmountCents)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	d.Seats = []string{}
	const seatQ = `SELECT seat_no FROM tickets WHERE booking_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, seatQ, d.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		d.Seats = append(d.Seats, label)
	}
	return &d, rows.Err()
}

// ListByUser returns all bookings for the given user, newest first,
// with their seat labels populated in one follow-up query.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.event_id, e.title, b.show_date, b.booking_date, b.payment_status, b.total_amount_cents
	           FROM bookings b
	           JOIN events e ON e.id = b.event_id
	           WHERE b.user_id = ?
	           ORDER BY b.booking_date DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.EventID, &d.EventTitle, &d.ShowDate, &d.BookingDate,
			&d.PaymentStatus, &d.TotalAmountCents); err != nil {
			return nil, err
		}
		d.Seats = []string{}
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	seatQ := `SELECT booking_id, seat_no FROM tickets
	          WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY booking_id, id`
	srows, err := r.db.QueryContext(ctx, seatQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var bid uint64
		var label string
		if err := srows.Scan(&bid, &label); err != nil {
			return nil, err
		}
		if idx, ok := index[bid]; ok {
			details[idx].Seats = append(details[idx].Seats, label)
		}
	}
	return details, srows.Err()
}

// OwnerAndEventTx returns the user and event of a booking inside a
// transaction, for use after a successful payment confirmation when
// assembling the notification.
func (r *BookingRepo) OwnerAndEventTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (userID, eventID uint64, err error) {
	err = tx.QueryRowContext(ctx,
		`SELECT user_id, event_id FROM bookings WHERE id = ?`, bookingID).Scan(&userID, &eventID)
	if err == sql.ErrNoRows {
		err = ErrBookingNotFound
	}
	return
}
