package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/eventmate/ticketing/internal/model"
)

// TicketRepo is the inventory ledger: the durable record of which
// seat identities are occupied.  It is the only component that
// decides whether a seat is free, and it never trusts an earlier
// read: the tickets table's composite unique key is the arbiter,
// so two callers that both saw a seat as free cannot both insert.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// TicketRecord holds the per-seat values inserted when a batch is
// reserved.  Event ID, show date and booking ID are supplied once
// per batch in ReserveTx.
type TicketRecord struct {
	SectionID  uint64
	Row        uint32
	Col        uint32
	SeatNo     string
	PriceCents uint32
}

// IsOccupied reports whether a non-cancelled ticket exists for the
// exact seat identity.
func (r *TicketRepo) IsOccupied(ctx context.Context, seat model.SeatID) (bool, error) {
	const q = `SELECT EXISTS(
	             SELECT 1 FROM tickets
	             WHERE event_id = ? AND show_date = ? AND section_id = ? AND row_no = ? AND col_no = ?
	               AND active = 1)`
	var occupied bool
	err := r.db.QueryRowContext(ctx, q,
		seat.EventID, seat.ShowDate.UTC(), seat.SectionID, seat.Row, seat.Col).Scan(&occupied)
	return occupied, err
}

// ReserveTx inserts one ticket row per record inside the given
// transaction.  All rows go in with one statement, so either every
// seat in the batch is claimed or the unique key rejects the whole
// insert.  The caller must roll back on error; a duplicate-key
// error means some seat in the batch is already taken and should be
// translated with Conflict.
func (r *TicketRepo) ReserveTx(ctx context.Context, tx *sql.Tx, bookingID, eventID uint64, showDate time.Time, recs []TicketRecord) error {
	if len(recs) == 0 {
		return nil
	}
	query := `INSERT INTO tickets (booking_id, event_id, show_date, section_id, row_no, col_no, seat_no, price_cents, status, active) VALUES `
	args := make([]interface{}, 0, len(recs)*8)
	for i, rec := range recs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, 'BOOKED', 1)"
		args = append(args, bookingID, eventID, showDate.UTC(), rec.SectionID, rec.Row, rec.Col, rec.SeatNo, rec.PriceCents)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// Conflict inspects a ReserveTx failure. When err is a duplicate-key
// violation it returns a SeatTakenError naming the first seat of the
// batch that is occupied, determined by re-querying the ledger after
// the caller rolled back. Any other error is returned unchanged.
func (r *TicketRepo) Conflict(ctx context.Context, err error, eventID uint64, showDate time.Time, recs []TicketRecord) error {
	if !isDuplicateKey(err) {
		return err
	}
	for _, rec := range recs {
		seat := model.SeatID{
			EventID:   eventID,
			ShowDate:  showDate,
			SectionID: rec.SectionID,
			Row:       rec.Row,
			Col:       rec.Col,
		}
		occupied, qErr := r.IsOccupied(ctx, seat)
		if qErr != nil {
			// Could not pinpoint the seat; still report the conflict
			// with the first seat of the batch rather than a generic
			// failure.
			return &SeatTakenError{Seat: seat}
		}
		if occupied {
			return &SeatTakenError{Seat: seat}
		}
	}
	// The committed winner is not visible yet (or was a duplicate
	// within the batch itself); fall back to the first requested seat.
	first := recs[0]
	return &SeatTakenError{Seat: model.SeatID{
		EventID:   eventID,
		ShowDate:  showDate,
		SectionID: first.SectionID,
		Row:       first.Row,
		Col:       first.Col,
	}}
}

// BookedSeat is one occupied seat in the projection returned by
// BookedSeats, carrying its rendered label for clients.
type BookedSeat struct {
	SectionID   uint64 `json:"section_id"`
	SectionName string `json:"section_name"`
	Row         uint32 `json:"row"`
	Col         uint32 `json:"col"`
	Label       string `json:"label"`
}

// BookedSeats returns every seat held by a non-cancelled ticket for
// the given event and show date.  Only committed reservations are
// visible; reservation itself is atomic, so there is no in-flight
// state to leak.
func (r *TicketRepo) BookedSeats(ctx context.Context, eventID uint64, showDate time.Time) ([]BookedSeat, error) {
	const q = `SELECT t.section_id, s.name, t.row_no, t.col_no
	           FROM tickets t
	           JOIN event_sections s ON s.id = t.section_id
	           WHERE t.event_id = ? AND t.show_date = ? AND t.active = 1
	           ORDER BY s.name, t.row_no, t.col_no`
	rows, err := r.db.QueryContext(ctx, q, eventID, showDate.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]BookedSeat, 0)
	for rows.Next() {
		var b BookedSeat
		if err := rows.Scan(&b.SectionID, &b.SectionName, &b.Row, &b.Col); err != nil {
			return nil, err
		}
		b.Label = model.SeatLabel(b.SectionName, b.Row, b.Col)
		seats = append(seats, b)
	}
	return seats, rows.Err()
}
