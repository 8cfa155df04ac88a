package model

import "time"

// PaymentStatus is the lifecycle state of a booking's payment.
// PENDING is the initial state; COMPLETED and FAILED are terminal.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Terminal reports whether no transition may leave this state.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentFailed
}

// CanTransition reports whether moving from s to next is a legal
// payment-state transition.  Re-entering the same terminal state is
// allowed so that repeated confirmations stay idempotent.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	if s == next {
		return true
	}
	return s == PaymentPending && (next == PaymentCompleted || next == PaymentFailed)
}

// TicketStatus is the state of an individual ticket.
type TicketStatus string

const (
	TicketBooked    TicketStatus = "BOOKED"
	TicketCancelled TicketStatus = "CANCELLED"
	TicketUsed      TicketStatus = "USED"
)

// Booking groups the tickets a user purchased for one show of one
// event.  TotalAmountCents is fixed at creation from the per-ticket
// prices and is never recomputed from current section prices.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – user who made the booking.
//  EventID          – event being booked.
//  ShowDate         – date and time of the show.
//  BookingDate      – when the booking was created.
//  PaymentStatus    – PENDING, COMPLETED or FAILED.
//  TotalAmountCents – sum of ticket prices at creation time.
//  Tickets          – the reserved seats; never empty.
type Booking struct {
	ID               uint64        // bookings.id
	UserID           uint64        // bookings.user_id
	EventID          uint64        // bookings.event_id
	ShowDate         time.Time     // bookings.show_date
	BookingDate      time.Time     // bookings.booking_date
	PaymentStatus    PaymentStatus // bookings.payment_status
	TotalAmountCents uint32        // bookings.total_amount_cents
	Tickets          []Ticket      // tickets rows owned by this booking
}

// Ticket is one reserved seat inside a booking.  The event and show
// date are denormalized from the booking so the tickets table can
// carry the seat-uniqueness key on its own.
//
// Fields:
//  ID         – primary key identifier.
//  BookingID  – owning booking; a ticket is never shared or re-homed.
//  EventID    – event, copied from the booking.
//  ShowDate   – show date, copied from the booking.
//  SectionID  – section the seat belongs to.
//  Row, Col   – zero-based grid position within the section.
//  SeatNo     – rendered label, e.g. "Gold-3-12".
//  PriceCents – section price at booking time, frozen.
//  Status     – BOOKED, CANCELLED or USED.
type Ticket struct {
	ID         uint64       // tickets.id
	BookingID  uint64       // tickets.booking_id
	EventID    uint64       // tickets.event_id
	ShowDate   time.Time    // tickets.show_date
	SectionID  uint64       // tickets.section_id
	Row        uint32       // tickets.row_no
	Col        uint32       // tickets.col_no
	SeatNo     string       // tickets.seat_no
	PriceCents uint32       // tickets.price_cents
	Status     TicketStatus // tickets.status
}

// Seat returns the ticket's seat identity.
func (t Ticket) Seat() SeatID {
	return SeatID{
		EventID:   t.EventID,
		ShowDate:  t.ShowDate,
		SectionID: t.SectionID,
		Row:       t.Row,
		Col:       t.Col,
	}
}

// Payment records a confirmed payment for a booking.  At most one
// payment row exists per booking (unique key on booking_id), which
// is what makes repeated confirmations safe.
type Payment struct {
	ID          uint64        // payments.id
	BookingID   uint64        // payments.booking_id
	AmountCents uint32        // payments.amount_cents
	Method      string        // payments.method
	Status      PaymentStatus // payments.status
	PaidAt      time.Time     // payments.paid_at
}
