package model

import "time"

// Event represents a bookable event such as a concert or a movie
// screening run.  An event spans a date range and is shown at one
// or more fixed times of day.  Seats belong to sections, not to
// the event itself.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display title of the event.
//  Description – long-form description (nullable in the DB).
//  Venue       – free-text venue description.
//  Category    – optional category label.
//  StartDate   – first calendar day shows may take place.
//  EndDate     – last calendar day shows may take place (inclusive).
//  ShowTimes   – times of day at which the event is shown.
//  Sections    – seating sections offered for this event.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Event struct {
	ID          uint64         // events.id
	Title       string         // events.title
	Description string         // events.description
	Venue       string         // events.venue
	Category    string         // events.category
	StartDate   time.Time      // events.start_date (date component only)
	EndDate     time.Time      // events.end_date (date component only)
	ShowTimes   []ShowTime     // event_show_times rows
	Sections    []EventSection // event_sections rows
	CreatedAt   time.Time      // events.created_at
	UpdatedAt   time.Time      // events.updated_at
}

// ShowTime is a time-of-day at which an event is shown.  It is
// stored as a MySQL TIME column and compared by exact match when
// validating a requested show date.
type ShowTime struct {
	Hour   int
	Minute int
	Second int
}

// String renders the show time as HH:MM:SS, matching the DB column format.
func (t ShowTime) String() string {
	const digits = "0123456789"
	b := []byte{
		digits[t.Hour/10], digits[t.Hour%10], ':',
		digits[t.Minute/10], digits[t.Minute%10], ':',
		digits[t.Second/10], digits[t.Second%10],
	}
	return string(b)
}

// Matches reports whether the clock component of ts equals this show time.
func (t ShowTime) Matches(ts time.Time) bool {
	h, m, s := ts.Clock()
	return h == t.Hour && m == t.Minute && s == t.Second
}

// EventSection describes a block of seats for an event with a uniform
// price and a rectangular row/column grid.  Sections are immutable
// once tickets reference them; the per-ticket price is copied from
// the section at booking time and never recomputed.
//
// Fields:
//  ID           – primary key identifier.
//  EventID      – owning event.
//  Name         – section label (e.g. "VIP", "Gold").
//  PriceCents   – current price per seat in cents.
//  RowCount     – number of rows; valid rows are 0..RowCount-1.
//  ColCount     – number of columns; valid cols are 0..ColCount-1.
//  LayoutConfig – opaque layout descriptor, not interpreted by the server.
type EventSection struct {
	ID           uint64 // event_sections.id
	EventID      uint64 // event_sections.event_id
	Name         string // event_sections.name
	PriceCents   uint32 // event_sections.price_cents
	RowCount     uint32 // event_sections.row_count
	ColCount     uint32 // event_sections.col_count
	LayoutConfig string // event_sections.layout_config
}

// InBounds reports whether the given zero-based row and column fall
// inside this section's grid.
func (s EventSection) InBounds(row, col uint32) bool {
	return row < s.RowCount && col < s.ColCount
}
