package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/eventmate/ticketing/internal/model"
)

// EventRepo provides read-only access to the event catalog: events,
// their configured show times and their seating sections.  The
// catalog is maintained elsewhere; this service only consumes it
// when validating and pricing bookings.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *EventRepo) DB() *sql.DB { return r.db }

// List returns all events ordered by start date.  Show times and
// sections are not populated; use GetByID for the full record.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT id, title, description, venue, category, start_date, end_date, created_at, updated_at
	           FROM events
	           ORDER BY start_date, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var ev model.Event
		var desc, venue, category sql.NullString
		if err := rows.Scan(&ev.ID, &ev.Title, &desc, &venue, &category,
			&ev.StartDate, &ev.EndDate, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, err
		}
		ev.Description = desc.String
		ev.Venue = venue.String
		ev.Category = category.String
		events = append(events, ev)
	}
	return events, rows.Err()
}

// GetByID returns a single event with its show times and sections
// populated.  It returns ErrEventNotFound when no row exists.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT id, title, description, venue, category, start_date, end_date, created_at, updated_at
	           FROM events WHERE id = ?`
	var ev model.Event
	var desc, venue, category sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&ev.ID, &ev.Title, &desc, &venue, &category,
		&ev.StartDate, &ev.EndDate, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	ev.Description = desc.String
	ev.Venue = venue.String
	ev.Category = category.String

	// Show times are stored as TIME columns; the driver hands them back
	// as strings in HH:MM:SS form.
	const timesQ = `SELECT show_time FROM event_show_times WHERE event_id = ? ORDER BY show_time`
	trows, err := r.db.QueryContext(ctx, timesQ, id)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var raw string
		if err := trows.Scan(&raw); err != nil {
			return nil, err
		}
		st, err := ParseShowTime(raw)
		if err != nil {
			return nil, err
		}
		ev.ShowTimes = append(ev.ShowTimes, st)
	}
	if err := trows.Err(); err != nil {
		return nil, err
	}

	sections, err := r.sectionsByEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	ev.Sections = sections
	return &ev, nil
}

// SectionsByIDs loads the given sections of one event keyed by ID.
// A requested ID that does not belong to the event (or does not
// exist at all) yields ErrSectionNotFound, wrapped with the offending
// ID.
func (r *EventRepo) SectionsByIDs(ctx context.Context, eventID uint64, ids []uint64) (map[uint64]model.EventSection, error) {
	out := make(map[uint64]model.EventSection, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, eventID)
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT id, event_id, name, price_cents, row_count, col_count, layout_config
	      FROM event_sections
	      WHERE event_id = ? AND id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.EventSection
		var layout sql.NullString
		if err := rows.Scan(&s.ID, &s.EventID, &s.Name, &s.PriceCents, &s.RowCount, &s.ColCount, &layout); err != nil {
			return nil, err
		}
		s.LayoutConfig = layout.String
		out[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			return nil, fmt.Errorf("section %d: %w", id, ErrSectionNotFound)
		}
	}
	return out, nil
}

func (r *EventRepo) sectionsByEvent(ctx context.Context, eventID uint64) ([]model.EventSection, error) {
	const q = `SELECT id, event_id, name, price_cents, row_count, col_count, layout_config
	           FROM event_sections WHERE event_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sections []model.EventSection
	for rows.Next() {
		var s model.EventSection
		var layout sql.NullString
		if err := rows.Scan(&s.ID, &s.EventID, &s.Name, &s.PriceCents, &s.RowCount, &s.ColCount, &layout); err != nil {
			return nil, err
		}
		s.LayoutConfig = layout.String
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// ParseShowTime parses a MySQL TIME string (HH:MM:SS, seconds optional)
// into a ShowTime.
func ParseShowTime(raw string) (model.ShowTime, error) {
	var st model.ShowTime
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return st, fmt.Errorf("malformed show time %q", raw)
	}
	read := func(s string) (int, error) {
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return 0, fmt.Errorf("malformed show time %q", raw)
		}
		return n, nil
	}
	var err error
	if st.Hour, err = read(parts[0]); err != nil {
		return st, err
	}
	if st.Minute, err = read(parts[1]); err != nil {
		return st, err
	}
	if len(parts) == 3 {
		if st.Second, err = read(parts[2]); err != nil {
			return st, err
		}
	}
	if st.Hour < 0 || st.Hour > 23 || st.Minute < 0 || st.Minute > 59 || st.Second < 0 || st.Second > 59 {
		return model.ShowTime{}, fmt.Errorf("show time out of range %q", raw)
	}
	return st, nil
}
