package model

import (
	"fmt"
	"time"
)

// SeatID is the identity of one physical seat for one show: the
// tuple (event, show date, section, row, col).  Two SeatIDs are
// equal iff all five fields match; this tuple is the unit of
// mutual exclusion enforced by the tickets table's unique key.
type SeatID struct {
	EventID   uint64
	ShowDate  time.Time
	SectionID uint64
	Row       uint32
	Col       uint32
}

// Equal reports whether two seat identities denote the same seat.
// Show dates are compared as instants, not by location.
func (s SeatID) Equal(o SeatID) bool {
	return s.EventID == o.EventID &&
		s.ShowDate.Equal(o.ShowDate) &&
		s.SectionID == o.SectionID &&
		s.Row == o.Row &&
		s.Col == o.Col
}

// SeatLabel renders the human-readable seat name used on tickets
// and in booked-seat listings, e.g. "VIP-2-7".
func SeatLabel(sectionName string, row, col uint32) string {
	return fmt.Sprintf("%s-%d-%d", sectionName, row, col)
}
