// Package pricing computes booking totals. It is deliberately pure:
// callers resolve the sections, pricing only sums, and the resulting
// per-seat prices are frozen into tickets so later section price
// changes never affect an existing booking.
package pricing

import "github.com/eventmate/ticketing/internal/model"

// SeatPrice pairs a seat's section with the price charged for it.
type SeatPrice struct {
	SectionID  uint64
	PriceCents uint32
}

// ForBatch returns the price of each requested seat (the current
// price of its section, in request order) and the batch total.  The
// bool result is false when a seat references a section missing from
// the map, in which case the other results are meaningless.
func ForBatch(sections map[uint64]model.EventSection, sectionIDs []uint64) ([]SeatPrice, uint32, bool) {
	prices := make([]SeatPrice, 0, len(sectionIDs))
	var total uint32
	for _, id := range sectionIDs {
		sec, ok := sections[id]
		if !ok {
			return nil, 0, false
		}
		prices = append(prices, SeatPrice{SectionID: id, PriceCents: sec.PriceCents})
		total += sec.PriceCents
	}
	return prices, total, true
}

// Total sums already-frozen per-seat prices, e.g. when recomputing a
// display total from ticket rows.
func Total(prices []SeatPrice) uint32 {
	var total uint32
	for _, p := range prices {
		total += p.PriceCents
	}
	return total
}
