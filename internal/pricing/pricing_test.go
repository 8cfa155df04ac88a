package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventmate/ticketing/internal/model"
)

func sections() map[uint64]model.EventSection {
	return map[uint64]model.EventSection{
		1: {ID: 1, Name: "VIP", PriceCents: 5000},
		2: {ID: 2, Name: "Gold", PriceCents: 3000},
	}
}

func TestForBatch(t *testing.T) {
	prices, total, ok := ForBatch(sections(), []uint64{1, 2, 2})
	require.True(t, ok)
	assert.Equal(t, uint32(11000), total)
	require.Len(t, prices, 3)
	assert.Equal(t, uint32(5000), prices[0].PriceCents)
	assert.Equal(t, uint32(3000), prices[1].PriceCents)
	assert.Equal(t, uint32(3000), prices[2].PriceCents)
}

func TestForBatchUnknownSection(t *testing.T) {
	_, _, ok := ForBatch(sections(), []uint64{1, 99})
	assert.False(t, ok)
}

func TestForBatchEmpty(t *testing.T) {
	prices, total, ok := ForBatch(sections(), nil)
	require.True(t, ok)
	assert.Zero(t, total)
	assert.Empty(t, prices)
}

// A booking's total comes from the prices captured at reservation
// time; changing the section afterwards must not change the total.
func TestTotalFrozenAgainstPriceChange(t *testing.T) {
	secs := sections()
	prices, total, ok := ForBatch(secs, []uint64{1, 1})
	require.True(t, ok)
	require.Equal(t, uint32(10000), total)

	sec := secs[1]
	sec.PriceCents = 9000
	secs[1] = sec

	assert.Equal(t, uint32(10000), Total(prices))
}
