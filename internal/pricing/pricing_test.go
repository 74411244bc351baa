package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapark/venue-booking/internal/availability"
	"github.com/lumapark/venue-booking/internal/model"
)

func at(h, m int) availability.TimeOfDay { return availability.TimeOfDay{Hour: h, Minute: m} }

func TestDurationHours(t *testing.T) {
	tests := []struct {
		name  string
		start availability.TimeOfDay
		end   availability.TimeOfDay
		hours int
		ok    bool
	}{
		{"exact hour", at(14, 0), at(15, 0), 1, true},
		{"two hours", at(14, 0), at(16, 0), 2, true},
		{"partial hour rounds up", at(14, 0), at(15, 30), 2, true},
		{"fifteen minutes is one hour", at(14, 0), at(14, 15), 1, true},
		{"equal times invalid", at(14, 0), at(14, 0), 0, false},
		{"end before start invalid", at(16, 0), at(14, 0), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, ok := DurationHours(tt.start, tt.end)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.hours, hours)
		})
	}
}

func TestForVenueTiered(t *testing.T) {
	table := DefaultTable()

	// Two hours on the simulator with two participants: 200 * 2.
	total, ok := ForVenue(table, "f1", at(14, 0), at(16, 0), 2)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(400).Equal(total))

	// One hour lands in the first tier.
	total, ok = ForVenue(table, "f1", at(14, 0), at(15, 0), 1)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(100).Equal(total))

	// Anything past two hours hits the open-ended tier.
	total, ok = ForVenue(table, "f1", at(14, 0), at(19, 0), 1)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(300).Equal(total))
}

func TestForVenueHourly(t *testing.T) {
	table := DefaultTable()

	// VR charges per hour; 90 minutes bills as two hours.
	total, ok := ForVenue(table, "vr", at(14, 0), at(15, 30), 3)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(900).Equal(total), "150 * 2h * 3 people, got %s", total)
}

func TestForVenueRejections(t *testing.T) {
	table := DefaultTable()

	_, ok := ForVenue(table, "bowling", at(14, 0), at(15, 0), 2)
	assert.False(t, ok, "unknown venue must not price")

	_, ok = ForVenue(table, "f1", at(15, 0), at(14, 0), 2)
	assert.False(t, ok, "inverted time pair must not price")

	_, ok = ForVenue(table, "f1", at(14, 0), at(15, 0), 0)
	assert.False(t, ok, "zero participants must not price")
}

func TestForVenueIdempotent(t *testing.T) {
	table := DefaultTable()
	first, ok := ForVenue(table, "pc", at(10, 0), at(12, 0), 4)
	require.True(t, ok)
	second, ok := ForVenue(table, "pc", at(10, 0), at(12, 0), 4)
	require.True(t, ok)
	assert.True(t, first.Equal(second))
}

func TestForLines(t *testing.T) {
	total := ForLines([]LineItem{
		{UnitPrice: decimal.Zero, Quantity: 2},
		{UnitPrice: decimal.NewFromInt(150), Quantity: 1},
	})
	assert.True(t, decimal.NewFromInt(150).Equal(total))

	assert.True(t, ForLines(nil).IsZero())
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "Ücretsiz", Display(decimal.Zero, model.LangTR))
	assert.Equal(t, "Free", Display(decimal.Zero, model.LangEN))
	assert.Equal(t, "400 ₺", Display(decimal.NewFromInt(400), model.LangTR))
	assert.Equal(t, "400 ₺", Display(decimal.NewFromInt(400), model.LangEN))
}

func TestToMinor(t *testing.T) {
	assert.Equal(t, int64(40000), ToMinor(decimal.NewFromInt(400)))
	assert.Equal(t, int64(0), ToMinor(decimal.Zero))
	assert.Equal(t, int64(1550), ToMinor(decimal.NewFromFloat(15.5)))
}
