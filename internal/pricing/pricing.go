// Package pricing computes reservation and ticket prices.  Two pricing
// modes coexist and are deliberately not merged: walk-in reservations
// use a tiered per-venue table (duration tier × participants), while
// the ticket sidebar sums its cart lines.  Both are pure functions of
// their inputs and always yield a non-negative amount.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/lumapark/venue-booking/internal/availability"
	"github.com/lumapark/venue-booking/internal/i18n"
	"github.com/lumapark/venue-booking/internal/model"
)

// Tier maps a duration ceiling to a base price.  A tier with
// UpToHours 0 is open-ended and catches every longer duration.
type Tier struct {
	UpToHours int
	Price     decimal.Decimal
}

// VenueRate prices one venue: either a tier ladder or a flat hourly
// rate.  When Tiers is non-empty it takes precedence over PerHour.
type VenueRate struct {
	Tiers   []Tier
	PerHour decimal.Decimal
}

// Table maps venue ids to their rates.
type Table map[string]VenueRate

// DefaultTable returns the production rate card.  The simulator ("f1")
// is tiered; the remaining venues charge a flat hourly rate.
func DefaultTable() Table {
	return Table{
		"f1": {Tiers: []Tier{
			{UpToHours: 1, Price: decimal.NewFromInt(100)},
			{UpToHours: 2, Price: decimal.NewFromInt(200)},
			{UpToHours: 0, Price: decimal.NewFromInt(300)},
		}},
		"vr":      {PerHour: decimal.NewFromInt(150)},
		"pc":      {PerHour: decimal.NewFromInt(60)},
		"console": {PerHour: decimal.NewFromInt(80)},
	}
}

// DurationHours converts a start/end pair into whole billing hours,
// rounding partial hours up.  ok is false when end is not strictly
// after start; callers must skip pricing in that case instead of
// producing a negative duration.
func DurationHours(start, end availability.TimeOfDay) (hours int, ok bool) {
	mins := end.Minutes() - start.Minutes()
	if mins <= 0 {
		return 0, false
	}
	hours = mins / 60
	if mins%60 != 0 {
		hours++
	}
	return hours, true
}

// ForVenue prices a walk-in reservation: the venue's base price for the
// duration tier multiplied by the participant count.  ok is false for
// an unknown venue, a non-positive participant count or an invalid
// time pair; no price is produced then.
func ForVenue(t Table, venueID string, start, end availability.TimeOfDay, participants int) (decimal.Decimal, bool) {
	rate, found := t[venueID]
	if !found || participants < 1 {
		return decimal.Zero, false
	}
	hours, ok := DurationHours(start, end)
	if !ok {
		return decimal.Zero, false
	}
	base := rate.PerHour.Mul(decimal.NewFromInt(int64(hours)))
	for _, tier := range rate.Tiers {
		if tier.UpToHours == 0 || hours <= tier.UpToHours {
			base = tier.Price
			break
		}
	}
	return base.Mul(decimal.NewFromInt(int64(participants))), true
}

// LineItem is the priced slice of a cart line.
type LineItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// ForLines sums quantity × unit price over all lines.
func ForLines(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Display renders an amount for the given language.  A zero amount
// reads "Ücretsiz"/"Free" instead of a numeric price.
func Display(amount decimal.Decimal, lang model.Language) string {
	if amount.IsZero() {
		return i18n.T(lang, i18n.KeyFree)
	}
	return amount.String() + " ₺"
}

// ToMinor converts an amount to minor currency units (kuruş).
func ToMinor(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}
