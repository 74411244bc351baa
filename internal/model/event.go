package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMaxPerOrder caps how many tickets of one type a single order
// may contain when the ticket type does not set its own limit.
const DefaultMaxPerOrder = 5

// TicketVariant labels the tier of a ticket type.
type TicketVariant string

const (
	VariantStandard TicketVariant = "standard"
	VariantPremium  TicketVariant = "premium"
	VariantVIP      TicketVariant = "vip"
)

// TicketType is a purchasable ticket category owned by an event.  It is
// read-only from the cart's perspective: the cart snapshots the price
// and name at the moment a line is created.
//
// Fields:
//  ID           – identifier unique within the event.
//  Name         – bilingual display name.
//  Description  – optional bilingual description.
//  Price        – unit price; zero means the ticket is free.
//  MaxPerOrder  – per-order quantity cap; 0 falls back to DefaultMaxPerOrder.
//  Variant      – standard, premium or vip.
//  IsSoldOut    – no further quantity may be added.
//  IsComingSoon – not yet on sale; behaves like sold out for the cart.
type TicketType struct {
	ID           string          `json:"id"`
	Name         LocalizedText   `json:"name"`
	Description  *LocalizedText  `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	MaxPerOrder  int             `json:"max_per_order"`
	Variant      TicketVariant   `json:"variant"`
	IsSoldOut    bool            `json:"is_sold_out"`
	IsComingSoon bool            `json:"is_coming_soon"`
}

// Limit returns the effective per-order cap for this ticket type.
func (t TicketType) Limit() int {
	if t.MaxPerOrder > 0 {
		return t.MaxPerOrder
	}
	return DefaultMaxPerOrder
}

// Event is a marketed event page with its ticket types.  All text
// fields carry both language variants.
type Event struct {
	ID          uint64        `json:"id"`
	Slug        string        `json:"slug"`
	Category    string        `json:"category"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	Location    LocalizedText `json:"location"`
	StartsAt    time.Time     `json:"starts_at"`
	EndsAt      *time.Time    `json:"ends_at,omitempty"`
	ImagePath   string        `json:"image_path,omitempty"`
	Published   bool          `json:"published"`
	TicketTypes []TicketType  `json:"ticket_types,omitempty"`
}
