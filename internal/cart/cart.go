// Package cart tracks selected ticket quantities for one event.  The
// cart owns no money logic beyond delegating to pricing, and it never
// holds a line for a ticket that cannot be bought: sold-out and
// coming-soon types are rejected before any mutation happens.
package cart

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumapark/venue-booking/internal/i18n"
	"github.com/lumapark/venue-booking/internal/model"
	"github.com/lumapark/venue-booking/internal/pricing"
)

// Sentinel errors returned by Increase.  Handlers translate these into
// keyed, localized messages; the cart additionally records the message
// itself under the ticket id (see Messages).
var (
	ErrSoldOut       = errors.New("ticket type is sold out")
	ErrComingSoon    = errors.New("ticket type is not on sale yet")
	ErrLimitExceeded = errors.New("per-order limit reached")
	ErrUnknownTicket = errors.New("unknown ticket type")
)

// Line is one selected ticket type with its quantity.  UnitPrice and
// the names are snapshots taken when the line was created; DisplayName
// follows the active language (see RefreshNames).
type Line struct {
	TicketTypeID string              `json:"ticket_type_id"`
	Quantity     int                 `json:"quantity"`
	UnitPrice    decimal.Decimal     `json:"unit_price"`
	Name         model.LocalizedText `json:"name"`
	DisplayName  string              `json:"display_name"`
}

// Cart accumulates ticket selections against the event's ticket types.
// It is owned by a single session; no locking is needed.
type Cart struct {
	lang     model.Language
	types    map[string]model.TicketType
	order    []string // line ordering by ticket type id
	lines    map[string]*Line
	messages map[string]string // standing error message per ticket id
}

// New creates an empty cart over the event's ticket types.
func New(types []model.TicketType, lang model.Language) *Cart {
	m := make(map[string]model.TicketType, len(types))
	for _, t := range types {
		m[t.ID] = t
	}
	return &Cart{
		lang:     lang,
		types:    m,
		lines:    make(map[string]*Line),
		messages: make(map[string]string),
	}
}

// Increase adds one ticket of the given type, creating the line on the
// 0→1 transition.  Sold-out and coming-soon types fail without any
// mutation and leave a message keyed by the ticket id; reaching the
// per-order limit fails the same way with the configured limit in the
// message.
func (c *Cart) Increase(ticketTypeID string) error {
	t, ok := c.types[ticketTypeID]
	if !ok {
		return ErrUnknownTicket
	}
	switch {
	case t.IsSoldOut:
		c.messages[ticketTypeID] = i18n.T(c.lang, i18n.KeySoldOut)
		return ErrSoldOut
	case t.IsComingSoon:
		c.messages[ticketTypeID] = i18n.T(c.lang, i18n.KeyComingSoon)
		return ErrComingSoon
	}
	line := c.lines[ticketTypeID]
	if line != nil && line.Quantity >= t.Limit() {
		c.messages[ticketTypeID] = i18n.T(c.lang, i18n.KeyLimitExceeded, t.Limit())
		return ErrLimitExceeded
	}
	if line == nil {
		line = &Line{
			TicketTypeID: ticketTypeID,
			UnitPrice:    t.Price,
			Name:         t.Name,
			DisplayName:  t.Name.In(c.lang),
		}
		c.lines[ticketTypeID] = line
		c.order = append(c.order, ticketTypeID)
	}
	line.Quantity++
	delete(c.messages, ticketTypeID)
	return nil
}

// Decrease removes one ticket of the given type.  When the quantity
// reaches zero the line is removed entirely.  Any standing message for
// the ticket id is cleared.
func (c *Cart) Decrease(ticketTypeID string) {
	delete(c.messages, ticketTypeID)
	line, ok := c.lines[ticketTypeID]
	if !ok {
		return
	}
	line.Quantity--
	if line.Quantity <= 0 {
		delete(c.lines, ticketTypeID)
		for i, id := range c.order {
			if id == ticketTypeID {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

// Lines returns the cart lines in selection order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// IsEmpty reports whether no line has a positive quantity.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Total sums quantity × unit price over all lines.
func (c *Cart) Total() decimal.Decimal {
	items := make([]pricing.LineItem, 0, len(c.order))
	for _, id := range c.order {
		l := c.lines[id]
		items = append(items, pricing.LineItem{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	return pricing.ForLines(items)
}

// Messages returns the standing error messages keyed by ticket id.
func (c *Cart) Messages() map[string]string {
	out := make(map[string]string, len(c.messages))
	for k, v := range c.messages {
		out[k] = v
	}
	return out
}

// Language returns the cart's active language.
func (c *Cart) Language() model.Language { return c.lang }

// RefreshNames switches the active language and re-derives every
// line's display name from the localized ticket name, so the cart
// never shows stale-language labels after a language switch.
func (c *Cart) RefreshNames(lang model.Language) {
	c.lang = lang
	for _, line := range c.lines {
		line.DisplayName = line.Name.In(lang)
	}
}

// Snapshot is the lightweight cart state written to the pendingCart
// key whenever the cart is non-empty, so an aborted payment can restore
// the in-progress selection on return.  It is only restored when its
// event id matches the current event.
type Snapshot struct {
	EventID   uint64        `json:"event_id"`
	Lines     []Line        `json:"lines"`
	Contact   model.Contact `json:"contact"`
	Timestamp time.Time     `json:"timestamp"`
}

// Snapshot captures the current lines together with the contact fields
// entered so far.
func (c *Cart) Snapshot(eventID uint64, contact model.Contact, now time.Time) Snapshot {
	return Snapshot{
		EventID:   eventID,
		Lines:     c.Lines(),
		Contact:   contact,
		Timestamp: now,
	}
}

// Restore applies a snapshot to an empty cart.  Lines for ticket types
// that no longer exist or are no longer buyable are dropped, and
// quantities are clamped to the per-order limit, so the cart invariant
// holds even against a stale snapshot.  It reports whether anything was
// restored; a snapshot for a different event restores nothing.
func (c *Cart) Restore(s Snapshot, eventID uint64) bool {
	if s.EventID != eventID || len(s.Lines) == 0 {
		return false
	}
	restored := false
	for _, old := range s.Lines {
		t, ok := c.types[old.TicketTypeID]
		if !ok || t.IsSoldOut || t.IsComingSoon {
			continue
		}
		qty := old.Quantity
		if qty > t.Limit() {
			qty = t.Limit()
		}
		if qty < 1 {
			continue
		}
		c.lines[old.TicketTypeID] = &Line{
			TicketTypeID: old.TicketTypeID,
			Quantity:     qty,
			UnitPrice:    t.Price,
			Name:         t.Name,
			DisplayName:  t.Name.In(c.lang),
		}
		c.order = append(c.order, old.TicketTypeID)
		restored = true
	}
	return restored
}
