// Package wizard implements the reservation flows as explicit state
// machines with named states and guarded transitions, independent of
// any rendering.  The walk-in flow advances venue → party size →
// date/time → contact (name, then phone) → confirmation; the ticket
// sidebar uses the simpler two-stage flow in sidebar.go.  A guard that
// fails leaves the draft untouched, so the machine never stores an
// inconsistent state.
package wizard

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumapark/venue-booking/internal/availability"
	"github.com/lumapark/venue-booking/internal/model"
	"github.com/lumapark/venue-booking/internal/pricing"
)

// Step enumerates the walk-in wizard steps in order.
type Step int

const (
	StepVenue Step = iota
	StepPartySize
	StepDateTime
	StepContact
	StepConfirmation
)

// ContactSubStep enumerates the sub-steps of the contact step.
type ContactSubStep int

const (
	SubStepName ContactSubStep = iota
	SubStepPhone
)

// Guard failures.  Handlers translate these into localized messages.
var (
	ErrWrongStep          = errors.New("operation not allowed in current step")
	ErrUnknownVenue       = errors.New("unknown venue")
	ErrPartySizeRange     = errors.New("party size out of range")
	ErrInvalidTime        = errors.New("invalid time selection")
	ErrDateTimeIncomplete = errors.New("date and a valid time range are required")
	ErrNameRequired       = errors.New("first and last name are required")
	ErrPhoneInvalid       = errors.New("phone number must have 10 or 11 digits")
	ErrForwardJump        = errors.New("cannot jump forward")
)

// Draft is the in-progress reservation owned by one wizard instance.
// It is mutated exclusively by the machine's step handlers and
// discarded on successful submission or explicit reset.
type Draft struct {
	VenueID    string                  `json:"venue_id,omitempty"`
	PartySize  int                     `json:"party_size,omitempty"`
	CallPrompt bool                    `json:"call_prompt,omitempty"`
	Date       string                  `json:"date,omitempty"` // YYYY-MM-DD
	Start      *availability.TimeOfDay `json:"start,omitempty"`
	End        *availability.TimeOfDay `json:"end,omitempty"`
	Contact    model.Contact           `json:"contact"`
	Total      decimal.Decimal         `json:"total"`
	PriceValid bool                    `json:"price_valid"`
	Step       Step                    `json:"step"`
	SubStep    ContactSubStep          `json:"sub_step"`
}

// Machine drives a Draft through the walk-in flow.  The clock is
// injected so "today" checks are testable.
type Machine struct {
	Draft    Draft
	schedule availability.Schedule
	rates    pricing.Table
	venues   map[string]model.VenueOption
	now      func() time.Time
}

// New returns a machine at StepVenue over the given venues, schedule
// and rate table.
func New(venues []model.VenueOption, schedule availability.Schedule, rates pricing.Table, now func() time.Time) *Machine {
	vm := make(map[string]model.VenueOption, len(venues))
	for _, v := range venues {
		vm[v.ID] = v
	}
	if now == nil {
		now = time.Now
	}
	return &Machine{schedule: schedule, rates: rates, venues: vm, now: now}
}

// Restore returns a machine resuming the given draft.
func Restore(d Draft, venues []model.VenueOption, schedule availability.Schedule, rates pricing.Table, now func() time.Time) *Machine {
	m := New(venues, schedule, rates, now)
	m.Draft = d
	return m
}

// Venue returns the selected venue option, if any.
func (m *Machine) Venue() (model.VenueOption, bool) {
	v, ok := m.venues[m.Draft.VenueID]
	return v, ok
}

// SelectVenue records the venue and advances to the party-size step.
// The visual ~300ms delay before the step changes is presentation
// timing and belongs to the client.
func (m *Machine) SelectVenue(venueID string) error {
	if m.Draft.Step != StepVenue {
		return ErrWrongStep
	}
	if _, ok := m.venues[venueID]; !ok {
		return ErrUnknownVenue
	}
	m.Draft.VenueID = venueID
	m.Draft.Step = StepPartySize
	m.recompute()
	return nil
}

// SelectPartySize records a party size of 1..7 and advances to the
// date/time step.  A size of 8 or more opens the call-prompt sub-state
// instead: the step does not advance and the stored size is unchanged.
func (m *Machine) SelectPartySize(size int) error {
	if m.Draft.Step != StepPartySize {
		return ErrWrongStep
	}
	if size < 1 {
		return ErrPartySizeRange
	}
	if size >= 8 {
		m.Draft.CallPrompt = true
		return nil
	}
	m.Draft.PartySize = size
	m.Draft.CallPrompt = false
	m.Draft.Step = StepDateTime
	m.recompute()
	return nil
}

// DismissCallPrompt closes the call-prompt back to the party-size grid.
func (m *Machine) DismissCallPrompt() { m.Draft.CallPrompt = false }

// SelectDate records the reservation date.  Choosing a new date clears
// the time pair, since opening hours differ per weekday.
func (m *Machine) SelectDate(date time.Time) error {
	if m.Draft.Step != StepDateTime {
		return ErrWrongStep
	}
	m.Draft.Date = date.Format("2006-01-02")
	m.Draft.Start = nil
	m.Draft.End = nil
	m.recompute()
	return nil
}

// SelectStartTime records a start time.  An unselectable time is a
// no-op rejection: the draft keeps its previous pair.  When the new
// start is at or past the current end, the end auto-advances to
// start+1h capped at closing.
func (m *Machine) SelectStartTime(t availability.TimeOfDay) error {
	if m.Draft.Step != StepDateTime || m.Draft.Date == "" {
		return ErrWrongStep
	}
	date := m.date()
	if !m.schedule.IsSelectableForStart(date, t, m.now()) {
		return ErrInvalidTime
	}
	m.Draft.Start = &t
	if m.Draft.End != nil {
		end := m.schedule.AdjustEndForStart(date, t, *m.Draft.End)
		m.Draft.End = &end
	}
	m.recompute()
	return nil
}

// SelectEndTime records an end time.  A time at or before the start,
// or outside opening hours, is rejected and the previous end stands.
func (m *Machine) SelectEndTime(t availability.TimeOfDay) error {
	if m.Draft.Step != StepDateTime || m.Draft.Date == "" || m.Draft.Start == nil {
		return ErrWrongStep
	}
	if !m.schedule.IsSelectableForEnd(m.date(), t, *m.Draft.Start) {
		return ErrInvalidTime
	}
	m.Draft.End = &t
	m.recompute()
	return nil
}

// IsDateTimeValid reports whether a date is chosen and a valid
// start < end pair exists.
func (m *Machine) IsDateTimeValid() bool {
	d := m.Draft
	return d.Date != "" && d.Start != nil && d.End != nil && d.End.After(*d.Start)
}

// ContinueToContact advances to the contact step's name sub-step.
func (m *Machine) ContinueToContact() error {
	if m.Draft.Step != StepDateTime {
		return ErrWrongStep
	}
	if !m.IsDateTimeValid() {
		return ErrDateTimeIncomplete
	}
	m.Draft.Step = StepContact
	m.Draft.SubStep = SubStepName
	return nil
}

// SubmitName records the name and moves to the phone sub-step.
func (m *Machine) SubmitName(first, last string) error {
	if m.Draft.Step != StepContact || m.Draft.SubStep != SubStepName {
		return ErrWrongStep
	}
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if first == "" || last == "" {
		return ErrNameRequired
	}
	m.Draft.Contact.FirstName = first
	m.Draft.Contact.LastName = last
	m.Draft.SubStep = SubStepPhone
	return nil
}

// SubmitPhone validates and records the phone number, then advances to
// the confirmation step.  Non-digit characters are stripped before the
// 10–11 digit check.
func (m *Machine) SubmitPhone(phone string) error {
	if m.Draft.Step != StepContact || m.Draft.SubStep != SubStepPhone {
		return ErrWrongStep
	}
	digits := NormalizePhone(phone)
	if len(digits) < 10 || len(digits) > 11 {
		return ErrPhoneInvalid
	}
	m.Draft.Contact.Phone = digits
	m.Draft.Step = StepConfirmation
	return nil
}

// SetEmail records an optional contact email at any contact-or-later
// step.
func (m *Machine) SetEmail(email string) {
	m.Draft.Contact.Email = strings.TrimSpace(email)
}

// JumpBack returns to a previously completed step.  Forward jumps are
// rejected.  Jumping back to the contact step resets its sub-step to
// the name entry.
func (m *Machine) JumpBack(target Step) error {
	if target >= m.Draft.Step {
		return ErrForwardJump
	}
	m.Draft.Step = target
	if target == StepContact {
		m.Draft.SubStep = SubStepName
	}
	m.Draft.CallPrompt = false
	return nil
}

// Reset discards the draft and returns to the venue step.
func (m *Machine) Reset() { m.Draft = Draft{} }

// recompute refreshes the derived total whenever venue, time range or
// party size changes.  The price is only marked valid for a complete,
// priceable selection.
func (m *Machine) recompute() {
	d := &m.Draft
	d.Total = decimal.Zero
	d.PriceValid = false
	if d.VenueID == "" || d.PartySize < 1 || d.Start == nil || d.End == nil {
		return
	}
	if total, ok := pricing.ForVenue(m.rates, d.VenueID, *d.Start, *d.End, d.PartySize); ok {
		d.Total = total
		d.PriceValid = true
	}
}

func (m *Machine) date() time.Time {
	t, _ := time.Parse("2006-01-02", m.Draft.Date)
	return t
}

// NormalizePhone strips every non-digit character from a phone number.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
