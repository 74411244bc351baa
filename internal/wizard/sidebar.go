package wizard

import (
	"errors"
	"strings"

	"github.com/lumapark/venue-booking/internal/cart"
)

// SidebarStage enumerates the ticket sidebar's two stages.  Stage
// numbering starts at 1 to match the step indicator shown to visitors.
type SidebarStage int

const (
	StageTickets SidebarStage = 1
	StageDetails SidebarStage = 2
)

// Sidebar guard failures.
var (
	ErrCartEmpty       = errors.New("at least one ticket is required")
	ErrDetailsRequired = errors.New("name, email and phone are required")
	ErrTermsRequired   = errors.New("terms must be accepted")
)

// Sidebar is the two-stage ticket purchase flow: pick tickets, then
// enter purchaser details.
type Sidebar struct {
	Stage SidebarStage `json:"stage"`
}

// NewSidebar starts at the ticket-selection stage.
func NewSidebar() *Sidebar { return &Sidebar{Stage: StageTickets} }

// Continue advances to the details stage.  The guard requires at least
// one cart line with a positive quantity.
func (s *Sidebar) Continue(c *cart.Cart) error {
	if s.Stage != StageTickets {
		return ErrWrongStep
	}
	if c == nil || c.IsEmpty() {
		return ErrCartEmpty
	}
	s.Stage = StageDetails
	return nil
}

// Back returns to the ticket-selection stage.
func (s *Sidebar) Back() { s.Stage = StageTickets }

// ValidateDetails checks the details-stage guard: name, email and
// phone all non-empty (phone normalized to 10–11 digits) and the terms
// accepted.  It does not advance any state; a passing validation means
// the caller may hand off to checkout.
func (s *Sidebar) ValidateDetails(name, email, phone string, termsAccepted bool) error {
	if s.Stage != StageDetails {
		return ErrWrongStep
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	digits := NormalizePhone(phone)
	if name == "" || email == "" || digits == "" {
		return ErrDetailsRequired
	}
	if len(digits) < 10 || len(digits) > 11 {
		return ErrPhoneInvalid
	}
	if !termsAccepted {
		return ErrTermsRequired
	}
	return nil
}
