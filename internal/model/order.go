package model

import "time"

// Contact holds the purchaser details collected by the wizard's contact
// step and the sidebar's details step.
type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
}

// OrderLine is one ticket line inside an order payload.  Name carries
// every language variant; DisplayName is the variant that was active
// when the order was placed.
type OrderLine struct {
	TicketTypeID string        `json:"ticket_type_id"`
	Name         LocalizedText `json:"name"`
	DisplayName  string        `json:"display_name"`
	UnitMinor    int64         `json:"unit_minor"`
	Quantity     int           `json:"quantity"`
}

// OrderPayload is the full snapshot persisted under the pendingPayment
// key before the visitor is handed off to payment.  It must be
// self-contained: the confirmation page and the generated documents
// render from this payload alone, in either language, without reaching
// back to the event record.  Exactly one pending payload exists per
// session; a new submission overwrites the previous one.
type OrderPayload struct {
	OrderID     string        `json:"order_id"`
	EventID     uint64        `json:"event_id,omitempty"`
	EventTitle  LocalizedText `json:"event_title"`
	VenueID     string        `json:"venue_id,omitempty"`
	VenueTitle  LocalizedText `json:"venue_title"`
	Date        string        `json:"date,omitempty"`       // YYYY-MM-DD
	StartTime   string        `json:"start_time,omitempty"` // HH:MM
	EndTime     string        `json:"end_time,omitempty"`   // HH:MM
	PartySize   int           `json:"party_size,omitempty"`
	Lines       []OrderLine   `json:"lines,omitempty"`
	Contact     Contact       `json:"contact"`
	TotalMinor  int64         `json:"total_minor"`
	Currency    string        `json:"currency"`
	Language    Language      `json:"language"`
	ReturnURL   string        `json:"return_url"`
	CreatedAt   time.Time     `json:"created_at"`
	ReferenceNo string        `json:"reference_no,omitempty"`
}

// PaymentStatus is the outcome reported by the payment step.
type PaymentStatus string

const (
	PaymentSuccess  PaymentStatus = "success"
	PaymentRejected PaymentStatus = "rejected"
)

// PaymentResult is written once by the payment step and consumed
// exactly once by the originating flow.  Results older than the
// freshness window are discarded unread so a stale rejection can never
// resurface on a later visit.
type PaymentResult struct {
	Status    PaymentStatus `json:"status"`
	OrderID   string        `json:"order_id"`
	Reason    string        `json:"reason,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
