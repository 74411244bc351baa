package model

import "time"

// BookingStatus tracks the lifecycle of a stored walk-in booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking records a confirmed walk-in reservation submitted through the
// wizard.  Times are stored as the visitor entered them (venue-local
// wall clock) next to the calendar date; timestamps are UTC.
//
// Fields:
//  ID          – primary key identifier.
//  ReferenceNo – human-facing reference, e.g. RSV-LX2K9A-4F21.
//  VenueID     – reserved venue option.
//  PartySize   – number of participants (1..7).
//  Date        – reservation date, YYYY-MM-DD.
//  StartTime   – start of the slot, HH:MM.
//  EndTime     – end of the slot, HH:MM, strictly after StartTime.
//  Contact     – purchaser details.
//  TotalMinor  – total price in minor currency units.
//  Status      – PENDING, CONFIRMED or CANCELLED.
//  CreatedAt   – creation timestamp (UTC).
type Booking struct {
	ID          uint64        `json:"id"`
	ReferenceNo string        `json:"reference_no"`
	VenueID     string        `json:"venue_id"`
	PartySize   int           `json:"party_size"`
	Date        string        `json:"date"`
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	Contact     Contact       `json:"contact"`
	TotalMinor  int64         `json:"total_minor"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
