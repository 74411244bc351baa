// Package queue defines message payloads exchanged over the message
// broker and the background consumer processing them.
package queue

// OrderConfirmedEvent is published when a reservation or ticket order
// is confirmed.  It carries enough information for downstream
// consumers to log or notify without querying the primary database;
// titles are included in both languages.
type OrderConfirmedEvent struct {
	ReferenceNo string `json:"reference_no"`
	OrderID     string `json:"order_id,omitempty"`
	VenueID     string `json:"venue_id,omitempty"`
	TitleTR     string `json:"title_tr"`
	TitleEN     string `json:"title_en"`
	Date        string `json:"date,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	PartySize   int    `json:"party_size,omitempty"`
	TotalMinor  int64  `json:"total_minor"`
	Language    string `json:"language"`
	ConfirmedAt string `json:"confirmed_at"`
}
