// Package store is the explicit key-value abstraction behind the
// flow's persisted state.  Keys follow a single-consumer discipline
// documented on each constant; writes are last-write-wins because
// exactly one session owns a given in-progress reservation.
package store

import (
	"context"
	"errors"
	"time"
)

// Well-known keys, scoped per session via Key.
const (
	// KeyPendingPayment holds the serialized OrderPayload between
	// checkout and confirmation.  Read once, then deleted; a new
	// submission overwrites any previous pending payload.
	KeyPendingPayment = "pendingPayment"

	// KeyPaymentResult holds the serialized PaymentResult written by
	// the payment step.  Consumed-then-deleted by the originating
	// flow; entries older than the freshness window are ignored.
	KeyPaymentResult = "paymentResult"

	// KeyPendingCart holds the cart snapshot written continuously
	// while the cart is non-empty, restored after an aborted payment
	// when its event id matches.
	KeyPendingCart = "pendingCart"

	// KeyReservationDraft holds the walk-in wizard's draft between
	// requests of the same session.
	KeyReservationDraft = "reservationDraft"

	// KeyConfirmedOrderPrefix + order id holds the consumed payload
	// for document downloads after confirmation.
	KeyConfirmedOrderPrefix = "order"
)

// ErrNotFound is returned when a key has no value (or it expired).
var ErrNotFound = errors.New("store: key not found")

// Store is a string key-value store with per-key TTL.  Both the Redis
// implementation used in production and the in-memory one used in
// tests satisfy it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// Key namespaces a well-known key under a session id.
func Key(sessionID, name string) string {
	return "booking:" + sessionID + ":" + name
}

// OrderKey names the confirmed-payload key for an order id.
func OrderKey(orderID string) string {
	return "booking:" + KeyConfirmedOrderPrefix + ":" + orderID
}
