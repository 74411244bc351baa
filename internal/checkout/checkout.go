// Package checkout builds order payloads, hands them off to payment
// and reconciles payment results on the confirmation side.  The
// persisted keys follow the discipline documented in package store:
// pendingPayment is read-once-then-deleted, paymentResult is consumed
// exactly once and only honored while fresh.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lumapark/venue-booking/internal/cart"
	"github.com/lumapark/venue-booking/internal/model"
	"github.com/lumapark/venue-booking/internal/pricing"
	"github.com/lumapark/venue-booking/internal/store"
	"github.com/lumapark/venue-booking/internal/wizard"
)

const (
	// FreshnessWindow bounds how old a PaymentResult may be and still
	// be honored.  Older results are discarded unread so a stale
	// rejection cannot resurface.
	FreshnessWindow = 60 * time.Second

	// PendingTTL bounds how long a pending payment may wait before it
	// expires on its own.
	PendingTTL = 30 * time.Minute

	// ConfirmedTTL keeps a consumed payload available for document
	// downloads after confirmation.
	ConfirmedTTL = 24 * time.Hour
)

// Redirect targets returned by Submit.
const (
	RoutePayment      = "payment"
	RouteConfirmation = "confirmation"
)

// Service persists and consumes checkout state through a Store.  The
// clock and id generator are injectable for tests.
type Service struct {
	Store store.Store
	Now   func() time.Time
	NewID func() string
}

// NewService returns a Service with the production clock and id
// generator.
func NewService(st store.Store) *Service {
	return &Service{Store: st, Now: time.Now, NewID: NewOrderID}
}

// NewOrderID returns a cryptographically random UUID, falling back to
// a timestamp plus random suffix when the system's entropy source
// fails.
func NewOrderID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}

// SubmitOutcome tells the caller where to send the visitor next.
type SubmitOutcome struct {
	OrderID  string `json:"order_id"`
	Redirect string `json:"redirect"` // RoutePayment or RouteConfirmation
}

// Submit assigns an order id, persists the payload under the session's
// pendingPayment key (overwriting any previous pending payload) and
// branches on the total: a free order synthesizes an immediate success
// result and goes straight to confirmation, a paid order goes to the
// payment step.  On any assembly failure nothing is persisted and the
// caller stays where it is.
func (s *Service) Submit(ctx context.Context, sessionID string, payload model.OrderPayload) (SubmitOutcome, error) {
	payload.OrderID = s.NewID()
	payload.CreatedAt = s.Now().UTC()
	raw, err := json.Marshal(payload)
	if err != nil {
		return SubmitOutcome{}, fmt.Errorf("assemble order payload: %w", err)
	}
	if err := s.Store.Set(ctx, store.Key(sessionID, store.KeyPendingPayment), string(raw), PendingTTL); err != nil {
		return SubmitOutcome{}, fmt.Errorf("persist pending payment: %w", err)
	}
	if payload.TotalMinor == 0 {
		res := model.PaymentResult{Status: model.PaymentSuccess, OrderID: payload.OrderID}
		if err := s.WritePaymentResult(ctx, sessionID, res); err != nil {
			return SubmitOutcome{}, err
		}
		return SubmitOutcome{OrderID: payload.OrderID, Redirect: RouteConfirmation}, nil
	}
	return SubmitOutcome{OrderID: payload.OrderID, Redirect: RoutePayment}, nil
}

// WritePaymentResult stores a payment result for the session.  The
// timestamp is stamped here; the TTL gives expiry a hard backstop
// beyond the read-side freshness check.
func (s *Service) WritePaymentResult(ctx context.Context, sessionID string, res model.PaymentResult) error {
	res.Timestamp = s.Now().UTC()
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal payment result: %w", err)
	}
	return s.Store.Set(ctx, store.Key(sessionID, store.KeyPaymentResult), string(raw), 2*FreshnessWindow)
}

// ConsumePaymentResult reads the session's payment result exactly
// once: the key is removed regardless of the branch taken.  A missing,
// unparsable or stale (older than FreshnessWindow) result yields nil
// with no error.
func (s *Service) ConsumePaymentResult(ctx context.Context, sessionID string) (*model.PaymentResult, error) {
	key := store.Key(sessionID, store.KeyPaymentResult)
	raw, err := s.Store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.Store.Remove(ctx, key); err != nil {
		return nil, err
	}
	var res model.PaymentResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil, nil
	}
	if s.Now().UTC().Sub(res.Timestamp) > FreshnessWindow {
		return nil, nil
	}
	return &res, nil
}

// Confirmation is the outcome of loading the confirmation page.
type Confirmation struct {
	// Payload is the consumed order, nil when NotFound or Rejected.
	Payload *model.OrderPayload
	// NotFound means no pending payload existed or it was unparsable.
	NotFound bool
	// Rejected means a fresh rejected payment result was found; the
	// visitor is routed back to the details step with Reason.
	Rejected bool
	Reason   string
}

// Confirm resolves the confirmation page for a session.  A fresh
// rejected payment result wins over the pending payload, which is left
// in place so the visitor can retry from the details step.  Otherwise
// the pending payload is consumed (read once, then removed) and
// archived under its order id for document downloads; the cart
// snapshot for the session is cleared.
func (s *Service) Confirm(ctx context.Context, sessionID string) (Confirmation, error) {
	res, err := s.ConsumePaymentResult(ctx, sessionID)
	if err != nil {
		return Confirmation{}, err
	}
	if res != nil && res.Status == model.PaymentRejected {
		return Confirmation{Rejected: true, Reason: res.Reason}, nil
	}

	key := store.Key(sessionID, store.KeyPendingPayment)
	raw, err := s.Store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return Confirmation{NotFound: true}, nil
	}
	if err != nil {
		return Confirmation{}, err
	}
	if err := s.Store.Remove(ctx, key); err != nil {
		return Confirmation{}, err
	}
	var payload model.OrderPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Confirmation{NotFound: true}, nil
	}
	if err := s.Store.Set(ctx, store.OrderKey(payload.OrderID), raw, ConfirmedTTL); err != nil {
		return Confirmation{}, err
	}
	_ = s.Store.Remove(ctx, store.Key(sessionID, store.KeyPendingCart))
	return Confirmation{Payload: &payload}, nil
}

// LoadConfirmedOrder returns the archived payload for an order id, or
// nil when it expired or never existed.
func (s *Service) LoadConfirmedOrder(ctx context.Context, orderID string) (*model.OrderPayload, error) {
	raw, err := s.Store.Get(ctx, store.OrderKey(orderID))
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var payload model.OrderPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, nil
	}
	return &payload, nil
}

// BuildVenuePayload assembles the order payload for a walk-in
// reservation draft.  Every language variant of the venue text is
// preserved so downstream documents can render in their own language.
func BuildVenuePayload(d wizard.Draft, venue model.VenueOption, lang model.Language, returnURL string) model.OrderPayload {
	p := model.OrderPayload{
		VenueID:    venue.ID,
		VenueTitle: venue.Title,
		Date:       d.Date,
		PartySize:  d.PartySize,
		Contact:    d.Contact,
		TotalMinor: pricing.ToMinor(d.Total),
		Currency:   "TRY",
		Language:   lang,
		ReturnURL:  returnURL,
	}
	if d.Start != nil {
		p.StartTime = d.Start.String()
	}
	if d.End != nil {
		p.EndTime = d.End.String()
	}
	return p
}

// BuildTicketPayload assembles the order payload for a ticket-sidebar
// purchase.  Line names carry all language variants alongside the
// display name that was active at purchase time.
func BuildTicketPayload(event model.Event, lines []cart.Line, contact model.Contact, lang model.Language, returnURL string) model.OrderPayload {
	items := make([]model.OrderLine, 0, len(lines))
	var total int64
	for _, l := range lines {
		unit := pricing.ToMinor(l.UnitPrice)
		items = append(items, model.OrderLine{
			TicketTypeID: l.TicketTypeID,
			Name:         l.Name,
			DisplayName:  l.DisplayName,
			UnitMinor:    unit,
			Quantity:     l.Quantity,
		})
		total += unit * int64(l.Quantity)
	}
	return model.OrderPayload{
		EventID:    event.ID,
		EventTitle: event.Title,
		Lines:      items,
		Contact:    contact,
		TotalMinor: total,
		Currency:   "TRY",
		Language:   lang,
		ReturnURL:  returnURL,
	}
}
