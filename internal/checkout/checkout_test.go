package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapark/venue-booking/internal/model"
	"github.com/lumapark/venue-booking/internal/store"
)

const sid = "sess-1"

func newTestService() (*Service, *store.MemoryStore, *time.Time) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	mem := store.NewMemoryStore()
	mem.SetClock(func() time.Time { return now })
	svc := &Service{
		Store: mem,
		Now:   func() time.Time { return now },
		NewID: func() string { return "order-1" },
	}
	return svc, mem, &now
}

func paidPayload() model.OrderPayload {
	return model.OrderPayload{
		VenueID:    "f1",
		VenueTitle: model.LocalizedText{TR: "Yarış Simülatörü", EN: "Racing Simulator"},
		Date:       "2026-08-31",
		StartTime:  "14:00",
		EndTime:    "16:00",
		PartySize:  2,
		Contact:    model.Contact{FirstName: "Deniz", LastName: "Kaya", Phone: "5321234567"},
		TotalMinor: 40000,
		Currency:   "TRY",
		Language:   model.LangTR,
	}
}

func TestSubmitPaidOrderRoutesToPayment(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	out, err := svc.Submit(ctx, sid, paidPayload())
	require.NoError(t, err)
	assert.Equal(t, "order-1", out.OrderID)
	assert.Equal(t, RoutePayment, out.Redirect)

	// No payment result may exist yet for a paid order.
	res, err := svc.ConsumePaymentResult(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSubmitFreeOrderSkipsPayment(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	p := paidPayload()
	p.TotalMinor = 0
	out, err := svc.Submit(ctx, sid, p)
	require.NoError(t, err)
	assert.Equal(t, RouteConfirmation, out.Redirect)

	// The synthesized success result confirms without a payment step.
	conf, err := svc.Confirm(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, conf.Payload)
	assert.Equal(t, "order-1", conf.Payload.OrderID)
	assert.Equal(t, int64(0), conf.Payload.TotalMinor)
}

func TestConsumePaymentResultIsReadOnce(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.WritePaymentResult(ctx, sid, model.PaymentResult{Status: model.PaymentSuccess, OrderID: "order-1"}))

	res, err := svc.ConsumePaymentResult(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, model.PaymentSuccess, res.Status)

	res, err = svc.ConsumePaymentResult(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, res, "a result may only be consumed once")
}

func TestStalePaymentResultIsDiscarded(t *testing.T) {
	svc, _, nowPtr := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.WritePaymentResult(ctx, sid, model.PaymentResult{Status: model.PaymentRejected, OrderID: "order-1", Reason: "insufficient funds"}))

	// 61 seconds later the rejection is older than the freshness window.
	*nowPtr = nowPtr.Add(FreshnessWindow + time.Second)
	res, err := svc.ConsumePaymentResult(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, res, "stale results must be discarded unread")

	// And it was removed, not merely skipped.
	res, err = svc.ConsumePaymentResult(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestConfirmConsumesPendingAndArchives(t *testing.T) {
	svc, mem, _ := newTestService()
	ctx := context.Background()

	submitted := paidPayload()
	_, err := svc.Submit(ctx, sid, submitted)
	require.NoError(t, err)
	require.NoError(t, svc.WritePaymentResult(ctx, sid, model.PaymentResult{Status: model.PaymentSuccess, OrderID: "order-1"}))
	require.NoError(t, mem.Set(ctx, store.Key(sid, store.KeyPendingCart), "{}", time.Hour))

	conf, err := svc.Confirm(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, conf.Payload)
	assert.Equal(t, submitted.VenueID, conf.Payload.VenueID)
	assert.Equal(t, submitted.TotalMinor, conf.Payload.TotalMinor)
	assert.Equal(t, submitted.Contact, conf.Payload.Contact)

	// Pending payload is gone; a second visit is a 404 case.
	conf, err = svc.Confirm(ctx, sid)
	require.NoError(t, err)
	assert.True(t, conf.NotFound)

	// The cart snapshot was cleared with the confirmation.
	_, err = mem.Get(ctx, store.Key(sid, store.KeyPendingCart))
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The archived copy serves document downloads.
	archived, err := svc.LoadConfirmedOrder(ctx, "order-1")
	require.NoError(t, err)
	require.NotNil(t, archived)
	assert.Equal(t, submitted.VenueTitle, archived.VenueTitle)
}

func TestConfirmFreshRejectionWins(t *testing.T) {
	svc, mem, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, sid, paidPayload())
	require.NoError(t, err)
	require.NoError(t, svc.WritePaymentResult(ctx, sid, model.PaymentResult{Status: model.PaymentRejected, OrderID: "order-1", Reason: "card declined"}))

	conf, err := svc.Confirm(ctx, sid)
	require.NoError(t, err)
	assert.True(t, conf.Rejected)
	assert.Equal(t, "card declined", conf.Reason)
	assert.Nil(t, conf.Payload)

	// The pending payload stays for a retry.
	_, err = mem.Get(ctx, store.Key(sid, store.KeyPendingPayment))
	assert.NoError(t, err)

	// After the rejection is consumed a second confirm succeeds.
	conf, err = svc.Confirm(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, conf.Payload)
}

func TestConfirmWithoutPending(t *testing.T) {
	svc, _, _ := newTestService()
	conf, err := svc.Confirm(context.Background(), sid)
	require.NoError(t, err)
	assert.True(t, conf.NotFound)
}

func TestLoadConfirmedOrderMissing(t *testing.T) {
	svc, _, _ := newTestService()
	p, err := svc.LoadConfirmedOrder(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNewOrderIDFormat(t *testing.T) {
	a, b := NewOrderID(), NewOrderID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
