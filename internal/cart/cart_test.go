package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapark/venue-booking/internal/model"
)

func testTypes() []model.TicketType {
	return []model.TicketType{
		{
			ID:      "early",
			Name:    model.LocalizedText{TR: "Erken Kayıt", EN: "Early Bird"},
			Price:   decimal.Zero,
			Variant: model.VariantStandard,
		},
		{
			ID:      "vip",
			Name:    model.LocalizedText{TR: "VIP Bilet", EN: "VIP Ticket"},
			Price:   decimal.NewFromInt(150),
			Variant: model.VariantVIP,
		},
		{
			ID:        "gone",
			Name:      model.LocalizedText{TR: "Tükenen", EN: "Gone"},
			Price:     decimal.NewFromInt(100),
			Variant:   model.VariantStandard,
			IsSoldOut: true,
		},
		{
			ID:           "soon",
			Name:         model.LocalizedText{TR: "Yakında", EN: "Soon"},
			Price:        decimal.NewFromInt(100),
			Variant:      model.VariantPremium,
			IsComingSoon: true,
		},
		{
			ID:          "capped",
			Name:        model.LocalizedText{TR: "Sınırlı", EN: "Capped"},
			Price:       decimal.NewFromInt(50),
			MaxPerOrder: 2,
			Variant:     model.VariantStandard,
		},
	}
}

func TestIncreaseAndTotal(t *testing.T) {
	c := New(testTypes(), model.LangTR)
	require.True(t, c.IsEmpty())

	require.NoError(t, c.Increase("early"))
	require.NoError(t, c.Increase("early"))
	require.NoError(t, c.Increase("vip"))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "early", lines[0].TicketTypeID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Erken Kayıt", lines[0].DisplayName)
	assert.True(t, decimal.NewFromInt(150).Equal(c.Total()), "two free plus one 150, got %s", c.Total())
}

func TestIncreaseSoldOut(t *testing.T) {
	c := New(testTypes(), model.LangEN)

	err := c.Increase("gone")
	assert.ErrorIs(t, err, ErrSoldOut)
	assert.True(t, c.IsEmpty(), "a failed increase must not create a line")
	assert.Equal(t, "This ticket is sold out.", c.Messages()["gone"])

	err = c.Increase("soon")
	assert.ErrorIs(t, err, ErrComingSoon)
	assert.True(t, c.IsEmpty())
	assert.Contains(t, c.Messages(), "soon")
}

func TestIncreasePerOrderLimit(t *testing.T) {
	c := New(testTypes(), model.LangEN)

	require.NoError(t, c.Increase("capped"))
	require.NoError(t, c.Increase("capped"))
	err := c.Increase("capped")
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.Equal(t, 2, c.Lines()[0].Quantity, "limit failure must not change the quantity")
	assert.Equal(t, "You can buy at most 2 per order.", c.Messages()["capped"])

	// A successful change on the same ticket clears the message.
	c.Decrease("capped")
	assert.NotContains(t, c.Messages(), "capped")
}

func TestIncreaseUnknownTicket(t *testing.T) {
	c := New(testTypes(), model.LangTR)
	assert.ErrorIs(t, c.Increase("nope"), ErrUnknownTicket)
}

func TestDecreaseRemovesLineAtZero(t *testing.T) {
	c := New(testTypes(), model.LangTR)
	require.NoError(t, c.Increase("vip"))
	c.Decrease("vip")
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Lines())

	// Decreasing an absent line is a no-op.
	c.Decrease("vip")
	assert.True(t, c.IsEmpty())
}

func TestRefreshNames(t *testing.T) {
	c := New(testTypes(), model.LangTR)
	require.NoError(t, c.Increase("vip"))
	assert.Equal(t, "VIP Bilet", c.Lines()[0].DisplayName)

	c.RefreshNames(model.LangEN)
	assert.Equal(t, "VIP Ticket", c.Lines()[0].DisplayName)
	assert.Equal(t, model.LangEN, c.Language())
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := New(testTypes(), model.LangTR)
	require.NoError(t, c.Increase("vip"))
	require.NoError(t, c.Increase("early"))

	contact := model.Contact{FirstName: "Deniz", LastName: "Kaya", Phone: "5321234567", Email: "deniz@example.com"}
	snap := c.Snapshot(42, contact, time.Now())
	assert.Equal(t, uint64(42), snap.EventID)
	assert.Len(t, snap.Lines, 2)

	restored := New(testTypes(), model.LangTR)
	require.True(t, restored.Restore(snap, 42))
	assert.Equal(t, c.Lines(), restored.Lines())
}

func TestRestoreRejectsOtherEvent(t *testing.T) {
	c := New(testTypes(), model.LangTR)
	require.NoError(t, c.Increase("vip"))
	snap := c.Snapshot(42, model.Contact{}, time.Now())

	other := New(testTypes(), model.LangTR)
	assert.False(t, other.Restore(snap, 7))
	assert.True(t, other.IsEmpty())
}

func TestRestoreDropsUnbuyableAndClamps(t *testing.T) {
	snap := Snapshot{
		EventID: 42,
		Lines: []Line{
			{TicketTypeID: "gone", Quantity: 1},
			{TicketTypeID: "capped", Quantity: 5},
			{TicketTypeID: "vanished", Quantity: 1},
		},
	}
	c := New(testTypes(), model.LangTR)
	require.True(t, c.Restore(snap, 42))

	lines := c.Lines()
	require.Len(t, lines, 1, "sold-out and removed types must be dropped")
	assert.Equal(t, "capped", lines[0].TicketTypeID)
	assert.Equal(t, 2, lines[0].Quantity, "quantity clamps to the per-order limit")
}
