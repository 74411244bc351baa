package wizard

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapark/venue-booking/internal/availability"
	"github.com/lumapark/venue-booking/internal/model"
	"github.com/lumapark/venue-booking/internal/pricing"
)

// fixedNow is a Saturday well before any test date.
var fixedNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newMachine() *Machine {
	return New(model.DefaultVenueOptions(), availability.DefaultSchedule(), pricing.DefaultTable(), func() time.Time { return fixedNow })
}

// monday is 2026-08-31, opening hours 10 to 22.
var monday = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func at(h, m int) availability.TimeOfDay { return availability.TimeOfDay{Hour: h, Minute: m} }

func TestFullWalkthrough(t *testing.T) {
	m := newMachine()

	require.NoError(t, m.SelectVenue("f1"))
	assert.Equal(t, StepPartySize, m.Draft.Step)

	require.NoError(t, m.SelectPartySize(2))
	assert.Equal(t, StepDateTime, m.Draft.Step)

	require.NoError(t, m.SelectDate(monday))
	require.NoError(t, m.SelectStartTime(at(14, 0)))
	require.NoError(t, m.SelectEndTime(at(16, 0)))
	require.True(t, m.IsDateTimeValid())

	// Two tiered hours for two people.
	require.True(t, m.Draft.PriceValid)
	assert.True(t, decimal.NewFromInt(400).Equal(m.Draft.Total), "got %s", m.Draft.Total)

	require.NoError(t, m.ContinueToContact())
	assert.Equal(t, SubStepName, m.Draft.SubStep)

	require.NoError(t, m.SubmitName("Deniz", "Kaya"))
	assert.Equal(t, SubStepPhone, m.Draft.SubStep)

	require.NoError(t, m.SubmitPhone("0532 123 45 67"))
	assert.Equal(t, StepConfirmation, m.Draft.Step)
	assert.Equal(t, "05321234567", m.Draft.Contact.Phone)
}

func TestSelectVenueGuards(t *testing.T) {
	m := newMachine()
	assert.ErrorIs(t, m.SelectVenue("bowling"), ErrUnknownVenue)

	require.NoError(t, m.SelectVenue("vr"))
	assert.ErrorIs(t, m.SelectVenue("f1"), ErrWrongStep, "venue step already passed")
}

func TestLargePartySizeOpensCallPrompt(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.SelectVenue("f1"))

	require.NoError(t, m.SelectPartySize(8))
	assert.Equal(t, StepPartySize, m.Draft.Step, "8+ must not advance the wizard")
	assert.Zero(t, m.Draft.PartySize, "8+ must not store a size")
	assert.True(t, m.Draft.CallPrompt)

	m.DismissCallPrompt()
	assert.False(t, m.Draft.CallPrompt)

	// A regular size still works afterwards.
	require.NoError(t, m.SelectPartySize(7))
	assert.Equal(t, StepDateTime, m.Draft.Step)
	assert.Equal(t, 7, m.Draft.PartySize)
}

func TestPartySizeRange(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.SelectVenue("f1"))
	assert.ErrorIs(t, m.SelectPartySize(0), ErrPartySizeRange)
}

func TestDateChangeClearsTimes(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.SelectVenue("pc"))
	require.NoError(t, m.SelectPartySize(1))
	require.NoError(t, m.SelectDate(monday))
	require.NoError(t, m.SelectStartTime(at(14, 0)))
	require.NoError(t, m.SelectEndTime(at(15, 0)))

	require.NoError(t, m.SelectDate(monday.AddDate(0, 0, 1)))
	assert.Nil(t, m.Draft.Start)
	assert.Nil(t, m.Draft.End)
	assert.False(t, m.Draft.PriceValid)
}

func TestStartPastEndAutoAdjusts(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.SelectVenue("pc"))
	require.NoError(t, m.SelectPartySize(1))
	require.NoError(t, m.SelectDate(monday))
	require.NoError(t, m.SelectStartTime(at(14, 0)))
	require.NoError(t, m.SelectEndTime(at(15, 0)))

	// Moving the start past the end drags the end to start+1h.
	require.NoError(t, m.SelectStartTime(at(16, 0)))
	require.NotNil(t, m.Draft.End)
	assert.Equal(t, at(17, 0), *m.Draft.End)
	assert.True(t, m.IsDateTimeValid())
}

func TestInvalidTimesRejectedWithoutMutation(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.SelectVenue("pc"))
	require.NoError(t, m.SelectPartySize(1))
	require.NoError(t, m.SelectDate(monday))
	require.NoError(t, m.SelectStartTime(at(14, 0)))
	require.NoError(t, m.SelectEndTime(at(15, 0)))

	assert.ErrorIs(t, m.SelectStartTime(at(8, 0)), ErrInvalidTime)
	assert.Equal(t, at(14, 0), *m.Draft.Start, "rejected start must leave the pair unchanged")

	assert.ErrorIs(t, m.SelectEndTime(at(13, 0)), ErrInvalidTime)
	assert.Equal(t, at(15, 0), *m.Draft.End, "rejected end must leave the pair unchanged")
}

func TestContinueRequiresCompletePair(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.SelectVenue("pc"))
	require.NoError(t, m.SelectPartySize(1))
	require.NoError(t, m.SelectDate(monday))
	assert.ErrorIs(t, m.ContinueToContact(), ErrDateTimeIncomplete)
}

func TestContactValidation(t *testing.T) {
	m := walkToContact(t)

	assert.ErrorIs(t, m.SubmitName("  ", "Kaya"), ErrNameRequired)
	require.NoError(t, m.SubmitName("Deniz", "Kaya"))

	assert.ErrorIs(t, m.SubmitPhone("532"), ErrPhoneInvalid)
	assert.ErrorIs(t, m.SubmitPhone("123456789012"), ErrPhoneInvalid)
	require.NoError(t, m.SubmitPhone("(532) 123-45-67"))
	assert.Equal(t, "5321234567", m.Draft.Contact.Phone)
}

func TestJumpBack(t *testing.T) {
	m := walkToContact(t)
	require.NoError(t, m.SubmitName("Deniz", "Kaya"))
	require.NoError(t, m.SubmitPhone("5321234567"))
	require.Equal(t, StepConfirmation, m.Draft.Step)

	assert.ErrorIs(t, m.JumpBack(StepConfirmation), ErrForwardJump)

	// Back to contact restarts at the name sub-step.
	require.NoError(t, m.JumpBack(StepContact))
	assert.Equal(t, SubStepName, m.Draft.SubStep)

	require.NoError(t, m.JumpBack(StepVenue))
	assert.Equal(t, StepVenue, m.Draft.Step)
	assert.ErrorIs(t, m.JumpBack(StepVenue), ErrForwardJump)
}

func TestDraftSurvivesSerialization(t *testing.T) {
	m := walkToContact(t)
	raw, err := json.Marshal(m.Draft)
	require.NoError(t, err)

	var d Draft
	require.NoError(t, json.Unmarshal(raw, &d))

	restored := Restore(d, model.DefaultVenueOptions(), availability.DefaultSchedule(), pricing.DefaultTable(), func() time.Time { return fixedNow })
	assert.Equal(t, m.Draft.Step, restored.Draft.Step)
	assert.Equal(t, m.Draft.VenueID, restored.Draft.VenueID)
	assert.True(t, m.Draft.Total.Equal(restored.Draft.Total))

	// The restored machine keeps working from where it stopped.
	require.NoError(t, restored.SubmitName("Deniz", "Kaya"))
}

func walkToContact(t *testing.T) *Machine {
	t.Helper()
	m := newMachine()
	require.NoError(t, m.SelectVenue("f1"))
	require.NoError(t, m.SelectPartySize(2))
	require.NoError(t, m.SelectDate(monday))
	require.NoError(t, m.SelectStartTime(at(14, 0)))
	require.NoError(t, m.SelectEndTime(at(16, 0)))
	require.NoError(t, m.ContinueToContact())
	return m
}
