package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapark/venue-booking/internal/cart"
	"github.com/lumapark/venue-booking/internal/model"
)

func TestSidebarContinueRequiresTickets(t *testing.T) {
	sb := NewSidebar()
	empty := cart.New(nil, model.LangTR)

	assert.ErrorIs(t, sb.Continue(empty), ErrCartEmpty)
	assert.Equal(t, StageTickets, sb.Stage)

	filled := cart.New([]model.TicketType{{ID: "std", Name: model.LocalizedText{TR: "Standart", EN: "Standard"}, Variant: model.VariantStandard}}, model.LangTR)
	require.NoError(t, filled.Increase("std"))
	require.NoError(t, sb.Continue(filled))
	assert.Equal(t, StageDetails, sb.Stage)

	// Continuing twice is a step violation.
	assert.ErrorIs(t, sb.Continue(filled), ErrWrongStep)
}

func TestSidebarBack(t *testing.T) {
	sb := &Sidebar{Stage: StageDetails}
	sb.Back()
	assert.Equal(t, StageTickets, sb.Stage)
}

func TestSidebarValidateDetails(t *testing.T) {
	sb := &Sidebar{Stage: StageDetails}

	assert.ErrorIs(t, sb.ValidateDetails("", "a@b.co", "5321234567", true), ErrDetailsRequired)
	assert.ErrorIs(t, sb.ValidateDetails("Deniz Kaya", "", "5321234567", true), ErrDetailsRequired)
	assert.ErrorIs(t, sb.ValidateDetails("Deniz Kaya", "a@b.co", "532", true), ErrPhoneInvalid)
	assert.ErrorIs(t, sb.ValidateDetails("Deniz Kaya", "a@b.co", "5321234567", false), ErrTermsRequired)
	assert.NoError(t, sb.ValidateDetails("Deniz Kaya", "a@b.co", "0532 123 45 67", true))

	// Details can only be validated on the details stage.
	sb.Stage = StageTickets
	assert.ErrorIs(t, sb.ValidateDetails("Deniz Kaya", "a@b.co", "5321234567", true), ErrWrongStep)
}
