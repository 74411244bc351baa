package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumapark/venue-booking/internal/model"
)

func TestT(t *testing.T) {
	assert.Equal(t, "Bu bilet tükendi.", T(model.LangTR, KeySoldOut))
	assert.Equal(t, "This ticket is sold out.", T(model.LangEN, KeySoldOut))

	// Formatting arguments are applied per language.
	assert.Equal(t, "You can buy at most 5 per order.", T(model.LangEN, KeyLimitExceeded, 5))
	assert.Equal(t, "Bir siparişte en fazla 5 adet alabilirsiniz.", T(model.LangTR, KeyLimitExceeded, 5))

	// An unknown language falls back to Turkish, an unknown key to itself.
	assert.Equal(t, "Ücretsiz", T(model.Language("de"), KeyFree))
	assert.Equal(t, "no_such_key", T(model.LangEN, "no_such_key"))
}

func TestPair(t *testing.T) {
	p := Pair(KeyPaymentRejected, "card declined")
	assert.Equal(t, "Ödeme reddedildi: card declined", p.TR)
	assert.Equal(t, "Payment was rejected: card declined", p.EN)

	missing := Pair("no_such_key")
	assert.Equal(t, "no_such_key", missing.TR)
	assert.Equal(t, "no_such_key", missing.EN)
}
