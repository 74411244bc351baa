// Package i18n holds the Turkish/English catalog of user-facing
// messages.  Every failure the booking flow can surface resolves to one
// of these keys; handlers pick the variant for the request's language.
package i18n

import (
	"fmt"

	"github.com/lumapark/venue-booking/internal/model"
)

// Message keys used across the booking flow.
const (
	KeySoldOut          = "sold_out"
	KeyComingSoon       = "coming_soon"
	KeyLimitExceeded    = "limit_exceeded" // takes the configured limit
	KeyCartEmpty        = "cart_empty"
	KeyInvalidTime      = "invalid_time"
	KeyInvalidDate      = "invalid_date"
	KeyNameRequired     = "name_required"
	KeyPhoneInvalid     = "phone_invalid"
	KeyDetailsRequired  = "details_required"
	KeyTermsRequired    = "terms_required"
	KeyPartySizeCall    = "party_size_call"
	KeyOrderFailed      = "order_failed"
	KeyOrderNotFound    = "order_not_found"
	KeyPaymentRejected  = "payment_rejected" // takes the rejection reason
	KeyFree             = "free"
	KeyUploadFailed     = "upload_failed"
	KeyExternalFailed   = "external_failed"
	KeySlotUnavailable  = "slot_unavailable"
	KeyBookingSubmitted = "booking_submitted"
)

var catalog = map[string]model.LocalizedText{
	KeySoldOut:          {TR: "Bu bilet tükendi.", EN: "This ticket is sold out."},
	KeyComingSoon:       {TR: "Bu bilet henüz satışta değil.", EN: "This ticket is not on sale yet."},
	KeyLimitExceeded:    {TR: "Bir siparişte en fazla %d adet alabilirsiniz.", EN: "You can buy at most %d per order."},
	KeyCartEmpty:        {TR: "Lütfen en az bir bilet seçin.", EN: "Please select at least one ticket."},
	KeyInvalidTime:      {TR: "Geçerli bir saat aralığı seçin.", EN: "Please choose a valid time range."},
	KeyInvalidDate:      {TR: "Lütfen bir tarih seçin.", EN: "Please choose a date."},
	KeyNameRequired:     {TR: "Ad ve soyad zorunludur.", EN: "First and last name are required."},
	KeyPhoneInvalid:     {TR: "Geçerli bir telefon numarası girin.", EN: "Please enter a valid phone number."},
	KeyDetailsRequired:  {TR: "Ad, e-posta ve telefon zorunludur.", EN: "Name, email and phone are required."},
	KeyTermsRequired:    {TR: "Devam etmek için koşulları kabul edin.", EN: "Please accept the terms to continue."},
	KeyPartySizeCall:    {TR: "8 ve üzeri gruplar için lütfen bizi arayın.", EN: "For groups of 8 or more, please call us."},
	KeyOrderFailed:      {TR: "Sipariş oluşturulamadı. Lütfen tekrar deneyin.", EN: "The order could not be created. Please try again."},
	KeyOrderNotFound:    {TR: "Sipariş bulunamadı veya süresi doldu.", EN: "Order not found or expired."},
	KeyPaymentRejected:  {TR: "Ödeme reddedildi: %s", EN: "Payment was rejected: %s"},
	KeyFree:             {TR: "Ücretsiz", EN: "Free"},
	KeyUploadFailed:     {TR: "Dosya yüklenemedi.", EN: "The file could not be uploaded."},
	KeyExternalFailed:   {TR: "Hizmete şu anda ulaşılamıyor. Lütfen tekrar deneyin.", EN: "The service is currently unavailable. Please try again."},
	KeySlotUnavailable:  {TR: "Seçilen saat aralığı uygun değil.", EN: "The selected time slot is not available."},
	KeyBookingSubmitted: {TR: "Rezervasyonunuz alındı.", EN: "Your reservation has been received."},
}

// T returns the message for key in the given language.  Formatting
// arguments are applied with fmt.Sprintf.  Unknown keys return the key
// itself so a missing entry is visible rather than silent.
func T(lang model.Language, key string, args ...any) string {
	txt, ok := catalog[key]
	if !ok {
		return key
	}
	msg := txt.In(lang)
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Pair returns both language variants for key, formatted with args.
// Documents use this to print bilingual labels.
func Pair(key string, args ...any) model.LocalizedText {
	txt, ok := catalog[key]
	if !ok {
		return model.LocalizedText{TR: key, EN: key}
	}
	if len(args) > 0 {
		return model.LocalizedText{
			TR: fmt.Sprintf(txt.TR, args...),
			EN: fmt.Sprintf(txt.EN, args...),
		}
	}
	return txt
}
