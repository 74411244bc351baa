package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/cart"
	"github.com/lumapark/venue-booking/internal/checkout"
	"github.com/lumapark/venue-booking/internal/i18n"
	"github.com/lumapark/venue-booking/internal/model"
	"github.com/lumapark/venue-booking/internal/queue"
	"github.com/lumapark/venue-booking/internal/repository"
	queuepub "github.com/lumapark/venue-booking/internal/service"
	"github.com/lumapark/venue-booking/internal/store"
	"github.com/lumapark/venue-booking/internal/wizard"
)

// CheckoutHandler hands completed flows to payment and resolves the
// confirmation page.  The same handler serves both flows: a ticket
// cart checkout and the wizard's reservation handoff land in the same
// pendingPayment slot.
type CheckoutHandler struct {
	Checkout    *checkout.Service
	Events      *repository.EventRepo
	Bookings    *repository.BookingRepo
	PaymentBase string
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(co *checkout.Service, events *repository.EventRepo, bookings *repository.BookingRepo, paymentBase string) *CheckoutHandler {
	if co == nil {
		panic("nil checkout service passed to NewCheckoutHandler")
	}
	return &CheckoutHandler{Checkout: co, Events: events, Bookings: bookings, PaymentBase: paymentBase}
}

// SubmitTickets handles POST /v1/sessions/:sid/events/:eventID/checkout.
// The cart must be at the details stage with a stored contact; the
// assembled payload snapshots every line in both languages.
func (h *CheckoutHandler) SubmitTickets(c echo.Context) error {
	sid, ok := sessionID(c)
	if !ok {
		return badSession(c)
	}
	lang := langFrom(c)
	ctx := c.Request().Context()

	raw, err := h.Checkout.Store.Get(ctx, store.Key(sid, store.KeyPendingCart))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyCartEmpty)})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	var st cartState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyCartEmpty)})
	}
	if st.Stage != wizard.StageDetails {
		return c.JSON(http.StatusConflict, echo.Map{"error": "details stage not completed"})
	}
	if st.Snapshot.Contact.FirstName == "" || st.Snapshot.Contact.Phone == "" || st.Snapshot.Contact.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyDetailsRequired)})
	}

	event, err := h.Events.GetByID(ctx, st.Snapshot.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// Re-validate against current ticket state so a line that sold out
	// while the visitor was filling in details cannot be purchased.
	ck := cart.New(event.TicketTypes, lang)
	if !ck.Restore(st.Snapshot, event.ID) || len(ck.Lines()) != len(st.Snapshot.Lines) {
		return c.JSON(http.StatusConflict, echo.Map{"error": i18n.T(lang, i18n.KeySoldOut)})
	}

	payload := checkout.BuildTicketPayload(event, ck.Lines(), st.Snapshot.Contact, lang, h.PaymentBase+"/tickets/confirmation")
	out, err := h.Checkout.Submit(ctx, sid, payload)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": i18n.T(lang, i18n.KeyOrderFailed)})
	}
	return c.JSON(http.StatusOK, out)
}

// PaymentResult handles POST /v1/sessions/:sid/payment/result, the
// return leg of the payment handoff.  The provider adapter reports
// success or rejection; the result is held for the confirmation page
// to consume exactly once.
func (h *CheckoutHandler) PaymentResult(c echo.Context) error {
	sid, ok := sessionID(c)
	if !ok {
		return badSession(c)
	}
	var body struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
		Reason  string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := model.PaymentStatus(body.Status)
	if status != model.PaymentSuccess && status != model.PaymentRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be success or rejected"})
	}
	res := model.PaymentResult{Status: status, OrderID: body.OrderID, Reason: body.Reason}
	if err := h.Checkout.WritePaymentResult(c.Request().Context(), sid, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Confirmation handles GET /v1/sessions/:sid/confirmation.  A fresh
// rejected payment routes the visitor back with a localized reason and
// leaves the pending order intact for a retry.  Otherwise the pending
// payload is consumed, archived for document downloads and announced
// on the message broker.
func (h *CheckoutHandler) Confirmation(c echo.Context) error {
	sid, ok := sessionID(c)
	if !ok {
		return badSession(c)
	}
	lang := langFrom(c)
	ctx := c.Request().Context()

	conf, err := h.Checkout.Confirm(ctx, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	switch {
	case conf.Rejected:
		return c.JSON(http.StatusPaymentRequired, echo.Map{
			"rejected": true,
			"error":    i18n.T(lang, i18n.KeyPaymentRejected, conf.Reason),
		})
	case conf.NotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": i18n.T(lang, i18n.KeyOrderNotFound)})
	}

	p := conf.Payload
	h.finalize(ctx, p)
	return c.JSON(http.StatusOK, echo.Map{
		"order":        p,
		"ticket_url":   "/v1/orders/" + p.OrderID + "/ticket.pdf",
		"calendar_url": "/v1/orders/" + p.OrderID + "/calendar.ics",
	})
}

// finalize marks the backing booking confirmed and publishes the
// confirmation event.  Both are best effort: the visitor already paid,
// so broker or database hiccups must not fail the page.
func (h *CheckoutHandler) finalize(ctx context.Context, p *model.OrderPayload) {
	if h.Bookings != nil && p.ReferenceNo != "" {
		if err := h.Bookings.UpdateStatusByReference(ctx, p.ReferenceNo, model.BookingConfirmed); err != nil {
			log.Printf("checkout: confirm booking %s: %v", p.ReferenceNo, err)
		}
	}
	ev := queue.OrderConfirmedEvent{
		ReferenceNo: p.ReferenceNo,
		OrderID:     p.OrderID,
		VenueID:     p.VenueID,
		TitleTR:     eventOrVenueTitle(p, model.LangTR),
		TitleEN:     eventOrVenueTitle(p, model.LangEN),
		Date:        p.Date,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		PartySize:   p.PartySize,
		TotalMinor:  p.TotalMinor,
		Language:    string(p.Language),
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := queuepub.PublishOrderConfirmed(ctx, ev); err != nil {
		log.Printf("checkout: publish order %s: %v", p.OrderID, err)
	}
}

func eventOrVenueTitle(p *model.OrderPayload, lang model.Language) string {
	if p.VenueID != "" {
		return p.VenueTitle.In(lang)
	}
	return p.EventTitle.In(lang)
}
