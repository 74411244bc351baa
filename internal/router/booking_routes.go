package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/handler"
)

// RegisterBookingFlow registers the session-scoped booking flow under
// /v1: the reservation wizard, the ticket cart with its sidebar,
// checkout, confirmation and the document downloads.
func RegisterBookingFlow(e *echo.Echo, res *handler.ReservationHandler, carts *handler.CartHandler, co *handler.CheckoutHandler, docs *handler.DocumentHandler) {
	v1 := e.Group("/v1")

	v1.GET("/venues", res.ListVenues)

	// Reservation wizard.  Every step route loads the session draft,
	// applies one transition and persists the result.
	v1.POST("/reservations", res.Start)
	r := v1.Group("/reservations/:sid")
	r.GET("", res.GetState)
	r.POST("/venue", res.SelectVenue)
	r.POST("/party-size", res.SelectPartySize)
	r.POST("/call-prompt/dismiss", res.DismissCallPrompt)
	r.POST("/date", res.SelectDate)
	r.POST("/start-time", res.SelectStartTime)
	r.POST("/end-time", res.SelectEndTime)
	r.POST("/continue", res.ContinueToContact)
	r.POST("/contact/name", res.SubmitName)
	r.POST("/contact/phone", res.SubmitPhone)
	r.POST("/back", res.JumpBack)
	r.POST("/confirm", res.Confirm)

	// Ticket cart and sidebar, scoped to one event per session.
	s := v1.Group("/sessions/:sid")
	ev := s.Group("/events/:eventID")
	ev.GET("/cart", carts.Get)
	ev.POST("/cart/increase", carts.Increase)
	ev.POST("/cart/decrease", carts.Decrease)
	ev.POST("/sidebar/continue", carts.Continue)
	ev.POST("/sidebar/back", carts.Back)
	ev.POST("/sidebar/details", carts.Details)
	ev.POST("/checkout", co.SubmitTickets)

	// Payment return leg and confirmation.
	s.POST("/payment/result", co.PaymentResult)
	s.GET("/confirmation", co.Confirmation)

	// Document downloads survive the session; they key on order id.
	v1.GET("/orders/:id/ticket.pdf", docs.TicketPDF)
	v1.GET("/orders/:id/calendar.ics", docs.CalendarICS)
}
