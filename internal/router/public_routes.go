package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/handler"
)

// RegisterPublic registers the unauthenticated browse and booking
// endpoints under /api.  The optional cache middleware is applied to
// the read-only routes only; bookings must never be served stale.
func RegisterPublic(e *echo.Echo, browse *handler.BrowseHandler, bookings *handler.BookingHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/api")

	read := g.Group("")
	if cache != nil {
		read.Use(cache)
	}
	read.GET("/events", browse.ListEvents)
	read.GET("/events/:idOrSlug", browse.GetEvent)
	read.GET("/posts", browse.ListPosts)
	read.GET("/posts/:id", browse.GetPost)
	read.GET("/authors", browse.ListAuthors)

	g.POST("/bookings", bookings.Create)
	g.GET("/bookings/:ref", bookings.GetByReference)
}
