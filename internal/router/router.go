// Package router wires HTTP routes to their handlers.  Registration is
// split by surface: public browse, the booking flow and the admin CMS.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/handler"
)

// RegisterRoutes registers the routes that need no dependencies.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
