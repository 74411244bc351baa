package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/handler"
	"github.com/lumapark/venue-booking/internal/middleware"
)

// RegisterAdmin registers the CMS routes.  Login is open; everything
// else requires a valid token with the ADMIN role.
func RegisterAdmin(e *echo.Echo, auth *handler.AdminAuthHandler, events *handler.AdminEventHandler, posts *handler.AdminPostHandler, files *handler.FileHandler, bookings *handler.BookingHandler, jwtSecret string) {
	e.POST("/v1/admin/login", auth.Login)

	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	g.GET("/events", events.List)
	g.POST("/events", events.Create)
	g.PUT("/events/:id", events.Update)
	g.DELETE("/events/:id", events.Delete)

	g.GET("/posts", posts.List)
	g.POST("/posts", posts.Create)
	g.PUT("/posts/:id", posts.Update)
	g.DELETE("/posts/:id", posts.Delete)

	g.POST("/upload", files.Upload)
	g.GET("/files", files.List)

	g.GET("/bookings", bookings.ListByDate)
}
