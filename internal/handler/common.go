// Package handler contains the HTTP handlers for the public booking
// API, the reservation wizard, the ticket cart, checkout and the admin
// CMS.
package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/model"
)

// langFrom resolves the request language.  The "lang" query parameter
// wins, then the Accept-Language header; Turkish is the default.
func langFrom(c echo.Context) model.Language {
	v := c.QueryParam("lang")
	if v == "" {
		v = c.Request().Header.Get("Accept-Language")
	}
	if strings.HasPrefix(strings.ToLower(v), "en") {
		return model.LangEN
	}
	return model.LangTR
}

// sessionID extracts the session path parameter shared by the wizard,
// cart and checkout routes.
func sessionID(c echo.Context) (string, bool) {
	sid := c.Param("sid")
	return sid, sid != ""
}

// badSession is the uniform response for a missing session id.
func badSession(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing session id"})
}
