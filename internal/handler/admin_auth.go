package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumapark/venue-booking/internal/config"
	"github.com/lumapark/venue-booking/internal/utils"
)

// AdminAuthHandler logs the single CMS operator in.  Credentials come
// from configuration; there is no registration or password reset.
type AdminAuthHandler struct {
	Cfg config.Config
}

// NewAdminAuthHandler constructs an AdminAuthHandler.
func NewAdminAuthHandler(cfg config.Config) *AdminAuthHandler {
	return &AdminAuthHandler{Cfg: cfg}
}

// Login handles POST /v1/admin/login.  On success it returns a signed
// access token carrying the ADMIN role.
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}
	// Run the bcrypt comparison even on a wrong email so response
	// timing does not reveal which field was wrong.
	hash := h.Cfg.AdminPassHash
	if email != strings.ToLower(h.Cfg.AdminEmail) {
		hash = "$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalidinvali"
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(body.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	ttl := time.Duration(h.Cfg.AccessTTLMin) * time.Minute
	token, err := utils.GenerateAccessToken(h.Cfg.AdminEmail, "ADMIN", h.Cfg.JWTSecret, ttl)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"expires_in":   int(ttl.Seconds()),
	})
}
