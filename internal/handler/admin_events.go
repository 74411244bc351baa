package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/model"
	"github.com/lumapark/venue-booking/internal/repository"
)

// AdminEventHandler is the CMS surface for events and their ticket
// types.  Writes that touch both the event row and its ticket types
// run inside one transaction so a half-updated event can never be
// served to the public API.
type AdminEventHandler struct {
	Events *repository.EventRepo
}

// NewAdminEventHandler constructs an AdminEventHandler.
func NewAdminEventHandler(events *repository.EventRepo) *AdminEventHandler {
	if events == nil {
		panic("nil repository passed to NewAdminEventHandler")
	}
	return &AdminEventHandler{Events: events}
}

type eventBody struct {
	Slug        string              `json:"slug"`
	Category    string              `json:"category"`
	Title       model.LocalizedText `json:"title"`
	Description model.LocalizedText `json:"description"`
	Location    model.LocalizedText `json:"location"`
	StartsAt    time.Time           `json:"starts_at"`
	EndsAt      *time.Time          `json:"ends_at"`
	ImagePath   string              `json:"image_path"`
	Published   bool                `json:"published"`
	TicketTypes []model.TicketType  `json:"ticket_types"`
}

func (b *eventBody) validate() string {
	if strings.TrimSpace(b.Slug) == "" {
		return "slug is required"
	}
	if b.Title.TR == "" || b.Title.EN == "" {
		return "title is required in both languages"
	}
	if b.StartsAt.IsZero() {
		return "starts_at is required"
	}
	seen := make(map[string]bool, len(b.TicketTypes))
	for _, t := range b.TicketTypes {
		if t.ID == "" {
			return "every ticket type needs an id"
		}
		if seen[t.ID] {
			return "duplicate ticket type id: " + t.ID
		}
		seen[t.ID] = true
		if t.Name.TR == "" || t.Name.EN == "" {
			return "ticket type names are required in both languages"
		}
		if t.Price.IsNegative() {
			return "ticket prices cannot be negative"
		}
		switch t.Variant {
		case model.VariantStandard, model.VariantPremium, model.VariantVIP:
		default:
			return "unknown ticket variant: " + string(t.Variant)
		}
	}
	return ""
}

func (b *eventBody) toModel(id uint64) model.Event {
	return model.Event{
		ID:          id,
		Slug:        strings.TrimSpace(b.Slug),
		Category:    strings.TrimSpace(b.Category),
		Title:       b.Title,
		Description: b.Description,
		Location:    b.Location,
		StartsAt:    b.StartsAt,
		EndsAt:      b.EndsAt,
		ImagePath:   b.ImagePath,
		Published:   b.Published,
		TicketTypes: b.TicketTypes,
	}
}

// List handles GET /v1/admin/events, including unpublished events.
func (h *AdminEventHandler) List(c echo.Context) error {
	events, err := h.Events.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// Create handles POST /v1/admin/events.
func (h *AdminEventHandler) Create(c echo.Context) error {
	var body eventBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	e := body.toModel(0)

	ctx := c.Request().Context()
	tx, err := h.Events.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Events.CreateTx(ctx, tx, &e); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true
	return c.JSON(http.StatusCreated, e)
}

// Update handles PUT /v1/admin/events/:id.  Ticket types are replaced
// wholesale with the submitted set.
func (h *AdminEventHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body eventBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	e := body.toModel(id)

	ctx := c.Request().Context()
	tx, err := h.Events.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Events.UpdateTx(ctx, tx, &e); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true
	return c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /v1/admin/events/:id.  Ticket types go with
// the event via the foreign key.
func (h *AdminEventHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Events.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
