package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/availability"
	"github.com/lumapark/venue-booking/internal/i18n"
	"github.com/lumapark/venue-booking/internal/model"
	"github.com/lumapark/venue-booking/internal/pricing"
	"github.com/lumapark/venue-booking/internal/repository"
	"github.com/lumapark/venue-booking/internal/utils"
	"github.com/lumapark/venue-booking/internal/wizard"
)

// maxOnlinePartySize is the largest group size accepted online;
// larger groups are asked to call.
const maxOnlinePartySize = 7

// BookingHandler accepts direct reservation submissions, the
// one-request alternative to the step-by-step wizard.  All guards the
// wizard enforces incrementally are re-checked here in one pass, so a
// hand-crafted request cannot slip past them.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Venues   map[string]model.VenueOption
	Schedule availability.Schedule
	Rates    pricing.Table
	Now      func() time.Time
}

// NewBookingHandler constructs a BookingHandler over the default venue
// catalog, opening hours and rate table.
func NewBookingHandler(bookings *repository.BookingRepo) *BookingHandler {
	if bookings == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	vm := make(map[string]model.VenueOption)
	for _, v := range model.DefaultVenueOptions() {
		vm[v.ID] = v
	}
	return &BookingHandler{
		Bookings: bookings,
		Venues:   vm,
		Schedule: availability.DefaultSchedule(),
		Rates:    pricing.DefaultTable(),
		Now:      time.Now,
	}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	lang := langFrom(c)
	var body struct {
		VenueID   string `json:"venue_id"`
		PartySize int    `json:"party_size"`
		Date      string `json:"date"`       // YYYY-MM-DD
		StartTime string `json:"start_time"` // HH:MM
		EndTime   string `json:"end_time"`   // HH:MM
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	venue, ok := h.Venues[body.VenueID]
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown venue"})
	}
	if body.PartySize < 1 || body.PartySize > maxOnlinePartySize {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyPartySizeCall)})
	}
	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyInvalidDate)})
	}
	start, err := availability.Parse(body.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyInvalidTime)})
	}
	end, err := availability.Parse(body.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyInvalidTime)})
	}
	if !h.Schedule.IsSelectableForStart(date, start, h.Now()) || !h.Schedule.IsSelectableForEnd(date, end, start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyInvalidTime)})
	}
	if wizard.NormalizePhone(body.Phone) == "" || len(wizard.NormalizePhone(body.Phone)) < 10 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyPhoneInvalid)})
	}
	if body.FirstName == "" || body.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyNameRequired)})
	}

	ctx := c.Request().Context()
	overlap, err := h.Bookings.HasOverlap(ctx, venue.ID, body.Date, start.String(), end.String())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if overlap {
		return c.JSON(http.StatusConflict, echo.Map{"error": i18n.T(lang, i18n.KeySlotUnavailable)})
	}

	total, priced := pricing.ForVenue(h.Rates, venue.ID, start, end, body.PartySize)
	if !priced {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyInvalidTime)})
	}

	b := model.Booking{
		ReferenceNo: utils.GenerateReference(),
		VenueID:     venue.ID,
		PartySize:   body.PartySize,
		Date:        body.Date,
		StartTime:   start.String(),
		EndTime:     end.String(),
		Contact: model.Contact{
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Phone:     wizard.NormalizePhone(body.Phone),
			Email:     body.Email,
		},
		TotalMinor: pricing.ToMinor(total),
		Status:     model.BookingPending,
		CreatedAt:  h.Now().UTC(),
	}
	if err := h.Bookings.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": i18n.T(lang, i18n.KeyOrderFailed)})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"referenceNumber": b.ReferenceNo,
		"message":         i18n.T(lang, i18n.KeyBookingSubmitted),
		"total_display":   pricing.Display(total, lang),
	})
}

// GetByReference handles GET /api/bookings/:ref.
func (h *BookingHandler) GetByReference(c echo.Context) error {
	ref := c.Param("ref")
	b, err := h.Bookings.GetByReference(c.Request().Context(), ref)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, b)
}

// ListByDate handles GET /v1/admin/bookings?date=YYYY-MM-DD for the
// admin day overview.
func (h *BookingHandler) ListByDate(c echo.Context) error {
	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	bookings, err := h.Bookings.ListByDate(c.Request().Context(), date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}
