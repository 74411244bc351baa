package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/availability"
	"github.com/lumapark/venue-booking/internal/checkout"
	"github.com/lumapark/venue-booking/internal/i18n"
	"github.com/lumapark/venue-booking/internal/model"
	"github.com/lumapark/venue-booking/internal/pricing"
	"github.com/lumapark/venue-booking/internal/repository"
	"github.com/lumapark/venue-booking/internal/store"
	"github.com/lumapark/venue-booking/internal/utils"
	"github.com/lumapark/venue-booking/internal/wizard"
)

// draftTTL bounds how long an abandoned wizard draft survives.
const draftTTL = 2 * time.Hour

// ReservationHandler drives the walk-in reservation wizard.  Each
// session owns one draft persisted in the store between requests; the
// step machine itself is stateless and rebuilt per request.
type ReservationHandler struct {
	Store       store.Store
	Bookings    *repository.BookingRepo
	Checkout    *checkout.Service
	Venues      []model.VenueOption
	Schedule    availability.Schedule
	Rates       pricing.Table
	PaymentBase string
	Now         func() time.Time
}

// NewReservationHandler constructs a ReservationHandler with the
// default venue catalog, opening hours and rate table.
func NewReservationHandler(st store.Store, bookings *repository.BookingRepo, co *checkout.Service, paymentBase string) *ReservationHandler {
	if st == nil || co == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Store:       st,
		Bookings:    bookings,
		Checkout:    co,
		Venues:      model.DefaultVenueOptions(),
		Schedule:    availability.DefaultSchedule(),
		Rates:       pricing.DefaultTable(),
		PaymentBase: paymentBase,
		Now:         time.Now,
	}
}

// ListVenues handles GET /v1/venues.  The catalog is static reference
// data; titles and descriptions come back in both languages.
func (h *ReservationHandler) ListVenues(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"venues": h.Venues})
}

// Start handles POST /v1/reservations.  It mints a session id, stores
// an empty draft and returns the initial wizard state.
func (h *ReservationHandler) Start(c echo.Context) error {
	sid := uuid.NewString()
	m := wizard.New(h.Venues, h.Schedule, h.Rates, h.Now)
	if err := h.saveDraft(c, sid, m.Draft); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	return c.JSON(http.StatusCreated, h.state(c, sid, m))
}

// GetState handles GET /v1/reservations/:sid.
func (h *ReservationHandler) GetState(c echo.Context) error {
	sid, m, err := h.load(c)
	if err != nil || m == nil {
		return err
	}
	return c.JSON(http.StatusOK, h.state(c, sid, m))
}

// SelectVenue handles POST /v1/reservations/:sid/venue.
func (h *ReservationHandler) SelectVenue(c echo.Context) error {
	var body struct {
		VenueID string `json:"venue_id"`
	}
	return h.step(c, &body, func(m *wizard.Machine) error {
		return m.SelectVenue(body.VenueID)
	})
}

// SelectPartySize handles POST /v1/reservations/:sid/party-size.  A
// size of 8 or more does not advance; the response carries the
// call-us prompt instead.
func (h *ReservationHandler) SelectPartySize(c echo.Context) error {
	var body struct {
		Size int `json:"size"`
	}
	return h.step(c, &body, func(m *wizard.Machine) error {
		return m.SelectPartySize(body.Size)
	})
}

// DismissCallPrompt handles POST /v1/reservations/:sid/call-prompt/dismiss.
func (h *ReservationHandler) DismissCallPrompt(c echo.Context) error {
	return h.step(c, nil, func(m *wizard.Machine) error {
		m.DismissCallPrompt()
		return nil
	})
}

// SelectDate handles POST /v1/reservations/:sid/date.  Changing the
// date clears any previously chosen times.
func (h *ReservationHandler) SelectDate(c echo.Context) error {
	var body struct {
		Date string `json:"date"` // YYYY-MM-DD
	}
	return h.step(c, &body, func(m *wizard.Machine) error {
		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return wizard.ErrInvalidTime
		}
		return m.SelectDate(d)
	})
}

// SelectStartTime handles POST /v1/reservations/:sid/start-time.  An
// end time at or before the new start is moved forward automatically.
func (h *ReservationHandler) SelectStartTime(c echo.Context) error {
	var body struct {
		Time string `json:"time"` // HH:MM
	}
	return h.step(c, &body, func(m *wizard.Machine) error {
		t, err := availability.Parse(body.Time)
		if err != nil {
			return wizard.ErrInvalidTime
		}
		return m.SelectStartTime(t)
	})
}

// SelectEndTime handles POST /v1/reservations/:sid/end-time.
func (h *ReservationHandler) SelectEndTime(c echo.Context) error {
	var body struct {
		Time string `json:"time"` // HH:MM
	}
	return h.step(c, &body, func(m *wizard.Machine) error {
		t, err := availability.Parse(body.Time)
		if err != nil {
			return wizard.ErrInvalidTime
		}
		return m.SelectEndTime(t)
	})
}

// ContinueToContact handles POST /v1/reservations/:sid/continue.
func (h *ReservationHandler) ContinueToContact(c echo.Context) error {
	return h.step(c, nil, func(m *wizard.Machine) error {
		return m.ContinueToContact()
	})
}

// SubmitName handles POST /v1/reservations/:sid/contact/name.
func (h *ReservationHandler) SubmitName(c echo.Context) error {
	var body struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	}
	return h.step(c, &body, func(m *wizard.Machine) error {
		if err := m.SubmitName(body.FirstName, body.LastName); err != nil {
			return err
		}
		if body.Email != "" {
			m.SetEmail(body.Email)
		}
		return nil
	})
}

// SubmitPhone handles POST /v1/reservations/:sid/contact/phone.
func (h *ReservationHandler) SubmitPhone(c echo.Context) error {
	var body struct {
		Phone string `json:"phone"`
	}
	return h.step(c, &body, func(m *wizard.Machine) error {
		return m.SubmitPhone(body.Phone)
	})
}

// JumpBack handles POST /v1/reservations/:sid/back.  Only earlier
// steps are reachable; jumping to the contact step restarts it at the
// name sub-step.
func (h *ReservationHandler) JumpBack(c echo.Context) error {
	var body struct {
		Step int `json:"step"`
	}
	return h.step(c, &body, func(m *wizard.Machine) error {
		return m.JumpBack(wizard.Step(body.Step))
	})
}

// Confirm handles POST /v1/reservations/:sid/confirm.  It validates
// the completed draft, rejects overlapping slots, records the booking
// with a fresh reference and hands the session to checkout.  Free
// reservations skip payment and redirect straight to confirmation.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	sid, m, err := h.load(c)
	if err != nil || m == nil {
		return err
	}
	lang := langFrom(c)
	if m.Draft.Step != wizard.StepConfirmation {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not ready to confirm"})
	}
	venue, ok := m.Venue()
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not ready to confirm"})
	}
	ctx := c.Request().Context()

	if h.Bookings != nil && m.Draft.Start != nil && m.Draft.End != nil {
		overlap, err := h.Bookings.HasOverlap(ctx, venue.ID, m.Draft.Date, m.Draft.Start.String(), m.Draft.End.String())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if overlap {
			return c.JSON(http.StatusConflict, echo.Map{"error": i18n.T(lang, i18n.KeySlotUnavailable)})
		}
	}

	payload := checkout.BuildVenuePayload(m.Draft, venue, lang, h.PaymentBase+"/reservation/confirmation")
	payload.ReferenceNo = utils.GenerateReference()

	if h.Bookings != nil {
		b := model.Booking{
			ReferenceNo: payload.ReferenceNo,
			VenueID:     venue.ID,
			PartySize:   m.Draft.PartySize,
			Date:        m.Draft.Date,
			StartTime:   payload.StartTime,
			EndTime:     payload.EndTime,
			Contact:     m.Draft.Contact,
			TotalMinor:  payload.TotalMinor,
			Status:      model.BookingPending,
			CreatedAt:   h.Now().UTC(),
		}
		if err := h.Bookings.Create(ctx, &b); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return c.JSON(http.StatusConflict, echo.Map{"error": i18n.T(lang, i18n.KeySlotUnavailable)})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": i18n.T(lang, i18n.KeyOrderFailed)})
		}
	}

	out, err := h.Checkout.Submit(ctx, sid, payload)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": i18n.T(lang, i18n.KeyOrderFailed)})
	}
	_ = h.Store.Remove(ctx, store.Key(sid, store.KeyReservationDraft))
	return c.JSON(http.StatusOK, echo.Map{
		"reference_no": payload.ReferenceNo,
		"order_id":     out.OrderID,
		"redirect":     out.Redirect,
	})
}

// step is the shared request cycle: bind, load draft, mutate, persist,
// answer with the new state.  Domain errors map to 400/409 with a
// message in the request language.
func (h *ReservationHandler) step(c echo.Context, body any, mutate func(*wizard.Machine) error) error {
	if body != nil {
		if err := c.Bind(body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		}
	}
	sid, m, err := h.load(c)
	if err != nil || m == nil {
		return err
	}
	if err := mutate(m); err != nil {
		return h.stepError(c, err)
	}
	if err := h.saveDraft(c, sid, m.Draft); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	return c.JSON(http.StatusOK, h.state(c, sid, m))
}

func (h *ReservationHandler) stepError(c echo.Context, err error) error {
	lang := langFrom(c)
	switch {
	case errors.Is(err, wizard.ErrWrongStep), errors.Is(err, wizard.ErrForwardJump):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, wizard.ErrInvalidTime), errors.Is(err, wizard.ErrDateTimeIncomplete):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyInvalidTime)})
	case errors.Is(err, wizard.ErrNameRequired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyNameRequired)})
	case errors.Is(err, wizard.ErrPhoneInvalid):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyPhoneInvalid)})
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
}

// load rebuilds the machine for the request's session.
func (h *ReservationHandler) load(c echo.Context) (string, *wizard.Machine, error) {
	sid, ok := sessionID(c)
	if !ok {
		return "", nil, badSession(c)
	}
	ctx := c.Request().Context()
	raw, err := h.Store.Get(ctx, store.Key(sid, store.KeyReservationDraft))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, c.JSON(http.StatusNotFound, echo.Map{"error": "reservation session not found"})
	}
	if err != nil {
		return "", nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	var d wizard.Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return "", nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "corrupt draft"})
	}
	return sid, wizard.Restore(d, h.Venues, h.Schedule, h.Rates, h.Now), nil
}

func (h *ReservationHandler) saveDraft(c echo.Context, sid string, d wizard.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return h.Store.Set(c.Request().Context(), store.Key(sid, store.KeyReservationDraft), string(raw), draftTTL)
}

// state renders the wizard state for the client: the draft, the
// localized total and, when active, the call-us prompt text.
func (h *ReservationHandler) state(c echo.Context, sid string, m *wizard.Machine) echo.Map {
	lang := langFrom(c)
	out := echo.Map{
		"session_id": sid,
		"draft":      m.Draft,
	}
	if m.Draft.PriceValid {
		out["total_display"] = pricing.Display(m.Draft.Total, lang)
	}
	if m.Draft.CallPrompt {
		out["call_prompt"] = i18n.T(lang, i18n.KeyPartySizeCall)
	}
	return out
}
