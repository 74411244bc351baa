package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/cart"
	"github.com/lumapark/venue-booking/internal/i18n"
	"github.com/lumapark/venue-booking/internal/model"
	"github.com/lumapark/venue-booking/internal/pricing"
	"github.com/lumapark/venue-booking/internal/repository"
	"github.com/lumapark/venue-booking/internal/store"
	"github.com/lumapark/venue-booking/internal/wizard"
)

// cartTTL bounds how long a pending cart survives an aborted flow.
const cartTTL = 24 * time.Hour

// cartState is the envelope persisted under the pendingCart key: the
// cart snapshot plus the sidebar stage, so an aborted payment resumes
// exactly where the visitor left off.
type cartState struct {
	Snapshot cart.Snapshot       `json:"snapshot"`
	Stage    wizard.SidebarStage `json:"stage"`
}

// CartHandler manages the per-session ticket cart for an event.  The
// cart is rebuilt from its stored snapshot on every request; a
// snapshot belonging to a different event restores nothing, so stale
// selections never leak across events.
type CartHandler struct {
	Store  store.Store
	Events *repository.EventRepo
	Now    func() time.Time
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(st store.Store, events *repository.EventRepo) *CartHandler {
	if st == nil || events == nil {
		panic("nil dependency passed to NewCartHandler")
	}
	return &CartHandler{Store: st, Events: events, Now: time.Now}
}

// Get handles GET /v1/sessions/:sid/events/:eventID/cart.
func (h *CartHandler) Get(c echo.Context) error {
	_, _, st, ck, err := h.loadCart(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.render(c, ck, st))
}

// Increase handles POST /v1/sessions/:sid/events/:eventID/cart/increase.
// A failed increase leaves the cart untouched and surfaces a standing
// message keyed by the ticket type.
func (h *CartHandler) Increase(c echo.Context) error {
	return h.mutate(c, func(ck *cart.Cart, ticketTypeID string) {
		// Increase records its own per-ticket message on failure.
		_ = ck.Increase(ticketTypeID)
	})
}

// Decrease handles POST /v1/sessions/:sid/events/:eventID/cart/decrease.
func (h *CartHandler) Decrease(c echo.Context) error {
	return h.mutate(c, func(ck *cart.Cart, ticketTypeID string) {
		ck.Decrease(ticketTypeID)
	})
}

// Continue handles POST /v1/sessions/:sid/events/:eventID/sidebar/continue.
// Advancing to the details stage requires a non-empty cart.
func (h *CartHandler) Continue(c echo.Context) error {
	sid, event, st, ck, err := h.loadCart(c)
	if err != nil {
		return err
	}
	sb := &wizard.Sidebar{Stage: st.Stage}
	if err := sb.Continue(ck); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(langFrom(c), i18n.KeyCartEmpty)})
	}
	st.Stage = sb.Stage
	if err := h.save(c, sid, event.ID, st, ck); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	return c.JSON(http.StatusOK, h.render(c, ck, st))
}

// Back handles POST /v1/sessions/:sid/events/:eventID/sidebar/back.
func (h *CartHandler) Back(c echo.Context) error {
	sid, event, st, ck, err := h.loadCart(c)
	if err != nil {
		return err
	}
	sb := &wizard.Sidebar{Stage: st.Stage}
	sb.Back()
	st.Stage = sb.Stage
	if err := h.save(c, sid, event.ID, st, ck); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	return c.JSON(http.StatusOK, h.render(c, ck, st))
}

// Details handles POST /v1/sessions/:sid/events/:eventID/sidebar/details.
// It validates the details-stage guard and stores the contact with the
// snapshot; checkout re-reads it from there.
func (h *CartHandler) Details(c echo.Context) error {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
		Terms bool   `json:"terms_accepted"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	sid, event, st, ck, err := h.loadCart(c)
	if err != nil {
		return err
	}
	lang := langFrom(c)
	sb := &wizard.Sidebar{Stage: st.Stage}
	if err := sb.ValidateDetails(body.Name, body.Email, body.Phone, body.Terms); err != nil {
		return h.detailsError(c, lang, err)
	}
	first, last := splitName(body.Name)
	st.Snapshot.Contact = model.Contact{
		FirstName: first,
		LastName:  last,
		Email:     strings.TrimSpace(body.Email),
		Phone:     wizard.NormalizePhone(body.Phone),
	}
	if err := h.save(c, sid, event.ID, st, ck); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	return c.JSON(http.StatusOK, h.render(c, ck, st))
}

func (h *CartHandler) detailsError(c echo.Context, lang model.Language, err error) error {
	switch {
	case errors.Is(err, wizard.ErrDetailsRequired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyDetailsRequired)})
	case errors.Is(err, wizard.ErrPhoneInvalid):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyPhoneInvalid)})
	case errors.Is(err, wizard.ErrTermsRequired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, i18n.KeyTermsRequired)})
	default:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
}

func (h *CartHandler) mutate(c echo.Context, apply func(*cart.Cart, string)) error {
	var body struct {
		TicketTypeID string `json:"ticket_type_id"`
	}
	if err := c.Bind(&body); err != nil || body.TicketTypeID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_type_id is required"})
	}
	sid, event, st, ck, err := h.loadCart(c)
	if err != nil {
		return err
	}
	apply(ck, body.TicketTypeID)
	if err := h.save(c, sid, event.ID, st, ck); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	return c.JSON(http.StatusOK, h.render(c, ck, st))
}

// loadCart resolves the event, rebuilds the cart from the stored
// snapshot and returns everything a cart route needs.  A missing or
// foreign-event snapshot yields a fresh empty cart at the tickets
// stage.
func (h *CartHandler) loadCart(c echo.Context) (string, model.Event, *cartState, *cart.Cart, error) {
	sid, ok := sessionID(c)
	if !ok {
		return "", model.Event{}, nil, nil, badSession(c)
	}
	eventID, err := strconv.ParseUint(c.Param("eventID"), 10, 64)
	if err != nil || eventID == 0 {
		return "", model.Event{}, nil, nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	event, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return "", model.Event{}, nil, nil, c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return "", model.Event{}, nil, nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	lang := langFrom(c)
	ck := cart.New(event.TicketTypes, lang)
	st := &cartState{Stage: wizard.StageTickets}

	raw, err := h.Store.Get(ctx, store.Key(sid, store.KeyPendingCart))
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(raw), st); jsonErr == nil {
			if !ck.Restore(st.Snapshot, event.ID) {
				// Different event or nothing restorable; start clean.
				st.Stage = wizard.StageTickets
				st.Snapshot = cart.Snapshot{}
			}
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", model.Event{}, nil, nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	ck.RefreshNames(lang)
	return sid, event, st, ck, nil
}

// save persists the cart snapshot; an emptied cart removes the key so
// nothing stale can be restored later.
func (h *CartHandler) save(c echo.Context, sid string, eventID uint64, st *cartState, ck *cart.Cart) error {
	ctx := c.Request().Context()
	key := store.Key(sid, store.KeyPendingCart)
	if ck.IsEmpty() {
		return h.Store.Remove(ctx, key)
	}
	st.Snapshot = ck.Snapshot(eventID, st.Snapshot.Contact, h.Now().UTC())
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return h.Store.Set(ctx, key, string(raw), cartTTL)
}

func (h *CartHandler) render(c echo.Context, ck *cart.Cart, st *cartState) echo.Map {
	lang := langFrom(c)
	total := ck.Total()
	return echo.Map{
		"stage":         st.Stage,
		"lines":         ck.Lines(),
		"messages":      ck.Messages(),
		"is_empty":      ck.IsEmpty(),
		"total":         total,
		"total_display": pricing.Display(total, lang),
		"contact":       st.Snapshot.Contact,
	}
}

// splitName separates a full name into first and last at the final
// space, matching how the contact step stores names.
func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if i := strings.LastIndex(full, " "); i >= 0 {
		return strings.TrimSpace(full[:i]), strings.TrimSpace(full[i+1:])
	}
	return full, ""
}
