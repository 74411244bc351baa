package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapark/venue-booking/internal/checkout"
	"github.com/lumapark/venue-booking/internal/store"
)

// fixed Saturday before every date used in requests
var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestReservationHandler() *ReservationHandler {
	mem := store.NewMemoryStore()
	co := checkout.NewService(mem)
	co.Now = func() time.Time { return testNow }
	h := NewReservationHandler(mem, nil, co, "http://localhost:3000")
	h.Now = func() time.Time { return testNow }
	return h
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, path, body string, params map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	require.NoError(t, h(c))

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestReservationWizardFlow(t *testing.T) {
	h := newTestReservationHandler()

	rec, out := doJSON(t, h.Start, http.MethodPost, "/v1/reservations", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	sid, _ := out["session_id"].(string)
	require.NotEmpty(t, sid)
	p := map[string]string{"sid": sid}

	rec, _ = doJSON(t, h.SelectVenue, http.MethodPost, "/venue", `{"venue_id":"f1"}`, p)
	require.Equal(t, http.StatusOK, rec.Code)

	// A party of nine keeps the step and returns the call prompt.
	rec, out = doJSON(t, h.SelectPartySize, http.MethodPost, "/party-size", `{"size":9}`, p)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, out["call_prompt"])

	rec, _ = doJSON(t, h.SelectPartySize, http.MethodPost, "/party-size", `{"size":2}`, p)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, h.SelectDate, http.MethodPost, "/date", `{"date":"2026-08-31"}`, p)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, h.SelectStartTime, http.MethodPost, "/start-time", `{"time":"14:00"}`, p)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, out = doJSON(t, h.SelectEndTime, http.MethodPost, "/end-time", `{"time":"16:00"}`, p)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "400 ₺", out["total_display"])

	rec, _ = doJSON(t, h.ContinueToContact, http.MethodPost, "/continue", "", p)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, h.SubmitName, http.MethodPost, "/contact/name", `{"first_name":"Deniz","last_name":"Kaya"}`, p)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, h.SubmitPhone, http.MethodPost, "/contact/phone", `{"phone":"0532 123 45 67"}`, p)
	require.Equal(t, http.StatusOK, rec.Code)

	// A priced reservation hands off to the payment step.
	rec, out = doJSON(t, h.Confirm, http.MethodPost, "/confirm", "", p)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, checkout.RoutePayment, out["redirect"])
	ref, _ := out["reference_no"].(string)
	assert.True(t, strings.HasPrefix(ref, "RSV-"), "reference %q", ref)
}

func TestReservationGuardsOverHTTP(t *testing.T) {
	h := newTestReservationHandler()

	_, out := doJSON(t, h.Start, http.MethodPost, "/v1/reservations", "", nil)
	sid := out["session_id"].(string)
	p := map[string]string{"sid": sid}

	rec, _ := doJSON(t, h.SelectPartySize, http.MethodPost, "/party-size", `{"size":2}`, p)
	assert.Equal(t, http.StatusConflict, rec.Code, "party size before venue is a step violation")

	rec, _ = doJSON(t, h.SelectVenue, http.MethodPost, "/venue", `{"venue_id":"bowling"}`, p)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, h.Confirm, http.MethodPost, "/confirm", "", p)
	assert.Equal(t, http.StatusConflict, rec.Code, "confirm requires the confirmation step")
}

func TestReservationUnknownSession(t *testing.T) {
	h := newTestReservationHandler()
	rec, _ := doJSON(t, h.GetState, http.MethodGet, "/v1/reservations/nope", "", map[string]string{"sid": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
