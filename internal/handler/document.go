package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/checkout"
	"github.com/lumapark/venue-booking/internal/document"
	"github.com/lumapark/venue-booking/internal/i18n"
	"github.com/lumapark/venue-booking/internal/model"
)

// DocumentHandler serves the downloadable artifacts of a confirmed
// order: the PDF ticket with its QR code and the calendar file.  Both
// render from the archived order payload, which expires a day after
// confirmation.
type DocumentHandler struct {
	Checkout *checkout.Service
}

// NewDocumentHandler constructs a DocumentHandler.
func NewDocumentHandler(co *checkout.Service) *DocumentHandler {
	if co == nil {
		panic("nil checkout service passed to NewDocumentHandler")
	}
	return &DocumentHandler{Checkout: co}
}

// TicketPDF handles GET /v1/orders/:id/ticket.pdf.
func (h *DocumentHandler) TicketPDF(c echo.Context) error {
	p, err := h.loadOrder(c)
	if err != nil || p == nil {
		return err
	}
	data, err := document.Ticket(*p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not render ticket"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+document.TicketFilename(*p)+`"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// CalendarICS handles GET /v1/orders/:id/calendar.ics.
func (h *DocumentHandler) CalendarICS(c echo.Context) error {
	p, err := h.loadOrder(c)
	if err != nil || p == nil {
		return err
	}
	lang := langFrom(c)
	ref := p.ReferenceNo
	if ref == "" {
		ref = p.OrderID
	}
	in := document.CalendarInput{
		Reference: ref,
		Summary:   eventOrVenueTitle(p, lang),
		Location:  p.VenueTitle.In(lang),
		Date:      p.Date,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
	}
	data, filename, err := document.Calendar(in)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not render calendar file"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/calendar", data)
}

// loadOrder resolves the archived payload.  A nil payload with nil
// error means the 404 response has already been written.
func (h *DocumentHandler) loadOrder(c echo.Context) (*model.OrderPayload, error) {
	orderID := c.Param("id")
	if orderID == "" {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id"})
	}
	p, err := h.Checkout.LoadConfirmedOrder(c.Request().Context(), orderID)
	if err != nil {
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	if p == nil {
		return nil, c.JSON(http.StatusNotFound, echo.Map{"error": i18n.T(langFrom(c), i18n.KeyOrderNotFound)})
	}
	return p, nil
}
