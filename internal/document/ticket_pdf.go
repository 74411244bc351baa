// Package document renders the downloadable artifacts of a confirmed
// order: the PDF ticket and the calendar export.  Generation failures
// degrade (placeholder instead of QR) rather than aborting the whole
// document; only an unwritable PDF stream is a hard error.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/lumapark/venue-booking/internal/model"
)

// qrContent is the machine-readable payload encoded into the ticket's
// QR code for door scanning.
type qrContent struct {
	Reference string `json:"reference"`
	Name      string `json:"name"`
	Venue     string `json:"venue"`
	DateTime  string `json:"datetime"`
	Guests    int    `json:"guests"`
}

// Ticket renders the order as a single-page A4 PDF: header band with
// the venue name, reference number, QR code (or a placeholder box when
// QR generation fails), two detail boxes (reservation vs. customer)
// and a footer.  Labels are printed bilingually as "TR / EN" so one
// artifact reads in both languages.
func Ticket(p model.OrderPayload) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Ticket "+reference(p), true)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(17, 24, 39)
	pdf.Rect(0, 0, 210, 42, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(14, 10)
	pdf.CellFormat(130, 10, tr(title(p)), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(130, 8, tr("Rezervasyon Bileti / Reservation Ticket"), "", 0, "L", false, 0, "")

	// Reference number
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(14, 32)
	pdf.CellFormat(130, 8, tr("Ref: "+reference(p)), "", 0, "L", false, 0, "")

	drawQR(pdf, p)

	// Two-column detail boxes
	pdf.SetTextColor(17, 24, 39)
	top := 52.0
	drawBox(pdf, tr, 14, top, 88, "Rezervasyon Bilgileri / Reservation Details", reservationRows(p))
	drawBox(pdf, tr, 108, top, 88, "Müsteri Bilgileri / Customer Details", customerRows(p))

	// Footer
	pdf.SetY(-24)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, tr("Lütfen bileti girişte gösteriniz. / Please present this ticket at the entrance."), "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// TicketFilename names the downloaded PDF after the reference number.
func TicketFilename(p model.OrderPayload) string {
	return "ticket-" + reference(p) + ".pdf"
}

// drawQR encodes the scan payload and places it in the header.  When
// encoding fails the same area gets an outlined placeholder box, so
// the rest of the document still renders.
func drawQR(pdf *gofpdf.Fpdf, p model.OrderPayload) {
	content := qrContent{
		Reference: reference(p),
		Name:      p.Contact.FirstName + " " + p.Contact.LastName,
		Venue:     title(p),
		DateTime:  p.Date + " " + p.StartTime,
		Guests:    p.PartySize,
	}
	data, err := json.Marshal(content)
	var png []byte
	if err == nil {
		png, err = qrcode.Encode(string(data), qrcode.Medium, 256)
	}
	if err != nil || len(png) == 0 {
		pdf.SetDrawColor(255, 255, 255)
		pdf.Rect(162, 6, 32, 32, "D")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(162, 19)
		pdf.CellFormat(32, 6, "QR", "", 0, "C", false, 0, "")
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("ticket-qr", 162, 6, 32, 32, false, opts, 0, "")
}

func drawBox(pdf *gofpdf.Fpdf, tr func(string) string, x, y, w float64, heading string, rows [][2]string) {
	pdf.SetDrawColor(200, 200, 200)
	h := 10.0 + float64(len(rows))*12.0 + 4.0
	pdf.Rect(x, y, w, h, "D")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(x+4, y+3)
	pdf.CellFormat(w-8, 7, tr(heading), "B", 2, "L", false, 0, "")
	pdf.SetXY(x+4, y+12)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(w-8, 5, tr(row[0]), "", 2, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(17, 24, 39)
		pdf.CellFormat(w-8, 6, tr(row[1]), "", 2, "L", false, 0, "")
		pdf.SetX(x + 4)
	}
}

func reservationRows(p model.OrderPayload) [][2]string {
	rows := [][2]string{
		{"Mekan / Venue", title(p)},
		{"Tarih / Date", p.Date},
	}
	if p.StartTime != "" {
		span := p.StartTime
		if p.EndTime != "" {
			span += " - " + p.EndTime
		}
		rows = append(rows, [2]string{"Saat / Time", span})
	}
	if p.PartySize > 0 {
		rows = append(rows, [2]string{"Kisi / Guests", fmt.Sprintf("%d", p.PartySize)})
	}
	for _, l := range p.Lines {
		rows = append(rows, [2]string{"Bilet / Ticket", fmt.Sprintf("%s x%d", l.Name.Both(), l.Quantity)})
	}
	return rows
}

func customerRows(p model.OrderPayload) [][2]string {
	rows := [][2]string{
		{"Ad Soyad / Name", p.Contact.FirstName + " " + p.Contact.LastName},
		{"Telefon / Phone", p.Contact.Phone},
	}
	if p.Contact.Email != "" {
		rows = append(rows, [2]string{"E-posta / Email", p.Contact.Email})
	}
	rows = append(rows, [2]string{"Tutar / Total", fmt.Sprintf("%.2f %s", float64(p.TotalMinor)/100, p.Currency)})
	return rows
}

// title picks the venue or event title, rendered bilingually.
func title(p model.OrderPayload) string {
	if t := p.VenueTitle.Both(); t != "" {
		return t
	}
	return p.EventTitle.Both()
}

func reference(p model.OrderPayload) string {
	if p.ReferenceNo != "" {
		return p.ReferenceNo
	}
	return p.OrderID
}
