package document

import (
	"fmt"
	"strings"
	"time"
)

// icsTimeLayout is the floating local time format used in the export;
// the reservation time is venue-local wall clock.
const icsTimeLayout = "20060102T150405"

// CalendarInput is the slice of an order needed for the export.
type CalendarInput struct {
	Reference string
	Summary   string
	Location  string
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM, optional
}

// Calendar emits an iCalendar file for the reservation.  When no end
// time is present the event defaults to one hour.  The returned
// filename is derived from the reference number.
func Calendar(in CalendarInput) (data []byte, filename string, err error) {
	start, err := time.Parse("2006-01-02 15:04", in.Date+" "+in.StartTime)
	if err != nil {
		return nil, "", fmt.Errorf("parse event start: %w", err)
	}
	end := start.Add(time.Hour)
	if in.EndTime != "" {
		if e, perr := time.Parse("2006-01-02 15:04", in.Date+" "+in.EndTime); perr == nil && e.After(start) {
			end = e
		}
	}

	var b strings.Builder
	line := func(s string) { b.WriteString(s); b.WriteString("\r\n") }
	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//lumapark//venue-booking//EN")
	line("BEGIN:VEVENT")
	line("UID:" + in.Reference + "@lumapark")
	line("DTSTAMP:" + time.Now().UTC().Format(icsTimeLayout) + "Z")
	line("DTSTART:" + start.Format(icsTimeLayout))
	line("DTEND:" + end.Format(icsTimeLayout))
	line("SUMMARY:" + escapeICS(in.Summary))
	line("DESCRIPTION:" + escapeICS("Ref: "+in.Reference))
	if in.Location != "" {
		line("LOCATION:" + escapeICS(in.Location))
	}
	line("END:VEVENT")
	line("END:VCALENDAR")

	return []byte(b.String()), "reservation-" + in.Reference + ".ics", nil
}

// escapeICS escapes the characters RFC 5545 requires in text values.
func escapeICS(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
