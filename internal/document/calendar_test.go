package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar(t *testing.T) {
	data, filename, err := Calendar(CalendarInput{
		Reference: "RSV-LX2K9A-4F21",
		Summary:   "Yarış Simülatörü / Racing Simulator",
		Location:  "Lumapark",
		Date:      "2026-08-31",
		StartTime: "14:00",
		EndTime:   "16:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "reservation-RSV-LX2K9A-4F21.ics", filename)

	s := string(data)
	assert.Contains(t, s, "BEGIN:VCALENDAR\r\n")
	assert.Contains(t, s, "UID:RSV-LX2K9A-4F21@lumapark\r\n")
	assert.Contains(t, s, "DTSTART:20260831T140000\r\n")
	assert.Contains(t, s, "DTEND:20260831T160000\r\n")
	assert.Contains(t, s, "SUMMARY:Yarış Simülatörü / Racing Simulator\r\n")
	assert.Contains(t, s, "LOCATION:Lumapark\r\n")
	assert.True(t, strings.HasSuffix(s, "END:VCALENDAR\r\n"))
}

func TestCalendarDefaultsToOneHour(t *testing.T) {
	data, _, err := Calendar(CalendarInput{
		Reference: "RSV-TEST",
		Summary:   "VR Arena",
		Date:      "2026-08-31",
		StartTime: "19:00",
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTEND:20260831T200000\r\n")
}

func TestCalendarRejectsBadStart(t *testing.T) {
	_, _, err := Calendar(CalendarInput{Reference: "RSV-TEST", Date: "yesterday", StartTime: "noon"})
	assert.Error(t, err)
}

func TestCalendarEscapesText(t *testing.T) {
	data, _, err := Calendar(CalendarInput{
		Reference: "RSV-TEST",
		Summary:   "Panel; Q&A, part two",
		Date:      "2026-08-31",
		StartTime: "14:00",
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Panel\\; Q&A\\, part two\r\n")
}
