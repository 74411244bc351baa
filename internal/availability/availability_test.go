package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-08-31 is a Monday, 2026-09-05 a Saturday, 2026-09-06 a Sunday.
var (
	monday   = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
)

func TestParse(t *testing.T) {
	got, err := Parse("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 30}, got)
	assert.Equal(t, "09:30", got.String())

	_, err = Parse("25:00")
	assert.Error(t, err)
	_, err = Parse("half past nine")
	assert.Error(t, err)
}

func TestDefaultScheduleWindows(t *testing.T) {
	s := DefaultSchedule()
	assert.Equal(t, Window{Open: 10, Close: 22}, s.WindowFor(monday))
	assert.Equal(t, Window{Open: 9, Close: 23}, s.WindowFor(saturday))
	assert.Equal(t, Window{Open: 10, Close: 20}, s.WindowFor(sunday))
}

func TestIsSelectableForStart(t *testing.T) {
	s := DefaultSchedule()
	// Clock fixed on a different day so "today" checks stay out of the way.
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, s.IsSelectableForStart(monday, TimeOfDay{Hour: 10}, now))
	assert.True(t, s.IsSelectableForStart(monday, TimeOfDay{Hour: 21}, now))
	assert.False(t, s.IsSelectableForStart(monday, TimeOfDay{Hour: 22}, now), "a start must leave an hour before close")
	assert.False(t, s.IsSelectableForStart(monday, TimeOfDay{Hour: 9}, now))
	assert.True(t, s.IsSelectableForStart(saturday, TimeOfDay{Hour: 9}, now))
	assert.True(t, s.IsSelectableForStart(sunday, TimeOfDay{Hour: 19}, now))
	assert.False(t, s.IsSelectableForStart(sunday, TimeOfDay{Hour: 20}, now))
}

func TestIsSelectableForStartToday(t *testing.T) {
	s := DefaultSchedule()
	now := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC) // Monday 15:30

	assert.False(t, s.IsSelectableForStart(monday, TimeOfDay{Hour: 14}, now), "past times today are not selectable")
	assert.False(t, s.IsSelectableForStart(monday, TimeOfDay{Hour: 15, Minute: 0}, now))
	assert.True(t, s.IsSelectableForStart(monday, TimeOfDay{Hour: 15, Minute: 30}, now))
	assert.True(t, s.IsSelectableForStart(monday, TimeOfDay{Hour: 16}, now))
}

func TestIsSelectableForEnd(t *testing.T) {
	s := DefaultSchedule()
	start := TimeOfDay{Hour: 14}

	assert.True(t, s.IsSelectableForEnd(monday, TimeOfDay{Hour: 15}, start))
	assert.True(t, s.IsSelectableForEnd(monday, TimeOfDay{Hour: 14, Minute: 30}, start))
	assert.False(t, s.IsSelectableForEnd(monday, TimeOfDay{Hour: 14}, start), "end must be strictly after start")
	assert.False(t, s.IsSelectableForEnd(monday, TimeOfDay{Hour: 13}, start))
	assert.False(t, s.IsSelectableForEnd(monday, TimeOfDay{Hour: 22}, start), "end cannot reach past closing")
}

func TestAdjustEndForStart(t *testing.T) {
	s := DefaultSchedule()

	// End already after the new start: unchanged.
	end := s.AdjustEndForStart(monday, TimeOfDay{Hour: 14}, TimeOfDay{Hour: 16})
	assert.Equal(t, TimeOfDay{Hour: 16}, end)

	// End at the new start: advance one hour.
	end = s.AdjustEndForStart(monday, TimeOfDay{Hour: 16}, TimeOfDay{Hour: 16})
	assert.Equal(t, TimeOfDay{Hour: 17}, end)

	// Advancing past closing caps at closing.
	end = s.AdjustEndForStart(monday, TimeOfDay{Hour: 21, Minute: 30}, TimeOfDay{Hour: 21})
	assert.Equal(t, TimeOfDay{Hour: 22}, end)
}

func TestCorrectEnd(t *testing.T) {
	assert.Equal(t, TimeOfDay{Hour: 16}, CorrectEnd(TimeOfDay{Hour: 14}, TimeOfDay{Hour: 16}))
	assert.Equal(t, TimeOfDay{Hour: 14, Minute: 15}, CorrectEnd(TimeOfDay{Hour: 14}, TimeOfDay{Hour: 14}))
	assert.Equal(t, TimeOfDay{Hour: 14, Minute: 15}, CorrectEnd(TimeOfDay{Hour: 14}, TimeOfDay{Hour: 12}))
}

func TestAddCapsAtEndOfDay(t *testing.T) {
	got := TimeOfDay{Hour: 23, Minute: 30}.Add(time.Hour)
	assert.Equal(t, TimeOfDay{Hour: 23, Minute: 59}, got)
}
