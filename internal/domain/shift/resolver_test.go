package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestResolveWindowDayShift(t *testing.T) {
	def := Definition{Code: "DAY", StartTime: "09:00", EndTime: "17:30", GracePeriodMinutes: 15}

	w, err := ResolveWindow(def, day(t, "2024-03-11"), nil, SaturdayOverride{})
	require.NoError(t, err)
	assert.Equal(t, 9*60, w.StartMinute)
	assert.Equal(t, 17*60+30, w.EndMinute)
	assert.False(t, w.CrossesMidnight)
	assert.Equal(t, 15, w.GraceMinutes)
}

func TestResolveWindowOvernight(t *testing.T) {
	def := Definition{Code: "NIGHT", StartTime: "21:00", EndTime: "06:00", CrossesMidnight: true, GracePeriodMinutes: 15}

	w, err := ResolveWindow(def, day(t, "2024-03-11"), nil, SaturdayOverride{})
	require.NoError(t, err)
	assert.Equal(t, 1260, w.StartMinute)
	assert.Equal(t, 1800, w.EndMinute, "end past midnight normalizes above 1440")
	assert.True(t, w.CrossesMidnight)
}

func TestResolveWindowDeterministic(t *testing.T) {
	def := Definition{Code: "NIGHT", StartTime: "21:00", EndTime: "06:00", CrossesMidnight: true}
	date := day(t, "2024-03-11")

	first, err := ResolveWindow(def, date, nil, SaturdayOverride{})
	require.NoError(t, err)
	second, err := ResolveWindow(def, date, nil, SaturdayOverride{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveWindowSaturdaySubstitution(t *testing.T) {
	night := Definition{Code: "NIGHT", StartTime: "21:00", EndTime: "06:00", CrossesMidnight: true, GracePeriodMinutes: 15}
	evening := Definition{Code: "EVE", StartTime: "17:00", EndTime: "01:00", CrossesMidnight: true, GracePeriodMinutes: 10}
	dir := Directory{"NIGHT": night, "EVE": evening}
	override := SaturdayOverride{ShiftCode: "NIGHT", SubstituteCode: "EVE"}

	saturday := day(t, "2024-03-16")
	require.Equal(t, time.Saturday, saturday.Weekday())

	w, err := ResolveWindow(night, saturday, dir, override)
	require.NoError(t, err)
	assert.Equal(t, "EVE", w.ShiftCode)
	assert.Equal(t, 17*60, w.StartMinute)
	assert.Equal(t, 25*60, w.EndMinute)
	assert.Equal(t, 10, w.GraceMinutes, "substitute keeps its own grace period")

	// Non-Saturday keeps the original window.
	monday := day(t, "2024-03-11")
	w, err = ResolveWindow(night, monday, dir, override)
	require.NoError(t, err)
	assert.Equal(t, "NIGHT", w.ShiftCode)

	// Other shifts are untouched on Saturday.
	w, err = ResolveWindow(evening, saturday, dir, override)
	require.NoError(t, err)
	assert.Equal(t, "EVE", w.ShiftCode)
}

func TestResolveWindowSaturdaySubstituteMissing(t *testing.T) {
	night := Definition{Code: "NIGHT", StartTime: "21:00", EndTime: "06:00", CrossesMidnight: true}
	override := SaturdayOverride{ShiftCode: "NIGHT", SubstituteCode: "EVE"}

	_, err := ResolveWindow(night, day(t, "2024-03-16"), Directory{"NIGHT": night}, override)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestResolveWindowInvalidTimes(t *testing.T) {
	cases := []Definition{
		{Code: "X", StartTime: "", EndTime: "17:00"},
		{Code: "X", StartTime: "09:00", EndTime: ""},
		{Code: "X", StartTime: "25:00", EndTime: "17:00"},
		{Code: "X", StartTime: "09:61", EndTime: "17:00"},
		{Code: "X", StartTime: "nine", EndTime: "17:00"},
	}
	for _, def := range cases {
		_, err := ResolveWindow(def, day(t, "2024-03-11"), nil, SaturdayOverride{})
		assert.ErrorIs(t, err, ErrShiftNotFound, "definition %+v", def)
	}
}

func TestGraceMinutesDefault(t *testing.T) {
	assert.Equal(t, DefaultGracePeriodMinutes, Definition{}.GraceMinutes())
	assert.Equal(t, 30, Definition{GracePeriodMinutes: 30}.GraceMinutes())
}
