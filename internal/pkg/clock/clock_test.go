package clock

import (
	"testing"
	"time"
)

var karachi = time.FixedZone("PKT", 5*3600)

func TestLocalDate(t *testing.T) {
	c := New(karachi)

	// 21:30 UTC on Jan 1 is 02:30 local on Jan 2.
	instant := time.Date(2024, 1, 1, 21, 30, 0, 0, time.UTC)
	got := c.LocalDate(instant)
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, karachi)
	if !got.Equal(want) {
		t.Errorf("LocalDate(%v) = %v, want %v", instant, got, want)
	}
}

func TestMinuteOfDay(t *testing.T) {
	c := New(karachi)
	cases := []struct {
		instant time.Time
		want    int
	}{
		{time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC), 21 * 60},    // 21:00 local
		{time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC), 6 * 60},      // 06:00 local
		{time.Date(2024, 1, 1, 19, 0, 0, 0, karachi), 19 * 60},     // already local
		{time.Date(2024, 1, 1, 0, 0, 59, 0, karachi), 0},           // seconds ignored
		{time.Date(2024, 1, 1, 23, 59, 0, 0, karachi), 23*60 + 59}, // end of day
	}
	for _, tc := range cases {
		if got := c.MinuteOfDay(tc.instant); got != tc.want {
			t.Errorf("MinuteOfDay(%v) = %d, want %d", tc.instant, got, tc.want)
		}
	}
}

func TestAtRollsIntoNextDay(t *testing.T) {
	c := New(karachi)
	date := c.Date(2024, time.March, 10)

	// 1800 minutes = 06:00 the following morning.
	got := c.At(date, 1800)
	want := time.Date(2024, 3, 11, 6, 0, 0, 0, karachi)
	if !got.Equal(want) {
		t.Errorf("At(%v, 1800) = %v, want %v", date, got, want)
	}
}

func TestBusinessToday(t *testing.T) {
	c := New(karachi)
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		// Before the 08:55 rollover the previous date is still "today".
		{time.Date(2024, 5, 12, 8, 54, 0, 0, karachi), c.Date(2024, time.May, 11)},
		{time.Date(2024, 5, 12, 8, 55, 0, 0, karachi), c.Date(2024, time.May, 12)},
		{time.Date(2024, 5, 12, 23, 0, 0, 0, karachi), c.Date(2024, time.May, 12)},
		{time.Date(2024, 5, 12, 0, 5, 0, 0, karachi), c.Date(2024, time.May, 11)},
	}
	for _, tc := range cases {
		if got := c.BusinessToday(tc.now); !got.Equal(tc.want) {
			t.Errorf("BusinessToday(%v) = %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestIsFutureDay(t *testing.T) {
	c := New(karachi)
	now := time.Date(2024, 5, 12, 7, 0, 0, 0, karachi) // business today = May 11

	if c.IsFutureDay(c.Date(2024, time.May, 11), now) {
		t.Error("May 11 should not be future")
	}
	if !c.IsFutureDay(c.Date(2024, time.May, 12), now) {
		t.Error("May 12 should be future before the rollover")
	}
	if !c.IsFutureDay(c.Date(2024, time.June, 1), now) {
		t.Error("June 1 should be future")
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestQuarterOf(t *testing.T) {
	wants := map[time.Month]int{
		time.January: 1, time.March: 1,
		time.April: 2, time.June: 2,
		time.July: 3, time.September: 3,
		time.October: 4, time.December: 4,
	}
	for month, want := range wants {
		if got := QuarterOf(month); got != want {
			t.Errorf("QuarterOf(%v) = %d, want %d", month, got, want)
		}
	}
}
