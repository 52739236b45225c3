package clock

import (
	"time"
)

// Business-day rollover. Overnight shifts check out by the early morning, so a
// calendar date is only considered complete once the company clock passes 08:55.
const (
	DayRolloverHour   = 8
	DayRolloverMinute = 55
)

// Clock converts absolute instants into company-local dates and minutes-of-day.
// All shift-window and day-boundary arithmetic goes through this type; nothing
// else in the engine derives timezone offsets on its own.
type Clock struct {
	loc *time.Location
}

func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{loc: loc}
}

func (c Clock) Location() *time.Location {
	return c.loc
}

// LocalDate returns the company-local calendar date of an instant,
// truncated to midnight in the company timezone.
func (c Clock) LocalDate(instant time.Time) time.Time {
	local := instant.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}

// MinuteOfDay returns the company-local minute of the calendar day (0..1439).
func (c Clock) MinuteOfDay(instant time.Time) int {
	local := instant.In(c.loc)
	return local.Hour()*60 + local.Minute()
}

// Date builds a company-local midnight instant for the given calendar day.
func (c Clock) Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, c.loc)
}

// At returns the instant at the given minute of the given company-local date.
// Minutes beyond 1439 roll into the following day, which is how re-anchored
// overnight checkouts map back to absolute time.
func (c Clock) At(date time.Time, minuteOfDay int) time.Time {
	d := c.LocalDate(date)
	return d.Add(time.Duration(minuteOfDay) * time.Minute)
}

// BusinessToday returns the most recent calendar date that is considered
// complete at the given instant. Before the 08:55 rollover the previous
// date is still "today", since its overnight shift may still be closing.
func (c Clock) BusinessToday(now time.Time) time.Time {
	local := now.In(c.loc)
	cutoff := time.Duration(DayRolloverHour)*time.Hour + time.Duration(DayRolloverMinute)*time.Minute
	return c.LocalDate(local.Add(-cutoff))
}

// IsFutureDay reports whether the calendar date is beyond the business today,
// i.e. must contribute nothing to attendance or deduction totals yet.
func (c Clock) IsFutureDay(date, now time.Time) bool {
	return c.LocalDate(date).After(c.BusinessToday(now))
}

// DaysInMonth returns the actual length of a calendar month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// QuarterOf maps a calendar month to its fiscal quarter (1..4).
func QuarterOf(month time.Month) int {
	return (int(month)-1)/3 + 1
}
