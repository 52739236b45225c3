package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the master record the engine reads: the assigned shift, the
// salary the aggregator divides, and the alternating-Saturday group deciding
// which Saturdays are off.
type Employee struct {
	ID                     string
	Code                   string
	Name                   string
	ShiftCode              string
	GrossSalary            decimal.Decimal
	AlternateSaturdayGroup int // 0 = every Saturday off, 1/2 = alternating groups
	Active                 bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaturdayOff reports whether the given Saturday is this employee's weekly
// off. Group 0 takes every Saturday; groups 1 and 2 alternate by ISO week
// parity.
func (e Employee) SaturdayOff(date time.Time) bool {
	if date.Weekday() != time.Saturday {
		return false
	}
	switch e.AlternateSaturdayGroup {
	case 1:
		_, week := date.ISOWeek()
		return week%2 == 1
	case 2:
		_, week := date.ISOWeek()
		return week%2 == 0
	}
	return true
}

// WeeklyOff reports whether date is a scheduled off day: Sunday always,
// Saturdays per the employee's group.
func (e Employee) WeeklyOff(date time.Time) bool {
	if date.Weekday() == time.Sunday {
		return true
	}
	return e.SaturdayOff(date)
}
