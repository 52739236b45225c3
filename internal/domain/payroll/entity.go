package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/attendance"
)

// ViolationRulesConfig is one version of the deduction schedule. Exactly one
// version is active at a time; activating a new one deactivates the previous
// version in the same transaction.
type ViolationRulesConfig struct {
	ID string

	// Escalation schedule.
	FreeViolations    int             // first N violations per month are free
	MilestoneInterval int             // every Nth violation is a full deduction day
	PerMinuteRate     decimal.Decimal // deduction days per violation minute
	MaxPerMinuteFine  decimal.Decimal // cap per violation, in days

	// Day-equivalents for the aggregator.
	AbsentDayWeight          decimal.Decimal
	UninformedLeaveDayWeight decimal.Decimal
	UnpaidLeaveDayWeight     decimal.Decimal
	SickLeaveDayWeight       decimal.Decimal
	HalfDayWeight            decimal.Decimal

	// DaysPerMonth is the legacy fixed divisor. Payroll conversion uses the
	// actual calendar month length; this is kept so old config versions
	// round-trip unchanged.
	DaysPerMonth int

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultRules returns the company's baseline schedule.
func DefaultRules() ViolationRulesConfig {
	return ViolationRulesConfig{
		FreeViolations:           2,
		MilestoneInterval:        3,
		PerMinuteRate:            decimal.NewFromFloat(0.007),
		MaxPerMinuteFine:         decimal.NewFromInt(1),
		AbsentDayWeight:          decimal.NewFromInt(1),
		UninformedLeaveDayWeight: decimal.NewFromFloat(1.5),
		UnpaidLeaveDayWeight:     decimal.NewFromInt(1),
		SickLeaveDayWeight:       decimal.NewFromInt(1),
		HalfDayWeight:            decimal.NewFromFloat(0.5),
		DaysPerMonth:             30,
	}
}

// ViolationDay is one unexcused violation feeding the escalation schedule:
// the date and the minutes beyond grace (late + early summed). Each date
// contributes at most one record.
type ViolationDay struct {
	Date    time.Time
	Minutes int
}

// EscalationResult is the outcome of walking a month's violations.
type EscalationResult struct {
	Count         int             // violations considered
	MilestoneDays int             // full days from milestone violations
	FineDays      decimal.Decimal // per-minute fines, in days
	TotalDays     decimal.Decimal // milestone + fines; deliberately uncapped
}

// MonthlySummary is the derived payroll view for one employee and month.
// Never stored as source of truth; recomputed on demand from day records,
// the active rules and the employee's salary.
type MonthlySummary struct {
	EmployeeCode string
	Year         int
	Month        time.Month

	LateCount       int
	EarlyCount      int
	ViolationDays   decimal.Decimal
	UnpaidLeaveDays decimal.Decimal
	AbsentDays      decimal.Decimal
	HalfDays        decimal.Decimal

	SalaryDeductDays   decimal.Decimal
	GrossSalary        decimal.Decimal
	SalaryDeductAmount decimal.Decimal
	NetSalary          decimal.Decimal

	Days []attendance.DayAdjudication
}
