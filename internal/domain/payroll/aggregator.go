package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/attendance"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/clock"
)

// CollectViolations extracts the escalation input from a month's day
// records: one entry per day with an unexcused late or early violation,
// carrying the summed minutes beyond grace. Future days contribute nothing.
func CollectViolations(days []attendance.DayAdjudication) []ViolationDay {
	var violations []ViolationDay
	for _, d := range days {
		if d.IsFutureDay {
			continue
		}
		if minutes := d.UnexcusedViolationMinutes(); minutes > 0 {
			violations = append(violations, ViolationDay{Date: d.Date, Minutes: minutes})
		}
	}
	return violations
}

// Aggregate combines a month's day records, the escalation outcome and the
// employee's gross salary into the payroll summary.
//
// Bucketing: Absent days, Present days missing a punch, and uninformed
// leave feed the absence bucket (uninformed leave at its higher weight);
// unpaid and sick leave feed the unpaid bucket; half days at half weight;
// paid leave, work-from-home and holidays deduct nothing.
//
// Conversion uses the actual calendar month length, and neither the
// deduction amount nor the net salary is clamped.
func Aggregate(
	cfg ViolationRulesConfig,
	days []attendance.DayAdjudication,
	escalation EscalationResult,
	employeeCode string,
	grossSalary decimal.Decimal,
	year int,
	month time.Month,
) MonthlySummary {
	summary := MonthlySummary{
		EmployeeCode:    employeeCode,
		Year:            year,
		Month:           month,
		ViolationDays:   escalation.TotalDays,
		UnpaidLeaveDays: decimal.Zero,
		AbsentDays:      decimal.Zero,
		HalfDays:        decimal.Zero,
		GrossSalary:     grossSalary,
		Days:            days,
	}

	for _, d := range days {
		if d.IsFutureDay {
			continue
		}
		if d.Late {
			summary.LateCount++
		}
		if d.EarlyLeave {
			summary.EarlyCount++
		}

		switch d.Status {
		case attendance.StatusAbsent:
			summary.AbsentDays = summary.AbsentDays.Add(cfg.AbsentDayWeight)
		case attendance.StatusLeaveWithoutInform:
			summary.AbsentDays = summary.AbsentDays.Add(cfg.UninformedLeaveDayWeight)
		case attendance.StatusUnpaidLeave:
			summary.UnpaidLeaveDays = summary.UnpaidLeaveDays.Add(cfg.UnpaidLeaveDayWeight)
		case attendance.StatusSickLeave:
			summary.UnpaidLeaveDays = summary.UnpaidLeaveDays.Add(cfg.SickLeaveDayWeight)
		case attendance.StatusHalfDay:
			summary.HalfDays = summary.HalfDays.Add(cfg.HalfDayWeight)
		case attendance.StatusPresent:
			// A present day with a missing scan still costs a day: the
			// record cannot prove the hours were worked. An off day is
			// exempt; nobody owed hours on it.
			if !d.OffDay && (d.CheckIn == nil || d.CheckOut == nil) {
				summary.AbsentDays = summary.AbsentDays.Add(cfg.AbsentDayWeight)
			}
		}
	}

	summary.SalaryDeductDays = summary.ViolationDays.
		Add(summary.UnpaidLeaveDays).
		Add(summary.AbsentDays).
		Add(summary.HalfDays).
		Round(3)

	daysInMonth := decimal.NewFromInt(int64(clock.DaysInMonth(year, month)))
	perDay := grossSalary.Div(daysInMonth)
	summary.SalaryDeductAmount = perDay.Mul(summary.SalaryDeductDays).Round(2)
	summary.NetSalary = grossSalary.Sub(summary.SalaryDeductAmount)

	return summary
}
