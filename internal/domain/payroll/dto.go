package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/attendance"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/validator"
)

// ========== RULES DTOs ==========

type ActivateRulesRequest struct {
	FreeViolations           *int             `json:"free_violations,omitempty"`
	MilestoneInterval        *int             `json:"milestone_interval,omitempty"`
	PerMinuteRate            *decimal.Decimal `json:"per_minute_rate,omitempty"`
	MaxPerMinuteFine         *decimal.Decimal `json:"max_per_minute_fine,omitempty"`
	AbsentDayWeight          *decimal.Decimal `json:"absent_day_weight,omitempty"`
	UninformedLeaveDayWeight *decimal.Decimal `json:"uninformed_leave_day_weight,omitempty"`
	UnpaidLeaveDayWeight     *decimal.Decimal `json:"unpaid_leave_day_weight,omitempty"`
	SickLeaveDayWeight       *decimal.Decimal `json:"sick_leave_day_weight,omitempty"`
	HalfDayWeight            *decimal.Decimal `json:"half_day_weight,omitempty"`
	DaysPerMonth             *int             `json:"days_per_month,omitempty"`
}

func (r *ActivateRulesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FreeViolations != nil && *r.FreeViolations < 0 {
		errs = append(errs, validator.ValidationError{Field: "free_violations", Message: "must be non-negative"})
	}
	if r.MilestoneInterval != nil && *r.MilestoneInterval < 1 {
		errs = append(errs, validator.ValidationError{Field: "milestone_interval", Message: "must be at least 1"})
	}
	for field, value := range map[string]*decimal.Decimal{
		"per_minute_rate":             r.PerMinuteRate,
		"max_per_minute_fine":         r.MaxPerMinuteFine,
		"absent_day_weight":           r.AbsentDayWeight,
		"uninformed_leave_day_weight": r.UninformedLeaveDayWeight,
		"unpaid_leave_day_weight":     r.UnpaidLeaveDayWeight,
		"sick_leave_day_weight":       r.SickLeaveDayWeight,
		"half_day_weight":             r.HalfDayWeight,
	} {
		if value != nil && value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}
	if r.DaysPerMonth != nil && (*r.DaysPerMonth < 28 || *r.DaysPerMonth > 31) {
		errs = append(errs, validator.ValidationError{Field: "days_per_month", Message: "must be between 28 and 31"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply lays the request over the baseline defaults, producing the config
// version to activate. Unset fields keep their defaults, so a partial
// request is a complete schedule.
func (r *ActivateRulesRequest) Apply() ViolationRulesConfig {
	cfg := DefaultRules()
	if r.FreeViolations != nil {
		cfg.FreeViolations = *r.FreeViolations
	}
	if r.MilestoneInterval != nil {
		cfg.MilestoneInterval = *r.MilestoneInterval
	}
	if r.PerMinuteRate != nil {
		cfg.PerMinuteRate = *r.PerMinuteRate
	}
	if r.MaxPerMinuteFine != nil {
		cfg.MaxPerMinuteFine = *r.MaxPerMinuteFine
	}
	if r.AbsentDayWeight != nil {
		cfg.AbsentDayWeight = *r.AbsentDayWeight
	}
	if r.UninformedLeaveDayWeight != nil {
		cfg.UninformedLeaveDayWeight = *r.UninformedLeaveDayWeight
	}
	if r.UnpaidLeaveDayWeight != nil {
		cfg.UnpaidLeaveDayWeight = *r.UnpaidLeaveDayWeight
	}
	if r.SickLeaveDayWeight != nil {
		cfg.SickLeaveDayWeight = *r.SickLeaveDayWeight
	} else if r.UnpaidLeaveDayWeight != nil {
		// Sick leave follows the unpaid-leave weight unless set explicitly.
		cfg.SickLeaveDayWeight = *r.UnpaidLeaveDayWeight
	}
	if r.HalfDayWeight != nil {
		cfg.HalfDayWeight = *r.HalfDayWeight
	}
	if r.DaysPerMonth != nil {
		cfg.DaysPerMonth = *r.DaysPerMonth
	}
	return cfg
}

type RulesResponse struct {
	ID                       string          `json:"id"`
	FreeViolations           int             `json:"free_violations"`
	MilestoneInterval        int             `json:"milestone_interval"`
	PerMinuteRate            decimal.Decimal `json:"per_minute_rate"`
	MaxPerMinuteFine         decimal.Decimal `json:"max_per_minute_fine"`
	AbsentDayWeight          decimal.Decimal `json:"absent_day_weight"`
	UninformedLeaveDayWeight decimal.Decimal `json:"uninformed_leave_day_weight"`
	UnpaidLeaveDayWeight     decimal.Decimal `json:"unpaid_leave_day_weight"`
	SickLeaveDayWeight       decimal.Decimal `json:"sick_leave_day_weight"`
	HalfDayWeight            decimal.Decimal `json:"half_day_weight"`
	DaysPerMonth             int             `json:"days_per_month"`
	Active                   bool            `json:"active"`
}

func NewRulesResponse(cfg ViolationRulesConfig) RulesResponse {
	return RulesResponse{
		ID:                       cfg.ID,
		FreeViolations:           cfg.FreeViolations,
		MilestoneInterval:        cfg.MilestoneInterval,
		PerMinuteRate:            cfg.PerMinuteRate,
		MaxPerMinuteFine:         cfg.MaxPerMinuteFine,
		AbsentDayWeight:          cfg.AbsentDayWeight,
		UninformedLeaveDayWeight: cfg.UninformedLeaveDayWeight,
		UnpaidLeaveDayWeight:     cfg.UnpaidLeaveDayWeight,
		SickLeaveDayWeight:       cfg.SickLeaveDayWeight,
		HalfDayWeight:            cfg.HalfDayWeight,
		DaysPerMonth:             cfg.DaysPerMonth,
		Active:                   cfg.Active,
	}
}

// ========== SUMMARY DTOs ==========

type SummaryResponse struct {
	EmployeeCode       string                         `json:"employee_code"`
	Month              string                         `json:"month"`
	LateCount          int                            `json:"late_count"`
	EarlyCount         int                            `json:"early_count"`
	ViolationDays      decimal.Decimal                `json:"violation_days"`
	UnpaidLeaveDays    decimal.Decimal                `json:"unpaid_leave_days"`
	AbsentDays         decimal.Decimal                `json:"absent_days"`
	HalfDays           decimal.Decimal                `json:"half_days"`
	SalaryDeductDays   decimal.Decimal                `json:"salary_deduct_days"`
	GrossSalary        decimal.Decimal                `json:"gross_salary"`
	SalaryDeductAmount decimal.Decimal                `json:"salary_deduct_amount"`
	NetSalary          decimal.Decimal                `json:"net_salary"`
	Days               []attendance.DayRecordResponse `json:"days"`
}

func NewSummaryResponse(s MonthlySummary) SummaryResponse {
	days := make([]attendance.DayRecordResponse, 0, len(s.Days))
	for _, d := range s.Days {
		days = append(days, attendance.NewDayRecordResponse(d))
	}
	return SummaryResponse{
		EmployeeCode:       s.EmployeeCode,
		Month:              fmt.Sprintf("%04d-%02d", s.Year, int(s.Month)),
		LateCount:          s.LateCount,
		EarlyCount:         s.EarlyCount,
		ViolationDays:      s.ViolationDays,
		UnpaidLeaveDays:    s.UnpaidLeaveDays,
		AbsentDays:         s.AbsentDays,
		HalfDays:           s.HalfDays,
		SalaryDeductDays:   s.SalaryDeductDays,
		GrossSalary:        s.GrossSalary,
		SalaryDeductAmount: s.SalaryDeductAmount,
		NetSalary:          s.NetSalary,
		Days:               days,
	}
}
