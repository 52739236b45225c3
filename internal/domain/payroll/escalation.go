package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CalculateEscalation converts a month's unexcused violations into deduction
// days using the milestone/per-minute hybrid schedule:
//
//   - violations numbered up to FreeViolations carry no penalty;
//   - each violation whose number is an exact multiple of MilestoneInterval
//     (past the free quota) costs one full day regardless of minutes;
//   - every other violation past the quota costs
//     min(minutes x PerMinuteRate, MaxPerMinuteFine) days.
//
// The grand total is deliberately uncapped; a bad enough month may exceed
// the days in it. Ordering is ascending by date, which makes the numbering,
// and therefore the result, deterministic.
func CalculateEscalation(cfg ViolationRulesConfig, violations []ViolationDay) EscalationResult {
	ordered := make([]ViolationDay, len(violations))
	copy(ordered, violations)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	result := EscalationResult{
		Count:     len(ordered),
		FineDays:  decimal.Zero,
		TotalDays: decimal.Zero,
	}

	for i, v := range ordered {
		number := i + 1
		if number <= cfg.FreeViolations {
			continue
		}
		if cfg.MilestoneInterval > 0 && number%cfg.MilestoneInterval == 0 {
			result.MilestoneDays++
			continue
		}
		fine := cfg.PerMinuteRate.Mul(decimal.NewFromInt(int64(v.Minutes)))
		if fine.GreaterThan(cfg.MaxPerMinuteFine) {
			fine = cfg.MaxPerMinuteFine
		}
		result.FineDays = result.FineDays.Add(fine)
	}

	result.TotalDays = result.FineDays.Add(decimal.NewFromInt(int64(result.MilestoneDays)))
	return result
}
