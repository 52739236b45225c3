package payroll

import (
	"context"
	"time"
)

// Service defines business logic for payroll deduction summaries.
type Service interface {
	// MonthlySummary recomputes the payroll view for one employee's month.
	MonthlySummary(ctx context.Context, employeeCode string, year int, month time.Month) (MonthlySummary, error)

	// MonthlySummaryAll recomputes the month for every active employee in
	// parallel. Per-employee failures are recorded, never fatal to the
	// batch.
	MonthlySummaryAll(ctx context.Context, year int, month time.Month) (BatchSummaries, error)

	// ActiveRules retrieves the active violation rules config.
	ActiveRules(ctx context.Context) (ViolationRulesConfig, error)

	// ActivateRules installs a new rules version, deactivating the old one.
	ActivateRules(ctx context.Context, req ActivateRulesRequest) (ViolationRulesConfig, error)
}

// BatchSummaries is the all-employee result; failures keyed by employee.
type BatchSummaries struct {
	Summaries []MonthlySummary  `json:"summaries"`
	Failed    map[string]string `json:"failed,omitempty"`
}
