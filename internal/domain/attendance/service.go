package attendance

import (
	"context"
	"time"
)

// Service defines business logic for attendance adjudication.
type Service interface {
	// RecomputeMonth re-adjudicates every day of the month for one employee
	// and persists the superseding records.
	RecomputeMonth(ctx context.Context, employeeCode string, year int, month time.Month) ([]DayAdjudication, error)

	// RecomputeMonthAll re-adjudicates the month for every active employee.
	// One employee's bad data never fails the batch; failures are recorded
	// per employee in the result.
	RecomputeMonthAll(ctx context.Context, year int, month time.Month) (BatchResult, error)

	// ListMonth retrieves the stored day records for an employee's month.
	ListMonth(ctx context.Context, employeeCode string, year int, month time.Month) ([]DayAdjudication, error)

	// OverrideDay records a manual status/excuse/check-time correction and
	// re-adjudicates the affected day.
	OverrideDay(ctx context.Context, req OverrideDayRequest) (DayAdjudication, error)
}
