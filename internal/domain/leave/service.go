package leave

import (
	"context"
	"time"
)

// Service defines business logic for the leave quarter ledger.
type Service interface {
	// Grant books one paid-leave day. It derives (year, quarter) from the
	// date, checks the quarter's effective cap including carry-forward, and
	// appends the audit record. Duplicate grants for the same (employee,
	// date) are rejected.
	Grant(ctx context.Context, req GrantRequest) (Record, error)

	// Revoke removes the audit record for (employee, date) and restores the
	// quarter's taken count.
	Revoke(ctx context.Context, employeeCode string, date time.Time) error

	// Balances lists an employee's quarter balances for a year with their
	// effective allocations recomputed.
	Balances(ctx context.Context, employeeCode string, year int) ([]BalanceView, error)

	// Reconcile runs the ledger hygiene pass for an employee's year: drops
	// duplicate audit records keeping the earliest, drops orphans with no
	// approved-leave day behind them, then recounts every quarter's taken
	// from the surviving records.
	Reconcile(ctx context.Context, employeeCode string, year int) (ReconcileReport, error)
}
