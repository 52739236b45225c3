package leave

import (
	"context"
	"time"
)

// LedgerRepository persists quarter balances and the audit records behind
// them. Implementations must serialize mutations per (employee, year,
// quarter); a row lock on the balance is the expected mechanism.
type LedgerRepository interface {
	// GetOrCreateBalance retrieves the balance for (employee, year, quarter),
	// creating it with the given base allocation on first reference. When
	// forUpdate is true the row is locked for the duration of the enclosing
	// transaction.
	GetOrCreateBalance(ctx context.Context, employeeCode string, year, quarter, baseAllocation int, forUpdate bool) (QuarterBalance, error)

	// GetBalance retrieves the balance without creating it; nil when the
	// quarter was never referenced.
	GetBalance(ctx context.Context, employeeCode string, year, quarter int) (*QuarterBalance, error)

	// ListBalancesForYear retrieves all of an employee's balances for a year,
	// ascending by quarter.
	ListBalancesForYear(ctx context.Context, employeeCode string, year int) ([]QuarterBalance, error)

	// SetTaken updates the taken count on a balance.
	SetTaken(ctx context.Context, balanceID string, taken int) error

	// CreateRecord appends the audit record for a granted day. Returns
	// ErrDuplicateLeave when (employee, date) already has one.
	CreateRecord(ctx context.Context, record Record) (Record, error)

	// GetRecord retrieves the audit record for (employee, date), nil when
	// none exists.
	GetRecord(ctx context.Context, employeeCode string, date time.Time) (*Record, error)

	// DeleteRecord removes an audit record by id.
	DeleteRecord(ctx context.Context, id string) error

	// ListRecordsForQuarter retrieves all audit records whose date falls in
	// (employee, year, quarter), ascending by date then creation time.
	ListRecordsForQuarter(ctx context.Context, employeeCode string, year, quarter int) ([]Record, error)

	// WithinTx runs fn inside one transaction so a balance lock, the taken
	// update and the audit write commit or roll back together.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
