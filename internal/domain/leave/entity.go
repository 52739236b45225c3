package leave

import "time"

// QuarterBalance is the ledger state for one (employee, year, quarter). A
// balance comes into existence on first reference with Allocated set to the
// base per-quarter policy and Taken zero.
//
// Allocated never includes carry-in. The effective cap is always recomputed
// from the source quarter's state via EffectiveAllocation, so a revoke in Q1
// is immediately visible in Q2's headroom.
type QuarterBalance struct {
	ID           string
	EmployeeCode string
	Year         int
	Quarter      int // 1..4
	Allocated    int
	Taken        int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining is the quarter's own unspent allocation, floored at zero.
func (b QuarterBalance) Remaining() int {
	if r := b.Allocated - b.Taken; r > 0 {
		return r
	}
	return 0
}

// Record is the audit entry behind one granted leave day. Uniqueness of
// (employee, date) is the idempotency boundary for grants.
type Record struct {
	ID           string
	EmployeeCode string
	Date         time.Time
	Reason       string

	CreatedAt time.Time
}

// BalanceView pairs a quarter balance with its recomputed effective cap for
// presentation.
type BalanceView struct {
	QuarterBalance
	EffectiveAllocation int
}

// ReconcileReport summarizes one ledger cleanup pass.
type ReconcileReport struct {
	DuplicatesRemoved int
	OrphansRemoved    int
	QuartersRecounted int
}
