package leave

import (
	"errors"
	"fmt"
)

// Leave domain errors
var (
	ErrLeaveNotFound      = errors.New("leave record not found")
	ErrDuplicateLeave     = errors.New("leave already granted for this date")
	ErrInconsistentLedger = errors.New("leave ledger inconsistent")
)

// QuotaExceededError rejects a grant that would push a quarter past its
// effective cap. It names the quarter and the cap so the caller can display
// the policy that was hit.
type QuotaExceededError struct {
	EmployeeCode string
	Year         int
	Quarter      int
	Cap          int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("leave quota exceeded for employee %s in %d Q%d: cap %d reached",
		e.EmployeeCode, e.Year, e.Quarter, e.Cap)
}

// IsQuotaExceeded reports whether err is a quota rejection.
func IsQuotaExceeded(err error) bool {
	var qe *QuotaExceededError
	return errors.As(err, &qe)
}
