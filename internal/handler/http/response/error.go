package response

import (
	"errors"
	"net/http"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/attendance"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/employee"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/leave"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/payroll"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/shift"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Policy violations carry the offending quarter and cap in the message.
	var quotaErr *leave.QuotaExceededError
	if errors.As(err, &quotaErr) {
		BadRequest(w, quotaErr.Error(), nil)
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrDayRecordNotFound):
		NotFound(w, "Day record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrDuplicateLeave):
		Conflict(w, "Leave already granted for this date")
	case errors.Is(err, leave.ErrInconsistentLedger):
		Conflict(w, "Leave ledger inconsistent; run reconciliation")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrNoActiveRules):
		NotFound(w, "No active violation rules configured")
	case errors.Is(err, payroll.ErrRulesNotFound):
		NotFound(w, "Violation rules not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
