package leave

import (
	"time"

	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/validator"
)

// ========================================
// LEAVE DTOs
// ========================================

type GrantRequest struct {
	EmployeeCode string `json:"employee_code"`
	Date         string `json:"date"` // YYYY-MM-DD
	Reason       string `json:"reason,omitempty"`
}

func (r *GrantRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must be 1-8 digits",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Date         string `json:"date"`
	Reason       string `json:"reason,omitempty"`
	CreatedAt    string `json:"created_at"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		EmployeeCode: r.EmployeeCode,
		Date:         r.Date.Format("2006-01-02"),
		Reason:       r.Reason,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}

type BalanceResponse struct {
	Year                int `json:"year"`
	Quarter             int `json:"quarter"`
	Allocated           int `json:"allocated"`
	EffectiveAllocation int `json:"effective_allocation"`
	Taken               int `json:"taken"`
	Remaining           int `json:"remaining"`
}

func NewBalanceResponse(v BalanceView) BalanceResponse {
	remaining := v.EffectiveAllocation - v.Taken
	if remaining < 0 {
		remaining = 0
	}
	return BalanceResponse{
		Year:                v.Year,
		Quarter:             v.Quarter,
		Allocated:           v.Allocated,
		EffectiveAllocation: v.EffectiveAllocation,
		Taken:               v.Taken,
		Remaining:           remaining,
	}
}

type ReconcileResponse struct {
	DuplicatesRemoved int `json:"duplicates_removed"`
	OrphansRemoved    int `json:"orphans_removed"`
	QuartersRecounted int `json:"quarters_recounted"`
}
