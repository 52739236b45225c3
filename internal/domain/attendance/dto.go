package attendance

import (
	"time"

	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecomputeRequest struct {
	EmployeeCode string `json:"employee_code,omitempty"` // empty = all active employees
	Month        string `json:"month"`                   // YYYY-MM
}

func (r *RecomputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeCode != "" && !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must be 1-8 digits",
		})
	}

	if _, _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverrideDayRequest struct {
	EmployeeCode string  `json:"-"`
	Date         string  `json:"-"` // YYYY-MM-DD, from the URL
	Status       *string `json:"status,omitempty"`
	Reason       *string `json:"reason,omitempty"`
	LateExcused  *bool   `json:"late_excused,omitempty"`
	EarlyExcused *bool   `json:"early_excused,omitempty"`
	CheckIn      *string `json:"check_in,omitempty"`  // RFC3339
	CheckOut     *string `json:"check_out,omitempty"` // RFC3339
}

func (r *OverrideDayRequest) Validate() error {
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

	if r.Status != nil {
		if _, ok := ParseStatus(*r.Status); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + joinStatuses(),
			})
		}
	}

	for field, value := range map[string]*string{"check_in": r.CheckIn, "check_out": r.CheckOut} {
		if value == nil {
			continue
		}
		if _, err := time.Parse(time.RFC3339, *value); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func joinStatuses() string {
	out := ""
	for i, s := range StatusValues {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

type DayRecordResponse struct {
	EmployeeCode      string  `json:"employee_code"`
	Date              string  `json:"date"`
	ResolvedShiftCode string  `json:"resolved_shift_code,omitempty"`
	Status            string  `json:"status,omitempty"`
	CheckIn           *string `json:"check_in,omitempty"`
	CheckOut          *string `json:"check_out,omitempty"`
	Late              bool    `json:"late"`
	EarlyLeave        bool    `json:"early_leave"`
	LateMinutes       int     `json:"late_minutes"`
	EarlyMinutes      int     `json:"early_minutes"`
	LateExcused       bool    `json:"late_excused"`
	EarlyExcused      bool    `json:"early_excused"`
	OffDay            bool    `json:"off_day"`
	IsFutureDay       bool    `json:"is_future_day"`
}

func NewDayRecordResponse(d DayAdjudication) DayRecordResponse {
	resp := DayRecordResponse{
		EmployeeCode:      d.EmployeeCode,
		Date:              d.Date.Format("2006-01-02"),
		ResolvedShiftCode: d.ResolvedShiftCode,
		Status:            string(d.Status),
		Late:              d.Late,
		EarlyLeave:        d.EarlyLeave,
		LateMinutes:       d.LateMinutes,
		EarlyMinutes:      d.EarlyMinutes,
		LateExcused:       d.LateExcused,
		EarlyExcused:      d.EarlyExcused,
		OffDay:            d.OffDay,
		IsFutureDay:       d.IsFutureDay,
	}
	if d.CheckIn != nil {
		s := d.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &s
	}
	if d.CheckOut != nil {
		s := d.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &s
	}
	return resp
}

// BatchResult reports a month recompute across employees. Failures are
// isolated per employee; the batch itself always completes.
type BatchResult struct {
	Processed int               `json:"processed"`
	Failed    map[string]string `json:"failed,omitempty"` // employee code -> error
}
