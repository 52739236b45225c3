package attendance

import (
	"strings"
	"time"
)

// PunchEvent is a single device scan. The engine never writes these; it only
// derives check-in (earliest valid) and check-out (latest valid) per
// business day.
type PunchEvent struct {
	ID           string
	EmployeeCode string
	Instant      time.Time
	OutcomeValid bool
}

// DayStatus is the closed set of day classifications. Legacy records carry
// free-form variants ("Paid Leave", "paid leave"); ParseStatus normalizes
// them once at the data-entry boundary.
type DayStatus string

const (
	StatusPresent            DayStatus = "present"
	StatusAbsent             DayStatus = "absent"
	StatusHoliday            DayStatus = "holiday"
	StatusPaidLeave          DayStatus = "paid_leave"
	StatusUnpaidLeave        DayStatus = "unpaid_leave"
	StatusSickLeave          DayStatus = "sick_leave"
	StatusHalfDay            DayStatus = "half_day"
	StatusLeaveWithoutInform DayStatus = "leave_without_inform"
	StatusWorkFromHome       DayStatus = "work_from_home"

	// StatusNone marks future days, which carry no classification yet.
	StatusNone DayStatus = ""
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHoliday),
	string(StatusPaidLeave),
	string(StatusUnpaidLeave),
	string(StatusSickLeave),
	string(StatusHalfDay),
	string(StatusLeaveWithoutInform),
	string(StatusWorkFromHome),
}

// ParseStatus maps any legacy spelling onto the closed enum. The second
// return is false for unknown values.
func ParseStatus(s string) (DayStatus, bool) {
	key := strings.ToLower(s)
	for _, cut := range []string{" ", "_", "-"} {
		key = strings.ReplaceAll(key, cut, "")
	}
	switch key {
	case "present":
		return StatusPresent, true
	case "absent":
		return StatusAbsent, true
	case "holiday", "weeklyoff", "off":
		return StatusHoliday, true
	case "paidleave", "pl":
		return StatusPaidLeave, true
	case "unpaidleave", "leavewithoutpay", "lwp":
		return StatusUnpaidLeave, true
	case "sickleave", "sl":
		return StatusSickLeave, true
	case "halfday", "hd":
		return StatusHalfDay, true
	case "leavewithoutinform", "uninformedleave", "lwi":
		return StatusLeaveWithoutInform, true
	case "workfromhome", "wfh":
		return StatusWorkFromHome, true
	}
	return StatusNone, false
}

// IsManualLeave reports whether the status is one HR places on a day by
// hand. A day carrying one of these is preserved verbatim and never
// evaluated for lateness or early departure.
func (s DayStatus) IsManualLeave() bool {
	switch s {
	case StatusHoliday, StatusPaidLeave, StatusUnpaidLeave, StatusSickLeave,
		StatusHalfDay, StatusLeaveWithoutInform, StatusWorkFromHome:
		return true
	}
	return false
}

// IsLeaveType reports whether the status classifies the day as some form of
// leave, which keeps it out of the absence bucket.
func (s DayStatus) IsLeaveType() bool {
	switch s {
	case StatusPaidLeave, StatusUnpaidLeave, StatusSickLeave, StatusHalfDay, StatusLeaveWithoutInform:
		return true
	}
	return false
}

// DayAdjudication is the derived record for one employee on one calendar
// date. Recomputes supersede prior records wholesale, never merge.
type DayAdjudication struct {
	EmployeeCode      string
	Date              time.Time
	ResolvedShiftCode string
	Status            DayStatus
	CheckIn           *time.Time
	CheckOut          *time.Time
	Late              bool
	EarlyLeave        bool
	LateMinutes       int
	EarlyMinutes      int
	LateExcused       bool
	EarlyExcused      bool
	// OffDay marks a weekly-off date so downstream deduction logic knows
	// attendance on it was voluntary.
	OffDay      bool
	IsFutureDay bool
}

// UnexcusedViolationMinutes sums the minutes beyond grace that count toward
// the monthly escalation schedule. Excused violations contribute nothing.
func (d DayAdjudication) UnexcusedViolationMinutes() int {
	minutes := 0
	if d.Late && !d.LateExcused {
		minutes += d.LateMinutes
	}
	if d.EarlyLeave && !d.EarlyExcused {
		minutes += d.EarlyMinutes
	}
	return minutes
}

// HasUnexcusedViolation reports whether the day enters the monthly
// violation count.
func (d DayAdjudication) HasUnexcusedViolation() bool {
	return d.UnexcusedViolationMinutes() > 0
}

// DayOverride is the manual record HR places on a day: a status, excuse
// flags, or explicit check-in/out corrections. Override values always win
// over punch-derived ones.
type DayOverride struct {
	ID           string
	EmployeeCode string
	Date         time.Time
	Status       *DayStatus
	Reason       *string
	LateExcused  *bool
	EarlyExcused *bool
	// Excused is the legacy combined flag kept for records written before
	// the split into per-side excuses.
	Excused  *bool
	CheckIn  *time.Time
	CheckOut *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
