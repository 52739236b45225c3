package attendance

import (
	"time"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/shift"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/clock"
)

// Re-anchoring cutoffs for midnight-crossing shifts, in company-local
// minutes. A check-in before 06:00 belongs to the previous day's shift; a
// check-out before 08:00 likewise.
const (
	checkInReanchorBefore  = 6 * 60
	checkOutReanchorBefore = 8 * 60
)

// Punches within this span are one scan double-read by the device, so the
// later one cannot be a real check-out.
const sameScanTolerance = 60 * time.Second

// DayInput carries everything needed to adjudicate one employee's day. The
// caller resolves the shift window, fetches punches for the business-day
// span (shift start through the following morning) and looks up any manual
// override; weekend-off status is computed externally too.
type DayInput struct {
	EmployeeCode string
	Date         time.Time // business day anchor, company-local midnight
	Window       *shift.Window
	Punches      []PunchEvent
	Override     *DayOverride
	OffDay       bool
	Future       bool
}

// Adjudicate derives the day record for one employee and one date. Pure and
// idempotent: the same inputs always produce the same record.
//
// When Window is nil the shift could not be resolved; the day proceeds in
// degraded mode with Present/Absent inferred from punches alone and no
// late/early evaluation.
func Adjudicate(clk clock.Clock, in DayInput) DayAdjudication {
	day := DayAdjudication{
		EmployeeCode: in.EmployeeCode,
		Date:         in.Date,
		OffDay:       in.OffDay,
	}
	if in.Window != nil {
		day.ResolvedShiftCode = in.Window.ShiftCode
	}

	if in.Future {
		day.IsFutureDay = true
		return day
	}

	checkIn, checkOut, doubleScan := selectPunchPair(in.Punches)

	// Explicit HR corrections win over device scans.
	if in.Override != nil {
		if in.Override.CheckIn != nil {
			checkIn = in.Override.CheckIn
			doubleScan = false
		}
		if in.Override.CheckOut != nil {
			checkOut = in.Override.CheckOut
			doubleScan = false
		}
	}
	day.CheckIn = checkIn
	day.CheckOut = checkOut

	// Manual status on record is preserved verbatim; late/early evaluation
	// is skipped entirely, so a Holiday or leave day never carries flags.
	if in.Override != nil && in.Override.Status != nil && in.Override.Status.IsManualLeave() {
		day.Status = *in.Override.Status
		return day
	}

	switch {
	case checkIn == nil && checkOut == nil && in.OffDay:
		day.Status = StatusHoliday
		return day
	case checkIn == nil && checkOut == nil:
		day.Status = StatusAbsent
		return day
	default:
		day.Status = StatusPresent
	}

	if in.OffDay {
		// Attendance on an off day is voluntary; there is no window to be
		// late against.
		return day
	}

	if in.Window == nil {
		// Degraded mode: no window, no violation evaluation.
		return day
	}
	if doubleScan {
		// One scan double-read by the device tells us nothing about
		// arrival or departure; the day only feeds the missing-punch path.
		return day
	}

	grace := in.Window.GraceMinutes
	if checkIn != nil {
		inMinute := anchoredMinute(clk, *checkIn, in.Window.CrossesMidnight, checkInReanchorBefore)
		lateTotal := inMinute - in.Window.StartMinute
		if lateTotal > grace {
			day.Late = true
			day.LateMinutes = lateTotal - grace
		}
	}
	if checkOut != nil {
		outMinute := anchoredMinute(clk, *checkOut, in.Window.CrossesMidnight, checkOutReanchorBefore)
		earlyTotal := in.Window.EndMinute - outMinute
		if earlyTotal > grace {
			day.EarlyLeave = true
			day.EarlyMinutes = earlyTotal - grace
		}
	}

	day.LateExcused, day.EarlyExcused = excuseFlags(in.Override)
	return day
}

// selectPunchPair picks the earliest and latest valid scans. A pair within
// the same-scan tolerance is a device double-read: keep the check-in, drop
// the check-out, and report the day as a double scan.
func selectPunchPair(punches []PunchEvent) (checkIn, checkOut *time.Time, doubleScan bool) {
	for i := range punches {
		p := punches[i]
		if !p.OutcomeValid {
			continue
		}
		t := p.Instant
		if checkIn == nil || t.Before(*checkIn) {
			in := t
			checkIn = &in
		}
		if checkOut == nil || t.After(*checkOut) {
			out := t
			checkOut = &out
		}
	}
	if checkIn != nil && checkOut != nil {
		if checkOut.Sub(*checkIn) < sameScanTolerance {
			checkOut = nil
			doubleScan = true
		}
	}
	return checkIn, checkOut, doubleScan
}

// anchoredMinute converts an instant into minutes relative to the business
// day anchor. Early-morning scans on midnight-crossing shifts belong to the
// previous day's shift and are pushed past 1440.
func anchoredMinute(clk clock.Clock, instant time.Time, crossesMidnight bool, reanchorBefore int) int {
	minute := clk.MinuteOfDay(instant)
	if crossesMidnight && minute < reanchorBefore {
		minute += 24 * 60
	}
	return minute
}

// excuseFlags reads the per-side excuse flags from the override record,
// falling back to the legacy combined flag for records written before the
// split.
func excuseFlags(override *DayOverride) (lateExcused, earlyExcused bool) {
	if override == nil {
		return false, false
	}
	legacy := override.Excused != nil && *override.Excused
	lateExcused = legacy
	earlyExcused = legacy
	if override.LateExcused != nil {
		lateExcused = *override.LateExcused
	}
	if override.EarlyExcused != nil {
		earlyExcused = *override.EarlyExcused
	}
	return lateExcused, earlyExcused
}
