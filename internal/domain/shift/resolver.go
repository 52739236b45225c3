package shift

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResolveWindow turns a shift definition into the absolute minute window for
// one calendar date. Pure: no I/O, deterministic for a given (shift, date).
//
// On Saturdays the configured override rule substitutes the window of a
// different shift, looked up in the directory. The substituted window keeps
// its own grace period and midnight-crossing behavior.
func ResolveWindow(def Definition, date time.Time, dir Directory, override SaturdayOverride) (Window, error) {
	if override.enabled() && date.Weekday() == time.Saturday && def.Code == override.ShiftCode {
		sub, ok := dir[override.SubstituteCode]
		if !ok {
			return Window{}, fmt.Errorf("saturday substitute %q: %w", override.SubstituteCode, ErrShiftNotFound)
		}
		def = sub
	}

	start, err := parseClockMinute(def.StartTime)
	if err != nil {
		return Window{}, fmt.Errorf("shift %q start: %w", def.Code, ErrShiftNotFound)
	}
	end, err := parseClockMinute(def.EndTime)
	if err != nil {
		return Window{}, fmt.Errorf("shift %q end: %w", def.Code, ErrShiftNotFound)
	}

	// A nominal end clock-time numerically below the start means the shift
	// runs into the next day; normalize the end past 1440.
	if def.CrossesMidnight && end < start {
		end += 24 * 60
	}

	return Window{
		ShiftCode:       def.Code,
		StartMinute:     start,
		EndMinute:       end,
		CrossesMidnight: def.CrossesMidnight,
		GraceMinutes:    def.GraceMinutes(),
	}, nil
}

// parseClockMinute converts "HH:mm" into minutes since midnight.
func parseClockMinute(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("malformed hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("malformed minute in %q", s)
	}
	return hour*60 + minute, nil
}
