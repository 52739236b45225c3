package shift

import "time"

// Definition is one version of a shift as configured by HR tooling. The
// engine only reads these; edits create a new version upstream.
type Definition struct {
	ID                 string
	Code               string
	StartTime          string // "HH:mm", company-local
	EndTime            string // "HH:mm", company-local
	CrossesMidnight    bool
	GracePeriodMinutes int
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const DefaultGracePeriodMinutes = 15

// GraceMinutes returns the configured grace period, falling back to the
// company default when the record predates the column.
func (d Definition) GraceMinutes() int {
	if d.GracePeriodMinutes <= 0 {
		return DefaultGracePeriodMinutes
	}
	return d.GracePeriodMinutes
}

// Window is a shift resolved against a concrete calendar date, expressed in
// company-local minutes since that date's midnight. EndMinute exceeds 1440
// when the shift runs past midnight (21:00-06:00 resolves to 1260/1800).
type Window struct {
	ShiftCode       string
	StartMinute     int
	EndMinute       int
	CrossesMidnight bool
	GraceMinutes    int
}

// Directory is the active shift catalog keyed by code, handed to the
// resolver so the Saturday substitution can look up the replacement window.
type Directory map[string]Definition

// SaturdayOverride substitutes one shift's window with another's on
// Saturdays. Both codes come from configuration; an empty rule disables the
// substitution.
type SaturdayOverride struct {
	ShiftCode      string
	SubstituteCode string
}

func (o SaturdayOverride) enabled() bool {
	return o.ShiftCode != "" && o.SubstituteCode != ""
}
