package attendance

import (
	"context"
	"time"
)

// PunchRepository reads device scans. Scans are immutable once synced; the
// engine only reads them.
type PunchRepository interface {
	// ListForSpan retrieves an employee's valid punches within [from, to),
	// ordered by instant. The span is the business day: shift start through
	// the following morning, to capture overnight checkouts.
	ListForSpan(ctx context.Context, employeeCode string, from, to time.Time) ([]PunchEvent, error)
}

// DayRecordRepository persists derived day adjudications and the manual
// overrides HR places on days.
type DayRecordRepository interface {
	// ReplaceMonth supersedes all of an employee's day records for a month
	// with a freshly computed set, atomically.
	ReplaceMonth(ctx context.Context, employeeCode string, year int, month time.Month, days []DayAdjudication) error

	// ListMonth retrieves an employee's day records for a month, ascending
	// by date.
	ListMonth(ctx context.Context, employeeCode string, year int, month time.Month) ([]DayAdjudication, error)

	// GetOverride retrieves the manual record for (employee, date), nil when
	// none exists.
	GetOverride(ctx context.Context, employeeCode string, date time.Time) (*DayOverride, error)

	// ListOverridesForMonth retrieves all manual records for an employee's
	// month keyed by date.
	ListOverridesForMonth(ctx context.Context, employeeCode string, year int, month time.Month) (map[time.Time]DayOverride, error)

	// UpsertOverride creates or replaces the manual record for
	// (employee, date).
	UpsertOverride(ctx context.Context, override DayOverride) error

	// DeleteOverride removes the manual record for (employee, date). Absent
	// records are not an error.
	DeleteOverride(ctx context.Context, employeeCode string, date time.Time) error
}
