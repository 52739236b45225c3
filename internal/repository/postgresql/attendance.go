package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/attendance"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.DayRecordRepository {
	return &attendanceRepository{db: db}
}

// ReplaceMonth implements attendance.DayRecordRepository. Delete plus
// re-insert in one transaction keeps the supersede-wholesale contract: a
// reader never sees a half-replaced month.
func (r *attendanceRepository) ReplaceMonth(ctx context.Context, employeeCode string, year int, month time.Month, days []attendance.DayAdjudication) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		_, err := q.Exec(ctx, `
			DELETE FROM attendance_days
			WHERE employee_code = $1
			  AND date >= $2
			  AND date < $2::date + INTERVAL '1 month'
		`, employeeCode, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			return fmt.Errorf("failed to clear month: %w", err)
		}

		insert := `
			INSERT INTO attendance_days (
				employee_code, date, resolved_shift_code, status,
				check_in, check_out, late, early_leave, late_minutes, early_minutes,
				late_excused, early_excused, off_day, is_future_day
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`
		for _, d := range days {
			_, err := q.Exec(ctx, insert,
				d.EmployeeCode, d.Date, d.ResolvedShiftCode, string(d.Status),
				d.CheckIn, d.CheckOut, d.Late, d.EarlyLeave, d.LateMinutes, d.EarlyMinutes,
				d.LateExcused, d.EarlyExcused, d.OffDay, d.IsFutureDay,
			)
			if err != nil {
				return fmt.Errorf("failed to insert day record: %w", err)
			}
		}
		return nil
	})
}

// ListMonth implements attendance.DayRecordRepository.
func (r *attendanceRepository) ListMonth(ctx context.Context, employeeCode string, year int, month time.Month) ([]attendance.DayAdjudication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_code, date, resolved_shift_code, status,
		       check_in, check_out, late, early_leave, late_minutes, early_minutes,
		       late_excused, early_excused, off_day, is_future_day
		FROM attendance_days
		WHERE employee_code = $1
		  AND date >= $2
		  AND date < $2::date + INTERVAL '1 month'
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeCode, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to list day records: %w", err)
	}
	defer rows.Close()

	var days []attendance.DayAdjudication
	for rows.Next() {
		var (
			d      attendance.DayAdjudication
			status string
		)
		if err := rows.Scan(
			&d.EmployeeCode, &d.Date, &d.ResolvedShiftCode, &status,
			&d.CheckIn, &d.CheckOut, &d.Late, &d.EarlyLeave, &d.LateMinutes, &d.EarlyMinutes,
			&d.LateExcused, &d.EarlyExcused, &d.OffDay, &d.IsFutureDay,
		); err != nil {
			return nil, fmt.Errorf("failed to scan day record: %w", err)
		}
		d.Status = attendance.DayStatus(status)
		days = append(days, d)
	}
	return days, rows.Err()
}

const overrideColumns = `id, employee_code, date, status, reason, late_excused, early_excused, excused, check_in, check_out, created_at, updated_at`

// GetOverride implements attendance.DayRecordRepository.
func (r *attendanceRepository) GetOverride(ctx context.Context, employeeCode string, date time.Time) (*attendance.DayOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overrideColumns + `
		FROM day_overrides
		WHERE employee_code = $1 AND date = $2
	`

	override, err := scanOverride(q.QueryRow(ctx, query, employeeCode, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get override: %w", err)
	}
	return &override, nil
}

// ListOverridesForMonth implements attendance.DayRecordRepository.
func (r *attendanceRepository) ListOverridesForMonth(ctx context.Context, employeeCode string, year int, month time.Month) (map[time.Time]attendance.DayOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overrideColumns + `
		FROM day_overrides
		WHERE employee_code = $1
		  AND date >= $2
		  AND date < $2::date + INTERVAL '1 month'
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeCode, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	defer rows.Close()

	overrides := map[time.Time]attendance.DayOverride{}
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides[override.Date] = override
	}
	return overrides, rows.Err()
}

// UpsertOverride implements attendance.DayRecordRepository.
func (r *attendanceRepository) UpsertOverride(ctx context.Context, override attendance.DayOverride) error {
	q := GetQuerier(ctx, r.db)

	var status *string
	if override.Status != nil {
		s := string(*override.Status)
		status = &s
	}

	query := `
		INSERT INTO day_overrides (
			employee_code, date, status, reason,
			late_excused, early_excused, excused, check_in, check_out
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_code, date) DO UPDATE SET
			status = EXCLUDED.status,
			reason = EXCLUDED.reason,
			late_excused = EXCLUDED.late_excused,
			early_excused = EXCLUDED.early_excused,
			excused = EXCLUDED.excused,
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		override.EmployeeCode, override.Date, status, override.Reason,
		override.LateExcused, override.EarlyExcused, override.Excused,
		override.CheckIn, override.CheckOut,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert override: %w", err)
	}
	return nil
}

// DeleteOverride implements attendance.DayRecordRepository.
func (r *attendanceRepository) DeleteOverride(ctx context.Context, employeeCode string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM day_overrides WHERE employee_code = $1 AND date = $2`, employeeCode, date)
	if err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	return nil
}

func scanOverride(row pgx.Row) (attendance.DayOverride, error) {
	var (
		o      attendance.DayOverride
		status *string
	)
	err := row.Scan(
		&o.ID, &o.EmployeeCode, &o.Date, &status, &o.Reason,
		&o.LateExcused, &o.EarlyExcused, &o.Excused,
		&o.CheckIn, &o.CheckOut, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return attendance.DayOverride{}, err
	}
	if status != nil {
		s := attendance.DayStatus(*status)
		o.Status = &s
	}
	return o, nil
}
