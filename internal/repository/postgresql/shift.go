package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/shift"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `id, code, start_time, end_time, crosses_midnight, grace_period_minutes, active, created_at, updated_at`

// GetByCode implements shift.ShiftRepository.
func (r *shiftRepository) GetByCode(ctx context.Context, code string) (shift.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE code = $1 AND active = true
	`

	var def shift.Definition
	err := q.QueryRow(ctx, query, code).Scan(
		&def.ID, &def.Code, &def.StartTime, &def.EndTime, &def.CrossesMidnight,
		&def.GracePeriodMinutes, &def.Active, &def.CreatedAt, &def.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Definition{}, shift.ErrShiftNotFound
		}
		return shift.Definition{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return def, nil
}

// ListActive implements shift.ShiftRepository.
func (r *shiftRepository) ListActive(ctx context.Context) ([]shift.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE active = true
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var defs []shift.Definition
	for rows.Next() {
		var def shift.Definition
		if err := rows.Scan(
			&def.ID, &def.Code, &def.StartTime, &def.EndTime, &def.CrossesMidnight,
			&def.GracePeriodMinutes, &def.Active, &def.CreatedAt, &def.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}
