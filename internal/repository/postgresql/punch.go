package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/attendance"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/database"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepository{db: db}
}

// ListForSpan implements attendance.PunchRepository.
func (r *punchRepository) ListForSpan(ctx context.Context, employeeCode string, from, to time.Time) ([]attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, instant, outcome_valid
		FROM punch_events
		WHERE employee_code = $1
		  AND instant >= $2
		  AND instant < $3
		ORDER BY instant
	`

	rows, err := q.Query(ctx, query, employeeCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []attendance.PunchEvent
	for rows.Next() {
		var p attendance.PunchEvent
		if err := rows.Scan(&p.ID, &p.EmployeeCode, &p.Instant, &p.OutcomeValid); err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	return punches, rows.Err()
}
