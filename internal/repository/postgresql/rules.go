package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/payroll"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/database"
)

type rulesRepository struct {
	db *database.DB
}

func NewRulesRepository(db *database.DB) payroll.RulesRepository {
	return &rulesRepository{db: db}
}

const rulesColumns = `id, free_violations, milestone_interval, per_minute_rate, max_per_minute_fine,
	absent_day_weight, uninformed_leave_day_weight, unpaid_leave_day_weight, sick_leave_day_weight,
	half_day_weight, days_per_month, active, created_at, updated_at`

// GetActive implements payroll.RulesRepository.
func (r *rulesRepository) GetActive(ctx context.Context) (payroll.ViolationRulesConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + rulesColumns + `
		FROM violation_rules
		WHERE active = true
	`

	var cfg payroll.ViolationRulesConfig
	err := q.QueryRow(ctx, query).Scan(
		&cfg.ID, &cfg.FreeViolations, &cfg.MilestoneInterval, &cfg.PerMinuteRate, &cfg.MaxPerMinuteFine,
		&cfg.AbsentDayWeight, &cfg.UninformedLeaveDayWeight, &cfg.UnpaidLeaveDayWeight, &cfg.SickLeaveDayWeight,
		&cfg.HalfDayWeight, &cfg.DaysPerMonth, &cfg.Active, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ViolationRulesConfig{}, payroll.ErrNoActiveRules
		}
		return payroll.ViolationRulesConfig{}, fmt.Errorf("failed to get active rules: %w", err)
	}
	return cfg, nil
}

// Activate implements payroll.RulesRepository. Deactivation of the previous
// version and insertion of the new one commit together, so there is never a
// moment with zero or two active configs.
func (r *rulesRepository) Activate(ctx context.Context, cfg payroll.ViolationRulesConfig) (payroll.ViolationRulesConfig, error) {
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `UPDATE violation_rules SET active = false, updated_at = NOW() WHERE active = true`); err != nil {
			return fmt.Errorf("failed to deactivate rules: %w", err)
		}

		query := `
			INSERT INTO violation_rules (
				free_violations, milestone_interval, per_minute_rate, max_per_minute_fine,
				absent_day_weight, uninformed_leave_day_weight, unpaid_leave_day_weight,
				sick_leave_day_weight, half_day_weight, days_per_month, active
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true)
			RETURNING id, created_at, updated_at
		`
		err := q.QueryRow(ctx, query,
			cfg.FreeViolations, cfg.MilestoneInterval, cfg.PerMinuteRate, cfg.MaxPerMinuteFine,
			cfg.AbsentDayWeight, cfg.UninformedLeaveDayWeight, cfg.UnpaidLeaveDayWeight,
			cfg.SickLeaveDayWeight, cfg.HalfDayWeight, cfg.DaysPerMonth,
		).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert rules: %w", err)
		}
		cfg.Active = true
		return nil
	})
	if err != nil {
		return payroll.ViolationRulesConfig{}, err
	}
	return cfg, nil
}
