package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/leave"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LedgerRepository {
	return &leaveRepository{db: db}
}

const balanceColumns = `id, employee_code, year, quarter, allocated, taken, created_at, updated_at`

// GetOrCreateBalance implements leave.LedgerRepository. The FOR UPDATE lock
// on the balance row is what serializes concurrent grant/revoke for the same
// (employee, year, quarter).
func (r *leaveRepository) GetOrCreateBalance(ctx context.Context, employeeCode string, year, quarter, baseAllocation int, forUpdate bool) (leave.QuarterBalance, error) {
	q := GetQuerier(ctx, r.db)

	// Insert-if-absent first so the lock below always has a row to take.
	_, err := q.Exec(ctx, `
		INSERT INTO leave_quarter_balances (employee_code, year, quarter, allocated, taken)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (employee_code, year, quarter) DO NOTHING
	`, employeeCode, year, quarter, baseAllocation)
	if err != nil {
		return leave.QuarterBalance{}, fmt.Errorf("failed to create balance: %w", err)
	}

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_quarter_balances
		WHERE employee_code = $1 AND year = $2 AND quarter = $3
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var b leave.QuarterBalance
	err = q.QueryRow(ctx, query, employeeCode, year, quarter).Scan(
		&b.ID, &b.EmployeeCode, &b.Year, &b.Quarter, &b.Allocated, &b.Taken,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return leave.QuarterBalance{}, fmt.Errorf("failed to get balance: %w", err)
	}
	return b, nil
}

// GetBalance implements leave.LedgerRepository.
func (r *leaveRepository) GetBalance(ctx context.Context, employeeCode string, year, quarter int) (*leave.QuarterBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_quarter_balances
		WHERE employee_code = $1 AND year = $2 AND quarter = $3
	`

	var b leave.QuarterBalance
	err := q.QueryRow(ctx, query, employeeCode, year, quarter).Scan(
		&b.ID, &b.EmployeeCode, &b.Year, &b.Quarter, &b.Allocated, &b.Taken,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return &b, nil
}

// ListBalancesForYear implements leave.LedgerRepository.
func (r *leaveRepository) ListBalancesForYear(ctx context.Context, employeeCode string, year int) ([]leave.QuarterBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_quarter_balances
		WHERE employee_code = $1 AND year = $2
		ORDER BY quarter
	`

	rows, err := q.Query(ctx, query, employeeCode, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.QuarterBalance
	for rows.Next() {
		var b leave.QuarterBalance
		if err := rows.Scan(
			&b.ID, &b.EmployeeCode, &b.Year, &b.Quarter, &b.Allocated, &b.Taken,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// SetTaken implements leave.LedgerRepository.
func (r *leaveRepository) SetTaken(ctx context.Context, balanceID string, taken int) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE leave_quarter_balances
		SET taken = $2, updated_at = NOW()
		WHERE id = $1
	`, balanceID, taken)
	if err != nil {
		return fmt.Errorf("failed to set taken: %w", err)
	}
	return nil
}

// CreateRecord implements leave.LedgerRepository. The unique index on
// (employee_code, date) is the grant idempotency boundary.
func (r *leaveRepository) CreateRecord(ctx context.Context, record leave.Record) (leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leave_records (id, employee_code, date, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, record.ID, record.EmployeeCode, record.Date, record.Reason).
		Scan(&record.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return leave.Record{}, leave.ErrDuplicateLeave
		}
		return leave.Record{}, fmt.Errorf("failed to create leave record: %w", err)
	}
	return record, nil
}

// GetRecord implements leave.LedgerRepository.
func (r *leaveRepository) GetRecord(ctx context.Context, employeeCode string, date time.Time) (*leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, date, reason, created_at
		FROM leave_records
		WHERE employee_code = $1 AND date = $2
	`

	var record leave.Record
	err := q.QueryRow(ctx, query, employeeCode, date).Scan(
		&record.ID, &record.EmployeeCode, &record.Date, &record.Reason, &record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave record: %w", err)
	}
	return &record, nil
}

// DeleteRecord implements leave.LedgerRepository.
func (r *leaveRepository) DeleteRecord(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM leave_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave record: %w", err)
	}
	return nil
}

// ListRecordsForQuarter implements leave.LedgerRepository.
func (r *leaveRepository) ListRecordsForQuarter(ctx context.Context, employeeCode string, year, quarter int) ([]leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	firstMonth := (quarter-1)*3 + 1
	from := time.Date(year, time.Month(firstMonth), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 3, 0)

	query := `
		SELECT id, employee_code, date, reason, created_at
		FROM leave_records
		WHERE employee_code = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date, created_at
	`

	rows, err := q.Query(ctx, query, employeeCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}
	defer rows.Close()

	var records []leave.Record
	for rows.Next() {
		var record leave.Record
		if err := rows.Scan(
			&record.ID, &record.EmployeeCode, &record.Date, &record.Reason, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// WithinTx implements leave.LedgerRepository.
func (r *leaveRepository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, r.db, fn)
}
