package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/attendance"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/employee"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/leave"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/clock"
)

// MonthRecomputer re-adjudicates an employee's stored month. Grant and
// revoke run it for the affected month so the day records and the payroll
// view reflect the ledger immediately, not at the next manual recompute.
type MonthRecomputer interface {
	RecomputeMonth(ctx context.Context, employeeCode string, year int, month time.Month) ([]attendance.DayAdjudication, error)
}

// LeaveService mutates the quarter ledger. Every grant and revoke runs in
// one transaction holding the balance row lock, which is what serializes
// concurrent mutations of the same (employee, year, quarter).
type LeaveService struct {
	clk            clock.Clock
	baseAllocation int

	ledger       leave.LedgerRepository
	dayRecords   attendance.DayRecordRepository
	employeeRepo employee.Repository
	recompute    MonthRecomputer
}

func NewLeaveService(
	clk clock.Clock,
	baseAllocation int,
	ledger leave.LedgerRepository,
	dayRecords attendance.DayRecordRepository,
	employeeRepo employee.Repository,
	recompute MonthRecomputer,
) *LeaveService {
	return &LeaveService{
		clk:            clk,
		baseAllocation: baseAllocation,
		ledger:         ledger,
		dayRecords:     dayRecords,
		employeeRepo:   employeeRepo,
		recompute:      recompute,
	}
}

// Grant implements leave.Service.
func (s *LeaveService) Grant(ctx context.Context, req leave.GrantRequest) (leave.Record, error) {
	if err := req.Validate(); err != nil {
		return leave.Record{}, err
	}
	if _, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode); err != nil {
		return leave.Record{}, err
	}

	parsed, _ := time.Parse("2006-01-02", req.Date)
	date := s.clk.Date(parsed.Year(), parsed.Month(), parsed.Day())
	year, quarter := date.Year(), clock.QuarterOf(date.Month())

	var created leave.Record
	err := s.ledger.WithinTx(ctx, func(ctx context.Context) error {
		balance, err := s.ledger.GetOrCreateBalance(ctx, req.EmployeeCode, year, quarter, s.baseAllocation, true)
		if err != nil {
			return fmt.Errorf("lock quarter balance: %w", err)
		}

		maxAllowed, err := s.effectiveCap(ctx, balance)
		if err != nil {
			return err
		}
		if balance.Taken >= maxAllowed {
			return &leave.QuotaExceededError{
				EmployeeCode: req.EmployeeCode,
				Year:         year,
				Quarter:      quarter,
				Cap:          maxAllowed,
			}
		}

		created, err = s.ledger.CreateRecord(ctx, leave.Record{
			EmployeeCode: req.EmployeeCode,
			Date:         date,
			Reason:       req.Reason,
		})
		if err != nil {
			return err
		}
		if err := s.ledger.SetTaken(ctx, balance.ID, balance.Taken+1); err != nil {
			return fmt.Errorf("update taken: %w", err)
		}

		// The day itself becomes a paid-leave day. Any correction fields
		// already on the override (excuses, check times) are kept.
		override := attendance.DayOverride{EmployeeCode: req.EmployeeCode, Date: date}
		existing, err := s.dayRecords.GetOverride(ctx, req.EmployeeCode, date)
		if err != nil {
			return fmt.Errorf("load day override: %w", err)
		}
		if existing != nil {
			override = *existing
		}
		status := attendance.StatusPaidLeave
		reason := req.Reason
		override.Status = &status
		override.Reason = &reason
		if err := s.dayRecords.UpsertOverride(ctx, override); err != nil {
			return fmt.Errorf("store day override: %w", err)
		}

		return s.recomputeMonthOf(ctx, req.EmployeeCode, date)
	})
	if err != nil {
		return leave.Record{}, err
	}

	slog.Info("leave granted",
		"employee_code", req.EmployeeCode, "date", req.Date, "year", year, "quarter", quarter)
	return created, nil
}

// Revoke implements leave.Service.
func (s *LeaveService) Revoke(ctx context.Context, employeeCode string, date time.Time) error {
	date = s.clk.Date(date.Year(), date.Month(), date.Day())
	year, quarter := date.Year(), clock.QuarterOf(date.Month())

	err := s.ledger.WithinTx(ctx, func(ctx context.Context) error {
		record, err := s.ledger.GetRecord(ctx, employeeCode, date)
		if err != nil {
			return err
		}
		if record == nil {
			return leave.ErrLeaveNotFound
		}

		balance, err := s.ledger.GetOrCreateBalance(ctx, employeeCode, year, quarter, s.baseAllocation, true)
		if err != nil {
			return fmt.Errorf("lock quarter balance: %w", err)
		}

		if err := s.ledger.DeleteRecord(ctx, record.ID); err != nil {
			return fmt.Errorf("delete audit record: %w", err)
		}
		taken := balance.Taken - 1
		if taken < 0 {
			taken = 0
		}
		if err := s.ledger.SetTaken(ctx, balance.ID, taken); err != nil {
			return fmt.Errorf("update taken: %w", err)
		}

		// Drop only the leave status. Correction fields HR placed on the
		// same day (excuses, check times) survive the revoke.
		override, err := s.dayRecords.GetOverride(ctx, employeeCode, date)
		if err != nil {
			return fmt.Errorf("load day override: %w", err)
		}
		if override != nil {
			if carriesCorrections(*override) {
				override.Status = nil
				override.Reason = nil
				if err := s.dayRecords.UpsertOverride(ctx, *override); err != nil {
					return fmt.Errorf("clear leave status: %w", err)
				}
			} else if err := s.dayRecords.DeleteOverride(ctx, employeeCode, date); err != nil {
				return fmt.Errorf("delete day override: %w", err)
			}
		}

		return s.recomputeMonthOf(ctx, employeeCode, date)
	})
	if err != nil {
		return err
	}

	slog.Info("leave revoked",
		"employee_code", employeeCode, "date", date.Format("2006-01-02"), "year", year, "quarter", quarter)
	return nil
}

// Balances implements leave.Service. Quarters never referenced are shown at
// the base allocation; effective caps are recomputed on every read.
func (s *LeaveService) Balances(ctx context.Context, employeeCode string, year int) ([]leave.BalanceView, error) {
	if _, err := s.employeeRepo.GetByCode(ctx, employeeCode); err != nil {
		return nil, err
	}
	stored, err := s.ledger.ListBalancesForYear(ctx, employeeCode, year)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}

	byQuarter := make(map[int]leave.QuarterBalance, len(stored))
	for _, b := range stored {
		byQuarter[b.Quarter] = b
	}

	views := make([]leave.BalanceView, 0, 4)
	for quarter := 1; quarter <= 4; quarter++ {
		balance, ok := byQuarter[quarter]
		if !ok {
			balance = leave.QuarterBalance{
				EmployeeCode: employeeCode,
				Year:         year,
				Quarter:      quarter,
				Allocated:    s.baseAllocation,
			}
		}
		var source *leave.QuarterBalance
		if sq := leave.CarrySourceQuarter(quarter); sq != 0 {
			if sb, ok := byQuarter[sq]; ok {
				sb := sb
				source = &sb
			}
		}
		views = append(views, leave.BalanceView{
			QuarterBalance:      balance,
			EffectiveAllocation: leave.EffectiveAllocation(balance, source),
		})
	}
	return views, nil
}

// Reconcile implements leave.Service. Data hygiene, not a normal code path:
// every removal is logged distinctly so an operator can trace what the pass
// touched.
func (s *LeaveService) Reconcile(ctx context.Context, employeeCode string, year int) (leave.ReconcileReport, error) {
	if _, err := s.employeeRepo.GetByCode(ctx, employeeCode); err != nil {
		return leave.ReconcileReport{}, err
	}

	var report leave.ReconcileReport
	err := s.ledger.WithinTx(ctx, func(ctx context.Context) error {
		for quarter := 1; quarter <= 4; quarter++ {
			balance, err := s.ledger.GetBalance(ctx, employeeCode, year, quarter)
			if err != nil {
				return err
			}
			records, err := s.ledger.ListRecordsForQuarter(ctx, employeeCode, year, quarter)
			if err != nil {
				return err
			}
			if balance == nil && len(records) == 0 {
				continue
			}

			surviving := 0
			seen := make(map[string]bool, len(records))
			for _, r := range records {
				key := r.Date.Format("2006-01-02")
				if seen[key] {
					slog.Warn("ledger reconcile: removing duplicate leave record",
						"employee_code", employeeCode, "date", key, "record_id", r.ID)
					if err := s.ledger.DeleteRecord(ctx, r.ID); err != nil {
						return fmt.Errorf("%w: delete duplicate %s: %v", leave.ErrInconsistentLedger, r.ID, err)
					}
					report.DuplicatesRemoved++
					continue
				}
				seen[key] = true

				approved, err := s.hasApprovedLeaveDay(ctx, employeeCode, r.Date)
				if err != nil {
					return err
				}
				if !approved {
					slog.Warn("ledger reconcile: removing orphan leave record",
						"employee_code", employeeCode, "date", key, "record_id", r.ID)
					if err := s.ledger.DeleteRecord(ctx, r.ID); err != nil {
						return fmt.Errorf("%w: delete orphan %s: %v", leave.ErrInconsistentLedger, r.ID, err)
					}
					report.OrphansRemoved++
					continue
				}
				surviving++
			}

			if balance == nil && surviving > 0 {
				b, err := s.ledger.GetOrCreateBalance(ctx, employeeCode, year, quarter, s.baseAllocation, true)
				if err != nil {
					return err
				}
				balance = &b
			}
			if balance != nil && balance.Taken != surviving {
				if err := s.ledger.SetTaken(ctx, balance.ID, surviving); err != nil {
					return fmt.Errorf("recount taken: %w", err)
				}
				report.QuartersRecounted++
			}
		}
		return nil
	})
	if err != nil {
		return leave.ReconcileReport{}, err
	}

	slog.Info("leave ledger reconciled",
		"employee_code", employeeCode, "year", year,
		"duplicates_removed", report.DuplicatesRemoved,
		"orphans_removed", report.OrphansRemoved,
		"quarters_recounted", report.QuartersRecounted,
	)
	return report, nil
}

// effectiveCap recomputes the quarter's cap from the source quarter's live
// state. Never cached or persisted; a Q1 revoke is visible to Q2 at once.
func (s *LeaveService) effectiveCap(ctx context.Context, balance leave.QuarterBalance) (int, error) {
	sq := leave.CarrySourceQuarter(balance.Quarter)
	if sq == 0 {
		return leave.EffectiveAllocation(balance, nil), nil
	}
	source, err := s.ledger.GetBalance(ctx, balance.EmployeeCode, balance.Year, sq)
	if err != nil {
		return 0, fmt.Errorf("load carry source quarter: %w", err)
	}
	return leave.EffectiveAllocation(balance, source), nil
}

// hasApprovedLeaveDay reports whether (employee, date) carries a manual
// leave status backing the audit record.
func (s *LeaveService) hasApprovedLeaveDay(ctx context.Context, employeeCode string, date time.Time) (bool, error) {
	override, err := s.dayRecords.GetOverride(ctx, employeeCode, date)
	if err != nil {
		return false, fmt.Errorf("load day override: %w", err)
	}
	return override != nil && override.Status != nil && override.Status.IsLeaveType(), nil
}

// recomputeMonthOf re-adjudicates the month containing date. Called inside
// the grant/revoke transaction, so a failed recompute rolls the whole
// mutation back.
func (s *LeaveService) recomputeMonthOf(ctx context.Context, employeeCode string, date time.Time) error {
	if _, err := s.recompute.RecomputeMonth(ctx, employeeCode, date.Year(), date.Month()); err != nil {
		return fmt.Errorf("recompute month: %w", err)
	}
	return nil
}

// carriesCorrections reports whether an override still says something once
// its leave status is cleared.
func carriesCorrections(o attendance.DayOverride) bool {
	return o.LateExcused != nil || o.EarlyExcused != nil || o.Excused != nil ||
		o.CheckIn != nil || o.CheckOut != nil
}
