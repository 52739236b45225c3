package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/attendance"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/employee"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/payroll"
)

const batchWorkers = 8

// PayrollService derives monthly summaries on demand. Nothing here is
// stored; the day records plus the active rules plus the salary are the
// whole input, so a recompute after a correction is always consistent.
type PayrollService struct {
	payroll.RulesRepository
	dayRecords   attendance.DayRecordRepository
	employeeRepo employee.Repository
}

func NewPayrollService(
	rulesRepo payroll.RulesRepository,
	dayRecords attendance.DayRecordRepository,
	employeeRepo employee.Repository,
) *PayrollService {
	return &PayrollService{
		RulesRepository: rulesRepo,
		dayRecords:      dayRecords,
		employeeRepo:    employeeRepo,
	}
}

// MonthlySummary implements payroll.Service.
func (s *PayrollService) MonthlySummary(ctx context.Context, employeeCode string, year int, month time.Month) (payroll.MonthlySummary, error) {
	emp, err := s.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		return payroll.MonthlySummary{}, err
	}
	rules, err := s.GetActive(ctx)
	if err != nil {
		return payroll.MonthlySummary{}, fmt.Errorf("load active rules: %w", err)
	}
	return s.summarize(ctx, rules, emp, year, month)
}

// MonthlySummaryAll implements payroll.Service. The rules are loaded once
// and shared; each employee's summary is independent.
func (s *PayrollService) MonthlySummaryAll(ctx context.Context, year int, month time.Month) (payroll.BatchSummaries, error) {
	rules, err := s.GetActive(ctx)
	if err != nil {
		return payroll.BatchSummaries{}, fmt.Errorf("load active rules: %w", err)
	}
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.BatchSummaries{}, fmt.Errorf("list employees: %w", err)
	}

	var (
		mu     sync.Mutex
		result = payroll.BatchSummaries{Failed: map[string]string{}}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)
	for _, emp := range employees {
		emp := emp
		g.Go(func() error {
			summary, err := s.summarize(gctx, rules, emp, year, month)
			if err != nil {
				slog.Warn("payroll summary failed for employee",
					"employee_code", emp.Code,
					"month", fmt.Sprintf("%04d-%02d", year, int(month)),
					"error", err,
				)
				mu.Lock()
				result.Failed[emp.Code] = err.Error()
				mu.Unlock()
				return nil
			}
			mu.Lock()
			result.Summaries = append(result.Summaries, summary)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result, nil
}

// ActiveRules implements payroll.Service.
func (s *PayrollService) ActiveRules(ctx context.Context) (payroll.ViolationRulesConfig, error) {
	return s.GetActive(ctx)
}

// ActivateRules implements payroll.Service.
func (s *PayrollService) ActivateRules(ctx context.Context, req payroll.ActivateRulesRequest) (payroll.ViolationRulesConfig, error) {
	if err := req.Validate(); err != nil {
		return payroll.ViolationRulesConfig{}, err
	}
	cfg, err := s.Activate(ctx, req.Apply())
	if err != nil {
		return payroll.ViolationRulesConfig{}, fmt.Errorf("activate rules: %w", err)
	}
	slog.Info("violation rules activated", "rules_id", cfg.ID)
	return cfg, nil
}

func (s *PayrollService) summarize(ctx context.Context, rules payroll.ViolationRulesConfig, emp employee.Employee, year int, month time.Month) (payroll.MonthlySummary, error) {
	days, err := s.dayRecords.ListMonth(ctx, emp.Code, year, month)
	if err != nil {
		return payroll.MonthlySummary{}, fmt.Errorf("load day records: %w", err)
	}

	escalation := payroll.CalculateEscalation(rules, payroll.CollectViolations(days))
	return payroll.Aggregate(rules, days, escalation, emp.Code, emp.GrossSalary, year, month), nil
}
