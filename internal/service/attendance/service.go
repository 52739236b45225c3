package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/attendance"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/employee"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/shift"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/cache"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/clock"
)

// batchWorkers bounds how many employees a month recompute processes
// concurrently. Each worker's adjudication is pure; only the fetch and the
// final replace touch the database.
const batchWorkers = 8

// punchSpanStartMinute is where a midnight-crossing shift's business day
// begins. Scans before 08:00 company time belong to the previous day's
// shift, which is still closing from the night before.
const punchSpanStartMinute = 8 * 60

type AttendanceService struct {
	clk      clock.Clock
	now      func() time.Time
	override shift.SaturdayOverride

	attendance.PunchRepository
	attendance.DayRecordRepository
	employeeRepo employee.Repository

	shiftDir *cache.ReadThrough[string, shift.Directory]
}

func NewAttendanceService(
	clk clock.Clock,
	punchRepo attendance.PunchRepository,
	dayRecordRepo attendance.DayRecordRepository,
	employeeRepo employee.Repository,
	shiftRepo shift.ShiftRepository,
	override shift.SaturdayOverride,
) *AttendanceService {
	return &AttendanceService{
		clk:      clk,
		now:      time.Now,
		override: override,

		PunchRepository:     punchRepo,
		DayRecordRepository: dayRecordRepo,
		employeeRepo:        employeeRepo,

		shiftDir: cache.NewReadThrough(5*time.Minute, func(ctx context.Context, _ string) (shift.Directory, error) {
			defs, err := shiftRepo.ListActive(ctx)
			if err != nil {
				return nil, err
			}
			dir := make(shift.Directory, len(defs))
			for _, d := range defs {
				dir[d.Code] = d
			}
			return dir, nil
		}),
	}
}

// RecomputeMonth implements attendance.Service.
func (s *AttendanceService) RecomputeMonth(ctx context.Context, employeeCode string, year int, month time.Month) ([]attendance.DayAdjudication, error) {
	emp, err := s.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		return nil, fmt.Errorf("load employee %s: %w", employeeCode, err)
	}
	return s.recomputeFor(ctx, emp, year, month)
}

// RecomputeMonthAll implements attendance.Service. Employees run in
// parallel; one employee's bad data is recorded against that employee only.
func (s *AttendanceService) RecomputeMonthAll(ctx context.Context, year int, month time.Month) (attendance.BatchResult, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return attendance.BatchResult{}, fmt.Errorf("list employees: %w", err)
	}

	var (
		mu     sync.Mutex
		result = attendance.BatchResult{Failed: map[string]string{}}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)
	for _, emp := range employees {
		emp := emp
		g.Go(func() error {
			if _, err := s.recomputeFor(gctx, emp, year, month); err != nil {
				slog.Warn("month recompute failed for employee",
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
			result.Processed++
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

// ListMonth implements attendance.Service.
func (s *AttendanceService) ListMonth(ctx context.Context, employeeCode string, year int, month time.Month) ([]attendance.DayAdjudication, error) {
	if _, err := s.employeeRepo.GetByCode(ctx, employeeCode); err != nil {
		return nil, err
	}
	return s.DayRecordRepository.ListMonth(ctx, employeeCode, year, month)
}

// OverrideDay implements attendance.Service. The manual record is stored
// first, then the affected day is re-adjudicated so the caller sees the
// corrected record immediately.
func (s *AttendanceService) OverrideDay(ctx context.Context, req attendance.OverrideDayRequest) (attendance.DayAdjudication, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayAdjudication{}, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.DayAdjudication{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	date = s.clk.Date(date.Year(), date.Month(), date.Day())

	override := attendance.DayOverride{
		EmployeeCode: req.EmployeeCode,
		Date:         date,
		Reason:       req.Reason,
		LateExcused:  req.LateExcused,
		EarlyExcused: req.EarlyExcused,
	}
	if req.Status != nil {
		status, _ := attendance.ParseStatus(*req.Status)
		override.Status = &status
	}
	if req.CheckIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.CheckIn)
		override.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.CheckOut)
		override.CheckOut = &t
	}

	if err := s.UpsertOverride(ctx, override); err != nil {
		return attendance.DayAdjudication{}, fmt.Errorf("store override: %w", err)
	}

	days, err := s.recomputeFor(ctx, emp, date.Year(), date.Month())
	if err != nil {
		return attendance.DayAdjudication{}, err
	}
	for _, d := range days {
		if d.Date.Equal(date) {
			return d, nil
		}
	}
	return attendance.DayAdjudication{}, attendance.ErrDayRecordNotFound
}

// recomputeFor adjudicates every day of the month for one employee and
// atomically replaces the stored records.
func (s *AttendanceService) recomputeFor(ctx context.Context, emp employee.Employee, year int, month time.Month) ([]attendance.DayAdjudication, error) {
	dir, err := s.shiftDir.Get(ctx, "active")
	if err != nil {
		return nil, fmt.Errorf("load shift directory: %w", err)
	}
	def, haveShift := dir[emp.ShiftCode]

	from, to := s.punchSpan(year, month, haveShift && def.CrossesMidnight)
	punches, err := s.ListForSpan(ctx, emp.Code, from, to)
	if err != nil {
		return nil, fmt.Errorf("load punches: %w", err)
	}
	byDay := s.bucketByBusinessDay(punches, haveShift && def.CrossesMidnight)

	overrides, err := s.ListOverridesForMonth(ctx, emp.Code, year, month)
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	overrideByDay := make(map[string]attendance.DayOverride, len(overrides))
	for d, o := range overrides {
		overrideByDay[d.Format("2006-01-02")] = o
	}

	now := s.now()
	days := make([]attendance.DayAdjudication, 0, clock.DaysInMonth(year, month))
	for dayNum := 1; dayNum <= clock.DaysInMonth(year, month); dayNum++ {
		date := s.clk.Date(year, month, dayNum)
		key := date.Format("2006-01-02")

		in := attendance.DayInput{
			EmployeeCode: emp.Code,
			Date:         date,
			Punches:      byDay[key],
			OffDay:       emp.WeeklyOff(date),
			Future:       s.clk.IsFutureDay(date, now),
		}
		if o, ok := overrideByDay[key]; ok {
			o := o
			in.Override = &o
		}
		if haveShift {
			window, err := shift.ResolveWindow(def, date, dir, s.override)
			if err != nil {
				// Degraded mode: the day still gets a status from punches.
				slog.Warn("shift window unresolved",
					"employee_code", emp.Code, "shift_code", emp.ShiftCode, "date", key, "error", err)
			} else {
				in.Window = &window
			}
		}

		days = append(days, attendance.Adjudicate(s.clk, in))
	}

	if err := s.ReplaceMonth(ctx, emp.Code, year, month, days); err != nil {
		return nil, fmt.Errorf("replace month records: %w", err)
	}
	return days, nil
}

// punchSpan is the absolute window of scans feeding one month. For
// midnight-crossing shifts it runs from 08:00 on the first day through
// 08:00 the morning after the last, so overnight checkouts land with the
// day they belong to.
func (s *AttendanceService) punchSpan(year int, month time.Month, crossesMidnight bool) (time.Time, time.Time) {
	first := s.clk.Date(year, month, 1)
	next := s.clk.Date(year, month, clock.DaysInMonth(year, month)).AddDate(0, 0, 1)
	if crossesMidnight {
		return s.clk.At(first, punchSpanStartMinute), s.clk.At(next, punchSpanStartMinute)
	}
	return first, next
}

// bucketByBusinessDay groups scans under the calendar day whose shift they
// belong to, keyed by "YYYY-MM-DD". For crossing shifts a scan before 08:00
// belongs to the previous day.
func (s *AttendanceService) bucketByBusinessDay(punches []attendance.PunchEvent, crossesMidnight bool) map[string][]attendance.PunchEvent {
	byDay := make(map[string][]attendance.PunchEvent)
	for _, p := range punches {
		date := s.clk.LocalDate(p.Instant)
		if crossesMidnight && s.clk.MinuteOfDay(p.Instant) < punchSpanStartMinute {
			date = date.AddDate(0, 0, -1)
		}
		key := date.Format("2006-01-02")
		byDay[key] = append(byDay[key], p)
	}
	for _, ps := range byDay {
		sort.Slice(ps, func(i, j int) bool { return ps[i].Instant.Before(ps[j].Instant) })
	}
	return byDay
}
