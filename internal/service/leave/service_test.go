package leave

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/attendance"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/employee"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/leave"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/clock"
)

// fakeLedger is an in-memory LedgerRepository. Transactions are a no-op
// wrapper; the tests exercise the service's ledger arithmetic, not locking.
type fakeLedger struct {
	nextID   int
	balances map[string]*leave.QuarterBalance // employee|year|quarter
	records  map[string]leave.Record          // record id
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		balances: map[string]*leave.QuarterBalance{},
		records:  map[string]leave.Record{},
	}
}

func balanceKey(code string, year, quarter int) string {
	return fmt.Sprintf("%s|%d|%d", code, year, quarter)
}

func (f *fakeLedger) GetOrCreateBalance(_ context.Context, code string, year, quarter, base int, _ bool) (leave.QuarterBalance, error) {
	key := balanceKey(code, year, quarter)
	if b, ok := f.balances[key]; ok {
		return *b, nil
	}
	f.nextID++
	b := &leave.QuarterBalance{
		ID:           fmt.Sprintf("bal-%d", f.nextID),
		EmployeeCode: code, Year: year, Quarter: quarter,
		Allocated: base,
	}
	f.balances[key] = b
	return *b, nil
}

func (f *fakeLedger) GetBalance(_ context.Context, code string, year, quarter int) (*leave.QuarterBalance, error) {
	if b, ok := f.balances[balanceKey(code, year, quarter)]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeLedger) ListBalancesForYear(_ context.Context, code string, year int) ([]leave.QuarterBalance, error) {
	var out []leave.QuarterBalance
	for quarter := 1; quarter <= 4; quarter++ {
		if b, ok := f.balances[balanceKey(code, year, quarter)]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeLedger) SetTaken(_ context.Context, balanceID string, taken int) error {
	for _, b := range f.balances {
		if b.ID == balanceID {
			b.Taken = taken
			return nil
		}
	}
	return errors.New("balance not found")
}

func (f *fakeLedger) CreateRecord(_ context.Context, record leave.Record) (leave.Record, error) {
	for _, r := range f.records {
		if r.EmployeeCode == record.EmployeeCode && r.Date.Equal(record.Date) {
			return leave.Record{}, leave.ErrDuplicateLeave
		}
	}
	f.nextID++
	record.ID = fmt.Sprintf("rec-%d", f.nextID)
	record.CreatedAt = time.Now()
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeLedger) GetRecord(_ context.Context, code string, date time.Time) (*leave.Record, error) {
	for _, r := range f.records {
		if r.EmployeeCode == code && r.Date.Equal(date) {
			copied := r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) DeleteRecord(_ context.Context, id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakeLedger) ListRecordsForQuarter(_ context.Context, code string, year, quarter int) ([]leave.Record, error) {
	var out []leave.Record
	for _, r := range f.records {
		if r.EmployeeCode == code && r.Date.Year() == year && clock.QuarterOf(r.Date.Month()) == quarter {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeLedger) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeDayRecords tracks only the overrides the leave service writes.
type fakeDayRecords struct {
	attendance.DayRecordRepository
	overrides map[string]attendance.DayOverride
}

func newFakeDayRecords() *fakeDayRecords {
	return &fakeDayRecords{overrides: map[string]attendance.DayOverride{}}
}

func overrideKey(code string, date time.Time) string {
	return code + "|" + date.Format("2006-01-02")
}

func (f *fakeDayRecords) UpsertOverride(_ context.Context, o attendance.DayOverride) error {
	f.overrides[overrideKey(o.EmployeeCode, o.Date)] = o
	return nil
}

func (f *fakeDayRecords) DeleteOverride(_ context.Context, code string, date time.Time) error {
	delete(f.overrides, overrideKey(code, date))
	return nil
}

func (f *fakeDayRecords) GetOverride(_ context.Context, code string, date time.Time) (*attendance.DayOverride, error) {
	if o, ok := f.overrides[overrideKey(code, date)]; ok {
		return &o, nil
	}
	return nil, nil
}

// fakeRecomputer records which months the service asked to re-adjudicate.
type fakeRecomputer struct {
	months []string
	err    error
}

func (f *fakeRecomputer) RecomputeMonth(_ context.Context, code string, year int, month time.Month) ([]attendance.DayAdjudication, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.months = append(f.months, fmt.Sprintf("%s|%04d-%02d", code, year, int(month)))
	return nil, nil
}

type fakeEmployees struct{ byCode map[string]employee.Employee }

func (f *fakeEmployees) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	if e, ok := f.byCode[code]; ok {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployees) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.byCode {
		out = append(out, e)
	}
	return out, nil
}

func newTestService(t *testing.T) (*LeaveService, *fakeLedger, *fakeDayRecords) {
	t.Helper()
	ledger := newFakeLedger()
	dayRecords := newFakeDayRecords()
	employees := &fakeEmployees{byCode: map[string]employee.Employee{
		"1042": {Code: "1042", Name: "Test Employee", ShiftCode: "NIGHT", GrossSalary: decimal.NewFromInt(50000), Active: true},
	}}
	svc := NewLeaveService(clock.New(time.UTC), 2, ledger, dayRecords, employees, &fakeRecomputer{})
	return svc, ledger, dayRecords
}

func grant(t *testing.T, svc *LeaveService, date string) error {
	t.Helper()
	_, err := svc.Grant(context.Background(), leave.GrantRequest{EmployeeCode: "1042", Date: date, Reason: "personal"})
	return err
}

func TestGrantRevokeRoundTrip(t *testing.T) {
	svc, ledger, dayRecords := newTestService(t)
	ctx := context.Background()

	require.NoError(t, grant(t, svc, "2024-02-05"))
	assert.Equal(t, 1, ledger.balances[balanceKey("1042", 2024, 1)].Taken)
	assert.Len(t, dayRecords.overrides, 1, "grant marks the day paid leave")

	date := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Revoke(ctx, "1042", date))
	assert.Equal(t, 0, ledger.balances[balanceKey("1042", 2024, 1)].Taken, "revoke restores taken exactly")
	assert.Empty(t, dayRecords.overrides)
	assert.Empty(t, ledger.records)
}

func TestGrantDuplicateRejected(t *testing.T) {
	svc, ledger, _ := newTestService(t)

	require.NoError(t, grant(t, svc, "2024-02-05"))
	err := grant(t, svc, "2024-02-05")
	require.ErrorIs(t, err, leave.ErrDuplicateLeave)
	assert.Equal(t, 1, ledger.balances[balanceKey("1042", 2024, 1)].Taken, "taken untouched by the rejected grant")
}

func TestGrantCarryForwardCap(t *testing.T) {
	svc, _, _ := newTestService(t)

	// Q1: one of two taken, remainder 1.
	require.NoError(t, grant(t, svc, "2024-01-10"))

	// Q2 effective cap = 2 + 1 = 3; three grants pass, the fourth is
	// rejected naming the quarter and the cap.
	require.NoError(t, grant(t, svc, "2024-04-01"))
	require.NoError(t, grant(t, svc, "2024-04-02"))
	require.NoError(t, grant(t, svc, "2024-04-03"))

	err := grant(t, svc, "2024-04-04")
	var quota *leave.QuotaExceededError
	require.ErrorAs(t, err, &quota)
	assert.Equal(t, 2, quota.Quarter)
	assert.Equal(t, 3, quota.Cap)
	assert.Equal(t, 2024, quota.Year)
}

func TestGrantNoCarryIntoQ3(t *testing.T) {
	svc, _, _ := newTestService(t)

	// Q2 remainder never reaches Q3: the third Q3 grant must fail.
	require.NoError(t, grant(t, svc, "2024-07-01"))
	require.NoError(t, grant(t, svc, "2024-07-02"))

	err := grant(t, svc, "2024-07-03")
	var quota *leave.QuotaExceededError
	require.ErrorAs(t, err, &quota)
	assert.Equal(t, 3, quota.Quarter)
	assert.Equal(t, 2, quota.Cap)
}

func TestRevokeUnknownDate(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.Revoke(context.Background(), "1042", time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, leave.ErrLeaveNotFound)
}

func TestGrantUnknownEmployee(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Grant(context.Background(), leave.GrantRequest{EmployeeCode: "9999", Date: "2024-02-05"})
	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestBalancesRecomputesEffectiveAllocation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, grant(t, svc, "2024-01-10"))
	require.NoError(t, grant(t, svc, "2024-04-01"))

	views, err := svc.Balances(ctx, "1042", 2024)
	require.NoError(t, err)
	require.Len(t, views, 4, "unreferenced quarters still appear")

	assert.Equal(t, 2, views[0].EffectiveAllocation)
	assert.Equal(t, 1, views[0].Taken)
	assert.Equal(t, 3, views[1].EffectiveAllocation, "Q2 carries Q1's remainder")
	assert.Equal(t, 2, views[2].EffectiveAllocation, "Q3 never carries")
	assert.Equal(t, 2, views[3].EffectiveAllocation, "Q4 carry source untouched")
}

func TestReconcileRemovesOrphans(t *testing.T) {
	svc, ledger, dayRecords := newTestService(t)
	ctx := context.Background()

	require.NoError(t, grant(t, svc, "2024-02-05"))
	require.NoError(t, grant(t, svc, "2024-02-06"))

	// Simulate drift: the override behind the second grant disappears.
	date := time.Date(2024, 2, 6, 0, 0, 0, 0, time.UTC)
	require.NoError(t, dayRecords.DeleteOverride(ctx, "1042", date))

	report, err := svc.Reconcile(ctx, "1042", 2024)
	require.NoError(t, err)
	assert.Equal(t, 1, report.OrphansRemoved)
	assert.Equal(t, 1, report.QuartersRecounted)
	assert.Equal(t, 1, ledger.balances[balanceKey("1042", 2024, 1)].Taken)
}

func TestGrantRevokeRecomputeAffectedMonth(t *testing.T) {
	svc, _, _ := newTestService(t)
	recomputer := svc.recompute.(*fakeRecomputer)

	require.NoError(t, grant(t, svc, "2024-02-05"))
	assert.Equal(t, []string{"1042|2024-02"}, recomputer.months, "grant refreshes the stored day records")

	date := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Revoke(context.Background(), "1042", date))
	assert.Equal(t, []string{"1042|2024-02", "1042|2024-02"}, recomputer.months, "revoke refreshes them again")
}

func TestGrantFailsWhenRecomputeFails(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.recompute.(*fakeRecomputer).err = errors.New("shift directory unavailable")

	err := grant(t, svc, "2024-02-05")
	require.ErrorContains(t, err, "recompute month")
}

func TestRevokePreservesManualCorrections(t *testing.T) {
	svc, ledger, dayRecords := newTestService(t)
	ctx := context.Background()

	// HR already excused the day's lateness before the leave was granted.
	date := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	excused := true
	require.NoError(t, dayRecords.UpsertOverride(ctx, attendance.DayOverride{
		EmployeeCode: "1042", Date: date, LateExcused: &excused,
	}))

	require.NoError(t, grant(t, svc, "2024-02-05"))
	stored, err := dayRecords.GetOverride(ctx, "1042", date)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.Status)
	assert.Equal(t, attendance.StatusPaidLeave, *stored.Status)
	require.NotNil(t, stored.LateExcused, "grant keeps the excuse flag")
	assert.True(t, *stored.LateExcused)

	require.NoError(t, svc.Revoke(ctx, "1042", date))
	stored, err = dayRecords.GetOverride(ctx, "1042", date)
	require.NoError(t, err)
	require.NotNil(t, stored, "override with corrections survives the revoke")
	assert.Nil(t, stored.Status, "only the leave status is cleared")
	require.NotNil(t, stored.LateExcused)
	assert.True(t, *stored.LateExcused)
	assert.Equal(t, 0, ledger.balances[balanceKey("1042", 2024, 1)].Taken)
}

func TestReconcileRemovesDuplicates(t *testing.T) {
	svc, ledger, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, grant(t, svc, "2024-02-05"))

	// Simulate drift: a second audit record for the same date slipped past
	// the uniqueness constraint.
	date := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	dup := leave.Record{ID: "rec-dup", EmployeeCode: "1042", Date: date, CreatedAt: time.Now().Add(time.Minute)}
	ledger.records[dup.ID] = dup

	report, err := svc.Reconcile(ctx, "1042", 2024)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DuplicatesRemoved)
	assert.Equal(t, 1, ledger.balances[balanceKey("1042", 2024, 1)].Taken)
	assert.Len(t, ledger.records, 1, "earliest record survives")
}
