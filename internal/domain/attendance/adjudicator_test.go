package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/shift"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/clock"
)

var (
	pkt     = time.FixedZone("PKT", 5*3600)
	testClk = clock.New(pkt)

	// 21:00-06:00 overnight window, grace 15.
	nightWindow = shift.Window{
		ShiftCode:       "NIGHT",
		StartMinute:     1260,
		EndMinute:       1800,
		CrossesMidnight: true,
		GraceMinutes:    15,
	}
)

func at(t *testing.T, day int, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2024, 3, day, hour, minute, 0, 0, pkt)
}

func punch(t *testing.T, day, hour, minute int) PunchEvent {
	t.Helper()
	return PunchEvent{EmployeeCode: "101", Instant: at(t, day, hour, minute), OutcomeValid: true}
}

func nightInput(t *testing.T, punches ...PunchEvent) DayInput {
	t.Helper()
	w := nightWindow
	return DayInput{
		EmployeeCode: "101",
		Date:         testClk.Date(2024, time.March, 11),
		Window:       &w,
		Punches:      punches,
	}
}

func TestAdjudicateOvernightBoundary(t *testing.T) {
	cases := []struct {
		name        string
		punches     []PunchEvent
		wantLate    bool
		wantLateMin int
		wantEarly   bool
		wantEarlyMn int
	}{
		{
			name:    "early arrival never penalized",
			punches: []PunchEvent{punch(t, 11, 20, 40), punch(t, 12, 6, 0)},
		},
		{
			name:        "one minute beyond grace is late by one",
			punches:     []PunchEvent{punch(t, 11, 21, 16), punch(t, 12, 6, 0)},
			wantLate:    true,
			wantLateMin: 1,
		},
		{
			name:        "checkout 05:44 next morning is early by one",
			punches:     []PunchEvent{punch(t, 11, 21, 0), punch(t, 12, 5, 44)},
			wantEarly:   true,
			wantEarlyMn: 1,
		},
		{
			name:    "late departure never penalized",
			punches: []PunchEvent{punch(t, 11, 21, 0), punch(t, 12, 6, 30)},
		},
		{
			name:    "within grace on both sides",
			punches: []PunchEvent{punch(t, 11, 21, 15), punch(t, 12, 5, 45)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day := Adjudicate(testClk, nightInput(t, tc.punches...))
			assert.Equal(t, StatusPresent, day.Status)
			assert.Equal(t, tc.wantLate, day.Late)
			assert.Equal(t, tc.wantLateMin, day.LateMinutes)
			assert.Equal(t, tc.wantEarly, day.EarlyLeave)
			assert.Equal(t, tc.wantEarlyMn, day.EarlyMinutes)
			if day.Late {
				assert.Greater(t, day.LateMinutes, 0, "late implies positive minutes")
			}
		})
	}
}

func TestAdjudicateIdempotent(t *testing.T) {
	in := nightInput(t, punch(t, 11, 21, 30), punch(t, 12, 5, 30))
	first := Adjudicate(testClk, in)
	second := Adjudicate(testClk, in)
	assert.Equal(t, first, second)
}

func TestAdjudicateLatenessMonotonic(t *testing.T) {
	out := punch(t, 12, 6, 0)
	prev := -1
	for minute := 0; minute < 120; minute += 7 {
		checkIn := PunchEvent{
			EmployeeCode: "101",
			Instant:      at(t, 11, 21, 0).Add(time.Duration(minute) * time.Minute),
			OutcomeValid: true,
		}
		day := Adjudicate(testClk, nightInput(t, checkIn, out))
		require.GreaterOrEqual(t, day.LateMinutes, prev, "check-in +%d min", minute)
		prev = day.LateMinutes
	}
}

func TestAdjudicateStatusInference(t *testing.T) {
	t.Run("both punches missing on work day is absent", func(t *testing.T) {
		day := Adjudicate(testClk, nightInput(t))
		assert.Equal(t, StatusAbsent, day.Status)
		assert.False(t, day.Late)
		assert.False(t, day.EarlyLeave)
	})

	t.Run("off day without punches is holiday", func(t *testing.T) {
		in := nightInput(t)
		in.OffDay = true
		day := Adjudicate(testClk, in)
		assert.Equal(t, StatusHoliday, day.Status)
	})

	t.Run("single punch on off day is present", func(t *testing.T) {
		in := nightInput(t, punch(t, 11, 21, 5))
		in.OffDay = true
		day := Adjudicate(testClk, in)
		assert.Equal(t, StatusPresent, day.Status)
	})

	t.Run("off day carries the marker and no violations", func(t *testing.T) {
		// 23:30 would be 2.5h late on a scheduled night, but nobody is
		// late for a day they are not scheduled.
		in := nightInput(t, punch(t, 11, 23, 30))
		in.OffDay = true
		day := Adjudicate(testClk, in)
		assert.True(t, day.OffDay)
		assert.Equal(t, StatusPresent, day.Status)
		assert.False(t, day.Late)
		assert.Zero(t, day.LateMinutes)
	})
}

func TestAdjudicateManualStatusWins(t *testing.T) {
	status := StatusPaidLeave
	in := nightInput(t, punch(t, 11, 23, 0), punch(t, 12, 4, 0))
	in.Override = &DayOverride{Status: &status}

	day := Adjudicate(testClk, in)
	assert.Equal(t, StatusPaidLeave, day.Status)
	assert.False(t, day.Late, "manual-leave day never carries late flags")
	assert.False(t, day.EarlyLeave)
	assert.Zero(t, day.LateMinutes)
	assert.Zero(t, day.EarlyMinutes)
}

func TestAdjudicateDoubleScan(t *testing.T) {
	in := nightInput(t,
		punch(t, 11, 21, 40),
		PunchEvent{EmployeeCode: "101", Instant: at(t, 11, 21, 40).Add(30 * time.Second), OutcomeValid: true},
	)
	day := Adjudicate(testClk, in)

	assert.Equal(t, StatusPresent, day.Status)
	assert.Nil(t, day.CheckOut, "double scan drops the check-out")
	assert.False(t, day.Late, "double scan produces no violation")
	assert.False(t, day.EarlyLeave)
}

func TestAdjudicateInvalidPunchesIgnored(t *testing.T) {
	in := nightInput(t,
		PunchEvent{EmployeeCode: "101", Instant: at(t, 11, 20, 0), OutcomeValid: false},
	)
	day := Adjudicate(testClk, in)
	assert.Equal(t, StatusAbsent, day.Status, "invalid scans never count")
}

func TestAdjudicateExcuseFlags(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	t.Run("per-side flags from override", func(t *testing.T) {
		in := nightInput(t, punch(t, 11, 22, 0), punch(t, 12, 5, 0))
		in.Override = &DayOverride{LateExcused: boolPtr(true)}
		day := Adjudicate(testClk, in)
		assert.True(t, day.Late)
		assert.True(t, day.LateExcused)
		assert.True(t, day.EarlyLeave)
		assert.False(t, day.EarlyExcused)
		assert.Equal(t, day.EarlyMinutes, day.UnexcusedViolationMinutes())
	})

	t.Run("legacy combined flag excuses both sides", func(t *testing.T) {
		in := nightInput(t, punch(t, 11, 22, 0), punch(t, 12, 5, 0))
		in.Override = &DayOverride{Excused: boolPtr(true)}
		day := Adjudicate(testClk, in)
		assert.True(t, day.LateExcused)
		assert.True(t, day.EarlyExcused)
		assert.Zero(t, day.UnexcusedViolationMinutes())
		assert.False(t, day.HasUnexcusedViolation())
	})

	t.Run("per-side flag overrides legacy flag", func(t *testing.T) {
		in := nightInput(t, punch(t, 11, 22, 0), punch(t, 12, 5, 0))
		in.Override = &DayOverride{Excused: boolPtr(true), EarlyExcused: boolPtr(false)}
		day := Adjudicate(testClk, in)
		assert.True(t, day.LateExcused)
		assert.False(t, day.EarlyExcused)
	})
}

func TestAdjudicateExplicitOverrideTimes(t *testing.T) {
	correctedIn := at(t, 11, 21, 5)
	in := nightInput(t, punch(t, 11, 22, 30), punch(t, 12, 6, 0))
	in.Override = &DayOverride{CheckIn: &correctedIn}

	day := Adjudicate(testClk, in)
	require.NotNil(t, day.CheckIn)
	assert.True(t, day.CheckIn.Equal(correctedIn))
	assert.False(t, day.Late, "corrected check-in is within grace")
}

func TestAdjudicateFutureDay(t *testing.T) {
	in := nightInput(t, punch(t, 11, 21, 30))
	in.Future = true
	day := Adjudicate(testClk, in)

	assert.True(t, day.IsFutureDay)
	assert.Equal(t, StatusNone, day.Status)
	assert.Nil(t, day.CheckIn)
	assert.False(t, day.Late)
}

func TestAdjudicateUnresolvedShift(t *testing.T) {
	in := nightInput(t, punch(t, 11, 23, 0))
	in.Window = nil
	day := Adjudicate(testClk, in)

	assert.Empty(t, day.ResolvedShiftCode)
	assert.Equal(t, StatusPresent, day.Status, "best-effort inference from punches")
	assert.False(t, day.Late, "no window, no late/early evaluation")

	in.Punches = nil
	day = Adjudicate(testClk, in)
	assert.Equal(t, StatusAbsent, day.Status)
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input string
		want  DayStatus
	}{
		{"Paid Leave", StatusPaidLeave},
		{"paid leave", StatusPaidLeave},
		{"paid_leave", StatusPaidLeave},
		{"PAID-LEAVE", StatusPaidLeave},
		{"Leave Without Inform", StatusLeaveWithoutInform},
		{"Work From Home", StatusWorkFromHome},
		{"wfh", StatusWorkFromHome},
		{"Half Day", StatusHalfDay},
		{"present", StatusPresent},
		{"Weekly Off", StatusHoliday},
	}
	for _, tc := range cases {
		got, ok := ParseStatus(tc.input)
		require.True(t, ok, "ParseStatus(%q)", tc.input)
		assert.Equal(t, tc.want, got, "ParseStatus(%q)", tc.input)
	}

	_, ok := ParseStatus("vacationing")
	assert.False(t, ok)
}
