package employee

import (
	"testing"
	"time"
)

func TestWeeklyOff(t *testing.T) {
	// 2024-03-02 is a Saturday in ISO week 9 (odd); 2024-03-09 is week 10.
	oddSaturday := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	evenSaturday := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	everyWeek := Employee{AlternateSaturdayGroup: 0}
	groupOne := Employee{AlternateSaturdayGroup: 1}
	groupTwo := Employee{AlternateSaturdayGroup: 2}

	if !everyWeek.WeeklyOff(sunday) || !groupOne.WeeklyOff(sunday) {
		t.Fatal("Sunday is always off")
	}
	if everyWeek.WeeklyOff(monday) {
		t.Fatal("Monday is never off")
	}
	if !everyWeek.WeeklyOff(oddSaturday) || !everyWeek.WeeklyOff(evenSaturday) {
		t.Fatal("group 0 takes every Saturday")
	}
	if !groupOne.WeeklyOff(oddSaturday) || groupOne.WeeklyOff(evenSaturday) {
		t.Fatal("group 1 takes odd ISO weeks")
	}
	if groupTwo.WeeklyOff(oddSaturday) || !groupTwo.WeeklyOff(evenSaturday) {
		t.Fatal("group 2 takes even ISO weeks")
	}
}
