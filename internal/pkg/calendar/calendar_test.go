package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsNonWorkingDay(t *testing.T) {
	holidays := NewHolidaySet([]string{"2026-08-17", "not-a-date"})

	cases := []struct {
		day  time.Time
		want bool
	}{
		{date(2026, time.August, 15), true},  // Saturday
		{date(2026, time.August, 16), true},  // Sunday
		{date(2026, time.August, 17), true},  // declared holiday, a Monday
		{date(2026, time.August, 18), false}, // ordinary Tuesday
	}
	for _, c := range cases {
		got := IsNonWorkingDay(c.day, holidays)
		if got != c.want {
			t.Errorf("IsNonWorkingDay(%s) = %v, want %v", c.day.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestPeriodBounds(t *testing.T) {
	start, end := PeriodBounds(2, 2024)
	if !start.Equal(date(2024, time.February, 1)) {
		t.Errorf("start = %v, want 2024-02-01", start)
	}
	if !end.Equal(date(2024, time.February, 29)) {
		t.Errorf("end = %v, want 2024-02-29 (leap year)", end)
	}
}

func TestWorkingDaysInMonth(t *testing.T) {
	cases := []struct {
		month, year int
		want        int
	}{
		{8, 2026, 21},
		{2, 2026, 20},
		{2, 2024, 21}, // leap February starting on Thursday
	}
	for _, c := range cases {
		got := WorkingDaysInMonth(c.month, c.year)
		if got != c.want {
			t.Errorf("WorkingDaysInMonth(%d, %d) = %d, want %d", c.month, c.year, got, c.want)
		}
	}
}

func TestWeekdayCount(t *testing.T) {
	// Sat 2026-08-01 through Mon 2026-08-03: only the Monday counts.
	got := WeekdayCount(date(2026, time.August, 1), date(2026, time.August, 3))
	if got != 1 {
		t.Errorf("WeekdayCount = %d, want 1", got)
	}

	// Inverted range
	if got := WeekdayCount(date(2026, time.August, 3), date(2026, time.August, 1)); got != 0 {
		t.Errorf("WeekdayCount on inverted range = %d, want 0", got)
	}
}

func TestClipToMonth(t *testing.T) {
	// Request spans July into August; only the August slice survives.
	start, end, ok := ClipToMonth(date(2026, time.July, 28), date(2026, time.August, 3), 8, 2026)
	if !ok {
		t.Fatal("expected overlap with August")
	}
	if !start.Equal(date(2026, time.August, 1)) || !end.Equal(date(2026, time.August, 3)) {
		t.Errorf("clip = [%v, %v], want [2026-08-01, 2026-08-03]", start, end)
	}

	_, _, ok = ClipToMonth(date(2026, time.July, 1), date(2026, time.July, 10), 8, 2026)
	if ok {
		t.Error("expected no overlap for a July-only range against August")
	}
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		day  time.Time
		want time.Time
	}{
		{date(2026, time.August, 31), date(2026, time.August, 31)}, // Monday maps to itself
		{date(2026, time.August, 30), date(2026, time.August, 24)}, // Sunday belongs to the prior Monday
		{date(2026, time.August, 26), date(2026, time.August, 24)}, // mid-week
	}
	for _, c := range cases {
		got := WeekStart(c.day)
		if !got.Equal(c.want) {
			t.Errorf("WeekStart(%s) = %v, want %v", c.day.Format("2006-01-02"), got, c.want)
		}
	}
}
