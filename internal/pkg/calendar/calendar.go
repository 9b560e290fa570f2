package calendar

import (
	"time"
)

// HolidaySet holds the declared public holidays, keyed by "2006-01-02".
type HolidaySet map[string]struct{}

func NewHolidaySet(dates []string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			continue
		}
		set[d] = struct{}{}
	}
	return set
}

func (h HolidaySet) Contains(t time.Time) bool {
	_, ok := h[t.Format("2006-01-02")]
	return ok
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsNonWorkingDay reports whether t falls on a weekend or a declared holiday.
// Used to select the holiday overtime brackets at submission time.
func IsNonWorkingDay(t time.Time, holidays HolidaySet) bool {
	return IsWeekend(t) || holidays.Contains(t)
}

// PeriodBounds returns the first and last day of the given month at midnight UTC.
func PeriodBounds(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// WorkingDaysInMonth counts Monday-Friday days in the month. Public holidays
// are deliberately not subtracted; payroll proration has always counted them
// as working days and changing that would shift every historical summary.
func WorkingDaysInMonth(month, year int) int {
	start, end := PeriodBounds(month, year)
	return WeekdayCount(start, end)
}

// WeekdayCount counts Monday-Friday days in [from, to], inclusive.
// Returns 0 when to is before from.
func WeekdayCount(from, to time.Time) int {
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !IsWeekend(d) {
			count++
		}
	}
	return count
}

// ClipToMonth intersects [start, end] with the given month. The returned ok
// is false when the range does not overlap the month at all.
func ClipToMonth(start, end time.Time, month, year int) (time.Time, time.Time, bool) {
	monthStart, monthEnd := PeriodBounds(month, year)
	if start.Before(monthStart) {
		start = monthStart
	}
	if end.After(monthEnd) {
		end = monthEnd
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// WeekStart returns the Monday of the week containing t, at midnight.
// Weekly overtime caps are accounted Monday through Sunday.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
