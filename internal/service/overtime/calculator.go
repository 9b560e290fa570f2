package overtime

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Result is the outcome of an overtime computation. Callers must check Valid
// before trusting the numbers; an invalid result always carries zero pay.
type Result struct {
	DurationHours decimal.Decimal
	Multiplier    decimal.Decimal
	Pay           decimal.Decimal
	Valid         bool
	Message       string
}

var (
	twoHours   = decimal.NewFromInt(2)
	eightHours = decimal.NewFromInt(8)
	tenHours   = decimal.NewFromInt(10)
)

func invalidResult(duration decimal.Decimal, message string) Result {
	return Result{
		DurationHours: duration,
		Multiplier:    decimal.Zero,
		Pay:           decimal.Zero,
		Valid:         false,
		Message:       message,
	}
}

// Compute prices an overtime interval with the bracket rules: hours 1-2 at
// the first weekday multiplier and hour 3 onward at the second, or the
// 1-8 / 9-10 / 11+ holiday bands. Pay is rounded to whole rupiah. The
// returned Multiplier is the blended effective rate, for display only; the
// bracket pay is the number carried into payroll.
func Compute(startTime, endTime time.Time, hourlyRate decimal.Decimal, isHoliday bool, policy calendar.OvertimePolicy) Result {
	duration := decimal.NewFromFloat(endTime.Sub(startTime).Hours()).Round(2)
	if duration.LessThanOrEqual(decimal.Zero) {
		return invalidResult(duration, "end time must be after start time")
	}

	// The daily cap applies to working days only; holiday overtime is capped
	// per week instead.
	if !isHoliday && duration.GreaterThan(policy.MaxWeekdayHoursPerDay) {
		return invalidResult(duration, "duration exceeds the daily overtime cap for working days")
	}

	var weighted decimal.Decimal
	if isHoliday {
		firstEight := decimal.Min(duration, eightHours)
		nineToTen := decimal.Min(decimal.Max(duration.Sub(eightHours), decimal.Zero), twoHours)
		afterTen := decimal.Max(duration.Sub(tenHours), decimal.Zero)

		weighted = firstEight.Mul(policy.HolidayRateFirstEight).
			Add(nineToTen.Mul(policy.HolidayRateNineToTen)).
			Add(afterTen.Mul(policy.HolidayRateAfterTen))
	} else {
		firstTwo := decimal.Min(duration, twoHours)
		afterTwo := decimal.Max(duration.Sub(twoHours), decimal.Zero)

		weighted = firstTwo.Mul(policy.WeekdayRateFirstTwo).
			Add(afterTwo.Mul(policy.WeekdayRateAfterTwo))
	}

	pay := weighted.Mul(hourlyRate).Round(0)

	multiplier := decimal.Zero
	if base := duration.Mul(hourlyRate); base.IsPositive() {
		multiplier = pay.DivRound(base, 2)
	}

	return Result{
		DurationHours: duration,
		Multiplier:    multiplier,
		Pay:           pay,
		Valid:         true,
	}
}

// ValidateWeeklyHours is the submission-time gate: it rejects a new request
// whose Monday-Sunday weekly total would exceed the configured cap. It
// mutates nothing; payroll only ever consumes requests that passed it.
func ValidateWeeklyHours(currentWeekHours, newHours, maxWeeklyHours decimal.Decimal) error {
	if newHours.LessThanOrEqual(decimal.Zero) {
		return validator.ValidationErrors{
			{Field: "duration_hours", Message: "must be greater than zero"},
		}
	}
	if total := currentWeekHours.Add(newHours); total.GreaterThan(maxWeeklyHours) {
		return fmt.Errorf("weekly overtime total %s exceeds %s hours: %w",
			total, maxWeeklyHours, overtime.ErrWeeklyCapExceeded)
	}
	return nil
}
