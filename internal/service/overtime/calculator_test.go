package overtime

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRate = decimal.NewFromInt(20000)

func interval(hours float64) (time.Time, time.Time) {
	start := time.Date(2026, time.August, 18, 18, 0, 0, 0, time.UTC)
	return start, start.Add(time.Duration(hours * float64(time.Hour)))
}

func TestComputeWeekdayWithinFirstBracket(t *testing.T) {
	start, end := interval(2)
	result := Compute(start, end, testRate, false, calendar.DefaultOvertimePolicy())

	require.True(t, result.Valid)
	// 2h x 1.5 x 20,000
	assert.True(t, result.Pay.Equal(decimal.NewFromInt(60000)), "pay = %s", result.Pay)
	assert.True(t, result.Multiplier.Equal(decimal.NewFromFloat(1.5)), "multiplier = %s", result.Multiplier)
	assert.True(t, result.DurationHours.Equal(decimal.NewFromInt(2)))
}

func TestComputeWeekdaySecondBracket(t *testing.T) {
	start, end := interval(3)
	result := Compute(start, end, testRate, false, calendar.DefaultOvertimePolicy())

	require.True(t, result.Valid)
	// 2h x 1.5 + 1h x 2 = 5 weighted hours
	assert.True(t, result.Pay.Equal(decimal.NewFromInt(100000)), "pay = %s", result.Pay)
	// blended: 100,000 / (3 x 20,000)
	assert.True(t, result.Multiplier.Equal(decimal.NewFromFloat(1.67)), "multiplier = %s", result.Multiplier)
}

func TestComputeHolidayBands(t *testing.T) {
	start, end := interval(9)
	result := Compute(start, end, testRate, true, calendar.DefaultOvertimePolicy())

	require.True(t, result.Valid)
	// 8h x 2 + 1h x 3 = 19 weighted hours
	assert.True(t, result.Pay.Equal(decimal.NewFromInt(380000)), "pay = %s", result.Pay)
}

func TestComputeHolidayAllThreeBands(t *testing.T) {
	start, end := interval(11)
	result := Compute(start, end, testRate, true, calendar.DefaultOvertimePolicy())

	require.True(t, result.Valid)
	// 8h x 2 + 2h x 3 + 1h x 4 = 26 weighted hours
	assert.True(t, result.Pay.Equal(decimal.NewFromInt(520000)), "pay = %s", result.Pay)
}

func TestComputeRejectsNonPositiveDuration(t *testing.T) {
	start, end := interval(2)
	result := Compute(end, start, testRate, false, calendar.DefaultOvertimePolicy())

	assert.False(t, result.Valid)
	assert.True(t, result.Pay.IsZero())
	assert.True(t, result.Multiplier.IsZero())
}

func TestComputeWeekdayDailyCap(t *testing.T) {
	start, end := interval(4.5)
	result := Compute(start, end, testRate, false, calendar.DefaultOvertimePolicy())
	assert.False(t, result.Valid, "4.5h exceeds the 4h weekday cap")

	// Same duration on a holiday has no daily cap.
	holiday := Compute(start, end, testRate, true, calendar.DefaultOvertimePolicy())
	assert.True(t, holiday.Valid)
}

func TestComputeFractionalDurationRounding(t *testing.T) {
	start, end := interval(1.255)
	result := Compute(start, end, testRate, false, calendar.DefaultOvertimePolicy())

	require.True(t, result.Valid)
	assert.True(t, result.DurationHours.Equal(decimal.NewFromFloat(1.26)), "duration = %s", result.DurationHours)
}

func TestValidateWeeklyHours(t *testing.T) {
	maxWeekly := calendar.DefaultOvertimePolicy().MaxHoursPerWeek

	err := ValidateWeeklyHours(decimal.NewFromInt(15), decimal.NewFromInt(3), maxWeekly)
	assert.NoError(t, err, "exactly at the cap is allowed")

	err = ValidateWeeklyHours(decimal.NewFromInt(16), decimal.NewFromInt(3), maxWeekly)
	require.Error(t, err)
	assert.ErrorIs(t, err, overtime.ErrWeeklyCapExceeded)

	err = ValidateWeeklyHours(decimal.Zero, decimal.Zero, maxWeekly)
	require.Error(t, err, "zero new hours is rejected")
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "duration_hours", errs[0].Field)
}
