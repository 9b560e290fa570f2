package calendar

import "github.com/shopspring/decimal"

// OvertimePolicy holds the bracket multipliers and caps from Indonesian
// labor-law overtime rules. Loaded once at startup and never mutated.
type OvertimePolicy struct {
	WeekdayRateFirstTwo   decimal.Decimal // hours 1-2 on a working day
	WeekdayRateAfterTwo   decimal.Decimal // hour 3 onward on a working day
	HolidayRateFirstEight decimal.Decimal // hours 1-8 on a holiday/weekend
	HolidayRateNineToTen  decimal.Decimal // hours 9-10
	HolidayRateAfterTen   decimal.Decimal // hour 11 onward

	MaxWeekdayHoursPerDay decimal.Decimal
	MaxHoursPerWeek       decimal.Decimal
}

// DefaultOvertimePolicy mirrors the statutory multipliers
// (Kepmenakertrans 102/2004): 1.5x/2x on working days, 2x/3x/4x on holidays.
func DefaultOvertimePolicy() OvertimePolicy {
	return OvertimePolicy{
		WeekdayRateFirstTwo:   decimal.NewFromFloat(1.5),
		WeekdayRateAfterTwo:   decimal.NewFromInt(2),
		HolidayRateFirstEight: decimal.NewFromInt(2),
		HolidayRateNineToTen:  decimal.NewFromInt(3),
		HolidayRateAfterTen:   decimal.NewFromInt(4),
		MaxWeekdayHoursPerDay: decimal.NewFromInt(4),
		MaxHoursPerWeek:       decimal.NewFromInt(18),
	}
}
