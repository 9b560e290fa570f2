package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is one row of an employee's append-only salary history. A new
// effective-dated row deactivates the prior one; rows are never edited in
// place so payroll for a past period stays reproducible.
type Config struct {
	ID            string
	EmployeeID    string
	EffectiveDate time.Time

	BaseSalary         decimal.Decimal
	AllowanceMeal      decimal.Decimal
	AllowanceTransport decimal.Decimal
	AllowancePosition  decimal.Decimal
	AllowanceOther     decimal.Decimal

	// BPJS contribution rates, fractions of base salary (0.01 = 1%).
	BPJSHealthEmployeeRate     decimal.Decimal
	BPJSHealthEmployerRate     decimal.Decimal
	BPJSEmploymentEmployeeRate decimal.Decimal
	BPJSEmploymentEmployerRate decimal.Decimal

	PTKPStatus string // e.g. "TK/0", "K/1"
	NPWP       *string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// overtime divisor per Kepmenakertrans 102/2004: monthly wage / 173.
var hourlyDivisor = decimal.NewFromInt(173)

// HourlyRate derives the overtime base hourly rate from monthly base salary.
func (c Config) HourlyRate() decimal.Decimal {
	if c.BaseSalary.IsZero() {
		return decimal.Zero
	}
	return c.BaseSalary.DivRound(hourlyDivisor, 2)
}

// TotalAllowances sums the four fixed allowance components.
func (c Config) TotalAllowances() decimal.Decimal {
	return c.AllowanceMeal.
		Add(c.AllowanceTransport).
		Add(c.AllowancePosition).
		Add(c.AllowanceOther)
}
