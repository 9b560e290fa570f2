package tax

import (
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/tax"
	"github.com/shopspring/decimal"
)

// Resolver performs the two-stage PPh21 TER lookup over a loaded table:
// PTKP status resolves to a rate category, then the category's income bands
// select the effective rate. Lookup misses degrade to zero withholding with
// an operator-facing warning; an incomplete tax table must never block
// payroll generation.
type Resolver struct {
	table  tax.TERTable
	logger *slog.Logger
}

func NewResolver(table tax.TERTable, logger *slog.Logger) *Resolver {
	return &Resolver{table: table, logger: logger}
}

// Resolve finds the effective rate for the given gross monthly income and
// PTKP status. The Unmapped flag separates "no data" from a genuine 0% band.
func (r *Resolver) Resolve(grossMonthlyIncome decimal.Decimal, ptkpStatus string) tax.Resolution {
	if grossMonthlyIncome.LessThanOrEqual(decimal.Zero) {
		return tax.Resolution{Rate: decimal.Zero}
	}
	if ptkpStatus == "" {
		return tax.Resolution{Rate: decimal.Zero, Unmapped: true, Reason: "empty ptkp status"}
	}

	category, ok := r.table.StatusCategories[ptkpStatus]
	if !ok {
		return tax.Resolution{Rate: decimal.Zero, Unmapped: true, Reason: "no category mapping for status " + ptkpStatus}
	}

	// The TER table is sparse and bands may overlap; when more than one band
	// covers the income, the highest rate wins.
	found := false
	best := decimal.Zero
	for _, band := range r.table.Rates[category] {
		if grossMonthlyIncome.LessThan(band.MinIncome) || grossMonthlyIncome.GreaterThan(band.MaxIncome) {
			continue
		}
		if !found || band.Rate.GreaterThan(best) {
			best = band.Rate
			found = true
		}
	}
	if !found {
		return tax.Resolution{
			Rate:     decimal.Zero,
			Category: category,
			Unmapped: true,
			Reason:   "no rate band covers income in category " + category,
		}
	}

	return tax.Resolution{Rate: best, Category: category}
}

// Withhold computes floor(gross x rate) in whole rupiah. Floor, not round:
// the statutory convention never over-withholds by rounding up.
func (r *Resolver) Withhold(grossMonthlyIncome decimal.Decimal, ptkpStatus string) (decimal.Decimal, tax.Resolution) {
	res := r.Resolve(grossMonthlyIncome, ptkpStatus)
	if res.Unmapped {
		r.logger.Warn("pph21 lookup miss, withholding zero",
			slog.String("ptkp_status", ptkpStatus),
			slog.String("reason", res.Reason),
		)
		return decimal.Zero, res
	}
	return grossMonthlyIncome.Mul(res.Rate).Floor(), res
}
