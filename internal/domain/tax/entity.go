package tax

import "github.com/shopspring/decimal"

// Rate is one row of the TER (tarif efektif rata-rata) table: within a
// category, the effective withholding rate for a monthly income band.
// Rate is a fraction: 0.0025 means 0.25%.
type Rate struct {
	Category  string
	MinIncome decimal.Decimal
	MaxIncome decimal.Decimal
	Rate      decimal.Decimal
}

// TERTable is the full two-stage lookup: PTKP status to rate category, then
// category plus income band to rate. Loaded once per payroll run.
type TERTable struct {
	StatusCategories map[string]string // "TK/0" -> "A"
	Rates            map[string][]Rate // category -> bands
}

// Resolution distinguishes a resolved rate from a missing mapping. Both
// currently withhold zero for the unmapped case, but audit needs to tell a
// 0% band apart from absent data.
type Resolution struct {
	Rate     decimal.Decimal
	Category string
	Unmapped bool
	Reason   string
}
