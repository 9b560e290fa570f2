package tax

import (
	"io"
	"log/slog"
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() tax.TERTable {
	return tax.TERTable{
		StatusCategories: map[string]string{
			"TK/0": "A",
			"K/1":  "B",
		},
		Rates: map[string][]tax.Rate{
			"A": {
				{Category: "A", MinIncome: decimal.Zero, MaxIncome: decimal.NewFromInt(5400000), Rate: decimal.Zero},
				{Category: "A", MinIncome: decimal.NewFromInt(5400001), MaxIncome: decimal.NewFromInt(5650000), Rate: decimal.NewFromFloat(0.0025)},
				{Category: "A", MinIncome: decimal.NewFromInt(5650001), MaxIncome: decimal.NewFromInt(5950000), Rate: decimal.NewFromFloat(0.005)},
			},
			"B": {
				// Overlapping bands: both cover 6,250,000.
				{Category: "B", MinIncome: decimal.NewFromInt(6200000), MaxIncome: decimal.NewFromInt(6300000), Rate: decimal.NewFromFloat(0.0025)},
				{Category: "B", MinIncome: decimal.NewFromInt(6250000), MaxIncome: decimal.NewFromInt(6500000), Rate: decimal.NewFromFloat(0.0075)},
			},
		},
	}
}

func newTestResolver() *Resolver {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewResolver(testTable(), logger)
}

func TestResolveZeroRateBandIsNotUnmapped(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(decimal.NewFromInt(5000000), "TK/0")
	assert.False(t, res.Unmapped, "a genuine 0%% band is mapped data")
	assert.True(t, res.Rate.IsZero())
	assert.Equal(t, "A", res.Category)
}

func TestResolveBandSelection(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(decimal.NewFromInt(5500000), "TK/0")
	require.False(t, res.Unmapped)
	assert.True(t, res.Rate.Equal(decimal.NewFromFloat(0.0025)), "rate = %s", res.Rate)

	res = r.Resolve(decimal.NewFromInt(5700000), "TK/0")
	require.False(t, res.Unmapped)
	assert.True(t, res.Rate.Equal(decimal.NewFromFloat(0.005)), "rate = %s", res.Rate)
}

func TestResolveOverlappingBandsHighestRateWins(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(decimal.NewFromInt(6250000), "K/1")
	require.False(t, res.Unmapped)
	assert.True(t, res.Rate.Equal(decimal.NewFromFloat(0.0075)), "rate = %s", res.Rate)
}

func TestResolveUnmappedCases(t *testing.T) {
	r := newTestResolver()

	// Unknown PTKP status
	res := r.Resolve(decimal.NewFromInt(5000000), "K/9")
	assert.True(t, res.Unmapped)
	assert.True(t, res.Rate.IsZero())

	// Income above every band in the category
	res = r.Resolve(decimal.NewFromInt(10000000), "TK/0")
	assert.True(t, res.Unmapped)
	assert.Equal(t, "A", res.Category)

	// Empty status
	res = r.Resolve(decimal.NewFromInt(5000000), "")
	assert.True(t, res.Unmapped)
}

func TestResolveNonPositiveIncome(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(decimal.Zero, "TK/0")
	assert.False(t, res.Unmapped, "zero income is simply untaxed, not a lookup miss")
	assert.True(t, res.Rate.IsZero())
}

func TestWithholdFloorsToWholeRupiah(t *testing.T) {
	r := newTestResolver()

	// 5,555,555 x 0.0025 = 13,888.8875
	amount, res := r.Withhold(decimal.NewFromInt(5555555), "TK/0")
	require.False(t, res.Unmapped)
	assert.True(t, amount.Equal(decimal.NewFromInt(13888)), "amount = %s", amount)
}

func TestWithholdUnmappedIsZero(t *testing.T) {
	r := newTestResolver()

	amount, res := r.Withhold(decimal.NewFromInt(10000000), "TK/0")
	assert.True(t, res.Unmapped)
	assert.True(t, amount.IsZero())
}
