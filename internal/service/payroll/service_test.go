package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/salary"
	domaintax "github.com/cmlabs-hris/payroll-engine-go/internal/domain/tax"
	"github.com/cmlabs-hris/payroll-engine-go/internal/service/tax"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver(t *testing.T) *tax.Resolver {
	t.Helper()
	table := domaintax.TERTable{
		StatusCategories: map[string]string{"TK/0": "A"},
		Rates: map[string][]domaintax.Rate{
			"A": {
				{Category: "A", MinIncome: decimal.Zero, MaxIncome: decimal.NewFromInt(5400000), Rate: decimal.Zero},
				{Category: "A", MinIncome: decimal.NewFromInt(5400001), MaxIncome: decimal.NewFromInt(7500000), Rate: decimal.NewFromFloat(0.0025)},
			},
		},
	}
	return tax.NewResolver(table, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() salary.Config {
	return salary.Config{
		EmployeeID:         "emp-1",
		BaseSalary:         decimal.NewFromInt(5000000),
		AllowanceMeal:      decimal.NewFromInt(300000),
		AllowanceTransport: decimal.NewFromInt(200000),

		BPJSHealthEmployeeRate:     decimal.NewFromFloat(0.01),
		BPJSHealthEmployerRate:     decimal.NewFromFloat(0.04),
		BPJSEmploymentEmployeeRate: decimal.NewFromFloat(0.02),
		BPJSEmploymentEmployerRate: decimal.NewFromFloat(0.037),

		PTKPStatus: "TK/0",
	}
}

func testSummary() attendance.MonthlySummary {
	return attendance.MonthlySummary{
		EmployeeID:    "emp-1",
		Month:         8,
		Year:          2026,
		WorkingDays:   21,
		PresentDays:   19,
		LateDays:      2,
		AbsentDays:    1,
		LeaveDays:     1,
		OvertimeHours: decimal.NewFromFloat(7.5),
		OvertimePay:   decimal.NewFromInt(450000),
		LateDeduction: decimal.NewFromInt(50000),
	}
}

func TestBuildDetailComposition(t *testing.T) {
	detail := buildDetail("run-1", testConfig(), testSummary(), testResolver(t))

	// gross = 5,000,000 + 300,000 + 200,000 + 450,000
	require.True(t, detail.GrossSalary.Equal(decimal.NewFromInt(5950000)), "gross = %s", detail.GrossSalary)

	assert.True(t, detail.BPJSHealthEmployee.Equal(decimal.NewFromInt(50000)))
	assert.True(t, detail.BPJSHealthEmployer.Equal(decimal.NewFromInt(200000)))
	assert.True(t, detail.BPJSEmploymentEmployee.Equal(decimal.NewFromInt(100000)))
	assert.True(t, detail.BPJSEmploymentEmployer.Equal(decimal.NewFromInt(185000)))

	// floor(5,950,000 x 0.0025) = 14,875
	assert.True(t, detail.PPh21.Equal(decimal.NewFromInt(14875)), "pph21 = %s", detail.PPh21)
	assert.False(t, detail.PPh21Unmapped)

	// deductions: 50,000 late + 50,000 + 100,000 employee BPJS + 14,875 tax.
	// Employer BPJS shares never reduce the employee's pay.
	require.True(t, detail.TotalDeductions.Equal(decimal.NewFromInt(214875)), "deductions = %s", detail.TotalDeductions)
	assert.True(t, detail.NetSalary.Equal(decimal.NewFromInt(5735125)), "net = %s", detail.NetSalary)

	assert.Equal(t, "run-1", detail.RunID)
	assert.Equal(t, "emp-1", detail.EmployeeID)
	assert.Equal(t, 21, detail.WorkingDays)
	assert.Equal(t, "unpaid", string(detail.PaymentStatus))
}

func TestBuildDetailZeroRateBand(t *testing.T) {
	cfg := testConfig()
	cfg.AllowanceMeal = decimal.Zero
	cfg.AllowanceTransport = decimal.Zero

	summary := testSummary()
	summary.OvertimePay = decimal.Zero
	summary.OvertimeHours = decimal.Zero

	// gross = 5,000,000 falls in the 0% band
	detail := buildDetail("run-1", cfg, summary, testResolver(t))
	assert.True(t, detail.PPh21.IsZero())
	assert.False(t, detail.PPh21Unmapped, "a 0%% band is mapped data")
}

func TestBuildDetailUnmappedTaxStillProduces(t *testing.T) {
	cfg := testConfig()
	cfg.PTKPStatus = "K/9" // no category mapping

	detail := buildDetail("run-1", cfg, testSummary(), testResolver(t))

	assert.True(t, detail.PPh21.IsZero())
	assert.True(t, detail.PPh21Unmapped)
	// Net still computed; the miss soft-fails instead of blocking the run.
	expected := detail.GrossSalary.Sub(detail.TotalDeductions)
	assert.True(t, detail.NetSalary.Equal(expected))
}

// fixedStatusRepo serves one run and counts writes; the embedded interface
// panics on anything FinalizeRun should never reach for a locked run.
type fixedStatusRepo struct {
	payroll.PayrollRepository
	run          payroll.Run
	recalcCalls  int
	finalizeCall int
}

func (r *fixedStatusRepo) GetRunByID(ctx context.Context, id string) (payroll.Run, error) {
	return r.run, nil
}

func (r *fixedStatusRepo) RecalcRunTotals(ctx context.Context, runID string) (payroll.Run, error) {
	r.recalcCalls++
	return r.run, nil
}

func (r *fixedStatusRepo) FinalizeRun(ctx context.Context, runID, finalizedBy string) (payroll.Run, error) {
	r.finalizeCall++
	r.run.Status = payroll.RunStatusFinalized
	return r.run, nil
}

func adminContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": "admin-1", "type": "access"})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestFinalizeRunRejectsLockedRunBeforeAnyWrite(t *testing.T) {
	for _, status := range []payroll.RunStatus{payroll.RunStatusFinalized, payroll.RunStatusPaid, payroll.RunStatusCancelled} {
		repo := &fixedStatusRepo{run: payroll.Run{ID: "run-1", Status: status}}
		svc := &PayrollServiceImpl{
			payrollRepo: repo,
			logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		}

		_, err := svc.FinalizeRun(adminContext(t), "run-1")
		require.ErrorIs(t, err, payroll.ErrInvalidTransition, "status %s", status)
		assert.Equal(t, 0, repo.recalcCalls, "status %s: a non-draft run must not be touched", status)
		assert.Equal(t, 0, repo.finalizeCall, "status %s", status)
	}
}

func TestFinalizeRunRecalculatesDraftTotalsFirst(t *testing.T) {
	repo := &fixedStatusRepo{run: payroll.Run{ID: "run-1", Status: payroll.RunStatusDraft}}
	svc := &PayrollServiceImpl{
		payrollRepo: repo,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	result, err := svc.FinalizeRun(adminContext(t), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.recalcCalls)
	assert.Equal(t, 1, repo.finalizeCall)
	assert.Equal(t, string(payroll.RunStatusFinalized), result.Status)
}

func TestBuildDetailTrustsStoredOvertimePay(t *testing.T) {
	summary := testSummary()
	// Deliberately inconsistent hours/pay: the stored pay wins.
	summary.OvertimeHours = decimal.NewFromInt(1)
	summary.OvertimePay = decimal.NewFromInt(999999)

	detail := buildDetail("run-1", testConfig(), summary, testResolver(t))
	assert.True(t, detail.OvertimePay.Equal(decimal.NewFromInt(999999)))
	assert.True(t, detail.GrossSalary.Equal(decimal.NewFromInt(5000000+300000+200000+999999)))
}
