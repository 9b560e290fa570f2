package postgresql_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== RUN LIFECYCLE TESTS =====

func TestPayrollRepository_CreateRun_DuplicatePeriod(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(testDB)

	first, err := repo.CreateRun(ctx, draftRun(8, 2026))
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusDraft, first.Status)

	_, err = repo.CreateRun(ctx, draftRun(8, 2026))
	require.ErrorIs(t, err, payroll.ErrDuplicatePeriod)

	// A different period is unaffected.
	_, err = repo.CreateRun(ctx, draftRun(9, 2026))
	require.NoError(t, err)
}

func TestPayrollRepository_CreateRun_ConcurrentSamePeriod(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(testDB)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = repo.CreateRun(ctx, draftRun(8, 2026))
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, payroll.ErrDuplicatePeriod)
	}
	assert.Equal(t, 1, created, "exactly one concurrent create may win the period")
}

func TestPayrollRepository_CreateRun_CancelledRunReleasesPeriod(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(testDB)

	run, err := repo.CreateRun(ctx, draftRun(8, 2026))
	require.NoError(t, err)

	_, err = repo.CancelRun(ctx, run.ID)
	require.NoError(t, err)

	again, err := repo.CreateRun(ctx, draftRun(8, 2026))
	require.NoError(t, err)
	assert.NotEqual(t, run.ID, again.ID)
}

func TestPayrollRepository_MarkRunPaid_RejectsDraft(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(testDB)

	run, err := repo.CreateRun(ctx, draftRun(8, 2026))
	require.NoError(t, err)

	_, err = repo.MarkRunPaid(ctx, run.ID)
	require.ErrorIs(t, err, payroll.ErrInvalidTransition)

	current, err := repo.GetRunByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusDraft, current.Status)
	assert.Nil(t, current.PaidAt)
}

func TestPayrollRepository_FinalizeRun_RejectsNonDraft(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(testDB)

	run, err := repo.CreateRun(ctx, draftRun(8, 2026))
	require.NoError(t, err)

	finalized, err := repo.FinalizeRun(ctx, run.ID, run.GeneratedBy)
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusFinalized, finalized.Status)
	require.NotNil(t, finalized.FinalizedBy)
	assert.Equal(t, run.GeneratedBy, *finalized.FinalizedBy)

	_, err = repo.FinalizeRun(ctx, run.ID, run.GeneratedBy)
	require.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestPayrollRepository_FinalizeRun_MissingRun(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(testDB)

	_, err := repo.FinalizeRun(ctx, "00000000-0000-0000-0000-000000000000", "00000000-0000-0000-0000-000000000001")
	require.ErrorIs(t, err, payroll.ErrRunNotFound)
}

func TestPayrollRepository_CancelRun_RejectsFinalized(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(testDB)

	run, err := repo.CreateRun(ctx, draftRun(8, 2026))
	require.NoError(t, err)

	_, err = repo.FinalizeRun(ctx, run.ID, run.GeneratedBy)
	require.NoError(t, err)

	_, err = repo.CancelRun(ctx, run.ID)
	require.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

// ===== DETAIL IMMUTABILITY TESTS =====

func TestPayrollRepository_MarkRunPaid_FreezesDetailAmounts(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(testDB)

	employeeID := createTestEmployee(t, ctx, "EMP-001")

	run, err := repo.CreateRun(ctx, draftRun(8, 2026))
	require.NoError(t, err)

	err = repo.InsertDetails(ctx, []payroll.Detail{testDetail(run.ID, employeeID)})
	require.NoError(t, err)

	run, err = repo.RecalcRunTotals(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, run.EmployeeCount)

	_, err = repo.FinalizeRun(ctx, run.ID, run.GeneratedBy)
	require.NoError(t, err)

	before, err := repo.ListDetailsByRun(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, before, 1)

	paid, err := repo.MarkRunPaid(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	after, err := repo.ListDetailsByRun(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, after, 1)

	// Only the payment fields move; every amount stays frozen.
	assert.Equal(t, payroll.PaymentStatusPaid, after[0].PaymentStatus)
	require.NotNil(t, after[0].PaidAt)
	assert.True(t, after[0].GrossSalary.Equal(before[0].GrossSalary))
	assert.True(t, after[0].TotalDeductions.Equal(before[0].TotalDeductions))
	assert.True(t, after[0].NetSalary.Equal(before[0].NetSalary))
	assert.True(t, after[0].OvertimePay.Equal(before[0].OvertimePay))
	assert.True(t, after[0].PPh21.Equal(before[0].PPh21))
	assert.True(t, after[0].BaseSalary.Equal(before[0].BaseSalary))
	assert.Equal(t, before[0].WorkingDays, after[0].WorkingDays)
}

func TestPayrollRepository_RecalcRunTotals_MatchesStoredDetails(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(testDB)

	first := createTestEmployee(t, ctx, "EMP-001")
	second := createTestEmployee(t, ctx, "EMP-002")

	run, err := repo.CreateRun(ctx, draftRun(8, 2026))
	require.NoError(t, err)

	details := []payroll.Detail{
		testDetail(run.ID, first),
		testDetail(run.ID, second),
	}
	err = repo.InsertDetails(ctx, details)
	require.NoError(t, err)

	run, err = repo.RecalcRunTotals(ctx, run.ID)
	require.NoError(t, err)

	expectedGross := details[0].GrossSalary.Add(details[1].GrossSalary)
	expectedNet := details[0].NetSalary.Add(details[1].NetSalary)
	assert.Equal(t, 2, run.EmployeeCount)
	assert.True(t, run.TotalGross.Equal(expectedGross), "gross = %s", run.TotalGross)
	assert.True(t, run.TotalNet.Equal(expectedNet), "net = %s", run.TotalNet)

	// Recalculating again changes nothing.
	again, err := repo.RecalcRunTotals(ctx, run.ID)
	require.NoError(t, err)
	assert.True(t, again.TotalGross.Equal(run.TotalGross))
	assert.Equal(t, run.EmployeeCount, again.EmployeeCount)
}
