package payroll

import "context"

type PayrollRepository interface {
	// CreateRun inserts a draft run. A partial unique index over
	// (period_month, period_year) where status <> 'cancelled' makes the
	// second concurrent insert fail; that violation surfaces as
	// ErrDuplicatePeriod.
	CreateRun(ctx context.Context, run Run) (Run, error)

	GetRunByID(ctx context.Context, id string) (Run, error)
	GetRunByPeriod(ctx context.Context, month, year int) (Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, int64, error)

	// InsertDetails writes a batch of details. Callers run it inside a
	// transaction so a batch lands fully or not at all.
	InsertDetails(ctx context.Context, details []Detail) error

	// RecalcRunTotals recomputes employee count and gross/deduction/net sums
	// from the stored details, never from in-memory accumulation.
	RecalcRunTotals(ctx context.Context, runID string) (Run, error)

	// FinalizeRun moves draft -> finalized, stamping finalized_by/at.
	// Returns ErrInvalidTransition when the run is not draft.
	FinalizeRun(ctx context.Context, runID, finalizedBy string) (Run, error)

	// MarkRunPaid moves finalized -> paid and flips every detail's
	// payment_status in the same transaction.
	MarkRunPaid(ctx context.Context, runID string) (Run, error)

	// CancelRun moves draft -> cancelled, releasing the period key.
	CancelRun(ctx context.Context, runID string) (Run, error)

	ListDetailsByRun(ctx context.Context, runID string) ([]Detail, error)
	GetDetailByID(ctx context.Context, id string) (Detail, error)
	SetSlipGenerated(ctx context.Context, detailID string) error
}
