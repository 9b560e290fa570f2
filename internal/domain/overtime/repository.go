package overtime

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OvertimeRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// UpdateStatus transitions a pending request and freezes the computed
	// duration, multiplier and pay. Fails for non-pending rows.
	UpdateStatus(ctx context.Context, req Request) (Request, error)

	// SumApprovedHoursInWeek totals approved plus pending duration for the
	// Monday-Sunday week starting at weekStart, used by the submission gate.
	SumApprovedHoursInWeek(ctx context.Context, employeeID string, weekStart time.Time) (decimal.Decimal, error)

	ListApprovedByMonth(ctx context.Context, employeeID string, month, year int) ([]Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
}
