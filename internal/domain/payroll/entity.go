package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum. Transitions: draft -> finalized -> paid, and
// draft -> cancelled. Nothing leaves cancelled or paid.
type RunStatus string

const (
	RunStatusDraft     RunStatus = "draft"
	RunStatusFinalized RunStatus = "finalized"
	RunStatusPaid      RunStatus = "paid"
	RunStatusCancelled RunStatus = "cancelled"
)

// CanTransitionTo reports whether the lifecycle permits moving to next.
func (s RunStatus) CanTransitionTo(next RunStatus) bool {
	switch s {
	case RunStatusDraft:
		return next == RunStatusFinalized || next == RunStatusCancelled
	case RunStatusFinalized:
		return next == RunStatusPaid
	default:
		return false
	}
}

// Locked reports whether the run's details are numerically frozen.
func (s RunStatus) Locked() bool {
	return s == RunStatusFinalized || s == RunStatusPaid
}

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Run is one payroll-processing session for a (month, year). At most one
// non-cancelled run may exist per period; the store enforces that with a
// partial unique index.
type Run struct {
	ID          string
	PeriodMonth int
	PeriodYear  int
	PeriodStart time.Time
	PeriodEnd   time.Time

	Status RunStatus

	EmployeeCount   int
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal

	GeneratedBy string
	GeneratedAt time.Time
	FinalizedBy *string
	FinalizedAt *time.Time
	PaidAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Detail is one employee's computed line items within a run. Once the parent
// run is finalized every numeric field is frozen; the paid transition only
// flips PaymentStatus and PaidAt.
type Detail struct {
	ID         string
	RunID      string
	EmployeeID string

	WorkingDays int
	PresentDays int
	LateDays    int
	AbsentDays  int
	LeaveDays   int

	OvertimeHours decimal.Decimal
	OvertimePay   decimal.Decimal

	BaseSalary         decimal.Decimal
	AllowanceMeal      decimal.Decimal
	AllowanceTransport decimal.Decimal
	AllowancePosition  decimal.Decimal
	AllowanceOther     decimal.Decimal

	BPJSHealthEmployee     decimal.Decimal
	BPJSHealthEmployer     decimal.Decimal
	BPJSEmploymentEmployee decimal.Decimal
	BPJSEmploymentEmployer decimal.Decimal

	PPh21           decimal.Decimal
	PPh21Unmapped   bool
	LateDeduction   decimal.Decimal
	OtherDeductions decimal.Decimal

	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal

	PaymentStatus PaymentStatus
	PaidAt        *time.Time
	SlipGenerated bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
