package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Request is an overtime submission. Duration, multiplier and pay are
// computed and frozen when an approver moves it to approved; payroll reads
// those stored values and never recomputes them.
type Request struct {
	ID         string
	EmployeeID string
	Date       time.Time
	StartTime  time.Time
	EndTime    time.Time
	IsHoliday  bool
	Reason     *string

	Status          RequestStatus
	DurationHours   decimal.Decimal
	Multiplier      decimal.Decimal
	Pay             decimal.Decimal
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}
