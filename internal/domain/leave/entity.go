package leave

import "time"

type RequestStatus string

const (
	RequestStatusWaitingApproval RequestStatus = "waiting_approval"
	RequestStatusApproved        RequestStatus = "approved"
	RequestStatusRejected        RequestStatus = "rejected"
)

// Request is the slice of a leave request payroll cares about. Only approved
// requests count toward leave days.
type Request struct {
	ID         string
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Status     RequestStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
