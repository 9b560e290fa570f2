package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusSick    Status = "sick"
)

// Record is one employee-day written by the attendance-capture flow.
// Read-only to the payroll engine.
type Record struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	ClockIn     *time.Time
	ClockOut    *time.Time
	Status      Status
	IsLate      bool
	LateMinutes int
	WorkMinutes int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MonthlySummary is the derived aggregate, one row per
// (employee, month, year). Regeneration upserts on that key.
type MonthlySummary struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int

	WorkingDays int
	PresentDays int
	LateDays    int
	LateMinutes int
	AbsentDays  int
	LeaveDays   int

	OvertimeHours decimal.Decimal
	OvertimePay   decimal.Decimal
	LateDeduction decimal.Decimal

	GeneratedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
