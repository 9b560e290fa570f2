package employee

import "time"

// Employee is the read-only roster view this engine consumes. Employee
// management itself lives in the HR administration service.
type Employee struct {
	ID           string
	FullName     string
	EmployeeCode string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
