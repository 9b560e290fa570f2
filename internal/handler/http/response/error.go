package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Salary domain errors
	case errors.Is(err, salary.ErrConfigNotFound):
		NotFound(w, "Salary configuration not found")
	case errors.Is(err, salary.ErrInvalidBaseSalary):
		BadRequest(w, "Base salary must be greater than zero", nil)
	case errors.Is(err, salary.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Overtime domain errors
	case errors.Is(err, overtime.ErrRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrRequestAlreadyProcessed):
		Conflict(w, "Overtime request already processed")
	case errors.Is(err, overtime.ErrInvalidDuration):
		BadRequest(w, "Overtime end time must be after start time", nil)
	case errors.Is(err, overtime.ErrDailyCapExceeded):
		BadRequest(w, "Overtime duration exceeds the daily cap for working days", nil)
	case errors.Is(err, overtime.ErrWeeklyCapExceeded):
		BadRequest(w, "Weekly overtime cap exceeded", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSummaryNotFound):
		NotFound(w, "Attendance summary not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrDetailNotFound):
		NotFound(w, "Payroll detail not found")
	case errors.Is(err, payroll.ErrDuplicatePeriod):
		Conflict(w, "A payroll run already exists for this period")
	case errors.Is(err, payroll.ErrInvalidTransition):
		Conflict(w, "Payroll run status does not allow this action")
	case errors.Is(err, payroll.ErrRunLocked):
		Conflict(w, "Payroll run is finalized and can no longer change")
	case errors.Is(err, payroll.ErrNoActiveEmployees):
		BadRequest(w, "No active employees with a salary configuration", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
