package payroll

import "errors"

var (
	ErrRunNotFound       = errors.New("payroll run not found")
	ErrDetailNotFound    = errors.New("payroll detail not found")
	ErrDuplicatePeriod   = errors.New("a payroll run already exists for this period")
	ErrInvalidTransition = errors.New("payroll run status does not allow this transition")
	ErrRunLocked         = errors.New("payroll run is finalized, its details can no longer change")
	ErrNoActiveEmployees = errors.New("no active employees with a salary configuration")
)
