package salary

import "errors"

var (
	ErrConfigNotFound    = errors.New("salary configuration not found")
	ErrInvalidBaseSalary = errors.New("base salary must be greater than zero")
	ErrEmployeeNotFound  = errors.New("employee not found")
)
