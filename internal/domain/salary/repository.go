package salary

import (
	"context"
	"time"
)

type SalaryRepository interface {
	// Create inserts a new effective-dated row and deactivates the prior
	// active row for the employee in the same transaction.
	Create(ctx context.Context, cfg Config) (Config, error)

	GetActiveByEmployee(ctx context.Context, employeeID string) (Config, error)

	// GetAsOf resolves the configuration effective at the given date,
	// regardless of which row is currently active.
	GetAsOf(ctx context.Context, employeeID string, at time.Time) (Config, error)

	// GetActiveAll returns the active configuration for every employee that
	// has one, keyed by employee id.
	GetActiveAll(ctx context.Context) (map[string]Config, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]Config, error)
}
