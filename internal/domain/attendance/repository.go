package attendance

import "context"

type AttendanceRepository interface {
	ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]Record, error)
}

type SummaryRepository interface {
	// Upsert writes the summary keyed on (employee_id, month, year),
	// overwriting any prior row for that key.
	Upsert(ctx context.Context, summary MonthlySummary) (MonthlySummary, error)
	Get(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error)
}
