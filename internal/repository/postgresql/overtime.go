package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepository{db: db}
}

const overtimeColumns = `
	o.id, o.employee_id, o.date, o.start_time, o.end_time, o.is_holiday, o.reason,
	o.status, o.duration_hours, o.multiplier, o.pay,
	o.approved_by, o.approved_at, o.rejection_reason,
	o.created_at, o.updated_at
`

func scanOvertime(row pgx.Row) (overtime.Request, error) {
	var req overtime.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.StartTime, &req.EndTime, &req.IsHoliday, &req.Reason,
		&req.Status, &req.DurationHours, &req.Multiplier, &req.Pay,
		&req.ApprovedBy, &req.ApprovedAt, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

func (r *overtimeRepository) Create(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (
			employee_id, date, start_time, end_time, is_holiday, reason,
			status, duration_hours, multiplier, pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, employee_id, date, start_time, end_time, is_holiday, reason,
			status, duration_hours, multiplier, pay,
			approved_by, approved_at, rejection_reason,
			created_at, updated_at
	`

	created, err := scanOvertime(q.QueryRow(ctx, query,
		req.EmployeeID, req.Date, req.StartTime, req.EndTime, req.IsHoliday, req.Reason,
		req.Status, req.DurationHours, req.Multiplier, req.Pay,
	))
	if err != nil {
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return created, nil
}

func (r *overtimeRepository) GetByID(ctx context.Context, id string) (overtime.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeColumns + `, e.full_name
		FROM overtime_requests o
		JOIN employees e ON e.id = o.employee_id
		WHERE o.id = $1
	`

	var req overtime.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.StartTime, &req.EndTime, &req.IsHoliday, &req.Reason,
		&req.Status, &req.DurationHours, &req.Multiplier, &req.Pay,
		&req.ApprovedBy, &req.ApprovedAt, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt, &req.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.Request{}, overtime.ErrRequestNotFound
		}
		return overtime.Request{}, fmt.Errorf("failed to get overtime request: %w", err)
	}

	return req, nil
}

// UpdateStatus transitions a pending request, freezing the computed fields.
// The status guard in the WHERE clause makes concurrent reviews race-safe:
// the loser matches zero rows.
func (r *overtimeRepository) UpdateStatus(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $2, duration_hours = $3, multiplier = $4, pay = $5,
			approved_by = $6, approved_at = $7, rejection_reason = $8,
			updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id, employee_id, date, start_time, end_time, is_holiday, reason,
			status, duration_hours, multiplier, pay,
			approved_by, approved_at, rejection_reason,
			created_at, updated_at
	`

	updated, err := scanOvertime(q.QueryRow(ctx, query,
		req.ID, req.Status, req.DurationHours, req.Multiplier, req.Pay,
		req.ApprovedBy, req.ApprovedAt, req.RejectionReason,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.Request{}, overtime.ErrRequestAlreadyProcessed
		}
		return overtime.Request{}, fmt.Errorf("failed to update overtime request: %w", err)
	}

	return updated, nil
}

func (r *overtimeRepository) SumApprovedHoursInWeek(ctx context.Context, employeeID string, weekStart time.Time) (decimal.Decimal, error) {
	q := database.GetQuerier(ctx, r.db)

	weekEnd := weekStart.AddDate(0, 0, 6)

	query := `
		SELECT COALESCE(SUM(duration_hours), 0)
		FROM overtime_requests
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		  AND status IN ('pending', 'approved')
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, weekStart, weekEnd).Scan(&total); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to sum weekly overtime hours: %w", err)
	}

	return total, nil
}

func (r *overtimeRepository) ListApprovedByMonth(ctx context.Context, employeeID string, month, year int) ([]overtime.Request, error) {
	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_requests o
		WHERE o.employee_id = $1
		  AND o.status = 'approved'
		  AND EXTRACT(MONTH FROM o.date) = $2
		  AND EXTRACT(YEAR FROM o.date) = $3
		ORDER BY o.date
	`

	return r.list(ctx, query, employeeID, month, year)
}

func (r *overtimeRepository) ListByEmployee(ctx context.Context, employeeID string) ([]overtime.Request, error) {
	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_requests o
		WHERE o.employee_id = $1
		ORDER BY o.date DESC
	`

	return r.list(ctx, query, employeeID)
}

func (r *overtimeRepository) list(ctx context.Context, query string, args ...any) ([]overtime.Request, error) {
	q := database.GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	defer rows.Close()

	var requests []overtime.Request
	for rows.Next() {
		req, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overtime requests: %w", err)
	}

	return requests, nil
}
