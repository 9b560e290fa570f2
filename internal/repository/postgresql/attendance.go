package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.Record, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, clock_in, clock_out, status,
			   is_late, late_minutes, work_minutes, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.Status,
			&rec.IsLate, &rec.LateMinutes, &rec.WorkMinutes, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

type summaryRepository struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &summaryRepository{db: db}
}

const summaryColumns = `
	id, employee_id, month, year,
	working_days, present_days, late_days, late_minutes, absent_days, leave_days,
	overtime_hours, overtime_pay, late_deduction,
	generated_at, created_at, updated_at
`

func scanSummary(row pgx.Row) (attendance.MonthlySummary, error) {
	var s attendance.MonthlySummary
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Month, &s.Year,
		&s.WorkingDays, &s.PresentDays, &s.LateDays, &s.LateMinutes, &s.AbsentDays, &s.LeaveDays,
		&s.OvertimeHours, &s.OvertimePay, &s.LateDeduction,
		&s.GeneratedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *summaryRepository) Upsert(ctx context.Context, summary attendance.MonthlySummary) (attendance.MonthlySummary, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_summaries (
			employee_id, month, year,
			working_days, present_days, late_days, late_minutes, absent_days, leave_days,
			overtime_hours, overtime_pay, late_deduction, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (employee_id, month, year) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			present_days = EXCLUDED.present_days,
			late_days = EXCLUDED.late_days,
			late_minutes = EXCLUDED.late_minutes,
			absent_days = EXCLUDED.absent_days,
			leave_days = EXCLUDED.leave_days,
			overtime_hours = EXCLUDED.overtime_hours,
			overtime_pay = EXCLUDED.overtime_pay,
			late_deduction = EXCLUDED.late_deduction,
			generated_at = EXCLUDED.generated_at,
			updated_at = NOW()
		RETURNING ` + summaryColumns

	stored, err := scanSummary(q.QueryRow(ctx, query,
		summary.EmployeeID, summary.Month, summary.Year,
		summary.WorkingDays, summary.PresentDays, summary.LateDays, summary.LateMinutes,
		summary.AbsentDays, summary.LeaveDays,
		summary.OvertimeHours, summary.OvertimePay, summary.LateDeduction, summary.GeneratedAt,
	))
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to upsert attendance summary: %w", err)
	}

	return stored, nil
}

func (r *summaryRepository) Get(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + summaryColumns + `
		FROM attendance_summaries
		WHERE employee_id = $1 AND month = $2 AND year = $3
	`

	summary, err := scanSummary(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.MonthlySummary{}, attendance.ErrSummaryNotFound
		}
		return attendance.MonthlySummary{}, fmt.Errorf("failed to get attendance summary: %w", err)
	}

	return summary, nil
}
