package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const runColumns = `
	id, period_month, period_year, period_start, period_end, status,
	employee_count, total_gross, total_deductions, total_net,
	generated_by, generated_at, finalized_by, finalized_at, paid_at,
	created_at, updated_at
`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	err := row.Scan(
		&run.ID, &run.PeriodMonth, &run.PeriodYear, &run.PeriodStart, &run.PeriodEnd, &run.Status,
		&run.EmployeeCount, &run.TotalGross, &run.TotalDeductions, &run.TotalNet,
		&run.GeneratedBy, &run.GeneratedAt, &run.FinalizedBy, &run.FinalizedAt, &run.PaidAt,
		&run.CreatedAt, &run.UpdatedAt,
	)
	return run, err
}

func (r *payrollRepository) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (
			period_month, period_year, period_start, period_end, status,
			generated_by, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + runColumns

	created, err := scanRun(q.QueryRow(ctx, query,
		run.PeriodMonth, run.PeriodYear, run.PeriodStart, run.PeriodEnd, run.Status,
		run.GeneratedBy, run.GeneratedAt,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_runs_period") {
			return payroll.Run{}, payroll.ErrDuplicatePeriod
		}
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetRunByID(ctx context.Context, id string) (payroll.Run, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE id = $1
	`

	run, err := scanRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) GetRunByPeriod(ctx context.Context, month, year int) (payroll.Run, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE period_month = $1 AND period_year = $2 AND status <> 'cancelled'
	`

	run, err := scanRun(q.QueryRow(ctx, query, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run by period: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) ListRuns(ctx context.Context, filter payroll.RunFilter) ([]payroll.Run, int64, error) {
	q := database.GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []any{}
	argPos := 1

	if filter.PeriodYear != nil {
		where += fmt.Sprintf(" AND period_year = $%d", argPos)
		args = append(args, *filter.PeriodYear)
		argPos++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	countQuery := "SELECT COUNT(*) FROM payroll_runs" + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs` + where +
		fmt.Sprintf(" ORDER BY period_year DESC, period_month DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll runs: %w", err)
	}

	return runs, total, nil
}

func (r *payrollRepository) InsertDetails(ctx context.Context, details []payroll.Detail) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_details (
			run_id, employee_id,
			working_days, present_days, late_days, absent_days, leave_days,
			overtime_hours, overtime_pay,
			base_salary, allowance_meal, allowance_transport, allowance_position, allowance_other,
			bpjs_health_employee, bpjs_health_employer,
			bpjs_employment_employee, bpjs_employment_employer,
			pph21, pph21_unmapped, late_deduction, other_deductions,
			gross_salary, total_deductions, net_salary, payment_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
	`

	for _, d := range details {
		_, err := q.Exec(ctx, query,
			d.RunID, d.EmployeeID,
			d.WorkingDays, d.PresentDays, d.LateDays, d.AbsentDays, d.LeaveDays,
			d.OvertimeHours, d.OvertimePay,
			d.BaseSalary, d.AllowanceMeal, d.AllowanceTransport, d.AllowancePosition, d.AllowanceOther,
			d.BPJSHealthEmployee, d.BPJSHealthEmployer,
			d.BPJSEmploymentEmployee, d.BPJSEmploymentEmployer,
			d.PPh21, d.PPh21Unmapped, d.LateDeduction, d.OtherDeductions,
			d.GrossSalary, d.TotalDeductions, d.NetSalary, d.PaymentStatus,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payroll detail for employee %s: %w", d.EmployeeID, err)
		}
	}

	return nil
}

// RecalcRunTotals derives the run header from the stored details. The totals
// are never trusted from in-memory accumulation.
func (r *payrollRepository) RecalcRunTotals(ctx context.Context, runID string) (payroll.Run, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs pr
		SET employee_count = agg.cnt,
			total_gross = agg.gross,
			total_deductions = agg.deductions,
			total_net = agg.net,
			updated_at = NOW()
		FROM (
			SELECT COUNT(*) AS cnt,
				   COALESCE(SUM(gross_salary), 0) AS gross,
				   COALESCE(SUM(total_deductions), 0) AS deductions,
				   COALESCE(SUM(net_salary), 0) AS net
			FROM payroll_details
			WHERE run_id = $1
		) agg
		WHERE pr.id = $1
		RETURNING pr.id, pr.period_month, pr.period_year, pr.period_start, pr.period_end, pr.status,
			pr.employee_count, pr.total_gross, pr.total_deductions, pr.total_net,
			pr.generated_by, pr.generated_at, pr.finalized_by, pr.finalized_at, pr.paid_at,
			pr.created_at, pr.updated_at
	`

	run, err := scanRun(q.QueryRow(ctx, query, runID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to recalculate run totals: %w", err)
	}

	return run, nil
}

// FinalizeRun moves draft -> finalized. The status guard in the WHERE clause
// plus a row-count check distinguishes "missing" from "wrong state".
func (r *payrollRepository) FinalizeRun(ctx context.Context, runID, finalizedBy string) (payroll.Run, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = 'finalized', finalized_by = $2, finalized_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
		RETURNING ` + runColumns

	run, err := scanRun(q.QueryRow(ctx, query, runID, finalizedBy))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, r.transitionError(ctx, runID)
		}
		return payroll.Run{}, fmt.Errorf("failed to finalize payroll run: %w", err)
	}

	return run, nil
}

// MarkRunPaid flips the run and all its details in one transaction so a paid
// run can never coexist with unpaid details.
func (r *payrollRepository) MarkRunPaid(ctx context.Context, runID string) (payroll.Run, error) {
	var run payroll.Run

	err := r.db.WithTransaction(ctx, func(txCtx context.Context) error {
		q := database.GetQuerier(txCtx, r.db)

		runQuery := `
			UPDATE payroll_runs
			SET status = 'paid', paid_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND status = 'finalized'
			RETURNING ` + runColumns

		var err error
		run, err = scanRun(q.QueryRow(txCtx, runQuery, runID))
		if err != nil {
			if err == pgx.ErrNoRows {
				return r.transitionError(txCtx, runID)
			}
			return fmt.Errorf("failed to mark payroll run paid: %w", err)
		}

		detailQuery := `
			UPDATE payroll_details
			SET payment_status = 'paid', paid_at = NOW(), updated_at = NOW()
			WHERE run_id = $1
		`
		if _, err := q.Exec(txCtx, detailQuery, runID); err != nil {
			return fmt.Errorf("failed to mark payroll details paid: %w", err)
		}

		return nil
	})
	if err != nil {
		return payroll.Run{}, err
	}

	return run, nil
}

func (r *payrollRepository) CancelRun(ctx context.Context, runID string) (payroll.Run, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
		RETURNING ` + runColumns

	run, err := scanRun(q.QueryRow(ctx, query, runID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, r.transitionError(ctx, runID)
		}
		return payroll.Run{}, fmt.Errorf("failed to cancel payroll run: %w", err)
	}

	return run, nil
}

// transitionError resolves why a guarded status update matched nothing.
func (r *payrollRepository) transitionError(ctx context.Context, runID string) error {
	if _, err := r.GetRunByID(ctx, runID); err != nil {
		return err
	}
	return payroll.ErrInvalidTransition
}

const detailColumns = `
	d.id, d.run_id, d.employee_id,
	d.working_days, d.present_days, d.late_days, d.absent_days, d.leave_days,
	d.overtime_hours, d.overtime_pay,
	d.base_salary, d.allowance_meal, d.allowance_transport, d.allowance_position, d.allowance_other,
	d.bpjs_health_employee, d.bpjs_health_employer,
	d.bpjs_employment_employee, d.bpjs_employment_employer,
	d.pph21, d.pph21_unmapped, d.late_deduction, d.other_deductions,
	d.gross_salary, d.total_deductions, d.net_salary,
	d.payment_status, d.paid_at, d.slip_generated,
	d.created_at, d.updated_at, e.full_name, e.employee_code
`

func scanDetail(row pgx.Row) (payroll.Detail, error) {
	var d payroll.Detail
	err := row.Scan(
		&d.ID, &d.RunID, &d.EmployeeID,
		&d.WorkingDays, &d.PresentDays, &d.LateDays, &d.AbsentDays, &d.LeaveDays,
		&d.OvertimeHours, &d.OvertimePay,
		&d.BaseSalary, &d.AllowanceMeal, &d.AllowanceTransport, &d.AllowancePosition, &d.AllowanceOther,
		&d.BPJSHealthEmployee, &d.BPJSHealthEmployer,
		&d.BPJSEmploymentEmployee, &d.BPJSEmploymentEmployer,
		&d.PPh21, &d.PPh21Unmapped, &d.LateDeduction, &d.OtherDeductions,
		&d.GrossSalary, &d.TotalDeductions, &d.NetSalary,
		&d.PaymentStatus, &d.PaidAt, &d.SlipGenerated,
		&d.CreatedAt, &d.UpdatedAt, &d.EmployeeName, &d.EmployeeCode,
	)
	return d, err
}

func (r *payrollRepository) ListDetailsByRun(ctx context.Context, runID string) ([]payroll.Detail, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + detailColumns + `
		FROM payroll_details d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.run_id = $1
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll details: %w", err)
	}
	defer rows.Close()

	var details []payroll.Detail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll detail: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll details: %w", err)
	}

	return details, nil
}

func (r *payrollRepository) GetDetailByID(ctx context.Context, id string) (payroll.Detail, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + detailColumns + `
		FROM payroll_details d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.id = $1
	`

	d, err := scanDetail(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Detail{}, payroll.ErrDetailNotFound
		}
		return payroll.Detail{}, fmt.Errorf("failed to get payroll detail: %w", err)
	}

	return d, nil
}

func (r *payrollRepository) SetSlipGenerated(ctx context.Context, detailID string) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_details
		SET slip_generated = true, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, detailID)
	if err != nil {
		return fmt.Errorf("failed to set slip generated: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrDetailNotFound
	}

	return nil
}
