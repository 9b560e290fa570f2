package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryConfigColumns = `
	id, employee_id, effective_date,
	base_salary, allowance_meal, allowance_transport, allowance_position, allowance_other,
	bpjs_health_employee_rate, bpjs_health_employer_rate,
	bpjs_employment_employee_rate, bpjs_employment_employer_rate,
	ptkp_status, npwp, is_active, created_at, updated_at
`

func scanSalaryConfig(row pgx.Row) (salary.Config, error) {
	var c salary.Config
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.EffectiveDate,
		&c.BaseSalary, &c.AllowanceMeal, &c.AllowanceTransport, &c.AllowancePosition, &c.AllowanceOther,
		&c.BPJSHealthEmployeeRate, &c.BPJSHealthEmployerRate,
		&c.BPJSEmploymentEmployeeRate, &c.BPJSEmploymentEmployerRate,
		&c.PTKPStatus, &c.NPWP, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create deactivates the employee's current active row and inserts the new
// one. Callers wrap it in a transaction so both statements land together.
func (r *salaryRepository) Create(ctx context.Context, cfg salary.Config) (salary.Config, error) {
	q := database.GetQuerier(ctx, r.db)

	deactivate := `
		UPDATE salary_configs
		SET is_active = false, updated_at = NOW()
		WHERE employee_id = $1 AND is_active = true
	`
	if _, err := q.Exec(ctx, deactivate, cfg.EmployeeID); err != nil {
		return salary.Config{}, fmt.Errorf("failed to deactivate previous salary config: %w", err)
	}

	insert := `
		INSERT INTO salary_configs (
			employee_id, effective_date,
			base_salary, allowance_meal, allowance_transport, allowance_position, allowance_other,
			bpjs_health_employee_rate, bpjs_health_employer_rate,
			bpjs_employment_employee_rate, bpjs_employment_employer_rate,
			ptkp_status, npwp, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, true)
		RETURNING ` + salaryConfigColumns

	created, err := scanSalaryConfig(q.QueryRow(ctx, insert,
		cfg.EmployeeID, cfg.EffectiveDate,
		cfg.BaseSalary, cfg.AllowanceMeal, cfg.AllowanceTransport, cfg.AllowancePosition, cfg.AllowanceOther,
		cfg.BPJSHealthEmployeeRate, cfg.BPJSHealthEmployerRate,
		cfg.BPJSEmploymentEmployeeRate, cfg.BPJSEmploymentEmployerRate,
		cfg.PTKPStatus, cfg.NPWP,
	))
	if err != nil {
		return salary.Config{}, fmt.Errorf("failed to create salary config: %w", err)
	}

	return created, nil
}

func (r *salaryRepository) GetActiveByEmployee(ctx context.Context, employeeID string) (salary.Config, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryConfigColumns + `
		FROM salary_configs
		WHERE employee_id = $1 AND is_active = true
	`

	cfg, err := scanSalaryConfig(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Config{}, salary.ErrConfigNotFound
		}
		return salary.Config{}, fmt.Errorf("failed to get active salary config: %w", err)
	}

	return cfg, nil
}

func (r *salaryRepository) GetAsOf(ctx context.Context, employeeID string, at time.Time) (salary.Config, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryConfigColumns + `
		FROM salary_configs
		WHERE employee_id = $1 AND effective_date <= $2
		ORDER BY effective_date DESC
		LIMIT 1
	`

	cfg, err := scanSalaryConfig(q.QueryRow(ctx, query, employeeID, at))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Config{}, salary.ErrConfigNotFound
		}
		return salary.Config{}, fmt.Errorf("failed to get salary config as of date: %w", err)
	}

	return cfg, nil
}

func (r *salaryRepository) GetActiveAll(ctx context.Context) (map[string]salary.Config, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryConfigColumns + `
		FROM salary_configs
		WHERE is_active = true
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active salary configs: %w", err)
	}
	defer rows.Close()

	configs := make(map[string]salary.Config)
	for rows.Next() {
		cfg, err := scanSalaryConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary config: %w", err)
		}
		configs[cfg.EmployeeID] = cfg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary configs: %w", err)
	}

	return configs, nil
}

func (r *salaryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]salary.Config, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryConfigColumns + `
		FROM salary_configs
		WHERE employee_id = $1
		ORDER BY effective_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary configs: %w", err)
	}
	defer rows.Close()

	var configs []salary.Config
	for rows.Next() {
		cfg, err := scanSalaryConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary config: %w", err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary configs: %w", err)
	}

	return configs, nil
}
