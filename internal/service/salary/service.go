package salary

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
)

type SalaryService interface {
	CreateConfig(ctx context.Context, req salary.CreateConfigRequest) (salary.ConfigResponse, error)
	GetActiveConfig(ctx context.Context, employeeID string) (salary.ConfigResponse, error)
	ListConfigs(ctx context.Context, employeeID string) ([]salary.ConfigResponse, error)
}

type SalaryServiceImpl struct {
	db           *database.DB
	salaryRepo   salary.SalaryRepository
	employeeRepo employee.EmployeeRepository
}

func NewSalaryService(db *database.DB, salaryRepo salary.SalaryRepository, employeeRepo employee.EmployeeRepository) SalaryService {
	return &SalaryServiceImpl{
		db:           db,
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateConfig appends a new effective-dated row to the employee's salary
// history. The repository deactivates the previous active row in the same
// transaction, so there is never a window with two active rows.
func (s *SalaryServiceImpl) CreateConfig(ctx context.Context, req salary.CreateConfigRequest) (salary.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.ConfigResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return salary.ConfigResponse{}, err
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return salary.ConfigResponse{}, fmt.Errorf("failed to parse effective date: %w", err)
	}

	var created salary.Config
	err = s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.salaryRepo.Create(txCtx, salary.Config{
			EmployeeID:    req.EmployeeID,
			EffectiveDate: effectiveDate,

			BaseSalary:         req.BaseSalary,
			AllowanceMeal:      req.AllowanceMeal,
			AllowanceTransport: req.AllowanceTransport,
			AllowancePosition:  req.AllowancePosition,
			AllowanceOther:     req.AllowanceOther,

			BPJSHealthEmployeeRate:     req.BPJSHealthEmployeeRate,
			BPJSHealthEmployerRate:     req.BPJSHealthEmployerRate,
			BPJSEmploymentEmployeeRate: req.BPJSEmploymentEmployeeRate,
			BPJSEmploymentEmployerRate: req.BPJSEmploymentEmployerRate,

			PTKPStatus: req.PTKPStatus,
			NPWP:       req.NPWP,
			IsActive:   true,
		})
		return err
	})
	if err != nil {
		return salary.ConfigResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *SalaryServiceImpl) GetActiveConfig(ctx context.Context, employeeID string) (salary.ConfigResponse, error) {
	cfg, err := s.salaryRepo.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		return salary.ConfigResponse{}, err
	}
	return mapToResponse(cfg), nil
}

func (s *SalaryServiceImpl) ListConfigs(ctx context.Context, employeeID string) ([]salary.ConfigResponse, error) {
	configs, err := s.salaryRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	result := make([]salary.ConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		result = append(result, mapToResponse(cfg))
	}
	return result, nil
}

func mapToResponse(cfg salary.Config) salary.ConfigResponse {
	return salary.ConfigResponse{
		ID:            cfg.ID,
		EmployeeID:    cfg.EmployeeID,
		EffectiveDate: cfg.EffectiveDate.Format("2006-01-02"),

		BaseSalary:         cfg.BaseSalary,
		AllowanceMeal:      cfg.AllowanceMeal,
		AllowanceTransport: cfg.AllowanceTransport,
		AllowancePosition:  cfg.AllowancePosition,
		AllowanceOther:     cfg.AllowanceOther,

		BPJSHealthEmployeeRate:     cfg.BPJSHealthEmployeeRate,
		BPJSHealthEmployerRate:     cfg.BPJSHealthEmployerRate,
		BPJSEmploymentEmployeeRate: cfg.BPJSEmploymentEmployeeRate,
		BPJSEmploymentEmployerRate: cfg.BPJSEmploymentEmployerRate,

		PTKPStatus: cfg.PTKPStatus,
		NPWP:       cfg.NPWP,
		IsActive:   cfg.IsActive,
	}
}
