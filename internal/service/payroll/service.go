package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/salary"
	domaintax "github.com/cmlabs-hris/payroll-engine-go/internal/domain/tax"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine-go/internal/service/tax"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SummaryGenerator regenerates one employee-month aggregate. The run
// orchestrator refreshes every summary before pricing so the details always
// reflect the latest attendance and approved overtime.
type SummaryGenerator interface {
	Generate(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error)
}

type PayrollService interface {
	CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.RunResponse, error)
	GetRun(ctx context.Context, id string) (payroll.RunResponse, error)
	ListRuns(ctx context.Context, filter payroll.RunFilter) (payroll.ListRunsResponse, error)
	GetRunDetails(ctx context.Context, runID string) ([]payroll.DetailResponse, error)
	FinalizeRun(ctx context.Context, runID string) (payroll.RunResponse, error)
	MarkRunPaid(ctx context.Context, runID string) (payroll.RunResponse, error)
	CancelRun(ctx context.Context, runID string) (payroll.RunResponse, error)
	GenerateSlip(ctx context.Context, detailID string) (payroll.DetailResponse, error)
}

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	salaryRepo   salary.SalaryRepository
	taxRepo      domaintax.TaxRepository
	summaries    SummaryGenerator
	cfg          config.PayrollConfig
	logger       *slog.Logger
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	salaryRepo salary.SalaryRepository,
	taxRepo domaintax.TaxRepository,
	summaries SummaryGenerator,
	cfg config.PayrollConfig,
	logger *slog.Logger,
) PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		salaryRepo:   salaryRepo,
		taxRepo:      taxRepo,
		summaries:    summaries,
		cfg:          cfg,
		logger:       logger,
	}
}

// Helper to get user_id from JWT context
func getUserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// CreateRun claims the period, generates one detail per eligible employee
// with a bounded worker pool, persists them in batches and recomputes the
// run totals from the stored rows. The draft row itself acts as the period
// lock: a concurrent create for the same period fails on the unique index
// before any detail work starts.
func (s *PayrollServiceImpl) CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	periodStart, periodEnd := calendar.PeriodBounds(req.PeriodMonth, req.PeriodYear)

	run, err := s.payrollRepo.CreateRun(ctx, payroll.Run{
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      payroll.RunStatusDraft,
		GeneratedBy: userID,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	details, err := s.generateDetails(ctx, run)
	if err != nil {
		// The draft would otherwise hold the period hostage.
		if _, cancelErr := s.payrollRepo.CancelRun(ctx, run.ID); cancelErr != nil {
			s.logger.Error("failed to cancel run after generation failure",
				slog.String("run_id", run.ID),
				slog.String("error", cancelErr.Error()),
			)
		}
		return payroll.RunResponse{}, err
	}

	if err := s.insertDetailsBatched(ctx, details); err != nil {
		if _, cancelErr := s.payrollRepo.CancelRun(ctx, run.ID); cancelErr != nil {
			s.logger.Error("failed to cancel run after insert failure",
				slog.String("run_id", run.ID),
				slog.String("error", cancelErr.Error()),
			)
		}
		return payroll.RunResponse{}, err
	}

	run, err = s.payrollRepo.RecalcRunTotals(ctx, run.ID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	s.logger.Info("payroll run generated",
		slog.String("run_id", run.ID),
		slog.Int("period_month", run.PeriodMonth),
		slog.Int("period_year", run.PeriodYear),
		slog.Int("employee_count", run.EmployeeCount),
	)

	return payroll.MapRunToResponse(run), nil
}

func (s *PayrollServiceImpl) generateDetails(ctx context.Context, run payroll.Run) ([]payroll.Detail, error) {
	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	configs, err := s.salaryRepo.GetActiveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load salary configurations: %w", err)
	}

	table, err := s.taxRepo.LoadTERTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax table: %w", err)
	}
	resolver := tax.NewResolver(table, s.logger)

	// Pre-sized results keep output order stable regardless of which worker
	// finishes first; skipped employees leave a nil slot.
	results := make([]*payroll.Detail, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.GenerateWorkers)

	for i, emp := range employees {
		cfg, ok := configs[emp.ID]
		if !ok || !cfg.BaseSalary.IsPositive() {
			s.logger.Warn("skipping employee without usable salary configuration",
				slog.String("employee_id", emp.ID),
				slog.String("run_id", run.ID),
			)
			continue
		}

		g.Go(func() error {
			summary, err := s.summaries.Generate(gctx, emp.ID, run.PeriodMonth, run.PeriodYear)
			if err != nil {
				return fmt.Errorf("failed to generate summary for employee %s: %w", emp.ID, err)
			}

			detail := buildDetail(run.ID, cfg, summary, resolver)
			results[i] = &detail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	details := make([]payroll.Detail, 0, len(results))
	for _, d := range results {
		if d != nil {
			details = append(details, *d)
		}
	}
	if len(details) == 0 {
		return nil, payroll.ErrNoActiveEmployees
	}
	return details, nil
}

// buildDetail prices a single employee from their salary configuration and
// monthly summary. Pure; the worker pool calls it concurrently.
func buildDetail(runID string, cfg salary.Config, summary attendance.MonthlySummary, resolver *tax.Resolver) payroll.Detail {
	gross := cfg.BaseSalary.
		Add(cfg.TotalAllowances()).
		Add(summary.OvertimePay)

	bpjsHealthEmployee := cfg.BaseSalary.Mul(cfg.BPJSHealthEmployeeRate).Round(0)
	bpjsHealthEmployer := cfg.BaseSalary.Mul(cfg.BPJSHealthEmployerRate).Round(0)
	bpjsEmploymentEmployee := cfg.BaseSalary.Mul(cfg.BPJSEmploymentEmployeeRate).Round(0)
	bpjsEmploymentEmployer := cfg.BaseSalary.Mul(cfg.BPJSEmploymentEmployerRate).Round(0)

	pph21, resolution := resolver.Withhold(gross, cfg.PTKPStatus)

	otherDeductions := decimal.Zero
	totalDeductions := summary.LateDeduction.
		Add(bpjsHealthEmployee).
		Add(bpjsEmploymentEmployee).
		Add(pph21).
		Add(otherDeductions)

	return payroll.Detail{
		RunID:      runID,
		EmployeeID: cfg.EmployeeID,

		WorkingDays: summary.WorkingDays,
		PresentDays: summary.PresentDays,
		LateDays:    summary.LateDays,
		AbsentDays:  summary.AbsentDays,
		LeaveDays:   summary.LeaveDays,

		OvertimeHours: summary.OvertimeHours,
		OvertimePay:   summary.OvertimePay,

		BaseSalary:         cfg.BaseSalary,
		AllowanceMeal:      cfg.AllowanceMeal,
		AllowanceTransport: cfg.AllowanceTransport,
		AllowancePosition:  cfg.AllowancePosition,
		AllowanceOther:     cfg.AllowanceOther,

		BPJSHealthEmployee:     bpjsHealthEmployee,
		BPJSHealthEmployer:     bpjsHealthEmployer,
		BPJSEmploymentEmployee: bpjsEmploymentEmployee,
		BPJSEmploymentEmployer: bpjsEmploymentEmployer,

		PPh21:           pph21,
		PPh21Unmapped:   resolution.Unmapped,
		LateDeduction:   summary.LateDeduction,
		OtherDeductions: otherDeductions,

		GrossSalary:     gross,
		TotalDeductions: totalDeductions,
		NetSalary:       gross.Sub(totalDeductions),

		PaymentStatus: payroll.PaymentStatusUnpaid,
	}
}

func (s *PayrollServiceImpl) insertDetailsBatched(ctx context.Context, details []payroll.Detail) error {
	batchSize := s.cfg.DetailBatchSize
	for start := 0; start < len(details); start += batchSize {
		end := start + batchSize
		if end > len(details) {
			end = len(details)
		}
		batch := details[start:end]

		err := s.db.WithTransaction(ctx, func(txCtx context.Context) error {
			return s.payrollRepo.InsertDetails(txCtx, batch)
		})
		if err != nil {
			return fmt.Errorf("failed to insert payroll details: %w", err)
		}
	}
	return nil
}

func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, id)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.MapRunToResponse(run), nil
}

func (s *PayrollServiceImpl) ListRuns(ctx context.Context, filter payroll.RunFilter) (payroll.ListRunsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	runs, total, err := s.payrollRepo.ListRuns(ctx, filter)
	if err != nil {
		return payroll.ListRunsResponse{}, err
	}

	data := make([]payroll.RunResponse, 0, len(runs))
	for _, r := range runs {
		data = append(data, payroll.MapRunToResponse(r))
	}

	return payroll.ListRunsResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) GetRunDetails(ctx context.Context, runID string) ([]payroll.DetailResponse, error) {
	if _, err := s.payrollRepo.GetRunByID(ctx, runID); err != nil {
		return nil, err
	}

	details, err := s.payrollRepo.ListDetailsByRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.DetailResponse, 0, len(details))
	for _, d := range details {
		result = append(result, payroll.MapDetailToResponse(d))
	}
	return result, nil
}

// FinalizeRun recomputes the totals one last time before the status flips so
// the frozen run can never disagree with its stored details. The status check
// comes first: a finalized or paid run must not be written to at all, not
// even its updated_at.
func (s *PayrollServiceImpl) FinalizeRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if !run.Status.CanTransitionTo(payroll.RunStatusFinalized) {
		return payroll.RunResponse{}, payroll.ErrInvalidTransition
	}

	if _, err := s.payrollRepo.RecalcRunTotals(ctx, runID); err != nil {
		return payroll.RunResponse{}, err
	}

	run, err = s.payrollRepo.FinalizeRun(ctx, runID, userID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	s.logger.Info("payroll run finalized",
		slog.String("run_id", run.ID),
		slog.String("finalized_by", userID),
	)

	return payroll.MapRunToResponse(run), nil
}

func (s *PayrollServiceImpl) MarkRunPaid(ctx context.Context, runID string) (payroll.RunResponse, error) {
	run, err := s.payrollRepo.MarkRunPaid(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	s.logger.Info("payroll run paid",
		slog.String("run_id", run.ID),
		slog.Int("employee_count", run.EmployeeCount),
	)

	return payroll.MapRunToResponse(run), nil
}

func (s *PayrollServiceImpl) CancelRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	run, err := s.payrollRepo.CancelRun(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	s.logger.Info("payroll run cancelled", slog.String("run_id", run.ID))

	return payroll.MapRunToResponse(run), nil
}

// GenerateSlip flags a detail as having its slip produced. Slips only exist
// for frozen numbers, so the parent run must be finalized or paid.
func (s *PayrollServiceImpl) GenerateSlip(ctx context.Context, detailID string) (payroll.DetailResponse, error) {
	detail, err := s.payrollRepo.GetDetailByID(ctx, detailID)
	if err != nil {
		return payroll.DetailResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, detail.RunID)
	if err != nil {
		return payroll.DetailResponse{}, err
	}
	if !run.Status.Locked() {
		return payroll.DetailResponse{}, payroll.ErrInvalidTransition
	}

	if err := s.payrollRepo.SetSlipGenerated(ctx, detailID); err != nil {
		return payroll.DetailResponse{}, err
	}
	detail.SlipGenerated = true

	return payroll.MapDetailToResponse(detail), nil
}
