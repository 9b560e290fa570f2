package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

// ComputeInput carries everything Compute needs, already fetched. Keeping
// the aggregation itself free of I/O makes regeneration trivially idempotent.
type ComputeInput struct {
	EmployeeID string
	Month      int
	Year       int

	Attendance        []attendance.Record
	Leaves            []leave.Request
	Overtime          []overtime.Request // approved only
	LateDeductionRate decimal.Decimal
}

// Compute aggregates one employee-month. Leave days are clipped to the month
// so a request spanning two months is split between the two summaries, and
// absence is clamped at zero so half-day adjustments cannot push it negative.
func Compute(in ComputeInput) attendance.MonthlySummary {
	workingDays := calendar.WorkingDaysInMonth(in.Month, in.Year)

	presentDays := 0
	lateDays := 0
	lateMinutes := 0
	for _, rec := range in.Attendance {
		if rec.Status == attendance.StatusPresent || rec.Status == attendance.StatusLate {
			presentDays++
		}
		if rec.IsLate {
			lateDays++
			lateMinutes += rec.LateMinutes
		}
	}

	leaveDays := 0
	for _, req := range in.Leaves {
		if req.Status != leave.RequestStatusApproved {
			continue
		}
		start, end, ok := calendar.ClipToMonth(req.StartDate, req.EndDate, in.Month, in.Year)
		if !ok {
			continue
		}
		leaveDays += calendar.WeekdayCount(start, end)
	}

	// Overtime trusts the values frozen at approval time; the aggregator
	// never reprices a request.
	overtimeHours := decimal.Zero
	overtimePay := decimal.Zero
	for _, req := range in.Overtime {
		if req.Status != overtime.RequestStatusApproved {
			continue
		}
		overtimeHours = overtimeHours.Add(req.DurationHours)
		overtimePay = overtimePay.Add(req.Pay)
	}

	absentDays := workingDays - presentDays - leaveDays
	if absentDays < 0 {
		absentDays = 0
	}

	return attendance.MonthlySummary{
		EmployeeID:    in.EmployeeID,
		Month:         in.Month,
		Year:          in.Year,
		WorkingDays:   workingDays,
		PresentDays:   presentDays,
		LateDays:      lateDays,
		LateMinutes:   lateMinutes,
		AbsentDays:    absentDays,
		LeaveDays:     leaveDays,
		OvertimeHours: overtimeHours.Round(2),
		OvertimePay:   overtimePay,
		LateDeduction: decimal.NewFromInt(int64(lateDays)).Mul(in.LateDeductionRate),
	}
}

type SummaryService interface {
	Build(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error)
	Generate(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error)
	Get(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error)
}

type SummaryServiceImpl struct {
	db                *database.DB
	attendanceRepo    attendance.AttendanceRepository
	summaryRepo       attendance.SummaryRepository
	leaveRepo         leave.LeaveRepository
	overtimeRepo      overtime.OvertimeRepository
	payrollRepo       payroll.PayrollRepository
	lateDeductionRate decimal.Decimal
}

func NewSummaryService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	summaryRepo attendance.SummaryRepository,
	leaveRepo leave.LeaveRepository,
	overtimeRepo overtime.OvertimeRepository,
	payrollRepo payroll.PayrollRepository,
	lateDeductionRate decimal.Decimal,
) SummaryService {
	return &SummaryServiceImpl{
		db:                db,
		attendanceRepo:    attendanceRepo,
		summaryRepo:       summaryRepo,
		leaveRepo:         leaveRepo,
		overtimeRepo:      overtimeRepo,
		payrollRepo:       payrollRepo,
		lateDeductionRate: lateDeductionRate,
	}
}

// Build fetches the employee-month inputs and aggregates them without
// persisting anything.
func (s *SummaryServiceImpl) Build(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error) {
	periodStart, periodEnd := calendar.PeriodBounds(month, year)

	records, err := s.attendanceRepo.ListByEmployeeMonth(ctx, employeeID, month, year)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	leaves, err := s.leaveRepo.ListApprovedOverlapping(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	overtimes, err := s.overtimeRepo.ListApprovedByMonth(ctx, employeeID, month, year)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to list overtime requests: %w", err)
	}

	summary := Compute(ComputeInput{
		EmployeeID:        employeeID,
		Month:             month,
		Year:              year,
		Attendance:        records,
		Leaves:            leaves,
		Overtime:          overtimes,
		LateDeductionRate: s.lateDeductionRate,
	})
	summary.GeneratedAt = time.Now()

	return summary, nil
}

// Generate builds the summary and upserts it on (employee_id, month, year).
// Regeneration is legal any number of times while the period's run is still
// draft (or absent); it is refused once the run is finalized or paid.
func (s *SummaryServiceImpl) Generate(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error) {
	run, err := s.payrollRepo.GetRunByPeriod(ctx, month, year)
	if err != nil && !errors.Is(err, payroll.ErrRunNotFound) {
		return attendance.MonthlySummary{}, err
	}
	if err == nil && run.Status.Locked() {
		return attendance.MonthlySummary{}, payroll.ErrRunLocked
	}

	summary, err := s.Build(ctx, employeeID, month, year)
	if err != nil {
		return attendance.MonthlySummary{}, err
	}

	return s.summaryRepo.Upsert(ctx, summary)
}

func (s *SummaryServiceImpl) Get(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error) {
	return s.summaryRepo.Get(ctx, employeeID, month, year)
}
