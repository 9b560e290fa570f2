package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type OvertimeService interface {
	Submit(ctx context.Context, req overtime.SubmitRequest) (overtime.RequestResponse, error)
	Review(ctx context.Context, req overtime.ReviewRequest) (overtime.RequestResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]overtime.RequestResponse, error)
}

type OvertimeServiceImpl struct {
	db           *database.DB
	overtimeRepo overtime.OvertimeRepository
	salaryRepo   salary.SalaryRepository
	policy       calendar.OvertimePolicy
	holidays     calendar.HolidaySet
	logger       *slog.Logger
}

func NewOvertimeService(
	db *database.DB,
	overtimeRepo overtime.OvertimeRepository,
	salaryRepo salary.SalaryRepository,
	policy calendar.OvertimePolicy,
	holidays calendar.HolidaySet,
	logger *slog.Logger,
) OvertimeService {
	return &OvertimeServiceImpl{
		db:           db,
		overtimeRepo: overtimeRepo,
		salaryRepo:   salaryRepo,
		policy:       policy,
		holidays:     holidays,
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

func (s *OvertimeServiceImpl) Submit(ctx context.Context, req overtime.SubmitRequest) (overtime.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.RequestResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)

	isHoliday := calendar.IsNonWorkingDay(date, s.holidays)

	// Run the pricing once up front so impossible intervals are rejected at
	// submission, not at approval. The numbers are frozen at approval time.
	priced := Compute(startTime, endTime, decimal.NewFromInt(1), isHoliday, s.policy)
	if !priced.Valid {
		if priced.DurationHours.LessThanOrEqual(decimal.Zero) {
			return overtime.RequestResponse{}, overtime.ErrInvalidDuration
		}
		return overtime.RequestResponse{}, overtime.ErrDailyCapExceeded
	}

	weekHours, err := s.overtimeRepo.SumApprovedHoursInWeek(ctx, req.EmployeeID, calendar.WeekStart(date))
	if err != nil {
		return overtime.RequestResponse{}, fmt.Errorf("failed to sum weekly overtime hours: %w", err)
	}
	if err := ValidateWeeklyHours(weekHours, priced.DurationHours, s.policy.MaxHoursPerWeek); err != nil {
		return overtime.RequestResponse{}, err
	}

	created, err := s.overtimeRepo.Create(ctx, overtime.Request{
		EmployeeID:    req.EmployeeID,
		Date:          date,
		StartTime:     startTime,
		EndTime:       endTime,
		IsHoliday:     isHoliday,
		Reason:        req.Reason,
		Status:        overtime.RequestStatusPending,
		DurationHours: priced.DurationHours,
		Multiplier:    decimal.Zero,
		Pay:           decimal.Zero,
	})
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *OvertimeServiceImpl) Review(ctx context.Context, req overtime.ReviewRequest) (overtime.RequestResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	current, err := s.overtimeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return overtime.RequestResponse{}, err
	}
	if current.Status != overtime.RequestStatusPending {
		return overtime.RequestResponse{}, overtime.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	current.ApprovedBy = &userID
	current.ApprovedAt = &now

	if !req.Approve {
		current.Status = overtime.RequestStatusRejected
		current.RejectionReason = req.RejectionReason
		updated, err := s.overtimeRepo.UpdateStatus(ctx, current)
		if err != nil {
			return overtime.RequestResponse{}, err
		}
		return mapToResponse(updated), nil
	}

	cfg, err := s.salaryRepo.GetAsOf(ctx, current.EmployeeID, current.Date)
	if err != nil {
		return overtime.RequestResponse{}, err
	}
	// A zero or negative base would silently price the approval at zero.
	if !cfg.BaseSalary.IsPositive() {
		return overtime.RequestResponse{}, salary.ErrInvalidBaseSalary
	}

	result := Compute(current.StartTime, current.EndTime, cfg.HourlyRate(), current.IsHoliday, s.policy)
	if !result.Valid {
		s.logger.Warn("overtime request failed pricing at approval",
			slog.String("request_id", current.ID),
			slog.String("message", result.Message),
		)
		if result.DurationHours.LessThanOrEqual(decimal.Zero) {
			return overtime.RequestResponse{}, overtime.ErrInvalidDuration
		}
		return overtime.RequestResponse{}, overtime.ErrDailyCapExceeded
	}

	current.Status = overtime.RequestStatusApproved
	current.DurationHours = result.DurationHours
	current.Multiplier = result.Multiplier
	current.Pay = result.Pay

	updated, err := s.overtimeRepo.UpdateStatus(ctx, current)
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *OvertimeServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]overtime.RequestResponse, error) {
	requests, err := s.overtimeRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	result := make([]overtime.RequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, mapToResponse(r))
	}
	return result, nil
}

func mapToResponse(r overtime.Request) overtime.RequestResponse {
	return overtime.RequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		Date:          r.Date.Format("2006-01-02"),
		StartTime:     r.StartTime.Format(time.RFC3339),
		EndTime:       r.EndTime.Format(time.RFC3339),
		IsHoliday:     r.IsHoliday,
		Status:        string(r.Status),
		DurationHours: r.DurationHours,
		Multiplier:    r.Multiplier,
		Pay:           r.Pay,
		Reason:        r.Reason,
	}
}
