package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	summaryservice "github.com/cmlabs-hris/payroll-engine-go/internal/service/summary"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type SummaryHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summaryservice.SummaryService
}

func NewSummaryHandler(summaryService summaryservice.SummaryService) SummaryHandler {
	return &summaryHandlerImpl{summaryService: summaryService}
}

type summaryResponse struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`

	WorkingDays int `json:"working_days"`
	PresentDays int `json:"present_days"`
	LateDays    int `json:"late_days"`
	LateMinutes int `json:"late_minutes"`
	AbsentDays  int `json:"absent_days"`
	LeaveDays   int `json:"leave_days"`

	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`
	LateDeduction decimal.Decimal `json:"late_deduction"`

	GeneratedAt string `json:"generated_at"`
}

func mapSummaryToResponse(s attendance.MonthlySummary) summaryResponse {
	return summaryResponse{
		EmployeeID:    s.EmployeeID,
		Month:         s.Month,
		Year:          s.Year,
		WorkingDays:   s.WorkingDays,
		PresentDays:   s.PresentDays,
		LateDays:      s.LateDays,
		LateMinutes:   s.LateMinutes,
		AbsentDays:    s.AbsentDays,
		LeaveDays:     s.LeaveDays,
		OvertimeHours: s.OvertimeHours,
		OvertimePay:   s.OvertimePay,
		LateDeduction: s.LateDeduction,
		GeneratedAt:   s.GeneratedAt.Format(time.RFC3339),
	}
}

func summaryParams(r *http.Request) (string, int, int, error) {
	employeeID := chi.URLParam(r, "employeeID")
	month, _ := strconv.Atoi(chi.URLParam(r, "month"))
	year, _ := strconv.Atoi(chi.URLParam(r, "year"))

	var errs validator.ValidationErrors
	if !validator.IsValidUUID(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if !validator.IsValidPeriod(month, year) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "month must be 1-12 and year 2020 or later"})
	}
	if len(errs) > 0 {
		return "", 0, 0, errs
	}
	return employeeID, month, year, nil
}

func (h *summaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	employeeID, month, year, err := summaryParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.summaryService.Generate(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapSummaryToResponse(summary))
}

func (h *summaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, month, year, err := summaryParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.summaryService.Get(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapSummaryToResponse(summary))
}
