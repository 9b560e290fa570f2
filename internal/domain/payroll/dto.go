package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRunRequest struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2020 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunResponse struct {
	ID          string `json:"id"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Status      string `json:"status"`

	EmployeeCount   int             `json:"employee_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`

	GeneratedBy string  `json:"generated_by"`
	GeneratedAt string  `json:"generated_at"`
	FinalizedBy *string `json:"finalized_by,omitempty"`
	FinalizedAt *string `json:"finalized_at,omitempty"`
	PaidAt      *string `json:"paid_at,omitempty"`
}

type DetailResponse struct {
	ID           string  `json:"id"`
	RunID        string  `json:"run_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`

	WorkingDays int `json:"working_days"`
	PresentDays int `json:"present_days"`
	LateDays    int `json:"late_days"`
	AbsentDays  int `json:"absent_days"`
	LeaveDays   int `json:"leave_days"`

	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`

	BaseSalary         decimal.Decimal `json:"base_salary"`
	AllowanceMeal      decimal.Decimal `json:"allowance_meal"`
	AllowanceTransport decimal.Decimal `json:"allowance_transport"`
	AllowancePosition  decimal.Decimal `json:"allowance_position"`
	AllowanceOther     decimal.Decimal `json:"allowance_other"`

	BPJSHealthEmployee     decimal.Decimal `json:"bpjs_health_employee"`
	BPJSHealthEmployer     decimal.Decimal `json:"bpjs_health_employer"`
	BPJSEmploymentEmployee decimal.Decimal `json:"bpjs_employment_employee"`
	BPJSEmploymentEmployer decimal.Decimal `json:"bpjs_employment_employer"`

	PPh21           decimal.Decimal `json:"pph21"`
	LateDeduction   decimal.Decimal `json:"late_deduction"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`

	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`

	PaymentStatus string  `json:"payment_status"`
	PaidAt        *string `json:"paid_at,omitempty"`
	SlipGenerated bool    `json:"slip_generated"`
}

type RunFilter struct {
	PeriodYear *int
	Status     *string
	Page       int
	Limit      int
}

type ListRunsResponse struct {
	Data       []RunResponse `json:"data"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}

func MapRunToResponse(r Run) RunResponse {
	resp := RunResponse{
		ID:              r.ID,
		PeriodMonth:     r.PeriodMonth,
		PeriodYear:      r.PeriodYear,
		PeriodStart:     r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       r.PeriodEnd.Format("2006-01-02"),
		Status:          string(r.Status),
		EmployeeCount:   r.EmployeeCount,
		TotalGross:      r.TotalGross,
		TotalDeductions: r.TotalDeductions,
		TotalNet:        r.TotalNet,
		GeneratedBy:     r.GeneratedBy,
		GeneratedAt:     r.GeneratedAt.Format(time.RFC3339),
		FinalizedBy:     r.FinalizedBy,
	}
	if r.FinalizedAt != nil {
		s := r.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &s
	}
	if r.PaidAt != nil {
		s := r.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	return resp
}

func MapDetailToResponse(d Detail) DetailResponse {
	resp := DetailResponse{
		ID:                     d.ID,
		RunID:                  d.RunID,
		EmployeeID:             d.EmployeeID,
		EmployeeName:           d.EmployeeName,
		EmployeeCode:           d.EmployeeCode,
		WorkingDays:            d.WorkingDays,
		PresentDays:            d.PresentDays,
		LateDays:               d.LateDays,
		AbsentDays:             d.AbsentDays,
		LeaveDays:              d.LeaveDays,
		OvertimeHours:          d.OvertimeHours,
		OvertimePay:            d.OvertimePay,
		BaseSalary:             d.BaseSalary,
		AllowanceMeal:          d.AllowanceMeal,
		AllowanceTransport:     d.AllowanceTransport,
		AllowancePosition:      d.AllowancePosition,
		AllowanceOther:         d.AllowanceOther,
		BPJSHealthEmployee:     d.BPJSHealthEmployee,
		BPJSHealthEmployer:     d.BPJSHealthEmployer,
		BPJSEmploymentEmployee: d.BPJSEmploymentEmployee,
		BPJSEmploymentEmployer: d.BPJSEmploymentEmployer,
		PPh21:                  d.PPh21,
		LateDeduction:          d.LateDeduction,
		OtherDeductions:        d.OtherDeductions,
		GrossSalary:            d.GrossSalary,
		TotalDeductions:        d.TotalDeductions,
		NetSalary:              d.NetSalary,
		PaymentStatus:          string(d.PaymentStatus),
		SlipGenerated:          d.SlipGenerated,
	}
	if d.PaidAt != nil {
		s := d.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	return resp
}
