package salary

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateConfigRequest struct {
	EmployeeID    string `json:"-"`
	EffectiveDate string `json:"effective_date"`

	BaseSalary         decimal.Decimal `json:"base_salary"`
	AllowanceMeal      decimal.Decimal `json:"allowance_meal"`
	AllowanceTransport decimal.Decimal `json:"allowance_transport"`
	AllowancePosition  decimal.Decimal `json:"allowance_position"`
	AllowanceOther     decimal.Decimal `json:"allowance_other"`

	BPJSHealthEmployeeRate     decimal.Decimal `json:"bpjs_health_employee_rate"`
	BPJSHealthEmployerRate     decimal.Decimal `json:"bpjs_health_employer_rate"`
	BPJSEmploymentEmployeeRate decimal.Decimal `json:"bpjs_employment_employee_rate"`
	BPJSEmploymentEmployerRate decimal.Decimal `json:"bpjs_employment_employer_rate"`

	PTKPStatus string  `json:"ptkp_status"`
	NPWP       *string `json:"npwp,omitempty"`
}

func (r *CreateConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !r.BaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be greater than zero"})
	}
	for field, v := range map[string]decimal.Decimal{
		"allowance_meal":      r.AllowanceMeal,
		"allowance_transport": r.AllowanceTransport,
		"allowance_position":  r.AllowancePosition,
		"allowance_other":     r.AllowanceOther,
	} {
		if v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}
	for field, v := range map[string]decimal.Decimal{
		"bpjs_health_employee_rate":     r.BPJSHealthEmployeeRate,
		"bpjs_health_employer_rate":     r.BPJSHealthEmployerRate,
		"bpjs_employment_employee_rate": r.BPJSEmploymentEmployeeRate,
		"bpjs_employment_employer_rate": r.BPJSEmploymentEmployerRate,
	} {
		if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(1)) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be a fraction between 0 and 1"})
		}
	}
	if validator.IsEmpty(r.PTKPStatus) {
		errs = append(errs, validator.ValidationError{Field: "ptkp_status", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ConfigResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EffectiveDate string `json:"effective_date"`

	BaseSalary         decimal.Decimal `json:"base_salary"`
	AllowanceMeal      decimal.Decimal `json:"allowance_meal"`
	AllowanceTransport decimal.Decimal `json:"allowance_transport"`
	AllowancePosition  decimal.Decimal `json:"allowance_position"`
	AllowanceOther     decimal.Decimal `json:"allowance_other"`

	BPJSHealthEmployeeRate     decimal.Decimal `json:"bpjs_health_employee_rate"`
	BPJSHealthEmployerRate     decimal.Decimal `json:"bpjs_health_employer_rate"`
	BPJSEmploymentEmployeeRate decimal.Decimal `json:"bpjs_employment_employee_rate"`
	BPJSEmploymentEmployerRate decimal.Decimal `json:"bpjs_employment_employer_rate"`

	PTKPStatus string  `json:"ptkp_status"`
	NPWP       *string `json:"npwp,omitempty"`
	IsActive   bool    `json:"is_active"`
}
