package overtime

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SubmitRequest struct {
	EmployeeID string  `json:"-"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDateTime(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be a valid ISO8601 timestamp"})
	}
	if _, ok := validator.IsValidDateTime(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be a valid ISO8601 timestamp"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewRequest struct {
	ID              string  `json:"-"`
	Approve         bool    `json:"approve"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type RequestResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	Date          string          `json:"date"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	IsHoliday     bool            `json:"is_holiday"`
	Status        string          `json:"status"`
	DurationHours decimal.Decimal `json:"duration_hours"`
	Multiplier    decimal.Decimal `json:"multiplier"`
	Pay           decimal.Decimal `json:"pay"`
	Reason        *string         `json:"reason,omitempty"`
}
