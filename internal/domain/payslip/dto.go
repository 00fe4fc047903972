package payslip

import (
	"github.com/crewledger/crewledger-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// GeneratePayslipRequest builds (and optionally saves) a payslip for one
// employee. Allowance and deduction may be negative; the original system
// accepts them unchanged to represent advances and debts.
type GeneratePayslipRequest struct {
	EmployeeID      string          `json:"employee_id"`
	Period          string          `json:"period"` // YYYY-MM
	Allowance       decimal.Decimal `json:"allowance"`
	Deduction       decimal.Decimal `json:"deduction"`
	CarryOverLogIDs []string        `json:"carry_over_log_ids,omitempty"`
	Save            bool            `json:"save"`
}

func (r *GeneratePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, err := ParsePeriod(r.Period); err != nil {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkGenerateRequest struct {
	Period string `json:"period"` // YYYY-MM
}

func (r *BulkGenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParsePeriod(r.Period); err != nil {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LogEntryResponse struct {
	Date            string          `json:"date"`
	TaskNames       string          `json:"task_names"`
	TotalDailyGross decimal.Decimal `json:"total_daily_gross"`
	WorkersPresent  int             `json:"workers_present"`
	YourEarning     decimal.Decimal `json:"your_earning"`
}

type PayslipResponse struct {
	ID                string             `json:"id"`
	EmployeeID        string             `json:"employee_id"`
	EmployeeName      string             `json:"employee_name"`
	EmployeePosition  *string            `json:"employee_position,omitempty"`
	EmployeeAvatarURL *string            `json:"employee_avatar_url,omitempty"`
	Period            string             `json:"period"`
	PeriodLabel       string             `json:"period_label"`
	Entries           []LogEntryResponse `json:"entries"`
	GrossSalary       decimal.Decimal    `json:"gross_salary"`
	Allowance         decimal.Decimal    `json:"allowance"`
	Deduction         decimal.Decimal    `json:"deduction"`
	NetSalary         decimal.Decimal    `json:"net_salary"`
	CreatedAt         string             `json:"created_at"`
}

// BulkGenerateResponse reports partial-success accounting for a bulk run:
// employees with zero qualifying earnings are skipped, not failed.
type BulkGenerateResponse struct {
	Generated []PayslipResponse `json:"generated"`
	Skipped   int               `json:"skipped"`
}
