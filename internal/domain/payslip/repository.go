package payslip

import "context"

type PayslipRepository interface {
	// UpsertByEmployeePeriod saves the payslip, replacing any history entry
	// with the same (employee_id, period). Regeneration therefore updates
	// the period's entry in place instead of duplicating it.
	UpsertByEmployeePeriod(ctx context.Context, slip Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	GetAll(ctx context.Context) ([]Payslip, error)
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, slips []Payslip) error
}
