package payslip

import "errors"

var (
	ErrPayslipNotFound      = errors.New("payslip not found")
	ErrBulkGenerateDisabled = errors.New("bulk payslip generation is disabled")
)
