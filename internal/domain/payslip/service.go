package payslip

import "context"

type PayslipService interface {
	// Generate builds a payslip for one employee. When req.Save is set the
	// result is also upserted into history; otherwise it is a preview.
	Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error)
	// BulkGenerate builds and saves payslips for every active employee with
	// earnings in the period.
	BulkGenerate(ctx context.Context, req BulkGenerateRequest) (BulkGenerateResponse, error)
	Get(ctx context.Context, id string) (PayslipResponse, error)
	List(ctx context.Context) ([]PayslipResponse, error)
	Delete(ctx context.Context, id string) error
}
