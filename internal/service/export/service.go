package export

import (
	"context"

	"github.com/crewledger/crewledger-backend-go/internal/domain/payslip"
)

type ExportService interface {
	// PayslipPDF renders a stored payslip as a printable PDF document.
	PayslipPDF(ctx context.Context, payslipID string) (data []byte, filename string, err error)
	// HistoryXLSX renders the whole payslip history as a spreadsheet.
	HistoryXLSX(ctx context.Context) (data []byte, filename string, err error)
}

type ExportServiceImpl struct {
	payslipRepo payslip.PayslipRepository
}

func NewExportService(payslipRepo payslip.PayslipRepository) ExportService {
	return &ExportServiceImpl{payslipRepo: payslipRepo}
}
