package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

func (s *ExportServiceImpl) PayslipPDF(ctx context.Context, payslipID string) ([]byte, string, error) {
	slip, err := s.payslipRepo.GetByID(ctx, payslipID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", slip.EmployeeName))
	pdf.Ln(7)
	if slip.EmployeePosition != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Position: %s", *slip.EmployeePosition))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", slip.PeriodLabel))
	pdf.Ln(12)

	// Daily breakdown table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(25, 8, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(75, 8, "Tasks", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Day Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 8, "Workers", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Your Share", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range slip.Entries {
		pdf.CellFormat(25, 8, entry.Date.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(75, 8, entry.TaskNames, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, entry.TotalDailyGross.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", entry.WorkersPresent), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, entry.YourEarning.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross Salary: %s", slip.GrossSalary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowance: %s", slip.Allowance.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deduction: %s", slip.Deduction.StringFixed(2)))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Net Salary: %s", slip.NetSalary.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render payslip pdf: %w", err)
	}

	filename := fmt.Sprintf("payslip_%s_%s.pdf", slip.EmployeeName, slip.Period.String())
	return buf.Bytes(), filename, nil
}
