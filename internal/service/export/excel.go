package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

func (s *ExportServiceImpl) HistoryXLSX(ctx context.Context) ([]byte, string, error) {
	slips, err := s.payslipRepo.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Payslip History"
	f.SetSheetName("Sheet1", sheet)

	// Add headers
	headers := []string{"Period", "Employee", "Position", "Gross Salary", "Allowance", "Deduction", "Net Salary", "Days Worked", "Generated At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	// Add data
	for row, slip := range slips {
		position := ""
		if slip.EmployeePosition != nil {
			position = *slip.EmployeePosition
		}

		gross, _ := slip.GrossSalary.Float64()
		allowance, _ := slip.Allowance.Float64()
		deduction, _ := slip.Deduction.Float64()
		net, _ := slip.NetSalary.Float64()

		values := []interface{}{
			slip.Period.String(),
			slip.EmployeeName,
			position,
			gross,
			allowance,
			deduction,
			net,
			len(slip.Entries),
			slip.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", err
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("render history spreadsheet: %w", err)
	}

	return buf.Bytes(), "payslip_history.xlsx", nil
}
