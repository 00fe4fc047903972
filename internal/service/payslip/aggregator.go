package payslip

import (
	"sort"
	"strings"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/dailylog"
	"github.com/crewledger/crewledger-backend-go/internal/domain/employee"
	"github.com/crewledger/crewledger-backend-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

// Aggregate derives one employee's earnings for a period from the daily
// logs. A log contributes when the employee appears in its present list
// and either its date falls inside the period or its ID is in the
// carry-over set (used when an earlier period's leftover days are rolled
// into this slip). Cached log totals are never trusted: every selected
// log is recomputed from its tasks before use, which also heals records
// written before the custom-tasks field existed.
//
// Entries are ordered carry-over first, then current period, each group
// chronologically ascending. The function is deterministic: no clock or
// randomness, identical inputs give identical output.
func Aggregate(employeeID string, period payslip.Period, logs []dailylog.DailyGroupLog, carryOverLogIDs []string) ([]payslip.LogEntry, decimal.Decimal) {
	carry := make(map[string]bool, len(carryOverLogIDs))
	for _, id := range carryOverLogIDs {
		carry[id] = true
	}

	var carryLogs, periodLogs []dailylog.DailyGroupLog
	for _, log := range logs {
		if !log.HasPresent(employeeID) {
			continue
		}
		switch {
		case carry[log.ID]:
			carryLogs = append(carryLogs, log)
		case log.InPeriod(period.Year, period.Month):
			periodLogs = append(periodLogs, log)
		}
	}

	sortByDate(carryLogs)
	sortByDate(periodLogs)

	gross := decimal.Zero
	entries := make([]payslip.LogEntry, 0, len(carryLogs)+len(periodLogs))
	for _, log := range append(carryLogs, periodLogs...) {
		totals := log.Recompute()
		entries = append(entries, payslip.LogEntry{
			Date:            log.Date,
			TaskNames:       joinTaskNames(log),
			TotalDailyGross: totals.TotalGrossEarnings,
			WorkersPresent:  len(log.PresentEmployeeIDs),
			YourEarning:     totals.IndividualEarnings,
		})
		gross = gross.Add(totals.IndividualEarnings)
	}

	return entries, gross
}

// Build assembles a payslip from the aggregation result. Employee display
// fields are snapshotted so later edits never rewrite history; the net is
// gross + allowance - deduction with no clamping, so a net-negative slip
// is representable. The identity and timestamp come from the caller,
// keeping the builder itself free of clock reads.
func Build(
	emp employee.Employee,
	period payslip.Period,
	logs []dailylog.DailyGroupLog,
	allowance, deduction decimal.Decimal,
	carryOverLogIDs []string,
	id string,
	createdAt time.Time,
) payslip.Payslip {
	entries, gross := Aggregate(emp.ID, period, logs, carryOverLogIDs)

	return payslip.Payslip{
		ID:                id,
		EmployeeID:        emp.ID,
		EmployeeName:      emp.Name,
		EmployeePosition:  emp.Position,
		EmployeeAvatarURL: emp.AvatarURL,
		Period:            period,
		PeriodLabel:       period.Label(),
		Entries:           entries,
		GrossSalary:       gross,
		Allowance:         allowance,
		Deduction:         deduction,
		NetSalary:         gross.Add(allowance).Sub(deduction),
		CreatedAt:         createdAt,
	}
}

// BulkBuild builds payslips for every active employee with earnings in
// the period. Allowance and deduction are fixed at zero on the bulk path.
// Employees whose gross comes out zero are skipped rather than given an
// empty slip, and each employee is processed independently.
func BulkBuild(
	period payslip.Period,
	activeEmployees []employee.Employee,
	logs []dailylog.DailyGroupLog,
	newID func() string,
	createdAt time.Time,
) []payslip.Payslip {
	var slips []payslip.Payslip
	for _, emp := range activeEmployees {
		entries, gross := Aggregate(emp.ID, period, logs, nil)
		if !gross.IsPositive() {
			continue
		}
		slips = append(slips, payslip.Payslip{
			ID:                newID(),
			EmployeeID:        emp.ID,
			EmployeeName:      emp.Name,
			EmployeePosition:  emp.Position,
			EmployeeAvatarURL: emp.AvatarURL,
			Period:            period,
			PeriodLabel:       period.Label(),
			Entries:           entries,
			GrossSalary:       gross,
			Allowance:         decimal.Zero,
			Deduction:         decimal.Zero,
			NetSalary:         gross,
			CreatedAt:         createdAt,
		})
	}
	return slips
}

func sortByDate(logs []dailylog.DailyGroupLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].Date.Equal(logs[j].Date) {
			return logs[i].ID < logs[j].ID
		}
		return logs[i].Date.Before(logs[j].Date)
	})
}

func joinTaskNames(log dailylog.DailyGroupLog) string {
	names := make([]string, 0, len(log.Tasks)+len(log.CustomTasks))
	for _, t := range log.Tasks {
		names = append(names, t.TaskName)
	}
	for _, c := range log.CustomTasks {
		names = append(names, c.Label)
	}
	return strings.Join(names, ", ")
}
