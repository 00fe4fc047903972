package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogEntry is one contributing day inside a payslip: a read-only
// projection of the daily log the employee shared in, embedded as the
// payslip's audit trail.
type LogEntry struct {
	Date            time.Time
	TaskNames       string // task names of the day joined with ", "
	TotalDailyGross decimal.Decimal
	WorkersPresent  int
	YourEarning     decimal.Decimal
}

// Payslip is an immutable snapshot taken at generation time. Employee
// display fields are copied in so later employee edits never alter
// history. Regenerating for the same employee and period produces a fresh
// snapshot; persistence upserts on (employee_id, period).
type Payslip struct {
	ID                string
	EmployeeID        string
	EmployeeName      string
	EmployeePosition  *string
	EmployeeAvatarURL *string
	Period            Period
	PeriodLabel       string
	Entries           []LogEntry
	GrossSalary       decimal.Decimal
	Allowance         decimal.Decimal
	Deduction         decimal.Decimal
	NetSalary         decimal.Decimal
	CreatedAt         time.Time
}
