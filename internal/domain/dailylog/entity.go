package dailylog

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyTask is a unit of work recorded against a daily log. TaskName and
// Rate are snapshots taken from the rate catalog at entry time; they must
// never be re-read from the live catalog after creation.
type DailyTask struct {
	PieceRateID string
	TaskName    string
	Rate        decimal.Decimal
	Quantity    decimal.Decimal
	SubTotal    decimal.Decimal
}

// CustomTask is a freeform earning line added to a log outside the rate
// catalog. The field was introduced after logs already cached their totals,
// which is why readers recompute instead of trusting the cache.
type CustomTask struct {
	Label  string
	Amount decimal.Decimal
}

// DailyGroupLog records the work a group performed on one calendar day and
// which employees were present to share the earnings. At most one log
// exists per date; saving over an existing date replaces it.
type DailyGroupLog struct {
	ID                 string
	Date               time.Time // day granularity, no time component
	Tasks              []DailyTask
	CustomTasks        []CustomTask
	PresentEmployeeIDs []string
	// Cached aggregates. Denormalized for display only; every reader that
	// feeds a computation must go through Recompute.
	TotalGrossEarnings decimal.Decimal
	IndividualEarnings decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Totals are the derived aggregate fields of a log.
type Totals struct {
	TotalGrossEarnings decimal.Decimal
	IndividualEarnings decimal.Decimal
}

// Recompute derives the log's totals from its tasks, custom tasks and
// present employees. It is a pure projection: calling it twice yields the
// same result, and it ignores the cached fields entirely. Tasks with a
// non-positive quantity or rate contribute nothing. A log with no present
// employees has an individual share of zero.
func (l DailyGroupLog) Recompute() Totals {
	total := decimal.Zero
	for _, t := range l.Tasks {
		if !t.Quantity.IsPositive() || !t.Rate.IsPositive() {
			continue
		}
		total = total.Add(t.Rate.Mul(t.Quantity))
	}
	for _, c := range l.CustomTasks {
		if !c.Amount.IsPositive() {
			continue
		}
		total = total.Add(c.Amount)
	}

	n := len(l.PresentEmployeeIDs)
	if n == 0 {
		return Totals{TotalGrossEarnings: total, IndividualEarnings: decimal.Zero}
	}
	return Totals{
		TotalGrossEarnings: total,
		IndividualEarnings: total.Div(decimal.NewFromInt(int64(n))),
	}
}

// HasPresent reports whether the employee was present on this log's day.
// Presence is the sole criterion for sharing the day's earnings.
func (l DailyGroupLog) HasPresent(employeeID string) bool {
	for _, id := range l.PresentEmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// InPeriod reports whether the log's date falls in the given calendar
// month, matched on date components rather than day distance.
func (l DailyGroupLog) InPeriod(year int, month time.Month) bool {
	return l.Date.Year() == year && l.Date.Month() == month
}
