package payslip

import (
	"fmt"
	"testing"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/dailylog"
	"github.com/crewledger/crewledger-backend-go/internal/domain/employee"
	"github.com/crewledger/crewledger-backend-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func harvestLog(id string, date time.Time, present ...string) dailylog.DailyGroupLog {
	return dailylog.DailyGroupLog{
		ID:   id,
		Date: date,
		Tasks: []dailylog.DailyTask{
			{PieceRateID: "rate-1", TaskName: "Harvesting", Rate: d("10"), Quantity: d("20")},
		},
		PresentEmployeeIDs: present,
	}
}

func TestAggregate_EqualSplitAcrossPresent(t *testing.T) {
	logs := []dailylog.DailyGroupLog{
		harvestLog("log-1", day(2024, time.March, 5), "emp-a", "emp-b"),
	}
	period := payslip.Period{Year: 2024, Month: time.March}

	entriesA, grossA := Aggregate("emp-a", period, logs, nil)
	entriesB, grossB := Aggregate("emp-b", period, logs, nil)

	require.Len(t, entriesA, 1)
	assert.True(t, grossA.Equal(d("100")))
	assert.True(t, grossB.Equal(d("100")))
	assert.Equal(t, "Harvesting", entriesA[0].TaskNames)
	assert.Equal(t, 2, entriesA[0].WorkersPresent)
	assert.True(t, entriesA[0].TotalDailyGross.Equal(d("200")))
	assert.True(t, entriesB[0].YourEarning.Equal(d("100")))
}

func TestAggregate_ExcludesAbsentEmployee(t *testing.T) {
	logs := []dailylog.DailyGroupLog{
		harvestLog("log-1", day(2024, time.March, 5), "emp-a", "emp-b"),
	}
	period := payslip.Period{Year: 2024, Month: time.March}

	entries, gross := Aggregate("emp-c", period, logs, nil)

	assert.Empty(t, entries)
	assert.True(t, gross.IsZero())
}

func TestAggregate_MonthBoundary(t *testing.T) {
	logs := []dailylog.DailyGroupLog{
		harvestLog("log-1", day(2024, time.February, 29), "emp-a"),
		harvestLog("log-2", day(2024, time.March, 1), "emp-a"),
		harvestLog("log-3", day(2024, time.March, 31), "emp-a"),
		harvestLog("log-4", day(2024, time.April, 1), "emp-a"),
	}
	period := payslip.Period{Year: 2024, Month: time.March}

	entries, gross := Aggregate("emp-a", period, logs, nil)

	require.Len(t, entries, 2)
	assert.Equal(t, day(2024, time.March, 1), entries[0].Date)
	assert.Equal(t, day(2024, time.March, 31), entries[1].Date)
	assert.True(t, gross.Equal(d("400")))
}

func TestAggregate_CarryOverSortsFirst(t *testing.T) {
	logs := []dailylog.DailyGroupLog{
		harvestLog("log-mar", day(2024, time.March, 2), "emp-a"),
		harvestLog("log-feb", day(2024, time.February, 27), "emp-a"),
		harvestLog("log-feb2", day(2024, time.February, 25), "emp-a"),
	}
	period := payslip.Period{Year: 2024, Month: time.March}

	entries, gross := Aggregate("emp-a", period, logs, []string{"log-feb", "log-feb2"})

	require.Len(t, entries, 3)
	// Carry-over entries come first, chronologically, then the period's own.
	assert.Equal(t, day(2024, time.February, 25), entries[0].Date)
	assert.Equal(t, day(2024, time.February, 27), entries[1].Date)
	assert.Equal(t, day(2024, time.March, 2), entries[2].Date)
	assert.True(t, gross.Equal(d("600")))
}

func TestAggregate_CarryOverRequiresPresence(t *testing.T) {
	logs := []dailylog.DailyGroupLog{
		harvestLog("log-feb", day(2024, time.February, 27), "emp-b"),
	}
	period := payslip.Period{Year: 2024, Month: time.March}

	entries, gross := Aggregate("emp-a", period, logs, []string{"log-feb"})

	assert.Empty(t, entries)
	assert.True(t, gross.IsZero())
}

func TestAggregate_RecomputesStaleCachedTotals(t *testing.T) {
	log := harvestLog("log-1", day(2024, time.March, 5), "emp-a")
	log.CustomTasks = []dailylog.CustomTask{{Label: "Loading", Amount: d("50")}}
	// Stale cache that predates the custom task.
	log.TotalGrossEarnings = d("200")
	log.IndividualEarnings = d("200")
	period := payslip.Period{Year: 2024, Month: time.March}

	entries, gross := Aggregate("emp-a", period, []dailylog.DailyGroupLog{log}, nil)

	require.Len(t, entries, 1)
	assert.True(t, entries[0].TotalDailyGross.Equal(d("250")))
	assert.True(t, gross.Equal(d("250")))
	assert.Equal(t, "Harvesting, Loading", entries[0].TaskNames)
}

func TestAggregate_Deterministic(t *testing.T) {
	logs := []dailylog.DailyGroupLog{
		harvestLog("log-2", day(2024, time.March, 10), "emp-a"),
		harvestLog("log-1", day(2024, time.March, 5), "emp-a"),
	}
	period := payslip.Period{Year: 2024, Month: time.March}

	first, firstGross := Aggregate("emp-a", period, logs, nil)
	second, secondGross := Aggregate("emp-a", period, logs, nil)

	assert.Equal(t, first, second)
	assert.True(t, firstGross.Equal(secondGross))
}

func TestBuild_NetSalary(t *testing.T) {
	emp := employee.Employee{ID: "emp-a", Name: "Ana", Status: employee.StatusActive}
	logs := []dailylog.DailyGroupLog{
		harvestLog("log-1", day(2024, time.March, 5), "emp-a", "emp-b"),
	}
	period := payslip.Period{Year: 2024, Month: time.March}

	slip := Build(emp, period, logs, d("50"), d("20"), nil, "slip-1", time.Now())

	assert.True(t, slip.GrossSalary.Equal(d("100")))
	assert.True(t, slip.NetSalary.Equal(d("130")))
	assert.Equal(t, "March 2024", slip.PeriodLabel)
	assert.Equal(t, "Ana", slip.EmployeeName)
}

func TestBuild_NegativeNetAllowed(t *testing.T) {
	emp := employee.Employee{ID: "emp-a", Name: "Ana", Status: employee.StatusActive}
	logs := []dailylog.DailyGroupLog{
		harvestLog("log-1", day(2024, time.March, 5), "emp-a", "emp-b"),
	}
	period := payslip.Period{Year: 2024, Month: time.March}

	slip := Build(emp, period, logs, d("0"), d("150"), nil, "slip-1", time.Now())

	assert.True(t, slip.NetSalary.Equal(d("-50")))
}

func TestBuild_EmptyPeriod(t *testing.T) {
	emp := employee.Employee{ID: "emp-a", Name: "Ana", Status: employee.StatusActive}
	period := payslip.Period{Year: 2024, Month: time.March}

	slip := Build(emp, period, nil, d("0"), d("0"), nil, "slip-1", time.Now())

	assert.Empty(t, slip.Entries)
	assert.True(t, slip.GrossSalary.IsZero())
	assert.True(t, slip.NetSalary.IsZero())
}

func TestBulkBuild_SkipsEmployeesWithoutEarnings(t *testing.T) {
	active := []employee.Employee{
		{ID: "emp-a", Name: "Ana", Status: employee.StatusActive},
		{ID: "emp-b", Name: "Ben", Status: employee.StatusActive},
		{ID: "emp-c", Name: "Cal", Status: employee.StatusActive},
	}
	logs := []dailylog.DailyGroupLog{
		harvestLog("log-1", day(2024, time.March, 5), "emp-a", "emp-b"),
	}
	period := payslip.Period{Year: 2024, Month: time.March}

	nextID := 0
	slips := BulkBuild(period, active, logs, func() string {
		nextID++
		return fmt.Sprintf("slip-%d", nextID)
	}, time.Now())

	require.Len(t, slips, 2)
	assert.Equal(t, "emp-a", slips[0].EmployeeID)
	assert.Equal(t, "emp-b", slips[1].EmployeeID)
	for _, slip := range slips {
		assert.True(t, slip.Allowance.IsZero())
		assert.True(t, slip.Deduction.IsZero())
		assert.True(t, slip.NetSalary.Equal(slip.GrossSalary))
	}
}
