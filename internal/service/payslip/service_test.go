package payslip

import (
	"context"
	"testing"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/dailylog"
	"github.com/crewledger/crewledger-backend-go/internal/domain/employee"
	"github.com/crewledger/crewledger-backend-go/internal/domain/payslip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakePayslipRepo struct {
	slips map[string]payslip.Payslip // keyed by employee_id|period
}

func newFakePayslipRepo() *fakePayslipRepo {
	return &fakePayslipRepo{slips: make(map[string]payslip.Payslip)}
}

func (f *fakePayslipRepo) key(slip payslip.Payslip) string {
	return slip.EmployeeID + "|" + slip.Period.String()
}

func (f *fakePayslipRepo) UpsertByEmployeePeriod(ctx context.Context, slip payslip.Payslip) (payslip.Payslip, error) {
	if existing, ok := f.slips[f.key(slip)]; ok {
		slip.ID = existing.ID
	}
	f.slips[f.key(slip)] = slip
	return slip, nil
}

func (f *fakePayslipRepo) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	for _, slip := range f.slips {
		if slip.ID == id {
			return slip, nil
		}
	}
	return payslip.Payslip{}, payslip.ErrPayslipNotFound
}

func (f *fakePayslipRepo) GetAll(ctx context.Context) ([]payslip.Payslip, error) {
	var all []payslip.Payslip
	for _, slip := range f.slips {
		all = append(all, slip)
	}
	return all, nil
}

func (f *fakePayslipRepo) Delete(ctx context.Context, id string) error {
	for k, slip := range f.slips {
		if slip.ID == id {
			delete(f.slips, k)
			return nil
		}
	}
	return payslip.ErrPayslipNotFound
}

func (f *fakePayslipRepo) ReplaceAll(ctx context.Context, slips []payslip.Payslip) error {
	f.slips = make(map[string]payslip.Payslip)
	for _, slip := range slips {
		f.slips[f.key(slip)] = slip
	}
	return nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees = append(f.employees, emp)
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	var active []employee.Employee
	for _, emp := range f.employees {
		if emp.IsActive() {
			active = append(active, emp)
		}
	}
	return active, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SetAvatarURL(ctx context.Context, id string, avatarURL string) error {
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeEmployeeRepo) ReplaceAll(ctx context.Context, employees []employee.Employee) error {
	f.employees = employees
	return nil
}

type fakeLogRepo struct {
	logs []dailylog.DailyGroupLog
}

func (f *fakeLogRepo) UpsertByDate(ctx context.Context, log dailylog.DailyGroupLog) (dailylog.DailyGroupLog, error) {
	f.logs = append(f.logs, log)
	return log, nil
}

func (f *fakeLogRepo) GetByID(ctx context.Context, id string) (dailylog.DailyGroupLog, error) {
	for _, log := range f.logs {
		if log.ID == id {
			return log, nil
		}
	}
	return dailylog.DailyGroupLog{}, dailylog.ErrLogNotFound
}

func (f *fakeLogRepo) GetByDate(ctx context.Context, date time.Time) (dailylog.DailyGroupLog, error) {
	for _, log := range f.logs {
		if log.Date.Equal(date) {
			return log, nil
		}
	}
	return dailylog.DailyGroupLog{}, dailylog.ErrLogNotFound
}

func (f *fakeLogRepo) GetAll(ctx context.Context) ([]dailylog.DailyGroupLog, error) {
	return f.logs, nil
}

func (f *fakeLogRepo) GetByMonth(ctx context.Context, year int, month time.Month) ([]dailylog.DailyGroupLog, error) {
	var matched []dailylog.DailyGroupLog
	for _, log := range f.logs {
		if log.InPeriod(year, month) {
			matched = append(matched, log)
		}
	}
	return matched, nil
}

func (f *fakeLogRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeLogRepo) ReplaceAll(ctx context.Context, logs []dailylog.DailyGroupLog) error {
	f.logs = logs
	return nil
}

type fakeFlags struct {
	bulkEnabled bool
}

func (f *fakeFlags) BulkGenerateEnabled() bool { return f.bulkEnabled }

// ===== TESTS =====

func setupService(bulkEnabled bool) (payslip.PayslipService, *fakePayslipRepo, *fakeEmployeeRepo, *fakeLogRepo) {
	payslipRepo := newFakePayslipRepo()
	employeeRepo := &fakeEmployeeRepo{
		employees: []employee.Employee{
			{ID: "emp-a", Name: "Ana", Status: employee.StatusActive},
			{ID: "emp-b", Name: "Ben", Status: employee.StatusActive},
			{ID: "emp-c", Name: "Cal", Status: employee.StatusActive},
			{ID: "emp-d", Name: "Dan", Status: employee.StatusInactive},
		},
	}
	logRepo := &fakeLogRepo{
		logs: []dailylog.DailyGroupLog{
			harvestLog("log-1", day(2024, time.March, 5), "emp-a", "emp-b"),
		},
	}
	svc := NewPayslipService(payslipRepo, employeeRepo, logRepo, &fakeFlags{bulkEnabled: bulkEnabled})
	return svc, payslipRepo, employeeRepo, logRepo
}

func TestGenerate_PreviewDoesNotPersist(t *testing.T) {
	svc, payslipRepo, _, _ := setupService(true)

	resp, err := svc.Generate(context.Background(), payslip.GeneratePayslipRequest{
		EmployeeID: "emp-a",
		Period:     "2024-03",
		Allowance:  d("50"),
		Deduction:  d("20"),
	})

	require.NoError(t, err)
	assert.True(t, resp.GrossSalary.Equal(d("100")))
	assert.True(t, resp.NetSalary.Equal(d("130")))
	assert.Empty(t, payslipRepo.slips)
}

func TestGenerate_SavePersists(t *testing.T) {
	svc, payslipRepo, _, _ := setupService(true)

	resp, err := svc.Generate(context.Background(), payslip.GeneratePayslipRequest{
		EmployeeID: "emp-a",
		Period:     "2024-03",
		Save:       true,
	})

	require.NoError(t, err)
	require.Len(t, payslipRepo.slips, 1)
	assert.Equal(t, "2024-03", resp.Period)
}

func TestGenerate_RegenerationUpserts(t *testing.T) {
	svc, payslipRepo, _, _ := setupService(true)
	ctx := context.Background()

	_, err := svc.Generate(ctx, payslip.GeneratePayslipRequest{
		EmployeeID: "emp-a", Period: "2024-03", Save: true,
	})
	require.NoError(t, err)

	_, err = svc.Generate(ctx, payslip.GeneratePayslipRequest{
		EmployeeID: "emp-a", Period: "2024-03", Allowance: d("25"), Save: true,
	})
	require.NoError(t, err)

	// Same employee and period: still one history entry, updated in place.
	require.Len(t, payslipRepo.slips, 1)
	for _, slip := range payslipRepo.slips {
		assert.True(t, slip.Allowance.Equal(d("25")))
	}
}

func TestGenerate_UnknownEmployee(t *testing.T) {
	svc, payslipRepo, _, _ := setupService(true)

	_, err := svc.Generate(context.Background(), payslip.GeneratePayslipRequest{
		EmployeeID: "emp-x",
		Period:     "2024-03",
		Save:       true,
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, payslipRepo.slips)
}

func TestGenerate_InvalidPeriod(t *testing.T) {
	svc, _, _, _ := setupService(true)

	_, err := svc.Generate(context.Background(), payslip.GeneratePayslipRequest{
		EmployeeID: "emp-a",
		Period:     "March 2024",
	})

	assert.Error(t, err)
}

func TestBulkGenerate_SkipsAndCounts(t *testing.T) {
	svc, payslipRepo, _, _ := setupService(true)

	resp, err := svc.BulkGenerate(context.Background(), payslip.BulkGenerateRequest{Period: "2024-03"})

	require.NoError(t, err)
	// emp-a and emp-b earned; emp-c is active but absent; emp-d is inactive.
	assert.Len(t, resp.Generated, 2)
	assert.Equal(t, 1, resp.Skipped)
	assert.Len(t, payslipRepo.slips, 2)
}

func TestBulkGenerate_Disabled(t *testing.T) {
	svc, payslipRepo, _, _ := setupService(false)

	_, err := svc.BulkGenerate(context.Background(), payslip.BulkGenerateRequest{Period: "2024-03"})

	assert.ErrorIs(t, err, payslip.ErrBulkGenerateDisabled)
	assert.Empty(t, payslipRepo.slips)
}

func TestBulkGenerate_ZeroAllowanceAndDeduction(t *testing.T) {
	svc, _, _, _ := setupService(true)

	resp, err := svc.BulkGenerate(context.Background(), payslip.BulkGenerateRequest{Period: "2024-03"})

	require.NoError(t, err)
	for _, slip := range resp.Generated {
		assert.True(t, slip.Allowance.IsZero())
		assert.True(t, slip.Deduction.IsZero())
		assert.True(t, slip.NetSalary.Equal(slip.GrossSalary))
	}
}
