package backup

import (
	"context"
	"testing"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/dailylog"
	"github.com/crewledger/crewledger-backend-go/internal/domain/employee"
	"github.com/crewledger/crewledger-backend-go/internal/domain/payslip"
	"github.com/crewledger/crewledger-backend-go/internal/domain/piecerate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// ===== FAKES =====

type fakeStore struct {
	employees []employee.Employee
	rates     []piecerate.PieceRate
	logs      []dailylog.DailyGroupLog
	slips     []payslip.Payslip
}

type fakeEmployeeRepo struct{ store *fakeStore }

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.store.employees = append(f.store.employees, emp)
	return emp, nil
}
func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
func (f *fakeEmployeeRepo) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return f.store.employees, nil
}
func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return f.store.employees, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}
func (f *fakeEmployeeRepo) SetAvatarURL(ctx context.Context, id string, avatarURL string) error {
	return nil
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeEmployeeRepo) ReplaceAll(ctx context.Context, employees []employee.Employee) error {
	f.store.employees = employees
	return nil
}

type fakeRateRepo struct{ store *fakeStore }

func (f *fakeRateRepo) Create(ctx context.Context, rate piecerate.PieceRate) (piecerate.PieceRate, error) {
	f.store.rates = append(f.store.rates, rate)
	return rate, nil
}
func (f *fakeRateRepo) GetByID(ctx context.Context, id string) (piecerate.PieceRate, error) {
	return piecerate.PieceRate{}, piecerate.ErrPieceRateNotFound
}
func (f *fakeRateRepo) GetAll(ctx context.Context) ([]piecerate.PieceRate, error) {
	return f.store.rates, nil
}
func (f *fakeRateRepo) Update(ctx context.Context, req piecerate.UpdatePieceRateRequest) error {
	return nil
}
func (f *fakeRateRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeRateRepo) ReplaceAll(ctx context.Context, rates []piecerate.PieceRate) error {
	f.store.rates = rates
	return nil
}

type fakeLogRepo struct{ store *fakeStore }

func (f *fakeLogRepo) UpsertByDate(ctx context.Context, log dailylog.DailyGroupLog) (dailylog.DailyGroupLog, error) {
	f.store.logs = append(f.store.logs, log)
	return log, nil
}
func (f *fakeLogRepo) GetByID(ctx context.Context, id string) (dailylog.DailyGroupLog, error) {
	return dailylog.DailyGroupLog{}, dailylog.ErrLogNotFound
}
func (f *fakeLogRepo) GetByDate(ctx context.Context, date time.Time) (dailylog.DailyGroupLog, error) {
	return dailylog.DailyGroupLog{}, dailylog.ErrLogNotFound
}
func (f *fakeLogRepo) GetAll(ctx context.Context) ([]dailylog.DailyGroupLog, error) {
	return f.store.logs, nil
}
func (f *fakeLogRepo) GetByMonth(ctx context.Context, year int, month time.Month) ([]dailylog.DailyGroupLog, error) {
	return f.store.logs, nil
}
func (f *fakeLogRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeLogRepo) ReplaceAll(ctx context.Context, logs []dailylog.DailyGroupLog) error {
	f.store.logs = logs
	return nil
}

type fakePayslipRepo struct{ store *fakeStore }

func (f *fakePayslipRepo) UpsertByEmployeePeriod(ctx context.Context, slip payslip.Payslip) (payslip.Payslip, error) {
	f.store.slips = append(f.store.slips, slip)
	return slip, nil
}
func (f *fakePayslipRepo) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	return payslip.Payslip{}, payslip.ErrPayslipNotFound
}
func (f *fakePayslipRepo) GetAll(ctx context.Context) ([]payslip.Payslip, error) {
	return f.store.slips, nil
}
func (f *fakePayslipRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakePayslipRepo) ReplaceAll(ctx context.Context, slips []payslip.Payslip) error {
	f.store.slips = slips
	return nil
}

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeDrive struct {
	uploaded []byte
	stored   []byte
}

func (f *fakeDrive) RedirectURL(state string) string { return "https://example.com/auth?state=" + state }
func (f *fakeDrive) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "test-token"}, nil
}
func (f *fakeDrive) UploadBackup(ctx context.Context, token *oauth2.Token, payload []byte) error {
	f.uploaded = payload
	return nil
}
func (f *fakeDrive) DownloadBackup(ctx context.Context, token *oauth2.Token) ([]byte, error) {
	return f.stored, nil
}

// ===== TESTS =====

func seededStore() *fakeStore {
	position := "Supervisor"
	return &fakeStore{
		employees: []employee.Employee{
			{ID: "emp-a", Name: "Ana", Position: &position, Status: employee.StatusActive},
			{ID: "emp-b", Name: "Ben", Status: employee.StatusInactive},
		},
		rates: []piecerate.PieceRate{
			{ID: "rate-1", TaskName: "Harvesting", Rate: d("10")},
		},
		logs: []dailylog.DailyGroupLog{
			{
				ID:   "log-1",
				Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
				Tasks: []dailylog.DailyTask{
					{PieceRateID: "rate-1", TaskName: "Harvesting", Rate: d("10"), Quantity: d("20"), SubTotal: d("200")},
				},
				PresentEmployeeIDs: []string{"emp-a"},
				TotalGrossEarnings: d("200"),
				IndividualEarnings: d("200"),
			},
		},
		slips: []payslip.Payslip{
			{
				ID:           "slip-1",
				EmployeeID:   "emp-a",
				EmployeeName: "Ana",
				Period:       payslip.Period{Year: 2024, Month: time.March},
				PeriodLabel:  "March 2024",
				Entries: []payslip.LogEntry{
					{
						Date:            time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
						TaskNames:       "Harvesting",
						TotalDailyGross: d("200"),
						WorkersPresent:  1,
						YourEarning:     d("200"),
					},
				},
				GrossSalary: d("200"),
				Allowance:   d("0"),
				Deduction:   d("0"),
				NetSalary:   d("200"),
			},
		},
	}
}

func setupBackup(store *fakeStore) (BackupService, *fakeTransactor, *fakeDrive) {
	transactor := &fakeTransactor{}
	drive := &fakeDrive{}
	svc := NewBackupService(
		&fakeEmployeeRepo{store: store},
		&fakeRateRepo{store: store},
		&fakeLogRepo{store: store},
		&fakePayslipRepo{store: store},
		transactor,
		drive,
	)
	return svc, transactor, drive
}

func TestExportImport_RoundTrip(t *testing.T) {
	source := seededStore()
	sourceSvc, _, _ := setupBackup(source)

	data, err := sourceSvc.Export(context.Background())
	require.NoError(t, err)

	target := &fakeStore{}
	targetSvc, transactor, _ := setupBackup(target)

	require.NoError(t, targetSvc.Import(context.Background(), data))

	assert.Equal(t, 1, transactor.calls)
	require.Len(t, target.employees, 2)
	assert.Equal(t, "Ana", target.employees[0].Name)
	require.Len(t, target.rates, 1)
	assert.True(t, target.rates[0].Rate.Equal(d("10")))
	require.Len(t, target.logs, 1)
	assert.Equal(t, "log-1", target.logs[0].ID)
	require.Len(t, target.slips, 1)
	assert.Equal(t, "2024-03", target.slips[0].Period.String())
	assert.True(t, target.slips[0].NetSalary.Equal(d("200")))
}

func TestImport_RejectsGarbage(t *testing.T) {
	target := &fakeStore{}
	svc, transactor, _ := setupBackup(target)

	err := svc.Import(context.Background(), []byte("not json"))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	err = svc.Import(context.Background(), []byte(`{"foo": "bar"}`))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	assert.Zero(t, transactor.calls)
}

func TestDrive_RequiresConnection(t *testing.T) {
	svc, _, _ := setupBackup(seededStore())

	assert.False(t, svc.DriveConnected())
	assert.ErrorIs(t, svc.BackupToDrive(context.Background()), ErrDriveNotConnected)
	assert.ErrorIs(t, svc.RestoreFromDrive(context.Background()), ErrDriveNotConnected)
}

func TestDrive_BackupAndRestore(t *testing.T) {
	source := seededStore()
	svc, _, drive := setupBackup(source)
	ctx := context.Background()

	require.NoError(t, svc.ConnectDrive(ctx, "auth-code"))
	assert.True(t, svc.DriveConnected())

	require.NoError(t, svc.BackupToDrive(ctx))
	assert.NotEmpty(t, drive.uploaded)

	// Restore the uploaded snapshot into an empty store.
	target := &fakeStore{}
	targetSvc, _, targetDrive := setupBackup(target)
	targetDrive.stored = drive.uploaded

	require.NoError(t, targetSvc.ConnectDrive(ctx, "auth-code"))
	require.NoError(t, targetSvc.RestoreFromDrive(ctx))
	assert.Len(t, target.employees, 2)
}
