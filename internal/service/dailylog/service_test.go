package dailylog

import (
	"context"
	"testing"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/dailylog"
	"github.com/crewledger/crewledger-backend-go/internal/domain/piecerate"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type fakeRateRepo struct {
	rates map[string]piecerate.PieceRate
}

func (f *fakeRateRepo) Create(ctx context.Context, rate piecerate.PieceRate) (piecerate.PieceRate, error) {
	f.rates[rate.ID] = rate
	return rate, nil
}

func (f *fakeRateRepo) GetByID(ctx context.Context, id string) (piecerate.PieceRate, error) {
	rate, ok := f.rates[id]
	if !ok {
		return piecerate.PieceRate{}, piecerate.ErrPieceRateNotFound
	}
	return rate, nil
}

func (f *fakeRateRepo) GetAll(ctx context.Context) ([]piecerate.PieceRate, error) {
	var all []piecerate.PieceRate
	for _, rate := range f.rates {
		all = append(all, rate)
	}
	return all, nil
}

func (f *fakeRateRepo) Update(ctx context.Context, req piecerate.UpdatePieceRateRequest) error {
	rate := f.rates[req.ID]
	if req.Rate != nil {
		rate.Rate = *req.Rate
	}
	if req.TaskName != nil {
		rate.TaskName = *req.TaskName
	}
	f.rates[req.ID] = rate
	return nil
}

func (f *fakeRateRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeRateRepo) ReplaceAll(ctx context.Context, rates []piecerate.PieceRate) error {
	return nil
}

type fakeLogRepo struct {
	logs map[string]dailylog.DailyGroupLog // keyed by date string
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{logs: make(map[string]dailylog.DailyGroupLog)}
}

func (f *fakeLogRepo) UpsertByDate(ctx context.Context, log dailylog.DailyGroupLog) (dailylog.DailyGroupLog, error) {
	key := log.Date.Format("2006-01-02")
	if existing, ok := f.logs[key]; ok {
		log.ID = existing.ID
	}
	f.logs[key] = log
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
	log, ok := f.logs[date.Format("2006-01-02")]
	if !ok {
		return dailylog.DailyGroupLog{}, dailylog.ErrLogNotFound
	}
	return log, nil
}

func (f *fakeLogRepo) GetAll(ctx context.Context) ([]dailylog.DailyGroupLog, error) {
	var all []dailylog.DailyGroupLog
	for _, log := range f.logs {
		all = append(all, log)
	}
	return all, nil
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
	return nil
}

func setupService() (dailylog.DailyLogService, *fakeLogRepo) {
	rateRepo := &fakeRateRepo{
		rates: map[string]piecerate.PieceRate{
			"rate-1": {ID: "rate-1", TaskName: "Harvesting", Rate: d("10")},
			"rate-2": {ID: "rate-2", TaskName: "Weeding", Rate: d("5")},
		},
	}
	logRepo := newFakeLogRepo()
	return NewDailyLogService(logRepo, rateRepo), logRepo
}

func TestSave_SnapshotsCatalogRates(t *testing.T) {
	svc, _ := setupService()

	resp, err := svc.Save(context.Background(), dailylog.SaveLogRequest{
		Date: "2024-03-05",
		Tasks: []dailylog.TaskEntry{
			{PieceRateID: "rate-1", Quantity: d("20")},
		},
		PresentEmployeeIDs: []string{"emp-a", "emp-b"},
	})

	require.NoError(t, err)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, "Harvesting", resp.Tasks[0].TaskName)
	assert.True(t, resp.Tasks[0].Rate.Equal(d("10")))
	assert.True(t, resp.Tasks[0].SubTotal.Equal(d("200")))
	assert.True(t, resp.TotalGrossEarnings.Equal(d("200")))
	assert.True(t, resp.IndividualEarnings.Equal(d("100")))
}

func TestSave_ReplacesSameDate(t *testing.T) {
	svc, logRepo := setupService()
	ctx := context.Background()

	first, err := svc.Save(ctx, dailylog.SaveLogRequest{
		Date: "2024-03-05",
		Tasks: []dailylog.TaskEntry{
			{PieceRateID: "rate-1", Quantity: d("20")},
		},
		PresentEmployeeIDs: []string{"emp-a"},
	})
	require.NoError(t, err)

	second, err := svc.Save(ctx, dailylog.SaveLogRequest{
		Date: "2024-03-05",
		Tasks: []dailylog.TaskEntry{
			{PieceRateID: "rate-2", Quantity: d("10")},
		},
		PresentEmployeeIDs: []string{"emp-a", "emp-b"},
	})
	require.NoError(t, err)

	// One log per date; the replacement keeps the original ID.
	assert.Len(t, logRepo.logs, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.TotalGrossEarnings.Equal(d("50")))
}

func TestSave_UnknownPieceRate(t *testing.T) {
	svc, logRepo := setupService()

	_, err := svc.Save(context.Background(), dailylog.SaveLogRequest{
		Date: "2024-03-05",
		Tasks: []dailylog.TaskEntry{
			{PieceRateID: "rate-x", Quantity: d("1")},
		},
		PresentEmployeeIDs: []string{"emp-a"},
	})

	assert.ErrorIs(t, err, piecerate.ErrPieceRateNotFound)
	assert.Empty(t, logRepo.logs)
}

func TestSave_ValidationErrors(t *testing.T) {
	svc, _ := setupService()

	_, err := svc.Save(context.Background(), dailylog.SaveLogRequest{
		Date:               "not-a-date",
		PresentEmployeeIDs: nil,
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	details := validationErrs.ToMap()
	assert.Contains(t, details, "date")
	assert.Contains(t, details, "tasks")
	assert.Contains(t, details, "present_employee_ids")
}

func TestList_PeriodFilter(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	for _, date := range []string{"2024-02-29", "2024-03-05", "2024-03-20"} {
		_, err := svc.Save(ctx, dailylog.SaveLogRequest{
			Date: date,
			Tasks: []dailylog.TaskEntry{
				{PieceRateID: "rate-1", Quantity: d("1")},
			},
			PresentEmployeeIDs: []string{"emp-a"},
		})
		require.NoError(t, err)
	}

	period := "2024-03"
	logs, err := svc.List(ctx, &period)

	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestList_InvalidPeriod(t *testing.T) {
	svc, _ := setupService()

	period := "2024-3"
	_, err := svc.List(context.Background(), &period)

	assert.Error(t, err)
}
