package dailylog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/dailylog"
	"github.com/crewledger/crewledger-backend-go/internal/domain/piecerate"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type DailyLogServiceImpl struct {
	logRepo  dailylog.DailyLogRepository
	rateRepo piecerate.PieceRateRepository
}

func NewDailyLogService(logRepo dailylog.DailyLogRepository, rateRepo piecerate.PieceRateRepository) dailylog.DailyLogService {
	return &DailyLogServiceImpl{
		logRepo:  logRepo,
		rateRepo: rateRepo,
	}
}

// Save creates or replaces the log for the request's date. Task name and
// rate are copied out of the rate catalog here, so later catalog edits
// leave existing logs untouched.
func (s *DailyLogServiceImpl) Save(ctx context.Context, req dailylog.SaveLogRequest) (dailylog.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return dailylog.LogResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	tasks := make([]dailylog.DailyTask, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		rate, err := s.rateRepo.GetByID(ctx, t.PieceRateID)
		if err != nil {
			return dailylog.LogResponse{}, err
		}
		tasks = append(tasks, dailylog.DailyTask{
			PieceRateID: rate.ID,
			TaskName:    rate.TaskName,
			Rate:        rate.Rate,
			Quantity:    t.Quantity,
			SubTotal:    rate.Rate.Mul(t.Quantity),
		})
	}

	customTasks := make([]dailylog.CustomTask, 0, len(req.CustomTasks))
	for _, c := range req.CustomTasks {
		customTasks = append(customTasks, dailylog.CustomTask{
			Label:  c.Label,
			Amount: c.Amount,
		})
	}

	now := time.Now()
	log := dailylog.DailyGroupLog{
		ID:                 uuid.New().String(),
		Date:               date,
		Tasks:              tasks,
		CustomTasks:        customTasks,
		PresentEmployeeIDs: req.PresentEmployeeIDs,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	totals := log.Recompute()
	log.TotalGrossEarnings = totals.TotalGrossEarnings
	log.IndividualEarnings = totals.IndividualEarnings

	saved, err := s.logRepo.UpsertByDate(ctx, log)
	if err != nil {
		return dailylog.LogResponse{}, fmt.Errorf("save daily log: %w", err)
	}

	slog.Info("Daily log saved", "date", req.Date, "tasks", len(tasks), "present", len(req.PresentEmployeeIDs))
	return toResponse(saved), nil
}

func (s *DailyLogServiceImpl) Get(ctx context.Context, id string) (dailylog.LogResponse, error) {
	log, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		return dailylog.LogResponse{}, err
	}
	return toResponse(log), nil
}

func (s *DailyLogServiceImpl) GetByDate(ctx context.Context, date string) (dailylog.LogResponse, error) {
	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return dailylog.LogResponse{}, validator.ValidationErrors{
			{Field: "date", Message: "must be a valid date in YYYY-MM-DD format"},
		}
	}

	log, err := s.logRepo.GetByDate(ctx, parsed)
	if err != nil {
		return dailylog.LogResponse{}, err
	}
	return toResponse(log), nil
}

// List returns all logs, or only the given YYYY-MM month when period is
// set.
func (s *DailyLogServiceImpl) List(ctx context.Context, period *string) ([]dailylog.LogResponse, error) {
	var (
		logs []dailylog.DailyGroupLog
		err  error
	)
	if period != nil && *period != "" {
		if !validator.IsValidPeriod(*period) {
			return nil, validator.ValidationErrors{
				{Field: "period", Message: "must be in YYYY-MM format"},
			}
		}
		month, _ := time.Parse("2006-01", *period)
		logs, err = s.logRepo.GetByMonth(ctx, month.Year(), month.Month())
	} else {
		logs, err = s.logRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]dailylog.LogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, toResponse(log))
	}
	return responses, nil
}

func (s *DailyLogServiceImpl) Delete(ctx context.Context, id string) error {
	return s.logRepo.Delete(ctx, id)
}

func toResponse(log dailylog.DailyGroupLog) dailylog.LogResponse {
	tasks := make([]dailylog.TaskResponse, 0, len(log.Tasks))
	for _, t := range log.Tasks {
		tasks = append(tasks, dailylog.TaskResponse{
			PieceRateID: t.PieceRateID,
			TaskName:    t.TaskName,
			Rate:        t.Rate,
			Quantity:    t.Quantity,
			SubTotal:    t.SubTotal,
		})
	}

	customTasks := make([]dailylog.CustomTaskResponse, 0, len(log.CustomTasks))
	for _, c := range log.CustomTasks {
		customTasks = append(customTasks, dailylog.CustomTaskResponse{
			Label:  c.Label,
			Amount: c.Amount,
		})
	}

	// Responses always carry freshly derived totals, never the stored cache.
	totals := log.Recompute()

	return dailylog.LogResponse{
		ID:                 log.ID,
		Date:               log.Date.Format("2006-01-02"),
		Tasks:              tasks,
		CustomTasks:        customTasks,
		PresentEmployeeIDs: log.PresentEmployeeIDs,
		TotalGrossEarnings: totals.TotalGrossEarnings,
		IndividualEarnings: totals.IndividualEarnings,
	}
}
