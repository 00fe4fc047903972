package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/dailylog"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type dailyLogRepository struct {
	db *database.DB
}

func NewDailyLogRepository(db *database.DB) dailylog.DailyLogRepository {
	return &dailyLogRepository{db: db}
}

// taskRecord is the JSONB shape of a snapshot task line.
type taskRecord struct {
	PieceRateID string          `json:"piece_rate_id"`
	TaskName    string          `json:"task_name"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    decimal.Decimal `json:"quantity"`
	SubTotal    decimal.Decimal `json:"sub_total"`
}

type customTaskRecord struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

func encodeTasks(tasks []dailylog.DailyTask) ([]byte, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, taskRecord(t))
	}
	return json.Marshal(records)
}

func encodeCustomTasks(tasks []dailylog.CustomTask) ([]byte, error) {
	records := make([]customTaskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, customTaskRecord(t))
	}
	return json.Marshal(records)
}

func decodeTasks(data []byte) ([]dailylog.DailyTask, error) {
	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	tasks := make([]dailylog.DailyTask, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, dailylog.DailyTask(rec))
	}
	return tasks, nil
}

func decodeCustomTasks(data []byte) ([]dailylog.CustomTask, error) {
	var records []customTaskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	tasks := make([]dailylog.CustomTask, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, dailylog.CustomTask(rec))
	}
	return tasks, nil
}

// UpsertByDate relies on the unique index on log_date: saving over an
// existing date replaces its content while keeping the original row ID.
func (r *dailyLogRepository) UpsertByDate(ctx context.Context, log dailylog.DailyGroupLog) (dailylog.DailyGroupLog, error) {
	q := GetQuerier(ctx, r.db)

	tasksJSON, err := encodeTasks(log.Tasks)
	if err != nil {
		return dailylog.DailyGroupLog{}, fmt.Errorf("failed to encode tasks: %w", err)
	}
	customJSON, err := encodeCustomTasks(log.CustomTasks)
	if err != nil {
		return dailylog.DailyGroupLog{}, fmt.Errorf("failed to encode custom tasks: %w", err)
	}

	query := `
		INSERT INTO daily_group_logs (
			id, log_date, tasks, custom_tasks, present_employee_ids,
			total_gross_earnings, individual_earnings, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (log_date) DO UPDATE SET
			tasks = EXCLUDED.tasks,
			custom_tasks = EXCLUDED.custom_tasks,
			present_employee_ids = EXCLUDED.present_employee_ids,
			total_gross_earnings = EXCLUDED.total_gross_earnings,
			individual_earnings = EXCLUDED.individual_earnings,
			updated_at = NOW()
		RETURNING id, log_date, tasks, custom_tasks, present_employee_ids,
			total_gross_earnings, individual_earnings, created_at, updated_at
	`

	row := q.QueryRow(ctx, query,
		log.ID, log.Date, tasksJSON, customJSON, log.PresentEmployeeIDs,
		log.TotalGrossEarnings, log.IndividualEarnings, log.CreatedAt, log.UpdatedAt,
	)

	saved, err := scanLog(row)
	if err != nil {
		return dailylog.DailyGroupLog{}, fmt.Errorf("failed to upsert daily log: %w", err)
	}

	return saved, nil
}

func (r *dailyLogRepository) GetByID(ctx context.Context, id string) (dailylog.DailyGroupLog, error) {
	q := GetQuerier(ctx, r.db)

	query := selectLogQuery + ` WHERE id = $1`

	log, err := scanLog(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return dailylog.DailyGroupLog{}, dailylog.ErrLogNotFound
		}
		return dailylog.DailyGroupLog{}, fmt.Errorf("failed to get daily log: %w", err)
	}

	return log, nil
}

func (r *dailyLogRepository) GetByDate(ctx context.Context, date time.Time) (dailylog.DailyGroupLog, error) {
	q := GetQuerier(ctx, r.db)

	query := selectLogQuery + ` WHERE log_date = $1`

	log, err := scanLog(q.QueryRow(ctx, query, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return dailylog.DailyGroupLog{}, dailylog.ErrLogNotFound
		}
		return dailylog.DailyGroupLog{}, fmt.Errorf("failed to get daily log by date: %w", err)
	}

	return log, nil
}

func (r *dailyLogRepository) GetAll(ctx context.Context) ([]dailylog.DailyGroupLog, error) {
	q := GetQuerier(ctx, r.db)

	return r.queryLogs(ctx, q, selectLogQuery+` ORDER BY log_date ASC`)
}

func (r *dailyLogRepository) GetByMonth(ctx context.Context, year int, month time.Month) ([]dailylog.DailyGroupLog, error) {
	q := GetQuerier(ctx, r.db)

	query := selectLogQuery + `
		WHERE EXTRACT(YEAR FROM log_date) = $1 AND EXTRACT(MONTH FROM log_date) = $2
		ORDER BY log_date ASC
	`
	return r.queryLogs(ctx, q, query, year, int(month))
}

func (r *dailyLogRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM daily_group_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete daily log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dailylog.ErrLogNotFound
	}

	return nil
}

func (r *dailyLogRepository) ReplaceAll(ctx context.Context, logs []dailylog.DailyGroupLog) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM daily_group_logs`); err != nil {
		return fmt.Errorf("failed to clear daily logs: %w", err)
	}

	for _, log := range logs {
		if _, err := r.UpsertByDate(ctx, log); err != nil {
			return err
		}
	}

	return nil
}

const selectLogQuery = `
	SELECT id, log_date, tasks, custom_tasks, present_employee_ids,
		total_gross_earnings, individual_earnings, created_at, updated_at
	FROM daily_group_logs
`

func (r *dailyLogRepository) queryLogs(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]dailylog.DailyGroupLog, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}
	defer rows.Close()

	var logs []dailylog.DailyGroupLog
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func scanLog(row pgx.Row) (dailylog.DailyGroupLog, error) {
	var (
		log        dailylog.DailyGroupLog
		tasksJSON  []byte
		customJSON []byte
	)
	err := row.Scan(
		&log.ID, &log.Date, &tasksJSON, &customJSON, &log.PresentEmployeeIDs,
		&log.TotalGrossEarnings, &log.IndividualEarnings, &log.CreatedAt, &log.UpdatedAt,
	)
	if err != nil {
		return dailylog.DailyGroupLog{}, err
	}

	if log.Tasks, err = decodeTasks(tasksJSON); err != nil {
		return dailylog.DailyGroupLog{}, fmt.Errorf("failed to decode tasks: %w", err)
	}
	// Logs written before custom tasks existed store NULL here.
	if len(customJSON) > 0 {
		if log.CustomTasks, err = decodeCustomTasks(customJSON); err != nil {
			return dailylog.DailyGroupLog{}, fmt.Errorf("failed to decode custom tasks: %w", err)
		}
	}

	return log, nil
}
