package dailylog

import (
	"context"
	"time"
)

type DailyLogRepository interface {
	// UpsertByDate saves the log, replacing any existing log for the same
	// date. The date column carries a unique constraint.
	UpsertByDate(ctx context.Context, log DailyGroupLog) (DailyGroupLog, error)
	GetByID(ctx context.Context, id string) (DailyGroupLog, error)
	GetByDate(ctx context.Context, date time.Time) (DailyGroupLog, error)
	GetAll(ctx context.Context) ([]DailyGroupLog, error)
	GetByMonth(ctx context.Context, year int, month time.Month) ([]DailyGroupLog, error)
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, logs []DailyGroupLog) error
}
