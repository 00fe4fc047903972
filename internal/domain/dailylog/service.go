package dailylog

import "context"

type DailyLogService interface {
	Save(ctx context.Context, req SaveLogRequest) (LogResponse, error)
	Get(ctx context.Context, id string) (LogResponse, error)
	GetByDate(ctx context.Context, date string) (LogResponse, error)
	List(ctx context.Context, period *string) ([]LogResponse, error)
	Delete(ctx context.Context, id string) error
}
