package piecerate

import "context"

type PieceRateRepository interface {
	Create(ctx context.Context, rate PieceRate) (PieceRate, error)
	GetByID(ctx context.Context, id string) (PieceRate, error)
	GetAll(ctx context.Context) ([]PieceRate, error)
	Update(ctx context.Context, req UpdatePieceRateRequest) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, rates []PieceRate) error
}
