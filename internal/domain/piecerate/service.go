package piecerate

import "context"

type PieceRateService interface {
	Create(ctx context.Context, req CreatePieceRateRequest) (PieceRateResponse, error)
	Get(ctx context.Context, id string) (PieceRateResponse, error)
	List(ctx context.Context) ([]PieceRateResponse, error)
	Update(ctx context.Context, req UpdatePieceRateRequest) (PieceRateResponse, error)
	Delete(ctx context.Context, id string) error
}
