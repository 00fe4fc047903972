package piecerate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/piecerate"
	"github.com/google/uuid"
)

type PieceRateServiceImpl struct {
	rateRepo piecerate.PieceRateRepository
}

func NewPieceRateService(rateRepo piecerate.PieceRateRepository) piecerate.PieceRateService {
	return &PieceRateServiceImpl{rateRepo: rateRepo}
}

func (s *PieceRateServiceImpl) Create(ctx context.Context, req piecerate.CreatePieceRateRequest) (piecerate.PieceRateResponse, error) {
	if err := req.Validate(); err != nil {
		return piecerate.PieceRateResponse{}, err
	}

	now := time.Now()
	rate := piecerate.PieceRate{
		ID:        uuid.New().String(),
		TaskName:  req.TaskName,
		Rate:      req.Rate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.rateRepo.Create(ctx, rate)
	if err != nil {
		return piecerate.PieceRateResponse{}, fmt.Errorf("create piece rate: %w", err)
	}

	slog.Info("Piece rate created", "piece_rate_id", created.ID, "task_name", created.TaskName)
	return toResponse(created), nil
}

func (s *PieceRateServiceImpl) Get(ctx context.Context, id string) (piecerate.PieceRateResponse, error) {
	rate, err := s.rateRepo.GetByID(ctx, id)
	if err != nil {
		return piecerate.PieceRateResponse{}, err
	}
	return toResponse(rate), nil
}

func (s *PieceRateServiceImpl) List(ctx context.Context) ([]piecerate.PieceRateResponse, error) {
	rates, err := s.rateRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]piecerate.PieceRateResponse, 0, len(rates))
	for _, rate := range rates {
		responses = append(responses, toResponse(rate))
	}
	return responses, nil
}

func (s *PieceRateServiceImpl) Update(ctx context.Context, req piecerate.UpdatePieceRateRequest) (piecerate.PieceRateResponse, error) {
	if err := req.Validate(); err != nil {
		return piecerate.PieceRateResponse{}, err
	}

	if _, err := s.rateRepo.GetByID(ctx, req.ID); err != nil {
		return piecerate.PieceRateResponse{}, err
	}

	if err := s.rateRepo.Update(ctx, req); err != nil {
		return piecerate.PieceRateResponse{}, fmt.Errorf("update piece rate: %w", err)
	}

	updated, err := s.rateRepo.GetByID(ctx, req.ID)
	if err != nil {
		return piecerate.PieceRateResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *PieceRateServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.rateRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.rateRepo.Delete(ctx, id)
}

func toResponse(rate piecerate.PieceRate) piecerate.PieceRateResponse {
	return piecerate.PieceRateResponse{
		ID:       rate.ID,
		TaskName: rate.TaskName,
		Rate:     rate.Rate,
	}
}
