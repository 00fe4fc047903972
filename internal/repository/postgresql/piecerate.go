package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/crewledger/crewledger-backend-go/internal/domain/piecerate"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type pieceRateRepository struct {
	db *database.DB
}

func NewPieceRateRepository(db *database.DB) piecerate.PieceRateRepository {
	return &pieceRateRepository{db: db}
}

func (r *pieceRateRepository) Create(ctx context.Context, rate piecerate.PieceRate) (piecerate.PieceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO piece_rates (id, task_name, rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, task_name, rate, created_at, updated_at
	`

	var p piecerate.PieceRate
	err := q.QueryRow(ctx, query,
		rate.ID, rate.TaskName, rate.Rate, rate.CreatedAt, rate.UpdatedAt,
	).Scan(
		&p.ID, &p.TaskName, &p.Rate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return piecerate.PieceRate{}, fmt.Errorf("failed to create piece rate: %w", err)
	}

	return p, nil
}

func (r *pieceRateRepository) GetByID(ctx context.Context, id string) (piecerate.PieceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, task_name, rate, created_at, updated_at
		FROM piece_rates
		WHERE id = $1
	`

	var p piecerate.PieceRate
	err := q.QueryRow(ctx, query, id).Scan(&p.ID, &p.TaskName, &p.Rate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return piecerate.PieceRate{}, piecerate.ErrPieceRateNotFound
		}
		return piecerate.PieceRate{}, fmt.Errorf("failed to get piece rate: %w", err)
	}

	return p, nil
}

func (r *pieceRateRepository) GetAll(ctx context.Context) ([]piecerate.PieceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, task_name, rate, created_at, updated_at
		FROM piece_rates
		ORDER BY task_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list piece rates: %w", err)
	}
	defer rows.Close()

	var rates []piecerate.PieceRate
	for rows.Next() {
		var p piecerate.PieceRate
		if err := rows.Scan(&p.ID, &p.TaskName, &p.Rate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan piece rate: %w", err)
		}
		rates = append(rates, p)
	}

	return rates, rows.Err()
}

func (r *pieceRateRepository) Update(ctx context.Context, req piecerate.UpdatePieceRateRequest) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.TaskName != nil {
		setClauses = append(setClauses, fmt.Sprintf("task_name = $%d", argIdx))
		args = append(args, *req.TaskName)
		argIdx++
	}
	if req.Rate != nil {
		setClauses = append(setClauses, fmt.Sprintf("rate = $%d", argIdx))
		args = append(args, *req.Rate)
		argIdx++
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf("UPDATE piece_rates SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argIdx)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update piece rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return piecerate.ErrPieceRateNotFound
	}

	return nil
}

func (r *pieceRateRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM piece_rates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete piece rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return piecerate.ErrPieceRateNotFound
	}

	return nil
}

func (r *pieceRateRepository) ReplaceAll(ctx context.Context, rates []piecerate.PieceRate) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM piece_rates`); err != nil {
		return fmt.Errorf("failed to clear piece rates: %w", err)
	}

	for _, rate := range rates {
		if _, err := r.Create(ctx, rate); err != nil {
			return err
		}
	}

	return nil
}
