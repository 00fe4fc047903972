package piecerate

import (
	"github.com/crewledger/crewledger-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePieceRateRequest struct {
	TaskName string          `json:"task_name"`
	Rate     decimal.Decimal `json:"rate"`
}

func (r *CreatePieceRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TaskName) {
		errs = append(errs, validator.ValidationError{Field: "task_name", Message: "is required"})
	}
	if !r.Rate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePieceRateRequest struct {
	ID       string
	TaskName *string          `json:"task_name,omitempty"`
	Rate     *decimal.Decimal `json:"rate,omitempty"`
}

func (r *UpdatePieceRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TaskName != nil && validator.IsEmpty(*r.TaskName) {
		errs = append(errs, validator.ValidationError{Field: "task_name", Message: "must not be empty"})
	}
	if r.Rate != nil && !r.Rate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PieceRateResponse struct {
	ID       string          `json:"id"`
	TaskName string          `json:"task_name"`
	Rate     decimal.Decimal `json:"rate"`
}
