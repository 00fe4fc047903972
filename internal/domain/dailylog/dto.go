package dailylog

import (
	"github.com/crewledger/crewledger-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type TaskEntry struct {
	PieceRateID string          `json:"piece_rate_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

type CustomTaskEntry struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// SaveLogRequest creates or replaces the single log for its date.
type SaveLogRequest struct {
	Date               string            `json:"date"` // YYYY-MM-DD
	Tasks              []TaskEntry       `json:"tasks"`
	CustomTasks        []CustomTaskEntry `json:"custom_tasks,omitempty"`
	PresentEmployeeIDs []string          `json:"present_employee_ids"`
}

func (r *SaveLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date in YYYY-MM-DD format"})
	}
	if len(r.Tasks) == 0 && len(r.CustomTasks) == 0 {
		errs = append(errs, validator.ValidationError{Field: "tasks", Message: "at least one task is required"})
	}
	if len(r.PresentEmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "present_employee_ids", Message: "at least one present employee is required"})
	}
	for _, t := range r.Tasks {
		if t.PieceRateID == "" {
			errs = append(errs, validator.ValidationError{Field: "tasks.piece_rate_id", Message: "is required"})
			break
		}
	}
	for _, t := range r.Tasks {
		if !t.Quantity.IsPositive() {
			errs = append(errs, validator.ValidationError{Field: "tasks.quantity", Message: "must be positive"})
			break
		}
	}
	for _, c := range r.CustomTasks {
		if validator.IsEmpty(c.Label) || !c.Amount.IsPositive() {
			errs = append(errs, validator.ValidationError{Field: "custom_tasks", Message: "label and positive amount are required"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaskResponse struct {
	PieceRateID string          `json:"piece_rate_id"`
	TaskName    string          `json:"task_name"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    decimal.Decimal `json:"quantity"`
	SubTotal    decimal.Decimal `json:"sub_total"`
}

type CustomTaskResponse struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type LogResponse struct {
	ID                 string               `json:"id"`
	Date               string               `json:"date"`
	Tasks              []TaskResponse       `json:"tasks"`
	CustomTasks        []CustomTaskResponse `json:"custom_tasks,omitempty"`
	PresentEmployeeIDs []string             `json:"present_employee_ids"`
	TotalGrossEarnings decimal.Decimal      `json:"total_gross_earnings"`
	IndividualEarnings decimal.Decimal      `json:"individual_earnings"`
}
