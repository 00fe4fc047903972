package piecerate

import (
	"time"

	"github.com/shopspring/decimal"
)

// PieceRate is a named task with a rate paid per unit of work.
// Task names are display labels and are not unique; editing a rate never
// changes tasks already recorded in daily logs (they snapshot the rate).
type PieceRate struct {
	ID        string
	TaskName  string
	Rate      decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
