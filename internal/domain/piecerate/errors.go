package piecerate

import "errors"

var (
	ErrPieceRateNotFound = errors.New("piece rate not found")
)
