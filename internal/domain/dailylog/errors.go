package dailylog

import "errors"

var (
	ErrLogNotFound = errors.New("daily log not found")
)
