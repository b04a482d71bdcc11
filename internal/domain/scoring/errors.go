package scoring

import "errors"

// Sentinel error kinds for scoring.
var (
	// ErrInvalidDayRange reports a day boundary outside the roster's known days.
	ErrInvalidDayRange = errors.New("invalid day range")
)
