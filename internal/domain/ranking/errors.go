package ranking

import "errors"

// Sentinel error kinds for ranking.
var (
	// ErrEmptyRoster reports a ranking request over zero owners.
	ErrEmptyRoster = errors.New("no owners to rank")
)
