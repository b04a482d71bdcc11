package replacement

import "errors"

// Sentinel error kinds for replacement lookups.
var (
	// ErrIneligible reports a ruled-out player below the replacement price floor.
	// No candidates are computed.
	ErrIneligible = errors.New("player not eligible for replacement")
	// ErrUnknownPlayer reports a ruled-out player missing from the roster.
	ErrUnknownPlayer = errors.New("player not found")
	// ErrNotOnRoster reports a ruled-out player held by another owner.
	ErrNotOnRoster = errors.New("player not on owner roster")
)
