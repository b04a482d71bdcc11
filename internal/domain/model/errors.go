package model

import "errors"

// Sentinel error kinds for roster data.
var (
	// ErrDataShape reports a roster table that cannot be scored: required
	// columns are missing or a row violates a structural rule.
	ErrDataShape = errors.New("roster data shape invalid")
)
