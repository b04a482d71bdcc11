package repository

import "errors"

// Sentinel kinds for roster store errors.
var (
	ErrNotLoaded         = errors.New("roster not loaded")
	ErrUnsupportedFormat = errors.New("unsupported roster format")
)
