package types

import "errors"

// ErrUnknownOwner indicates an owner filter that matches no roster owner.
var ErrUnknownOwner = errors.New("unknown owner")
