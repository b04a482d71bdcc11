package service

import "errors"

// ErrNoStore indicates the service was started without a roster store.
var ErrNoStore = errors.New("no roster store configured")
