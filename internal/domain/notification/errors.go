package notification

import "errors"

// ErrNotFound is returned by feed stores when the addressed notification does
// not exist in the user's feed.
var ErrNotFound = errors.New("notification not found")
