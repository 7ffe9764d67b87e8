package pantry

import "errors"

// Domain errors for pantry records.

var (
	ErrItemNotFound = errors.New("pantry item not found")
	ErrNotOwner     = errors.New("pantry item belongs to another user")
)
