package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrUnknownDriver = errors.New("unknown store driver")
	ErrClosed        = errors.New("store closed")
	ErrMissingTarget = errors.New("store path or dsn is required")
	ErrEmptyKey      = errors.New("collection key is empty")
)
