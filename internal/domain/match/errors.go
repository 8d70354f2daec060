package match

import "errors"

// Sentinel kinds for match errors.
var (
	// ErrPrematureOperation marks a call made in a state that does not allow it.
	ErrPrematureOperation = errors.New("operation not allowed in current match state")
	ErrInvalidPlayer      = errors.New("invalid player")
	ErrInvalidCoinSide    = errors.New("invalid coin side")
)
