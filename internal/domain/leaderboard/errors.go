package leaderboard

import "errors"

// Sentinel kinds for leaderboard errors.
var (
	ErrStoreRequired = errors.New("leaderboard store is required")
	ErrInvalidLimit  = errors.New("invalid leaderboard limit")
)
