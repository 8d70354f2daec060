package character

import "errors"

// Sentinel kinds for combat errors.
var (
	ErrInvalidStrength = errors.New("invalid attack strength")
	ErrHealUnsupported = errors.New("archetype cannot heal")
	ErrNoOpponent      = errors.New("attack needs an opponent")
)
