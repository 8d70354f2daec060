package match

import (
	"fmt"
	"strings"
)

// State is a stage of the match lifecycle.
type State int

// Match states, in lifecycle order.
const (
	AwaitingPlayers State = iota
	AwaitingCoinToss
	AwaitingArchetypes
	InProgress
	RoundResolved
	MatchOver
)

func (s State) String() string {
	switch s {
	case AwaitingPlayers:
		return "awaiting_players"
	case AwaitingCoinToss:
		return "awaiting_coin_toss"
	case AwaitingArchetypes:
		return "awaiting_archetypes"
	case InProgress:
		return "in_progress"
	case RoundResolved:
		return "round_resolved"
	case MatchOver:
		return "match_over"
	default:
		return "unknown"
	}
}

// Side is a coin face.
type Side int

// Coin faces.
const (
	Heads Side = iota + 1
	Tails
)

// ParseSide accepts "Heads" or "Tails", case-insensitively.
func ParseSide(token string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "heads", "h":
		return Heads, nil
	case "tails", "t":
		return Tails, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCoinSide, token)
}

func (s Side) String() string {
	switch s {
	case Heads:
		return "Heads"
	case Tails:
		return "Tails"
	default:
		return "Unknown"
	}
}
