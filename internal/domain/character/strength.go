package character

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/battle/internal/domain/rng"
)

// Strength trades damage dealt against damage suffered.
type Strength int

// Attack strengths.
const (
	Conservative Strength = iota + 1
	Balanced
	Aggressive
)

// ParseStrength accepts the long tokens and their three-letter codes.
func ParseStrength(token string) (Strength, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "aggressive", "agg":
		return Aggressive, nil
	case "balanced", "bal":
		return Balanced, nil
	case "conservative", "con":
		return Conservative, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStrength, token)
}

func (s Strength) String() string {
	switch s {
	case Aggressive:
		return "aggressive"
	case Balanced:
		return "balanced"
	case Conservative:
		return "conservative"
	default:
		return "unknown"
	}
}

// band is a uniform multiplier interval applied to base damage.
type band struct {
	lo, hi float64
}

var (
	noBand           = band{}
	conservativeBand = band{lo: 0.4, hi: 0.6}
	balancedBand     = band{lo: 0.6, hi: 0.8}
	aggressiveBand   = band{lo: 0.8, hi: 1.0}
)

// plan is one row of the damage table.
type plan struct {
	opponent band
	self     band
	ticks    int
}

var plans = map[Strength]plan{ //nolint:gochecknoglobals // static damage table
	Aggressive:   {opponent: aggressiveBand, self: balancedBand, ticks: 3},
	Balanced:     {opponent: balancedBand, self: conservativeBand, ticks: 2},
	Conservative: {opponent: conservativeBand, self: noBand, ticks: 1},
}

// roll draws base*U(lo,hi) and rounds half away from zero.
func roll(base int, b band, r rng.Source) int {
	if b == noBand {
		return 0
	}
	return int(math.Round(float64(base) * (b.lo + r.Float64()*(b.hi-b.lo))))
}

// Bounds returns the inclusive opponent-damage interval for an archetype
// attacking at strength s, before any lasting-damage bonus.
func Bounds(a Archetype, s Strength) (lo, hi int) {
	p, ok := plans[s]
	if !ok {
		return 0, 0
	}
	base := float64(a.BaseDamage())
	return int(math.Round(base * p.opponent.lo)), int(math.Round(base * p.opponent.hi))
}
