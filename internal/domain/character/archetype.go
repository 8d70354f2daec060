// Package character holds archetype data, combat rolls and per-combatant
// health and lasting-damage state.
package character

// Archetype is one of the three fixed combatant templates.
type Archetype int

// Archetypes, in the order they are offered to players.
const (
	Assault Archetype = iota + 1
	Health
	Magic
)

type profile struct {
	name          string
	baseDamage    int
	description   string
	lastingDamage bool
	canHeal       bool
}

var profiles = map[Archetype]profile{ //nolint:gochecknoglobals // static archetype table
	Assault: {
		name:        "Assault",
		baseDamage:  30,
		description: "Assault Class: Does more damage... but that's about it really!",
	},
	Health: {
		name:        "Health",
		baseDamage:  20,
		description: "Health Class: Does average damage and heals over time.",
		canHeal:     true,
	},
	Magic: {
		name:          "Magic",
		baseDamage:    15,
		description:   "Magic class: Does little damage, but attacks cause lasting damage.",
		lastingDamage: true,
	},
}

// All returns every archetype in offer order.
func All() []Archetype {
	return []Archetype{Assault, Health, Magic}
}

// ParseArchetype maps an exact archetype name to its value.
func ParseArchetype(token string) (Archetype, bool) {
	for _, a := range All() {
		if profiles[a].name == token {
			return a, true
		}
	}
	return 0, false
}

// Valid reports whether a is one of the declared archetypes.
func (a Archetype) Valid() bool {
	_, ok := profiles[a]
	return ok
}

func (a Archetype) String() string {
	if p, ok := profiles[a]; ok {
		return p.name
	}
	return "Unknown"
}

// BaseDamage is the fixed damage every roll of this archetype scales.
func (a Archetype) BaseDamage() int { return profiles[a].baseDamage }

// Description is the player-facing blurb.
func (a Archetype) Description() string { return profiles[a].description }

// LastingDamage reports whether attacks build up damage ticks on the opponent.
func (a Archetype) LastingDamage() bool { return profiles[a].lastingDamage }

// CanHeal reports whether the archetype regenerates health.
func (a Archetype) CanHeal() bool { return profiles[a].canHeal }
