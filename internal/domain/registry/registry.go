// Package registry tracks which archetypes are still choosable in one match.
package registry

import (
	"github.com/okian/battle/internal/domain/character"
)

// Assignee receives the combatant built by Bind. Assign reports false when
// the assignee cannot hold a combatant, such as a nil pointer receiver.
type Assignee interface {
	Assign(c *character.Combatant) bool
}

// Registry is the archetype pool of a single match. It is not shared
// between matches; create one per match or call Reset.
type Registry struct {
	available []character.Archetype
}

// New returns a registry with every archetype available.
func New() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset makes every archetype available again.
func (r *Registry) Reset() {
	r.available = character.All()
}

// Available returns the unclaimed archetypes in offer order.
func (r *Registry) Available() []character.Archetype {
	out := make([]character.Archetype, len(r.available))
	copy(out, r.available)
	return out
}

// IsAvailable reports whether a is still unclaimed.
func (r *Registry) IsAvailable(a character.Archetype) bool {
	return r.indexOf(a) >= 0
}

// Bind claims the archetype named by token for p. It returns false and
// changes nothing when the token is unknown or already claimed.
func (r *Registry) Bind(p Assignee, token, name string) bool {
	if p == nil {
		return false
	}
	a, ok := character.ParseArchetype(token)
	if !ok {
		return false
	}
	i := r.indexOf(a)
	if i < 0 {
		return false
	}
	if !p.Assign(character.New(a, name)) {
		return false
	}
	r.available = append(r.available[:i:i], r.available[i+1:]...)
	return true
}

func (r *Registry) indexOf(a character.Archetype) int {
	for i, v := range r.available {
		if v == a {
			return i
		}
	}
	return -1
}
