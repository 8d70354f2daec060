package match

import (
	"github.com/okian/battle/internal/domain/character"
)

// Player is a person taking part in a match. The combatant is nil until an
// archetype is bound.
type Player struct {
	name      string
	combatant *character.Combatant
}

// NewPlayer creates a player without a combatant.
func NewPlayer(name string) *Player {
	return &Player{name: name}
}

func (p *Player) Name() string                    { return p.name }
func (p *Player) Combatant() *character.Combatant { return p.combatant }

// Assign binds a combatant to the player. A nil player takes nothing.
func (p *Player) Assign(c *character.Combatant) bool {
	if p == nil || c == nil {
		return false
	}
	p.combatant = c
	return true
}

func (p *Player) bound() bool { return p != nil && p.combatant != nil }
