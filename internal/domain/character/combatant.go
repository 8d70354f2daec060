package character

import (
	"fmt"

	"github.com/okian/battle/internal/domain/rng"
	"github.com/okian/battle/pkg/metrics"
)

// Round-start values.
const (
	StartingHealth = 100
	minRegen       = 5
	maxRegen       = 10
)

// Combatant is one player's character for the length of a match.
type Combatant struct {
	name       string
	archetype  Archetype
	health     int
	baseDamage int
	dotTicks   int
}

// New creates a combatant of archetype a. An empty name falls back to the
// archetype's display name.
func New(a Archetype, name string) *Combatant {
	if name == "" {
		name = a.String()
	}
	return &Combatant{
		name:       name,
		archetype:  a,
		health:     StartingHealth,
		baseDamage: a.BaseDamage(),
	}
}

func (c *Combatant) Name() string         { return c.name }
func (c *Combatant) Archetype() Archetype { return c.archetype }
func (c *Combatant) Health() int          { return c.health }
func (c *Combatant) BaseDamage() int      { return c.baseDamage }
func (c *Combatant) DotTicks() int        { return c.dotTicks }

// TakeDamage lowers health, never below zero. Negative amounts are ignored.
func (c *Combatant) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	c.health -= amount
	if c.health < 0 {
		c.health = 0
	}
}

// IsDead reports whether health has reached zero.
func (c *Combatant) IsDead() bool { return c.health == 0 }

// ResetHealth sets health back to 100, whatever the archetype.
func (c *Combatant) ResetHealth() { c.health = StartingHealth }

// IncrementDotTicks adds to the lasting-damage counter.
func (c *Combatant) IncrementDotTicks(amount int) { c.dotTicks += amount }

// ResetDotTicks clears the lasting-damage counter.
func (c *Combatant) ResetDotTicks() { c.dotTicks = 0 }

// ConservativeRoll draws base*U(0.4,0.6).
func (c *Combatant) ConservativeRoll(r rng.Source) int { return roll(c.baseDamage, conservativeBand, r) }

// BalancedRoll draws base*U(0.6,0.8).
func (c *Combatant) BalancedRoll(r rng.Source) int { return roll(c.baseDamage, balancedBand, r) }

// AggressiveRoll draws base*U(0.8,1.0).
func (c *Combatant) AggressiveRoll(r rng.Source) int { return roll(c.baseDamage, aggressiveBand, r) }

// Heal regenerates 5..10 health with no upper clamp. Only the Health
// archetype heals.
func (c *Combatant) Heal(r rng.Source) (int, error) {
	if !c.archetype.CanHeal() {
		return 0, fmt.Errorf("%w: %s", ErrHealUnsupported, c.archetype)
	}
	regen := minRegen + r.Intn(maxRegen-minRegen+1)
	c.health += regen
	metrics.RecordHeal()
	return regen, nil
}

// AttackResult describes one resolved attack.
type AttackResult struct {
	Strength         Strength
	DamageToOpponent int
	DamageToSelf     int
	// TickBonus is the opponent's lasting damage paid out by this attack,
	// read before TicksAdded was applied.
	TickBonus  int
	TicksAdded int
}

// Attack resolves an attack on opponent and applies both damages. An invalid
// strength fails before any state changes.
//
// Draw order is fixed: opponent roll first, then self-harm roll.
func (c *Combatant) Attack(opponent *Combatant, strength Strength, r rng.Source) (AttackResult, error) {
	if opponent == nil {
		return AttackResult{}, ErrNoOpponent
	}
	p, ok := plans[strength]
	if !ok {
		return AttackResult{}, fmt.Errorf("%w: %d", ErrInvalidStrength, strength)
	}

	res := AttackResult{Strength: strength}
	res.DamageToOpponent = roll(c.baseDamage, p.opponent, r)
	if c.archetype.LastingDamage() {
		res.TickBonus = opponent.dotTicks
		res.DamageToOpponent += res.TickBonus
		opponent.IncrementDotTicks(p.ticks)
		res.TicksAdded = p.ticks
	}
	res.DamageToSelf = roll(c.baseDamage, p.self, r)

	opponent.TakeDamage(res.DamageToOpponent)
	c.TakeDamage(res.DamageToSelf)
	return res, nil
}
