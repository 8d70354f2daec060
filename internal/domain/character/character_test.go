package character_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/battle/internal/domain/character"
	"github.com/okian/battle/internal/domain/rng"
	. "github.com/smartystreets/goconvey/convey"
)

func TestArchetypes(t *testing.T) {
	Convey("Given the archetype table", t, func() {
		Convey("Then base damage is fixed per archetype", func() {
			So(character.Assault.BaseDamage(), ShouldEqual, 30)
			So(character.Health.BaseDamage(), ShouldEqual, 20)
			So(character.Magic.BaseDamage(), ShouldEqual, 15)
		})

		Convey("Then capabilities are exclusive", func() {
			So(character.Health.CanHeal(), ShouldBeTrue)
			So(character.Magic.LastingDamage(), ShouldBeTrue)
			So(character.Assault.CanHeal(), ShouldBeFalse)
			So(character.Assault.LastingDamage(), ShouldBeFalse)
		})

		Convey("Then descriptions match the player-facing text", func() {
			So(character.Assault.Description(), ShouldEqual, "Assault Class: Does more damage... but that's about it really!")
			So(character.Health.Description(), ShouldEqual, "Health Class: Does average damage and heals over time.")
			So(character.Magic.Description(), ShouldEqual, "Magic class: Does little damage, but attacks cause lasting damage.")
		})

		Convey("Then only exact names parse", func() {
			for _, a := range character.All() {
				got, ok := character.ParseArchetype(a.String())
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, a)
			}
			_, ok := character.ParseArchetype("assault")
			So(ok, ShouldBeFalse)
			_, ok = character.ParseArchetype("")
			So(ok, ShouldBeFalse)
			So(character.Archetype(9).Valid(), ShouldBeFalse)
			So(character.Archetype(9).String(), ShouldEqual, "Unknown")
		})
	})
}

func TestParseStrength(t *testing.T) {
	Convey("Given strength tokens", t, func() {
		cases := map[string]character.Strength{
			"aggressive":   character.Aggressive,
			"agg":          character.Aggressive,
			"balanced":     character.Balanced,
			"bal":          character.Balanced,
			"conservative": character.Conservative,
			"con":          character.Conservative,
		}
		for token, want := range cases {
			got, err := character.ParseStrength(token)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		Convey("Then anything else is an invalid strength", func() {
			_, err := character.ParseStrength("wild")
			So(errors.Is(err, character.ErrInvalidStrength), ShouldBeTrue)
		})
	})
}

func TestCombatantState(t *testing.T) {
	Convey("Given a fresh combatant", t, func() {
		c := character.New(character.Assault, "Rex")

		So(c.Name(), ShouldEqual, "Rex")
		So(c.Health(), ShouldEqual, 100)
		So(c.DotTicks(), ShouldEqual, 0)
		So(c.IsDead(), ShouldBeFalse)

		Convey("When it takes damage", func() {
			c.TakeDamage(10)
			So(c.Health(), ShouldEqual, 90)
		})

		Convey("When damage exceeds health", func() {
			c.TakeDamage(500)
			So(c.Health(), ShouldEqual, 0)
			So(c.IsDead(), ShouldBeTrue)
		})

		Convey("When a negative amount is applied", func() {
			c.TakeDamage(-5)
			So(c.Health(), ShouldEqual, 100)
		})

		Convey("When health and ticks are reset", func() {
			c.TakeDamage(70)
			c.IncrementDotTicks(3)
			So(c.DotTicks(), ShouldEqual, 3)
			c.ResetHealth()
			c.ResetDotTicks()
			So(c.Health(), ShouldEqual, 100)
			So(c.DotTicks(), ShouldEqual, 0)
		})
	})

	Convey("Given an empty name", t, func() {
		So(character.New(character.Magic, "").Name(), ShouldEqual, "Magic")
	})
}

func TestHeal(t *testing.T) {
	Convey("Given a Health combatant", t, func() {
		c := character.New(character.Health, "Medic")
		c.TakeDamage(20)

		Convey("Then heal restores 5..10 points", func() {
			regen, err := c.Heal(rng.NewScript(nil, []int{3}))
			So(err, ShouldBeNil)
			So(regen, ShouldEqual, 8)
			So(c.Health(), ShouldEqual, 88)
		})

		Convey("Then heal may push health above 100", func() {
			c.ResetHealth()
			regen, err := c.Heal(rng.NewScript(nil, []int{5}))
			So(err, ShouldBeNil)
			So(regen, ShouldEqual, 10)
			So(c.Health(), ShouldEqual, 110)
		})

		Convey("Then random heals stay in range", func() {
			src := rng.NewSeeded(7)
			for i := 0; i < 200; i++ {
				regen, err := c.Heal(src)
				So(err, ShouldBeNil)
				So(regen, ShouldBeBetweenOrEqual, 5, 10)
			}
		})
	})

	Convey("Given a non-Health combatant", t, func() {
		c := character.New(character.Assault, "")
		_, err := c.Heal(rng.NewScript(nil, []int{0}))
		So(errors.Is(err, character.ErrHealUnsupported), ShouldBeTrue)
		So(c.Health(), ShouldEqual, 100)
	})
}

func TestRolls(t *testing.T) {
	Convey("Given scripted draws at the band edges", t, func() {
		c := character.New(character.Assault, "")

		So(c.ConservativeRoll(rng.NewScript([]float64{0}, nil)), ShouldEqual, 12)
		So(c.BalancedRoll(rng.NewScript([]float64{0}, nil)), ShouldEqual, 18)
		So(c.AggressiveRoll(rng.NewScript([]float64{0}, nil)), ShouldEqual, 24)
		So(c.AggressiveRoll(rng.NewScript([]float64{0.999999}, nil)), ShouldEqual, 30)
	})
}

func TestBaseAttack(t *testing.T) {
	Convey("Given an Assault attacker", t, func() {
		attacker := character.New(character.Assault, "")
		defender := character.New(character.Health, "")

		Convey("When attacking aggressively", func() {
			res, err := attacker.Attack(defender, character.Aggressive, rng.NewScript([]float64{0.5, 0.5}, nil))
			So(err, ShouldBeNil)

			Convey("Then the opponent takes an aggressive roll and self a balanced one", func() {
				So(res.DamageToOpponent, ShouldEqual, 27)
				So(res.DamageToSelf, ShouldEqual, 21)
				So(defender.Health(), ShouldEqual, 73)
				So(attacker.Health(), ShouldEqual, 79)
				So(defender.DotTicks(), ShouldEqual, 0)
			})
		})

		Convey("When attacking conservatively", func() {
			src := rng.NewScript([]float64{0.5}, nil)
			res, err := attacker.Attack(defender, character.Conservative, src)
			So(err, ShouldBeNil)

			Convey("Then there is no self-harm and no self roll is drawn", func() {
				So(res.DamageToOpponent, ShouldEqual, 15)
				So(res.DamageToSelf, ShouldEqual, 0)
				So(attacker.Health(), ShouldEqual, 100)
				floats, _ := src.Draws()
				So(floats, ShouldEqual, 1)
			})
		})

		Convey("When the strength is invalid", func() {
			_, err := attacker.Attack(defender, character.Strength(42), rng.NewScript([]float64{0.5}, nil))

			Convey("Then nothing changes", func() {
				So(errors.Is(err, character.ErrInvalidStrength), ShouldBeTrue)
				So(attacker.Health(), ShouldEqual, 100)
				So(defender.Health(), ShouldEqual, 100)
				So(defender.DotTicks(), ShouldEqual, 0)
			})
		})

		Convey("When there is no opponent", func() {
			_, err := attacker.Attack(nil, character.Balanced, rng.NewScript(nil, nil))
			So(errors.Is(err, character.ErrNoOpponent), ShouldBeTrue)
		})
	})
}

func TestMagicAttack(t *testing.T) {
	Convey("Given a Magic attacker and an opponent with prior ticks", t, func() {
		attacker := character.New(character.Magic, "")
		defender := character.New(character.Assault, "")
		defender.IncrementDotTicks(4)

		res, err := attacker.Attack(defender, character.Aggressive, rng.NewScript([]float64{0, 0}, nil))
		So(err, ShouldBeNil)

		Convey("Then the bonus is the pre-attack tick count", func() {
			So(res.TickBonus, ShouldEqual, 4)
			So(res.DamageToOpponent, ShouldEqual, 12+4)
			So(res.TicksAdded, ShouldEqual, 3)
			So(defender.DotTicks(), ShouldEqual, 7)
			So(defender.Health(), ShouldEqual, 84)
		})

		Convey("Then self-harm follows the base table", func() {
			So(res.DamageToSelf, ShouldEqual, 9)
			So(attacker.Health(), ShouldEqual, 91)
		})
	})

	Convey("Given each strength", t, func() {
		for s, ticks := range map[character.Strength]int{
			character.Aggressive:   3,
			character.Balanced:     2,
			character.Conservative: 1,
		} {
			attacker := character.New(character.Magic, "")
			defender := character.New(character.Health, "")
			_, err := attacker.Attack(defender, s, rng.NewSeeded(3))
			So(err, ShouldBeNil)
			So(defender.DotTicks(), ShouldEqual, ticks)
		}
	})
}

func TestAttackBounds(t *testing.T) {
	Convey("Given many random attacks for every archetype and strength", t, func() {
		src := rng.NewSeeded(99)
		selfBand := map[character.Strength][2]float64{
			character.Aggressive:   {0.6, 0.8},
			character.Balanced:     {0.4, 0.6},
			character.Conservative: {0, 0},
		}

		for _, a := range character.All() {
			for _, s := range []character.Strength{character.Aggressive, character.Balanced, character.Conservative} {
				lo, hi := character.Bounds(a, s)
				base := float64(a.BaseDamage())
				selfLo := int(math.Round(base * selfBand[s][0]))
				selfHi := int(math.Round(base * selfBand[s][1]))

				for i := 0; i < 300; i++ {
					attacker := character.New(a, "")
					defender := character.New(character.Assault, "")
					res, err := attacker.Attack(defender, s, src)
					So(err, ShouldBeNil)
					So(res.DamageToOpponent-res.TickBonus, ShouldBeBetweenOrEqual, lo, hi)
					if s == character.Conservative {
						So(res.DamageToSelf, ShouldEqual, 0)
					} else {
						So(res.DamageToSelf, ShouldBeBetweenOrEqual, selfLo, selfHi)
					}
				}
			}
		}
	})
}
