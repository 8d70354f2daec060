package registry_test

import (
	"testing"

	"github.com/okian/battle/internal/domain/character"
	"github.com/okian/battle/internal/domain/match"
	"github.com/okian/battle/internal/domain/registry"
	. "github.com/smartystreets/goconvey/convey"
)

type seat struct {
	combatant *character.Combatant
}

func (s *seat) Assign(c *character.Combatant) bool {
	if s == nil {
		return false
	}
	s.combatant = c
	return true
}

func TestRegistry(t *testing.T) {
	Convey("Given a new registry", t, func() {
		r := registry.New()
		p := &seat{}

		Convey("Then every archetype is available", func() {
			So(r.Available(), ShouldResemble, []character.Archetype{character.Assault, character.Health, character.Magic})
		})

		Convey("When an archetype is bound", func() {
			ok := r.Bind(p, "Health", "Medic")

			Convey("Then it is removed from the pool and attached", func() {
				So(ok, ShouldBeTrue)
				So(r.IsAvailable(character.Health), ShouldBeFalse)
				So(r.Available(), ShouldResemble, []character.Archetype{character.Assault, character.Magic})
				So(p.combatant, ShouldNotBeNil)
				So(p.combatant.Archetype(), ShouldEqual, character.Health)
				So(p.combatant.Name(), ShouldEqual, "Medic")
			})

			Convey("And binding it again fails without changes", func() {
				other := &seat{}
				So(r.Bind(other, "Health", "Copy"), ShouldBeFalse)
				So(other.combatant, ShouldBeNil)
				So(r.Available(), ShouldResemble, []character.Archetype{character.Assault, character.Magic})
			})

			Convey("And reset restores the pool", func() {
				r.Reset()
				So(r.Available(), ShouldHaveLength, 3)
				So(r.IsAvailable(character.Health), ShouldBeTrue)
			})
		})

		Convey("When the name is empty", func() {
			So(r.Bind(p, "Magic", ""), ShouldBeTrue)
			So(p.combatant.Name(), ShouldEqual, "Magic")
		})

		Convey("When the token is unknown", func() {
			So(r.Bind(p, "", ""), ShouldBeFalse)
			So(r.Bind(p, "Wizard", "x"), ShouldBeFalse)
			So(p.combatant, ShouldBeNil)
			So(r.Available(), ShouldHaveLength, 3)
		})

		Convey("When the assignee is nil", func() {
			So(r.Bind(nil, "Assault", ""), ShouldBeFalse)
			So(r.Available(), ShouldHaveLength, 3)
		})

		Convey("When the assignee is a nil pointer", func() {
			var none *seat
			var player *match.Player

			Convey("Then nothing is claimed", func() {
				okSeat, okPlayer := true, true
				So(func() { okSeat = r.Bind(none, "Assault", "") }, ShouldNotPanic)
				So(func() { okPlayer = r.Bind(player, "Health", "") }, ShouldNotPanic)
				So(okSeat, ShouldBeFalse)
				So(okPlayer, ShouldBeFalse)
				So(r.Available(), ShouldHaveLength, 3)
			})
		})

		Convey("Then Available returns a copy", func() {
			got := r.Available()
			got[0] = character.Magic
			So(r.Available()[0], ShouldEqual, character.Assault)
		})
	})

	Convey("Given two registries", t, func() {
		a, b := registry.New(), registry.New()
		So(a.Bind(&seat{}, "Assault", ""), ShouldBeTrue)

		Convey("Then claims do not leak between them", func() {
			So(b.IsAvailable(character.Assault), ShouldBeTrue)
		})
	})
}
