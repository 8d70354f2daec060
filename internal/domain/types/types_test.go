package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/battle/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	Convey("Given an Entry struct", t, func() {
		Convey("When creating a new entry", func() {
			entry := types.Entry{Rank: 1, Name: "Ada", Score: 4}

			Convey("Then it should have the correct values", func() {
				So(entry.Rank, ShouldEqual, 1)
				So(entry.Name, ShouldEqual, "Ada")
				So(entry.Score, ShouldEqual, 4)
			})

			Convey("Then it should serialize with API field names", func() {
				b, err := json.Marshal(entry)
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, `{"rank":1,"name":"Ada","score":4}`)
			})
		})

		Convey("When creating an entry with zero values", func() {
			entry := types.Entry{}

			Convey("Then it should have default values", func() {
				So(entry.Rank, ShouldEqual, 0)
				So(entry.Name, ShouldEqual, "")
				So(entry.Score, ShouldEqual, 0)
			})
		})
	})
}
