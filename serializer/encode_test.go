package serializer

import (
	"strings"
	"testing"

	"github.com/malgo-cli/malgo/entry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEncode(t *testing.T) {
	Convey("Encode", t, func() {
		Convey("Tags are joined with a semicolon separator", func() {
			out := Encode(entry.Item{Tags: []string{"ova", "funny"}})
			So(out, ShouldContainSubstring, "<tags>ova; funny</tags>")
		})

		Convey("Parseable dates render as MMDDYYYY", func() {
			out := Encode(entry.Item{MyBegin: "2020-04-01", MyEnd: "2020-06-30"})
			So(out, ShouldContainSubstring, "<date_start>04012020</date_start>")
			So(out, ShouldContainSubstring, "<date_finish>06302020</date_finish>")
		})

		Convey("Unparseable dates render as empty elements", func() {
			out := Encode(entry.Item{MyBegin: "0000-00-00", MyEnd: "someday"})
			So(out, ShouldContainSubstring, "<date_start></date_start>")
			So(out, ShouldContainSubstring, "<date_finish></date_finish>")
		})

		Convey("The reconsuming flag renders as 1 or 0", func() {
			So(Encode(entry.Item{Reconsuming: true}), ShouldContainSubstring, "<enable_rewatching>1</enable_rewatching>")
			So(Encode(entry.Item{}), ShouldContainSubstring, "<enable_rewatching>0</enable_rewatching>")
		})

		Convey("Unpopulated wire fields are still emitted empty", func() {
			out := Encode(entry.Item{})
			for _, name := range []string{
				"storage_type", "storage_value", "times_rewatched",
				"rewatch_value", "priority", "enable_discussion",
				"comments", "fansub_group",
			} {
				So(out, ShouldContainSubstring, "<"+name+"></"+name+">")
			}
		})

		Convey("Progress and status fields carry their numeric values", func() {
			out := Encode(entry.Item{Progress: 12, MyStatus: 1, Score: 8, ReconsumeEpisode: 3})
			So(out, ShouldContainSubstring, "<episode>12</episode>")
			So(out, ShouldContainSubstring, "<status>1</status>")
			So(out, ShouldContainSubstring, "<score>8</score>")
			So(out, ShouldContainSubstring, "<rewatch_episode>3</rewatch_episode>")
		})

		Convey("The document is a single entry element", func() {
			out := Encode(entry.Item{})
			So(strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?><entry>`), ShouldBeTrue)
			So(strings.HasSuffix(out, "</entry>"), ShouldBeTrue)
		})
	})
}
