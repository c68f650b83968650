package serializer

import (
	"testing"

	"github.com/malgo-cli/malgo/entry"
	. "github.com/smartystreets/goconvey/convey"
)

const listDocument = `<?xml version="1.0" encoding="UTF-8"?>
<myanimelist>
  <myinfo>
    <user_id>42</user_id>
    <user_name>somebody</user_name>
    <user_watching>2</user_watching>
  </myinfo>
  <anime>
    <series_animedb_id>457</series_animedb_id>
    <series_title>Mushishi</series_title>
    <series_type>TV</series_type>
    <series_episodes>26</series_episodes>
    <series_status>Finished Airing</series_status>
    <series_start>2005-10-22</series_start>
    <series_end>2006-06-18</series_end>
    <series_image>https://cdn.example/457.jpg</series_image>
    <series_synonyms>Mushi-Shi; Mushishi</series_synonyms>
    <my_id>0</my_id>
    <my_watched_episodes>10</my_watched_episodes>
    <my_start_date>2020-01-05</my_start_date>
    <my_finish_date>0000-00-00</my_finish_date>
    <my_score>9</my_score>
    <my_status>1</my_status>
    <my_rewatching>0</my_rewatching>
    <my_rewatching_ep>0</my_rewatching_ep>
    <my_last_updated>1579000000</my_last_updated>
    <my_tags>calm, episodic</my_tags>
  </anime>
  <anime>
    <series_animedb_id>19</series_animedb_id>
    <series_title>Monster</series_title>
    <series_episodes>74</series_episodes>
    <my_watched_episodes>74</my_watched_episodes>
    <my_status>2</my_status>
  </anime>
</myanimelist>`

const searchDocument = `<?xml version="1.0" encoding="UTF-8"?>
<anime>
  <entry>
    <id>457</id>
    <title>Mushishi</title>
    <english>Mushi-Shi</english>
    <episodes>26</episodes>
    <score>8.68</score>
    <type>TV</type>
    <status>Finished Airing</status>
    <start_date>2005-10-22</start_date>
    <end_date>2006-06-18</end_date>
    <synopsis>They are neither plants nor animals&#8230;</synopsis>
    <image>https://cdn.example/457.jpg</image>
  </entry>
  <entry>
    <id>21329</id>
    <title>Mushishi Zoku Shou</title>
    <episodes>10</episodes>
    <type>TV</type>
  </entry>
</anime>`

func TestDecodeListShape(t *testing.T) {
	Convey("Decoding a list-shape document", t, func() {
		items := Decode([]byte(listDocument), entry.Anime)

		Convey("Yields one record per anime element in document order", func() {
			So(len(items), ShouldEqual, 2)
			So(items[0].Title, ShouldEqual, "Mushishi")
			So(items[1].Title, ShouldEqual, "Monster")
		})

		Convey("Series fields are populated", func() {
			So(items[0].SeriesID, ShouldEqual, 457)
			So(items[0].SeriesType, ShouldEqual, "TV")
			So(items[0].SeriesEpisodes, ShouldEqual, 26)
			So(items[0].SeriesStatus, ShouldEqual, "Finished Airing")
			So(items[0].SeriesBegin, ShouldEqual, "2005-10-22")
			So(items[0].ImageURL, ShouldEqual, "https://cdn.example/457.jpg")
			So(items[0].Synonyms, ShouldResemble, []string{"Mushi-Shi", "Mushishi"})
		})

		Convey("User fields are populated", func() {
			So(items[0].Progress, ShouldEqual, 10)
			So(items[0].Score, ShouldEqual, 9)
			So(items[0].MyStatus, ShouldEqual, 1)
			So(items[0].MyBegin, ShouldEqual, "2020-01-05")
			So(items[0].Tags, ShouldResemble, []string{"calm", "episodic"})
			So(items[0].Reconsuming, ShouldBeFalse)
		})

		Convey("User aggregate elements are ignored without bleeding into records", func() {
			So(items[1].SeriesID, ShouldEqual, 19)
			So(items[1].Progress, ShouldEqual, 74)
		})
	})
}

func TestDecodeSearchShape(t *testing.T) {
	Convey("Decoding a search-shape document", t, func() {
		items := Decode([]byte(searchDocument), entry.Anime)

		Convey("The entry element, not the container, is the commit boundary", func() {
			So(len(items), ShouldEqual, 2)
			So(items[0].Title, ShouldEqual, "Mushishi")
			So(items[1].Title, ShouldEqual, "Mushishi Zoku Shou")
		})

		Convey("HTML entities are normalized before dispatch", func() {
			So(items[0].Synopsis, ShouldEqual, "They are neither plants nor animals…")
		})

		Convey("Shared element names land on the same field codes", func() {
			So(items[0].SeriesID, ShouldEqual, 457)
			So(items[0].SeriesBegin, ShouldEqual, "2005-10-22")
			So(items[0].Synonyms, ShouldResemble, []string{"Mushi-Shi"})
		})
	})
}

func TestDecodeResilience(t *testing.T) {
	Convey("Decode resilience", t, func() {
		Convey("An unknown element does not corrupt sibling fields", func() {
			doc := `<myanimelist><anime>
				<series_title>Monster</series_title>
				<surprise_field>whatever</surprise_field>
				<series_episodes>74</series_episodes>
			</anime></myanimelist>`
			items := Decode([]byte(doc), entry.Anime)
			So(len(items), ShouldEqual, 1)
			So(items[0].Title, ShouldEqual, "Monster")
			So(items[0].SeriesEpisodes, ShouldEqual, 74)
		})

		Convey("A malformed numeric field zeroes only itself", func() {
			doc := `<myanimelist><anime>
				<series_title>Monster</series_title>
				<series_episodes>many</series_episodes>
			</anime></myanimelist>`
			items := Decode([]byte(doc), entry.Anime)
			So(len(items), ShouldEqual, 1)
			So(items[0].SeriesEpisodes, ShouldEqual, 0)
			So(items[0].Title, ShouldEqual, "Monster")
		})

		Convey("An empty buffer yields an empty sequence", func() {
			So(Decode(nil, entry.Anime), ShouldBeEmpty)
		})

		Convey("A buffer that is not XML at all yields an empty sequence", func() {
			So(Decode([]byte("\x00\x01 definitely not xml <<<"), entry.Anime), ShouldBeEmpty)
		})

		Convey("Manga documents commit on the manga element", func() {
			doc := `<myanimelist><manga>
				<series_mangadb_id>2</series_mangadb_id>
				<series_title>Berserk</series_title>
				<series_chapters>364</series_chapters>
				<my_read_chapters>100</my_read_chapters>
			</manga></myanimelist>`
			items := Decode([]byte(doc), entry.Manga)
			So(len(items), ShouldEqual, 1)
			So(items[0].Kind, ShouldEqual, entry.Manga)
			So(items[0].SeriesID, ShouldEqual, 2)
			So(items[0].SeriesChapters, ShouldEqual, 364)
			So(items[0].Progress, ShouldEqual, 100)
		})
	})
}
