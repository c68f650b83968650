package mal

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/malgo-cli/malgo/active"
	"github.com/malgo-cli/malgo/entry"
	"github.com/malgo-cli/malgo/filesystem"
)

const listBody = `<?xml version="1.0" encoding="UTF-8"?>
<myanimelist>
	<myinfo><user_id>42</user_id><user_name>tester</user_name></myinfo>
	<anime>
		<series_animedb_id>21</series_animedb_id>
		<series_title>Beta</series_title>
		<series_episodes>24</series_episodes>
		<series_start>2019-04-01</series_start>
		<my_id>0</my_id>
		<my_watched_episodes>12</my_watched_episodes>
		<my_status>1</my_status>
	</anime>
	<anime>
		<series_animedb_id>7</series_animedb_id>
		<series_title>Alpha</series_title>
		<series_episodes>12</series_episodes>
		<series_start>2020-10-03</series_start>
		<my_id>0</my_id>
		<my_watched_episodes>12</my_watched_episodes>
		<my_status>2</my_status>
	</anime>
</myanimelist>`

const searchBody = `<?xml version="1.0" encoding="UTF-8"?>
<anime>
	<entry>
		<id>555</id>
		<title>Gamma</title>
		<episodes>13</episodes>
		<start_date>2021-01-07</start_date>
		<synonyms>Gamma Rays; GR</synonyms>
	</entry>
</anime>`

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	filesystem.SetMemMapFs()

	srv := httptest.NewServer(handler)

	c := New(Credentials{Username: "tester", Password: "hunter2"})
	c.Endpoints = Endpoints{
		List:        srv.URL + "/malappinfo.php?u=",
		AnimeSearch: srv.URL + "/api/anime/search.xml?q=",
		AnimeUpdate: srv.URL + "/api/animelist/update/",
		AnimeAdd:    srv.URL + "/api/animelist/add/",
		MangaSearch: srv.URL + "/api/manga/search.xml?q=",
		MangaUpdate: srv.URL + "/api/mangalist/update/",
		MangaAdd:    srv.URL + "/api/mangalist/add/",
	}

	return c, srv
}

func TestAnimeList(t *testing.T) {
	Convey("Given a service with a two-record anime list", t, func() {
		var gotUser, gotType atomic.Value

		mux := http.NewServeMux()
		mux.HandleFunc("/malappinfo.php", func(w http.ResponseWriter, r *http.Request) {
			gotUser.Store(r.URL.Query().Get("u"))
			gotType.Store(r.URL.Query().Get("type"))
			_, _ = w.Write([]byte(listBody))
		})

		c, srv := newTestClient(mux)
		defer srv.Close()
		defer c.Close()

		var notified atomic.Int32
		c.AnimeListUpdated.Connect(func() { notified.Add(1) })

		Convey("When the list is fetched", func() {
			items, err := c.AnimeList("tester")

			Convey("Then the request names the user and collection", func() {
				So(gotUser.Load(), ShouldEqual, "tester")
				So(gotType.Load(), ShouldEqual, "anime")
			})

			Convey("Then both records arrive, newest season first", func() {
				So(err, ShouldBeNil)
				So(items, ShouldHaveLength, 2)
				So(items[0].Title, ShouldEqual, "Alpha")
				So(items[1].Title, ShouldEqual, "Beta")
			})

			Convey("Then the store holds the same snapshot", func() {
				So(c.Animes(), ShouldHaveLength, 2)
			})

			Convey("Then the update signal fired once before returning", func() {
				So(notified.Load(), ShouldEqual, 1)
			})

			Convey("And a refetch replaces rather than accumulates", func() {
				again, err := c.AnimeList("tester")
				So(err, ShouldBeNil)
				So(again, ShouldHaveLength, 2)
			})
		})
	})
}

func TestSearchAnime(t *testing.T) {
	Convey("Given a service answering searches", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/anime/search.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(searchBody))
		})

		c, srv := newTestClient(mux)
		defer srv.Close()
		defer c.Close()

		var notified atomic.Int32
		c.AnimeSearchCompleted.Connect(func() { notified.Add(1) })

		Convey("When two searches run", func() {
			first, err1 := c.SearchAnime("gamma")
			_, err2 := c.SearchAnime("gamma rays")

			Convey("Then results merge instead of replacing", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldHaveLength, 1)
				So(first[0].SeriesID, ShouldEqual, 555)
				So(first[0].Synonyms, ShouldResemble, []string{"Gamma Rays", "GR"})
				So(c.AnimeSearchResults(), ShouldHaveLength, 1)
			})

			Convey("Then the completion signal fired per search", func() {
				So(notified.Load(), ShouldEqual, 2)
			})
		})
	})
}

func TestUpdateAnime(t *testing.T) {
	Convey("Given a service accepting list updates", t, func() {
		var gotAuth, gotData atomic.Value

		mux := http.NewServeMux()
		mux.HandleFunc("/api/animelist/update/", func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			gotAuth.Store(ok && user == "tester" && pass == "hunter2")

			_ = r.ParseForm()
			gotData.Store(r.PostForm.Get("data"))

			_, _ = w.Write([]byte("Updated"))
		})

		c, srv := newTestClient(mux)
		defer srv.Close()
		defer c.Close()

		var notified atomic.Int32
		c.AnimeStateChanged.Connect(func() { notified.Add(1) })

		Convey("When an item is updated", func() {
			err := c.UpdateAnime(entry.Item{
				Kind:        entry.Anime,
				SeriesID:    21,
				Title:       "Beta",
				SeriesBegin: "2019-04-01",
				Progress:    13,
				MyStatus:    1,
				Score:       8,
			})

			Convey("Then the push is authenticated and carries the item document", func() {
				So(err, ShouldBeNil)
				So(gotAuth.Load(), ShouldEqual, true)
				So(gotData.Load(), ShouldContainSubstring, "<episode>13</episode>")
				So(gotData.Load(), ShouldContainSubstring, "<score>8</score>")
			})

			Convey("Then the list store reflects the pushed item", func() {
				animes := c.Animes()
				So(animes, ShouldHaveLength, 1)
				So(animes[0].Progress, ShouldEqual, 13)
			})

			Convey("Then the state-changed signal fired", func() {
				So(notified.Load(), ShouldEqual, 1)
			})
		})
	})
}

func TestCredentialsRejected(t *testing.T) {
	Convey("Given a service rejecting our credentials", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		c, srv := newTestClient(mux)
		defer srv.Close()
		defer c.Close()

		var needed atomic.Int32
		c.CredentialsNeeded.Connect(func() { needed.Add(1) })

		Convey("When an authenticated push fails with 401", func() {
			err := c.AddAnime(entry.Item{Kind: entry.Anime, SeriesID: 1})

			Convey("Then the operation errors and CredentialsNeeded fires", func() {
				So(err, ShouldNotBeNil)
				So(needed.Load(), ShouldEqual, 1)
			})
		})
	})
}

func TestClosedClient(t *testing.T) {
	Convey("Given a closed client", t, func() {
		c, srv := newTestClient(http.NewServeMux())
		defer srv.Close()

		c.Close()
		c.Close()

		Convey("Then operations fail with the engine-closed error", func() {
			_, err := c.AnimeList("tester")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, active.ErrEngineClosed.Error())
		})
	})
}

func TestImageCache(t *testing.T) {
	Convey("Given a service serving cover images", t, func() {
		var hits atomic.Int32

		mux := http.NewServeMux()
		mux.HandleFunc("/covers/21.jpg", func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte("jpeg-bytes"))
		})

		c, srv := newTestClient(mux)
		defer srv.Close()
		defer c.Close()

		it := entry.Item{Kind: entry.Anime, SeriesID: 21, Title: "Beta", ImageURL: srv.URL + "/covers/21.jpg"}

		Convey("When the same cover is requested twice", func() {
			first, err1 := c.AnimeImage(it)
			second, err2 := c.AnimeImage(it)

			Convey("Then the bytes come back and the second hit is served from cache", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(string(first), ShouldEqual, "jpeg-bytes")
				So(string(second), ShouldEqual, "jpeg-bytes")
				So(hits.Load(), ShouldEqual, 1)
			})
		})

		Convey("When the item has no image url", func() {
			_, err := c.AnimeImage(entry.Item{Kind: entry.Anime, SeriesID: 9})

			Convey("Then it fails without touching the network", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
