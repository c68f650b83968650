// Package entry defines the catalog item record and the ordered,
// deduplicating stores that list and search results are merged into.
package entry

// Kind discriminates the two catalog item kinds. Both share one field set.
type Kind int8

const (
	Anime Kind = iota
	Manga
)

// String returns the lowercase wire name of the kind, which doubles as the
// type parameter of the list endpoint.
func (k Kind) String() string {
	if k == Manga {
		return "manga"
	}
	return "anime"
}

// Item is one decoded catalog entry with series and user-progress fields.
// Items are plain values: decoded records are copied into stores and copied
// back out, never shared mutably.
type Item struct {
	Kind Kind

	// Series fields, populated by list and search responses alike.
	SeriesID       int
	Title          string
	SeriesType     string
	SeriesStatus   string
	SeriesEpisodes int
	SeriesChapters int
	SeriesBegin    string // free-form date string, not necessarily parseable
	SeriesEnd      string
	ImageURL       string
	Synonyms       []string
	Synopsis       string

	// User fields, present only in list responses.
	ID               int // user-specific list entry id
	Progress         int // episodes watched or chapters read
	MyStatus         int
	Score            int
	MyBegin          string
	MyEnd            string
	Tags             []string
	Reconsuming      bool
	ReconsumeEpisode int
	Downloaded       int
	LastUpdated      string
}

// SortKey is the explicit display ordering key: the year-month prefix of the
// series begin date (descending) broken by title (ascending). Two items with
// equal keys occupy one store slot even when their remote ids differ; that
// collapse is inherited behavior kept behind this type on purpose.
type SortKey struct {
	Season string
	Title  string
}

// Less reports whether k orders before o: later seasons first, then titles
// alphabetically.
func (k SortKey) Less(o SortKey) bool {
	if k.Season != o.Season {
		return k.Season > o.Season
	}
	return k.Title < o.Title
}

// Key derives the display ordering key for the item.
func (it Item) Key() SortKey {
	season := it.SeriesBegin
	if len(season) > 7 {
		season = season[:7]
	}
	return SortKey{Season: season, Title: it.Title}
}
