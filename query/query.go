// Package query keeps a persistent history of search terms and serves
// popularity-ranked suggestions for partial input.
package query

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"

	"github.com/malgo-cli/malgo/filesystem"
	"github.com/malgo-cli/malgo/key"
	"github.com/malgo-cli/malgo/where"
)

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var suggestionCache = make(map[string][]*record)

// Remember stores a search term in the history, or bumps its rank by weight
// when it was searched before.
func Remember(q string, weight int) error {
	q = sanitize(q)

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*record)
	}

	if rec, ok := cached[q]; ok {
		rec.Rank += weight
	} else {
		cached[q] = &record{Rank: weight, Query: q}
	}

	// Ranks changed, previously computed suggestion orders are stale.
	suggestionCache = make(map[string][]*record)

	return cacher.Set(cached)
}

// Suggest returns the best historical match for a partial search term.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}

	return mo.Some(suggestions[0])
}

// SuggestMany returns all historical terms fuzzily matching the partial
// input, most popular first. Empty when suggestions are disabled.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	records, ok := suggestionCache[q]
	if !ok {
		cached, expired, err := cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		for _, rec := range cached {
			if fuzzy.Match(q, rec.Query) {
				records = append(records, rec)
			}
		}

		slices.SortFunc(records, func(a, b *record) int {
			return b.Rank - a.Rank
		})

		suggestionCache[q] = records
	}

	return lo.Map(records, func(r *record, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
