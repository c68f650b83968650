package mal

import (
	"net/url"

	"github.com/malgo-cli/malgo/entry"
	"github.com/malgo-cli/malgo/log"
	"github.com/malgo-cli/malgo/serializer"
)

// SearchAnime queries the anime catalog for terms and merges the results
// into the anime search store. Earlier results stay; items seen again are
// refreshed in place. Returns only the items this query produced.
func (c *Client) SearchAnime(terms string) ([]entry.Item, error) {
	return c.search(terms, entry.Anime)
}

// SearchManga is SearchAnime for the manga catalog.
func (c *Client) SearchManga(terms string) ([]entry.Item, error) {
	return c.search(terms, entry.Manga)
}

func (c *Client) search(terms string, kind entry.Kind) ([]entry.Item, error) {
	target := c.searchEndpoint(kind) + url.QueryEscape(terms)

	body, err := c.get(target)
	if err != nil {
		return nil, c.fail("search "+kind.String(), err)
	}

	items := serializer.Decode(body, kind)
	log.Debugf("search %s %q, %d records", kind, terms, len(items))

	store := c.searchStore(kind)
	for _, it := range items {
		store.Insert(it)
	}

	if kind == entry.Manga {
		c.MangaSearchCompleted.Emit()
	} else {
		c.AnimeSearchCompleted.Emit()
	}

	return items, nil
}

func (c *Client) searchEndpoint(kind entry.Kind) string {
	if kind == entry.Manga {
		return c.Endpoints.MangaSearch
	}

	return c.Endpoints.AnimeSearch
}
