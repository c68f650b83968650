package mal

import (
	"net/url"

	"github.com/malgo-cli/malgo/entry"
	"github.com/malgo-cli/malgo/log"
	"github.com/malgo-cli/malgo/serializer"
)

// AnimeList fetches the user's full anime list, replaces the anime list
// store with it and returns the new contents in display order.
func (c *Client) AnimeList(user string) ([]entry.Item, error) {
	return c.fetchList(user, entry.Anime)
}

// MangaList is AnimeList for the manga collection.
func (c *Client) MangaList(user string) ([]entry.Item, error) {
	return c.fetchList(user, entry.Manga)
}

func (c *Client) fetchList(user string, kind entry.Kind) ([]entry.Item, error) {
	if user == "" {
		user = c.creds.Username
	}

	target := c.Endpoints.List + url.QueryEscape(user) + "&status=all&type=" + kind.String()

	body, err := c.get(target)
	if err != nil {
		return nil, c.fail("fetch "+kind.String()+" list", err)
	}

	items := serializer.Decode(body, kind)
	log.Debugf("fetched %s list for %s, %d records", kind, user, len(items))

	store := c.listStore(kind)
	store.Clear()
	for _, it := range items {
		store.Insert(it)
	}

	if kind == entry.Manga {
		c.MangaListUpdated.Emit()
	} else {
		c.AnimeListUpdated.Emit()
	}

	return store.All(), nil
}
