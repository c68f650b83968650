package mal

import (
	"net/url"
	"strconv"

	"github.com/malgo-cli/malgo/entry"
	"github.com/malgo-cli/malgo/log"
	"github.com/malgo-cli/malgo/serializer"
)

// UpdateAnime pushes the item's personal state to the service. On success the
// anime list store is refreshed with the pushed item and AnimeStateChanged
// fires.
func (c *Client) UpdateAnime(it entry.Item) error {
	return c.push("update anime", c.Endpoints.AnimeUpdate, it)
}

// UpdateManga is UpdateAnime for the manga collection.
func (c *Client) UpdateManga(it entry.Item) error {
	return c.push("update manga", c.Endpoints.MangaUpdate, it)
}

// AddAnime adds the item to the user's anime list.
func (c *Client) AddAnime(it entry.Item) error {
	return c.push("add anime", c.Endpoints.AnimeAdd, it)
}

// AddManga is AddAnime for the manga collection.
func (c *Client) AddManga(it entry.Item) error {
	return c.push("add manga", c.Endpoints.MangaAdd, it)
}

func (c *Client) push(op, endpoint string, it entry.Item) error {
	target := endpoint + strconv.Itoa(it.SeriesID) + ".xml"

	form := url.Values{}
	form.Set("data", serializer.Encode(it))

	body, err := c.post(target, form)
	if err != nil {
		return c.fail(op, err)
	}

	log.Debugf("%s %d: %s", op, it.SeriesID, string(body))

	c.listStore(it.Kind).Insert(it)

	if it.Kind == entry.Manga {
		c.MangaStateChanged.Emit()
	} else {
		c.AnimeStateChanged.Emit()
	}

	return nil
}
