package mal

import (
	"fmt"
	"strconv"

	gocache "github.com/patrickmn/go-cache"

	"github.com/malgo-cli/malgo/entry"
)

// AnimeImage fetches the item's cover image, served from the in-memory cache
// when a fresh copy is available. Concurrent requests for the same image
// collapse into one transfer.
func (c *Client) AnimeImage(it entry.Item) ([]byte, error) {
	return c.image(c.animeImages, "anime:"+it.ImageURL, it)
}

// MangaImage is AnimeImage for manga covers, keyed by series id so a cover
// survives the service rotating image URLs.
func (c *Client) MangaImage(it entry.Item) ([]byte, error) {
	return c.image(c.mangaImages, "manga:"+strconv.Itoa(it.SeriesID), it)
}

func (c *Client) image(cache *gocache.Cache, cacheKey string, it entry.Item) ([]byte, error) {
	if it.ImageURL == "" {
		return nil, fmt.Errorf("fetch image for %q: no image url", it.Title)
	}

	if cached, ok := cache.Get(cacheKey); ok {
		return cached.([]byte), nil
	}

	body, err, _ := c.flight.Do(cacheKey, func() (any, error) {
		data, err := c.get(it.ImageURL)
		if err != nil {
			return nil, err
		}

		cache.SetDefault(cacheKey, data)
		return data, nil
	})
	if err != nil {
		return nil, c.fail("fetch image for "+strconv.Itoa(it.SeriesID), err)
	}

	return body.([]byte), nil
}
