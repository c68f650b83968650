// Package mal is the blocking client facade over the MyAnimeList catalog
// service. A client owns a single-worker engine, a shared transport pool and
// one ordered store per item collection. Every public operation blocks its
// caller until the network round trip finishes; completion signals fire after
// the stores are updated but before the operation returns.
package mal

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/spf13/viper"
	"golang.org/x/sync/singleflight"

	"github.com/malgo-cli/malgo/active"
	"github.com/malgo-cli/malgo/entry"
	"github.com/malgo-cli/malgo/key"
	"github.com/malgo-cli/malgo/log"
	"github.com/malgo-cli/malgo/transport"
)

// Endpoints holds the service URLs the client talks to. Tests point these at
// local servers; everyone else keeps the configured defaults.
type Endpoints struct {
	List        string
	AnimeSearch string
	AnimeUpdate string
	AnimeAdd    string
	MangaSearch string
	MangaUpdate string
	MangaAdd    string
}

// DefaultEndpoints reads the configured service URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		List:        viper.GetString(key.MALListURL),
		AnimeSearch: viper.GetString(key.MALAnimeSearch),
		AnimeUpdate: viper.GetString(key.MALAnimeUpdate),
		AnimeAdd:    viper.GetString(key.MALAnimeAdd),
		MangaSearch: viper.GetString(key.MALMangaSearch),
		MangaUpdate: viper.GetString(key.MALMangaUpdate),
		MangaAdd:    viper.GetString(key.MALMangaAdd),
	}
}

// Client is the facade. One engine worker executes all transfers in
// submission order, so callers on different goroutines never overlap on the
// wire even though each of them blocks independently.
type Client struct {
	Endpoints Endpoints

	creds  Credentials
	engine *active.Engine
	pool   *transport.Pool

	animeList   *entry.Store
	mangaList   *entry.Store
	animeSearch *entry.Store
	mangaSearch *entry.Store

	animeImages *gocache.Cache
	mangaImages *gocache.Cache
	flight      singleflight.Group

	AnimeListUpdated     Signal
	MangaListUpdated     Signal
	AnimeSearchCompleted Signal
	MangaSearchCompleted Signal
	AnimeStateChanged    Signal
	MangaStateChanged    Signal
	CredentialsNeeded    Signal
}

// New builds a client around the given credentials. The caller must Close it
// to stop the engine worker.
func New(creds Credentials) *Client {
	lifetime := viper.GetDuration(key.CacheImageLifetime)
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}

	return &Client{
		Endpoints:   DefaultEndpoints(),
		creds:       creds,
		engine:      active.New(),
		pool:        transport.NewPool(),
		animeList:   entry.NewStore(),
		mangaList:   entry.NewStore(),
		animeSearch: entry.NewStore(),
		mangaSearch: entry.NewStore(),
		animeImages: gocache.New(lifetime, 2*lifetime),
		mangaImages: gocache.New(lifetime, 2*lifetime),
	}
}

// Close drains queued transfers and stops the worker. Safe to call more than
// once; operations submitted afterwards fail with active.ErrEngineClosed.
func (c *Client) Close() {
	c.engine.Shutdown()
}

// Username reports the account the client authenticates as.
func (c *Client) Username() string {
	return c.creds.Username
}

// Animes returns a snapshot of the anime list store in display order.
func (c *Client) Animes() []entry.Item { return c.animeList.All() }

// Mangas returns a snapshot of the manga list store in display order.
func (c *Client) Mangas() []entry.Item { return c.mangaList.All() }

// AnimeSearchResults returns a snapshot of accumulated anime search results.
func (c *Client) AnimeSearchResults() []entry.Item { return c.animeSearch.All() }

// MangaSearchResults returns a snapshot of accumulated manga search results.
func (c *Client) MangaSearchResults() []entry.Item { return c.mangaSearch.All() }

func (c *Client) listStore(kind entry.Kind) *entry.Store {
	if kind == entry.Manga {
		return c.mangaList
	}

	return c.animeList
}

func (c *Client) searchStore(kind entry.Kind) *entry.Store {
	if kind == entry.Manga {
		return c.mangaSearch
	}

	return c.animeSearch
}

// get runs an unauthenticated GET on the engine worker and blocks for the body.
func (c *Client) get(target string) ([]byte, error) {
	fut, err := c.engine.Submit(func() ([]byte, error) {
		return c.pool.Handle().Do(transport.Request{
			Method: "GET",
			URL:    target,
		})
	})
	if err != nil {
		return nil, err
	}

	return fut.Wait()
}

// post runs an authenticated form POST on the engine worker and blocks for
// the body.
func (c *Client) post(target string, form url.Values) ([]byte, error) {
	fut, err := c.engine.Submit(func() ([]byte, error) {
		return c.pool.Handle().Do(transport.Request{
			Method:   "POST",
			URL:      target,
			Form:     form,
			Username: c.creds.Username,
			Password: c.creds.Password,
		})
	})
	if err != nil {
		return nil, err
	}

	return fut.Wait()
}

// fail logs the failure and raises CredentialsNeeded when the service
// rejected our authentication.
func (c *Client) fail(op string, err error) error {
	var status *transport.StatusError
	if errors.As(err, &status) && status.Code == 401 {
		log.Errorf("%s: credentials rejected", op)
		c.CredentialsNeeded.Emit()
	} else {
		log.Errorf("%s: %s", op, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
