package mal

import (
	"strings"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"

	"github.com/malgo-cli/malgo/entry"
	"github.com/malgo-cli/malgo/filesystem"
	"github.com/malgo-cli/malgo/where"
)

// cacheData is the on-disk shape of a persisted cache file.
type cacheData[K comparable, T any] struct {
	Records map[K]T `json:"records"`
}

// cacher is a thread-safe wrapper over a single gache file.
type cacher[K comparable, T any] struct {
	internal   *gache.Cache[*cacheData[K, T]]
	keyWrapper func(K) K
	mu         sync.RWMutex
}

// Get retrieves the value stored under key, if the cache is fresh.
func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	record, ok := data.Records[c.keyWrapper(key)]
	if ok {
		return mo.Some(record)
	}

	return mo.None[T]()
}

// Set persists a key-value pair.
func (c *cacher[K, T]) Set(key K, t T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if !expired && data != nil {
		data.Records[c.keyWrapper(key)] = t
		return c.internal.Set(data)
	}

	internal := &cacheData[K, T]{Records: make(map[K]T)}
	internal.Records[c.keyWrapper(key)] = t
	return c.internal.Set(internal)
}

// Delete removes the entry stored under key.
func (c *cacher[K, T]) Delete(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if !expired && data != nil {
		delete(data.Records, c.keyWrapper(key))
		return c.internal.Set(data)
	}

	return nil
}

// normalizedName returns a lowercased, trimmed string for consistent comparison.
func normalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// relationCacher persists title-to-series-id mappings, keyed per collection.
var relationCacher = &cacher[string, int]{
	internal: gache.New[*cacheData[string, int]](
		&gache.Options{
			Path:       where.Relations(),
			FileSystem: &filesystem.GacheFs{},
		},
	),
	keyWrapper: normalizedName,
}

// entryCacher persists catalog metadata for series resolved through search.
var entryCacher = &cacher[string, entry.Item]{
	internal: gache.New[*cacheData[string, entry.Item]](
		&gache.Options{
			Path:       where.Entries(),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		},
	),
	keyWrapper: func(key string) string { return key },
}
