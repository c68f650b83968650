package mal

import (
	"fmt"
	"strconv"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/malgo-cli/malgo/entry"
	"github.com/malgo-cli/malgo/log"
	"github.com/malgo-cli/malgo/util"
)

func relationKey(kind entry.Kind, name string) string {
	return kind.String() + "\x00" + normalizedName(name)
}

func entryKey(kind entry.Kind, seriesID int) string {
	return kind.String() + ":" + strconv.Itoa(seriesID)
}

// SetRelation persists a mapping between a title and a catalog entry so later
// lookups for that title skip the search round trip.
func SetRelation(name string, to entry.Item) error {
	if err := relationCacher.Set(relationKey(to.Kind, name), to.SeriesID); err != nil {
		return err
	}

	key := entryKey(to.Kind, to.SeriesID)
	if cached := entryCacher.Get(key); cached.IsAbsent() {
		return entryCacher.Set(key, to)
	}

	return nil
}

// CachedRelation returns the cached entry for a title, if one was resolved
// before. A title cached as unresolvable also reports absent.
func CachedRelation(kind entry.Kind, name string) mo.Option[entry.Item] {
	id := relationCacher.Get(relationKey(kind, name))
	if id.IsPresent() && id.MustGet() != -1 {
		return entryCacher.Get(entryKey(kind, id.MustGet()))
	}

	return mo.None[entry.Item]()
}

// FindClosestAnime resolves a free-form title to the best matching anime,
// searching the catalog and picking the smallest edit distance. Resolutions
// persist across runs.
func (c *Client) FindClosestAnime(name string) (entry.Item, error) {
	name = normalizedName(name)
	return c.findClosest(name, name, entry.Anime, 0, 3)
}

// FindClosestManga is FindClosestAnime for the manga catalog.
func (c *Client) FindClosestManga(name string) (entry.Item, error) {
	name = normalizedName(name)
	return c.findClosest(name, name, entry.Manga, 0, 3)
}

func (c *Client) findClosest(name, originalName string, kind entry.Kind, try, limit int) (entry.Item, error) {
	if try >= limit {
		err := fmt.Errorf("no %s results for %q", kind, originalName)
		log.Error(err)
		_ = relationCacher.Set(relationKey(kind, originalName), -1)
		return entry.Item{}, err
	}

	id := relationCacher.Get(relationKey(kind, name))
	if id.IsPresent() {
		if id.MustGet() == -1 {
			return entry.Item{}, fmt.Errorf("no %s results for %q", kind, name)
		}

		if it, ok := entryCacher.Get(entryKey(kind, id.MustGet())).Get(); ok {
			if try > 0 {
				_ = relationCacher.Set(relationKey(kind, originalName), it.SeriesID)
			}
			return it, nil
		}
	}

	items, err := c.search(name, kind)
	if err != nil {
		return entry.Item{}, err
	}

	if id.IsPresent() {
		found, ok := lo.Find(items, func(it entry.Item) bool {
			return it.SeriesID == id.MustGet()
		})
		if ok {
			return found, nil
		}

		// The relation points at a series the catalog no longer returns.
		_ = relationCacher.Delete(relationKey(kind, name))
		log.Infof("%s %d dropped from the catalog, relation removed", kind, id.MustGet())
	}

	if len(items) == 0 {
		words := strings.Split(name, " ")
		if len(words) <= 2 {
			return c.findClosest(name, originalName, kind, limit, limit)
		}

		// Retry with the trailing token removed.
		alternate := strings.Join(words[:util.Max(len(words)-1, 1)], " ")
		log.Infof("no %s results for %q, trying %q", kind, name, alternate)
		return c.findClosest(alternate, originalName, kind, try+1, limit)
	}

	closest := lo.MinBy(items, func(a, b entry.Item) bool {
		return titleDistance(name, a) < titleDistance(name, b)
	})

	log.Infof("closest %s match for %q: %s", kind, originalName, closest.Title)

	save := func(n string) {
		if id := relationCacher.Get(relationKey(kind, n)); id.IsAbsent() {
			_ = relationCacher.Set(relationKey(kind, n), closest.SeriesID)
		}
	}

	save(name)
	save(originalName)

	_ = entryCacher.Set(entryKey(kind, closest.SeriesID), closest)
	return closest, nil
}

// titleDistance is the smallest edit distance between name and any of the
// item's titles, synonyms included.
func titleDistance(name string, it entry.Item) int {
	best := levenshtein.Distance(name, normalizedName(it.Title))
	for _, synonym := range it.Synonyms {
		if d := levenshtein.Distance(name, normalizedName(synonym)); d < best {
			best = d
		}
	}

	return best
}
