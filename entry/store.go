package entry

import (
	"sort"
	"sync"
)

// Store is a mutex-guarded, ordered, deduplicating container of items.
// Writers are mutually exclusive while any number of readers may iterate
// concurrently; readers never observe a partially applied insert.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Insert places the item at its ordered position. When the item's sort key
// ties with a resident item the resident is replaced, so repeated insertion
// never grows the store.
func (s *Store) Insert(it Item) {
	k := it.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := sort.Search(len(s.items), func(i int) bool {
		return !s.items[i].Key().Less(k)
	})
	if i < len(s.items) && s.items[i].Key() == k {
		s.items[i] = it
		return
	}

	s.items = append(s.items, Item{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = it
}

// All returns a copy of the ordered contents.
func (s *Store) All() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Each invokes f for every item in display order while holding the read lock.
// f must not call back into the store.
func (s *Store) Each(f func(Item)) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		f(it)
	}
}

// Len reports the number of resident items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Clear drops every resident item. Used at the start of a full list refresh.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
