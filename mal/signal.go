package mal

import (
	"sync"

	"golang.org/x/exp/slices"
)

// Signal is a minimal completion-notification dispatcher. Collaborators
// connect handlers; the client emits after a store merge and before the
// triggering operation returns. Connect and Emit are safe from any goroutine;
// handlers run on the emitting goroutine.
type Signal struct {
	mu       sync.Mutex
	handlers []func()
}

// Connect registers a handler for every subsequent emission.
func (s *Signal) Connect(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, f)
}

// Emit invokes every connected handler once.
func (s *Signal) Emit() {
	s.mu.Lock()
	handlers := slices.Clone(s.handlers)
	s.mu.Unlock()

	for _, f := range handlers {
		f()
	}
}
