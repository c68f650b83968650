// Package transport owns the shared HTTP transport state - DNS results, TLS
// sessions, cookies and connection setup - and the per-resource-class locks
// that make sharing that state across concurrent request handles safe.
package transport

import "sync"

// Domain names one class of shared transport state. Each domain has exactly
// one mutex, created with the pool and never resized.
type Domain int

const (
	DomainDNS Domain = iota
	DomainConnection
	DomainTLSSession
	DomainCookie

	domainCount
)

func (d Domain) String() string {
	switch d {
	case DomainDNS:
		return "dns"
	case DomainConnection:
		return "connection"
	case DomainTLSSession:
		return "tls-session"
	case DomainCookie:
		return "cookie"
	default:
		return "invalid"
	}
}

// Locks is the mutual-exclusion capability handed to the shared cache
// wrappers. Both read and write access serialize: the caches do not
// distinguish access modes in a way that needs honoring separately. Calls
// must nest correctly per domain; the locks are not re-entrant.
type Locks struct {
	mu [domainCount]sync.Mutex
}

// NewLocks creates the fixed set of domain mutexes.
func NewLocks() *Locks {
	return &Locks{}
}

// Lock acquires exclusive access to the domain's shared state.
func (l *Locks) Lock(d Domain) {
	l.mu[d].Lock()
}

// Unlock releases the domain.
func (l *Locks) Unlock(d Domain) {
	l.mu[d].Unlock()
}
