package transport

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/malgo-cli/malgo/key"
	"github.com/malgo-cli/malgo/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Pool owns one shared http.Transport plus the caches every request handle
// draws on. All internal access to a shared cache goes through the matching
// lock domain, so any number of handles may be used concurrently. The pool
// must outlive every handle it hands out; handles hold no teardown hooks of
// their own, which makes releasing the pool before its handles structurally
// impossible for callers that scope the pool around handle use.
type Pool struct {
	locks     *Locks
	transport *http.Transport
	jar       http.CookieJar
	timeout   time.Duration

	dns map[string][]string // host -> resolved addresses, guarded by DomainDNS
}

// NewPool builds the shared transport context: a tuned http.Transport with a
// locking dialer, a shared TLS session cache and a shared cookie jar.
func NewPool() *Pool {
	p := &Pool{
		locks:   NewLocks(),
		dns:     make(map[string][]string),
		timeout: requestTimeout(),
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.DialContext = p.dialContext
	if t.TLSClientConfig == nil {
		t.TLSClientConfig = &tls.Config{}
	}
	t.TLSClientConfig.ClientSessionCache = &lockedSessionCache{
		locks: p.locks,
		inner: tls.NewLRUClientSessionCache(64),
	}
	p.transport = t

	p.jar = &lockedJar{
		locks: p.locks,
		inner: lo.Must(cookiejar.New(nil)),
	}

	return p
}

// Locks exposes the per-domain mutual exclusion capability, mostly so tests
// and diagnostics can observe the lock set.
func (p *Pool) Locks() *Locks {
	return p.locks
}

// Handle returns a request handle bound to the pool's shared transport state.
// Handles are cheap; drawing one per request is fine.
func (p *Pool) Handle() *Handle {
	return &Handle{
		client: &http.Client{
			Transport: p.transport,
			Jar:       p.jar,
			Timeout:   p.timeout,
		},
	}
}

// dialContext resolves through the shared DNS cache and serializes connection
// establishment under the connection domain.
func (p *Pool) dialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}

	addrs, err := p.resolve(ctx, host)
	if err != nil {
		return nil, err
	}

	p.locks.Lock(DomainConnection)
	defer p.locks.Unlock(DomainConnection)

	var dialer net.Dialer
	var lastErr error
	for _, a := range addrs {
		conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(a, port))
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// resolve consults the shared DNS cache under its lock domain, falling back
// to the system resolver on a miss.
func (p *Pool) resolve(ctx context.Context, host string) ([]string, error) {
	p.locks.Lock(DomainDNS)
	cached, ok := p.dns[host]
	p.locks.Unlock(DomainDNS)
	if ok {
		return cached, nil
	}

	addrs, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil {
		return nil, err
	}

	p.locks.Lock(DomainDNS)
	p.dns[host] = addrs
	p.locks.Unlock(DomainDNS)

	log.Debugf("transport: resolved %s to %d addresses", host, len(addrs))
	return addrs, nil
}

func requestTimeout() time.Duration {
	if d := viper.GetDuration(key.NetworkTimeout); d > 0 {
		return d
	}
	return time.Minute
}

// lockedSessionCache serializes access to the shared TLS session cache.
type lockedSessionCache struct {
	locks *Locks
	inner tls.ClientSessionCache
}

func (c *lockedSessionCache) Get(sessionKey string) (*tls.ClientSessionState, bool) {
	c.locks.Lock(DomainTLSSession)
	defer c.locks.Unlock(DomainTLSSession)
	return c.inner.Get(sessionKey)
}

func (c *lockedSessionCache) Put(sessionKey string, cs *tls.ClientSessionState) {
	c.locks.Lock(DomainTLSSession)
	defer c.locks.Unlock(DomainTLSSession)
	c.inner.Put(sessionKey, cs)
}

// lockedJar serializes access to the shared cookie store.
type lockedJar struct {
	locks *Locks
	inner http.CookieJar
}

func (j *lockedJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.locks.Lock(DomainCookie)
	defer j.locks.Unlock(DomainCookie)
	j.inner.SetCookies(u, cookies)
}

func (j *lockedJar) Cookies(u *url.URL) []*http.Cookie {
	j.locks.Lock(DomainCookie)
	defer j.locks.Unlock(DomainCookie)
	return j.inner.Cookies(u)
}
