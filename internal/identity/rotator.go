package identity

import "sync"

// Browser user agents presented on search requests when none are
// configured. Search engines serve a stripped page to unknown agents.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Rotator hands out user agents and optional proxy URLs for outbound
// search requests, rotating sequentially.
type Rotator struct {
	userAgents []string
	proxies    []string

	mu         sync.Mutex
	uaIndex    int
	proxyIndex int
}

// NewRotator builds a rotator. Empty user-agent lists fall back to the
// built-in browser set; an empty proxy list means direct requests.
func NewRotator(userAgents, proxies []string) *Rotator {
	if len(userAgents) == 0 {
		userAgents = defaultUserAgents
	}
	return &Rotator{
		userAgents: userAgents,
		proxies:    proxies,
	}
}

// UserAgent returns the next user agent in rotation.
func (r *Rotator) UserAgent() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ua := r.userAgents[r.uaIndex]
	r.uaIndex = (r.uaIndex + 1) % len(r.userAgents)
	return ua
}

// Proxy returns the next proxy URL in rotation, or "" when none are
// configured. The fetch client binds its transport to one proxy at
// construction, so a run calls this once and uses a single proxy for
// its lifetime; UserAgent rotates per request.
func (r *Rotator) Proxy() string {
	if len(r.proxies) == 0 {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	proxy := r.proxies[r.proxyIndex]
	r.proxyIndex = (r.proxyIndex + 1) % len(r.proxies)
	return proxy
}
