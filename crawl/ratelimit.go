package crawl

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/folioworks/folio"
	"golang.org/x/time/rate"
)

var _ folio.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Image CDNs and the site itself get separate buckets, so downloads from
// a CDN do not slow page fetches.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a new DomainLimiter allowing rps requests per
// second to each domain with a burst of 1. A non-positive rps disables
// limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the domain. Domain
// names are case-insensitive. Returns an error if the context is canceled
// before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	domain = strings.ToLower(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// waitForURL waits on limiter for rawURL's host. A nil limiter never waits.
func waitForURL(ctx context.Context, limiter folio.DomainLimiter, rawURL string) error {
	if limiter == nil {
		return ctx.Err()
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return folio.Errorf(folio.EINVALID, "invalid URL %q", rawURL)
	}
	return limiter.Wait(ctx, u.Host)
}
