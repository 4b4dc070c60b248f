package batch

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/jswierad/distill"
	"golang.org/x/time/rate"
)

var _ distill.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests per domain using token buckets, so
// scraping different hosts proceeds independently while requests to the
// same host honor the configured rate. Hosts are compared without port
// and case, so "Example.com:443" and "example.com" share a bucket.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second per domain, with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	key := normalizeHost(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// normalizeHost lowercases the host and drops any port, since URL hosts
// arrive both ways.
func normalizeHost(domain string) string {
	if host, _, err := net.SplitHostPort(domain); err == nil {
		domain = host
	}
	return strings.ToLower(domain)
}
