package http

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/docdex/docdex"
)

// DefaultRequestsPerSecond is the default per-domain request rate.
const DefaultRequestsPerSecond = 2.0

// Ensure DomainLimiter implements docdex.DomainLimiter at compile time.
var _ docdex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a per-domain request rate so scans stay polite
// toward documentation hosts. Each domain gets its own token bucket.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a limiter allowing rps requests per second per
// domain. If rps is zero or negative, DefaultRequestsPerSecond is used.
func NewDomainLimiter(rps float64) *DomainLimiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to the given domain is allowed, or until the
// context is canceled.
func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.limiter(domain).Wait(ctx)
}

func (l *DomainLimiter) limiter(domain string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[domain]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[domain] = lim
	}
	return lim
}
