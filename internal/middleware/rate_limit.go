package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/huntrbrooks/Money-sub001/internal/httputil"
)

type limiterEntry struct {
	l        *rate.Limiter
	lastSeen time.Time
}

// LimiterPool keeps one token bucket per key and forgets keys that have
// been idle longer than ttl.
type LimiterPool struct {
	mu    sync.Mutex
	m     map[string]*limiterEntry
	limit rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time
}

// NewLimiterPool allows perMinute events per key with the same burst.
func NewLimiterPool(perMinute int, ttl time.Duration) *LimiterPool {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &LimiterPool{
		m:     make(map[string]*limiterEntry),
		limit: rate.Every(time.Minute / time.Duration(perMinute)),
		burst: perMinute,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Allow reports whether key may proceed now.
func (p *LimiterPool) Allow(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	e, ok := p.m[key]
	if !ok {
		e = &limiterEntry{l: rate.NewLimiter(p.limit, p.burst)}
		p.m[key] = e
	}
	e.lastSeen = now
	return e.l.AllowN(now, 1)
}

// Sweep drops idle keys. Run it periodically.
func (p *LimiterPool) Sweep() {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := p.now().Add(-p.ttl)
	for k, e := range p.m {
		if e.lastSeen.Before(cutoff) {
			delete(p.m, k)
		}
	}
}

// Len is the number of tracked keys.
func (p *LimiterPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

// RateLimit throttles per client IP using pool.
func RateLimit(pool *LimiterPool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := httputil.ClientIP(r)
			if ip == "" {
				ip = "unknown"
			}
			if !pool.Allow(ip) {
				w.Header().Set("Retry-After", strconv.Itoa(60))
				httputil.RespondError(w, http.StatusTooManyRequests, "too many attempts, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
