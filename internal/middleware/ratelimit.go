package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

// ipLimiter hands out one token bucket per client IP. Buckets idle for a
// full window are dropped; by then they have refilled, so a returning client
// sees no difference.
type ipLimiter struct {
	clock  clockwork.Clock
	window time.Duration
	rate   rate.Limit
	burst  int

	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastSweep time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(requests int, window time.Duration, clock clockwork.Clock) *ipLimiter {
	burst := requests / 2
	if burst < 1 {
		burst = 1
	}
	return &ipLimiter{
		clock:     clock,
		window:    window,
		rate:      rate.Limit(float64(requests) / window.Seconds()),
		burst:     burst,
		clients:   make(map[string]*clientBucket),
		lastSweep: clock.Now(),
	}
}

// allow spends one token from ip's bucket.
func (l *ipLimiter) allow(ip string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(now)
	}

	b, ok := l.clients[ip]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[ip] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// sweep must be called with l.mu held.
func (l *ipLimiter) sweep(now time.Time) {
	for ip, b := range l.clients {
		if now.Sub(b.lastSeen) >= l.window {
			delete(l.clients, ip)
		}
	}
	l.lastSweep = now
}

// RateLimitOption configures NewRateLimiter.
type RateLimitOption func(*rateLimitConfig)

type rateLimitConfig struct {
	clock clockwork.Clock
}

// WithRateLimitClock replaces the clock used for refills and idle eviction.
func WithRateLimitClock(c clockwork.Clock) RateLimitOption {
	return func(cfg *rateLimitConfig) { cfg.clock = c }
}

// NewRateLimiter returns a middleware that allows each client IP roughly
// requests per window, with bursts of half that. Excess requests get 429 and
// a Retry-After header of one window, rounded up to whole seconds.
//
// Wire it after chimiddleware.RealIP so r.RemoteAddr is the client address.
// A non-positive requests or window disables limiting.
func NewRateLimiter(requests int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	cfg := rateLimitConfig{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&cfg)
	}
	limiter := newIPLimiter(requests, window, cfg.clock)
	retryAfter := strconv.Itoa(retryAfterSeconds(window))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiter.allow(ip) {
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(window time.Duration) int {
	return max(1, int(math.Ceil(window.Seconds())))
}
