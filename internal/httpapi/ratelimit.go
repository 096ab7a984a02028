package httpapi

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long a key may go unused before its bucket is dropped.
// A dropped bucket comes back full, which an idle key would have reached anyway.
const idleLimiterTTL = 10 * time.Minute

type RateLimitConfig struct {
	IPPerMinute   int
	IPBurst       int
	UserPerMinute int
	UserBurst     int
	// TrustProxy keys the per-IP limit on the address the fronting proxy
	// appended to X-Forwarded-For. Leave it off unless such a proxy exists;
	// clients can set the header to anything.
	TrustProxy bool
}

// RateLimiter keeps one token bucket per client IP and one per authenticated
// user.
type RateLimiter struct {
	ipLimiter   *keyedLimiter
	userLimiter *keyedLimiter
	trustProxy  bool
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		ipLimiter:   newKeyedLimiter(cfg.IPPerMinute, cfg.IPBurst),
		userLimiter: newKeyedLimiter(cfg.UserPerMinute, cfg.UserBurst),
		trustProxy:  cfg.TrustProxy,
	}
}

// Middleware applies the per-IP limit. The per-user limit runs after
// authentication, see AllowUser.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, l.trustProxy)
		if ip != "" && !l.ipLimiter.allow(ip) {
			writeError(w, requestIDFromRequest(r), http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) AllowUser(userID string) bool {
	if userID == "" {
		return true
	}
	return l.userLimiter.allow(userID)
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type keyedLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	limiters  map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func newKeyedLimiter(perMinute, burst int) *keyedLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	if burst <= 0 {
		burst = 20
	}
	return &keyedLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		limiters: make(map[string]*limiterEntry),
		now:      time.Now,
	}
}

func (l *keyedLimiter) allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	if now.Sub(l.lastSweep) >= idleLimiterTTL {
		l.sweep(now)
	}
	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	l.mu.Unlock()
	return entry.limiter.AllowN(now, 1)
}

// sweep drops idle keys. Callers hold mu.
func (l *keyedLimiter) sweep(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= idleLimiterTTL {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

func (l *keyedLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// clientIP is the peer address, or with trustProxy the last X-Forwarded-For
// hop, which the proxy itself appended.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			parts := strings.Split(forwarded, ",")
			if hop := strings.TrimSpace(parts[len(parts)-1]); hop != "" {
				return hop
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
