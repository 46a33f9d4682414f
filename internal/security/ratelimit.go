package security

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a fixed-window limiter keyed by client IP. It guards
// the login and register endpoints against credential stuffing; the
// rest of the API is not rate limited.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
}

type bucket struct {
	remaining int
	windowEnd time.Time
}

// NewRateLimiter allows rate requests per window from each IP.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
	}
	go rl.evictStale()
	return rl
}

// Allow reports whether a request from ip fits in the current window.
func (rl *RateLimiter) Allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok || now.After(b.windowEnd) {
		rl.buckets[ip] = &bucket{remaining: rl.rate - 1, windowEnd: now.Add(rl.window)}
		return true
	}

	if b.remaining > 0 {
		b.remaining--
		return true
	}
	return false
}

// evictStale drops buckets whose window has long passed so the map
// does not grow with every IP ever seen.
func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for ip, b := range rl.buckets {
			if now.Sub(b.windowEnd) > rl.window {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// GetClientIP extracts the client IP from the request, preferring the
// proxy headers set by the load balancer.
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First entry is the original client
		if i := strings.Index(forwarded, ","); i >= 0 {
			return strings.TrimSpace(forwarded[:i])
		}
		return forwarded
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
