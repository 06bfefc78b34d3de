// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"container/list"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMaxClients bounds the number of client buckets a RateLimiter keeps.
const DefaultMaxClients = 10000

type clientLimiter struct {
	ip      string
	limiter *rate.Limiter
}

// RateLimiter is a per-client-IP token bucket. At most maxClients buckets are
// kept; the least recently seen client is evicted first.
type RateLimiter struct {
	limit      rate.Limit
	burst      int
	trustProxy bool
	maxClients int

	mu      sync.Mutex
	clients map[string]*list.Element
	recent  *list.List // front is most recently seen
}

type RateLimiterOption func(*RateLimiter)

// WithTrustProxy keys buckets on forwarding headers instead of the peer
// address. Only enable behind a proxy that overwrites them.
func WithTrustProxy(trust bool) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.trustProxy = trust
	}
}

// WithMaxClients overrides DefaultMaxClients.
func WithMaxClients(n int) RateLimiterOption {
	return func(rl *RateLimiter) {
		if n > 0 {
			rl.maxClients = n
		}
	}
}

// NewRateLimiter allows rps requests per second per IP with the given
// burst. A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int, opts ...RateLimiterOption) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		limit:      rate.Limit(rps),
		burst:      burst,
		maxClients: DefaultMaxClients,
		clients:    make(map[string]*list.Element),
		recent:     list.New(),
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Allow reports whether a request from ip may proceed now.
func (rl *RateLimiter) Allow(ip string) bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	var c *clientLimiter
	if el, ok := rl.clients[ip]; ok {
		rl.recent.MoveToFront(el)
		c = el.Value.(*clientLimiter)
	} else {
		for rl.recent.Len() >= rl.maxClients {
			oldest := rl.recent.Back()
			rl.recent.Remove(oldest)
			delete(rl.clients, oldest.Value.(*clientLimiter).ip)
		}
		c = &clientLimiter{ip: ip, limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = rl.recent.PushFront(c)
	}
	return c.limiter.AllowN(time.Now(), 1)
}

// Clients returns the number of tracked client buckets.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.recent.Len()
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(ClientIP(r, rl.trustProxy)) {
			w.Header().Set("Retry-After", "1")
			ErrorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
