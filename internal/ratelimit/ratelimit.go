// Package ratelimit throttles API clients with per-client token buckets.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// maxClients bounds the bucket map. When the map fills, all buckets are
// dropped and clients start fresh. Client keys are remote IPs, so on a
// local deployment the cap is never reached.
const maxClients = 10000

// Limiter hands out one token bucket per client key. The zero value is not
// usable, construct with New.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// New creates a limiter allowing rps requests per second with the given
// burst per client.
func New(rps float64, burst int) *Limiter {
	return &Limiter{
		clients: make(map[string]*rate.Limiter),
		limit:   rate.Limit(rps),
		burst:   burst,
	}
}

// Allow reports whether the client may proceed, consuming a token if so.
func (l *Limiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= maxClients {
			l.clients = make(map[string]*rate.Limiter)
		}
		bucket = rate.NewLimiter(l.limit, l.burst)
		l.clients[client] = bucket
	}
	return bucket.Allow()
}

// Clients returns the number of tracked client buckets.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
