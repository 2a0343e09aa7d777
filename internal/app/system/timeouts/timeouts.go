// Package timeouts provides centralized timeout values for handler operations.
//
// Every call that leaves the process (Postgres queries, the OAuth token
// exchange, Google's userinfo endpoint) is wrapped in context.WithTimeout
// using one of these values, so an unresponsive collaborator fails the
// request instead of stalling it indefinitely.
package timeouts

import (
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
)

// Ping returns the timeout for health checks and connectivity verification.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-row reads and writes.
// Examples: influencer lookup by email, OAuth state save/validate.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and outbound HTTP calls.
// Examples: usage-row listing with the payments join, token exchange.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Configure overrides the default timeouts. Zero values leave the
// corresponding timeout unchanged. Call once during startup.
func Configure(pingT, shortT, mediumT time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if pingT > 0 {
		ping = pingT
	}
	if shortT > 0 {
		short = shortT
	}
	if mediumT > 0 {
		medium = mediumT
	}
}
