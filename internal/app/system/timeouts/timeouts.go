// Package timeouts provides centralized timeout values for handler operations.
//
// These are used with context.WithTimeout around store reads/writes and
// outbound service calls so that one slow dependency cannot pin a request
// forever. Values can be overridden at startup via Configure.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and simple writes
//   - Medium: list queries and multi-step writes
//   - Remote: outbound calls to the advice service and auth collaborator
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
	DefaultRemote = 15 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	remote = DefaultRemote
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads and simple writes.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and multi-step writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Remote returns the timeout for outbound service calls.
func Remote() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return remote
}

// Config holds timeout overrides. Zero values are ignored.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Remote time.Duration
}

// Configure applies overrides. Call during startup, before handlers run.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Remote > 0 {
		remote = cfg.Remote
	}
}

// Reset restores defaults. Useful for testing.
func Reset() {
	Configure(Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		Medium: DefaultMedium,
		Remote: DefaultRemote,
	})
}
