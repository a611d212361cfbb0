// internal/app/matching/registry.go
package matching

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// idleTTL is how long an untouched orchestrator survives before the
// janitor evicts it. Eviction only loses UI state; the persisted seeking
// tags are unaffected.
const idleTTL = 2 * time.Hour

type entry struct {
	o        *Orchestrator
	lastUsed time.Time
}

// Registry hands out one Orchestrator per user for the HTTP surface.
// Idle orchestrators are evicted in the background; an evicted user's
// machine is simply recreated in Selecting on next use.
type Registry struct {
	prefs      PreferenceWriter
	candidates CandidateLister
	advisor    SuggestionClient
	minVisible time.Duration
	log        *zap.Logger

	mu sync.Mutex
	m  map[string]*entry
}

// NewRegistry builds a Registry sharing one set of collaborators and
// starts its eviction janitor.
func NewRegistry(prefs PreferenceWriter, candidates CandidateLister, advisor SuggestionClient, minVisible time.Duration, logger *zap.Logger) *Registry {
	r := &Registry{
		prefs:      prefs,
		candidates: candidates,
		advisor:    advisor,
		minVisible: minVisible,
		log:        logger,
		m:          make(map[string]*entry),
	}
	go r.janitor()
	return r
}

// Get returns the user's orchestrator, creating it in Selecting if absent.
func (r *Registry) Get(userID string) *Orchestrator {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.m[userID]; ok {
		e.lastUsed = time.Now()
		return e.o
	}
	o := New(userID, r.prefs, r.candidates, r.advisor, r.minVisible, r.log)
	r.m[userID] = &entry{o: o, lastUsed: time.Now()}
	return o
}

// Drop removes the user's orchestrator (sign-out, account deletion).
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, userID)
}

// EvictIdle removes orchestrators untouched for longer than olderThan,
// skipping any that are mid-flight in Loading. Returns the eviction count.
func (r *Registry) EvictIdle(olderThan time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	evicted := 0
	for id, e := range r.m {
		if e.lastUsed.Before(cutoff) && e.o.State() != StateLoading {
			delete(r.m, id)
			evicted++
		}
	}
	return evicted
}

func (r *Registry) janitor() {
	ticker := time.NewTicker(idleTTL / 4)
	defer ticker.Stop()
	for range ticker.C {
		if n := r.EvictIdle(idleTTL); n > 0 {
			r.log.Debug("evicted idle matching sessions", zap.Int("count", n))
		}
	}
}
