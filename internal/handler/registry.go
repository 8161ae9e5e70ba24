package handler

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glimpse-search/glimpse/internal/summary"
)

// SummaryRegistry holds deferred summaries between the initial search
// response and the client's poll for resolution. Entries expire after a TTL;
// a janitor sweeps them so abandoned pages do not leak futures.
type SummaryRegistry struct {
	mu      sync.Mutex
	entries map[string]registryEntry
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

type registryEntry struct {
	future  *summary.Future
	expires time.Time
}

func NewSummaryRegistry(ttl time.Duration) *SummaryRegistry {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	r := &SummaryRegistry{
		entries: make(map[string]registryEntry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go r.janitor()
	return r
}

// Put registers a future and returns its handle ID.
func (r *SummaryRegistry) Put(fut *summary.Future) string {
	id := uuid.New().String()
	r.mu.Lock()
	r.entries[id] = registryEntry{future: fut, expires: time.Now().Add(r.ttl)}
	r.mu.Unlock()
	return id
}

// Get looks up a live handle.
func (r *SummaryRegistry) Get(id string) (*summary.Future, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok || time.Now().After(entry.expires) {
		delete(r.entries, id)
		return nil, false
	}
	return entry.future, true
}

// Len reports the number of live handles.
func (r *SummaryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close stops the janitor.
func (r *SummaryRegistry) Close() {
	r.once.Do(func() { close(r.stop) })
}

func (r *SummaryRegistry) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			r.mu.Lock()
			for id, entry := range r.entries {
				if now.After(entry.expires) {
					delete(r.entries, id)
				}
			}
			r.mu.Unlock()
		}
	}
}
