package keepalive

import (
	"maps"
	"sync"
)

// Keys under which Keepalive publishes its shared state into a Resources
// store, for host systems that look resources up by name rather than holding
// direct references.
const (
	ResourceSettings   = "keepalive.settings"
	ResourceTimer      = "keepalive.background-timer"
	ResourceVisibility = "keepalive.visibility"
)

// Resources is a thread-safe, string-keyed store of shared application
// state. Frameworks that compose plugins around a central resource store
// hand one to Keepalive via WithResources; Start then publishes the
// settings, background timer, and visibility state under the Resource* keys
// so host systems can reach them without a reference to the Keepalive
// itself.
type Resources struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewResources creates an empty store.
func NewResources() *Resources {
	return &Resources{entries: make(map[string]any)}
}

// Get returns the resource stored under key, or nil when absent.
func (r *Resources) Get(key string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[key]
}

// Set publishes value under key, replacing any previous resource.
func (r *Resources) Set(key string, value any) {
	r.mu.Lock()
	r.entries[key] = value
	r.mu.Unlock()
}

// Delete withdraws the resource stored under key.
func (r *Resources) Delete(key string) {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
}

// Snapshot returns a copy of the store's contents; later mutations of the
// store do not show through.
func (r *Resources) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.entries)
}

// Replace swaps the store's contents for a copy of data.
func (r *Resources) Replace(data map[string]any) {
	r.mu.Lock()
	r.entries = maps.Clone(data)
	if r.entries == nil {
		r.entries = make(map[string]any)
	}
	r.mu.Unlock()
}

// Settings returns the scheduler settings published under ResourceSettings,
// or nil if no started Keepalive has published into this store.
func (r *Resources) Settings() *Settings {
	s, _ := r.Get(ResourceSettings).(*Settings)
	return s
}

// BackgroundTimer returns the elapsed-background-time accumulator published
// under ResourceTimer, or nil.
func (r *Resources) BackgroundTimer() *BackgroundTimer {
	t, _ := r.Get(ResourceTimer).(*BackgroundTimer)
	return t
}

// Visibility returns the shared visibility flag published under
// ResourceVisibility, or nil.
func (r *Resources) Visibility() *VisibilityState {
	v, _ := r.Get(ResourceVisibility).(*VisibilityState)
	return v
}
