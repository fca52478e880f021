package client

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps natural keys to the ids the server assigned during this run.
// It lives only in memory; a new run starts empty.
type Registry struct {
	mu  sync.RWMutex
	ids map[string]string
}

func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]string)}
}

// Get returns the id recorded under key.
func (r *Registry) Get(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[key]
	return id, ok
}

// Set records id under key, replacing any previous id.
func (r *Registry) Set(key, id string) {
	r.Swap(key, id)
}

// Swap records id under key and returns the id it replaced, if any.
func (r *Registry) Swap(key, id string) (previous string, replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous, replaced = r.ids[key]
	r.ids[key] = id
	return previous, replaced
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}

// Keys returns the recorded keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.ids))
	for k := range r.ids {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the key to id map.
func (r *Registry) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.ids))
	for k, v := range r.ids {
		out[k] = v
	}
	return out
}

// FloorKey is the registry key of floor number in building.
func FloorKey(building string, number int) string {
	return fmt.Sprintf("floor_%s_%d", building, number)
}

// ContactKey is the registry key of a contact.
func ContactKey(firstName, lastName string) string {
	return fmt.Sprintf("contact_%s_%s", firstName, lastName)
}
