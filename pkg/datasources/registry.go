package datasources

import (
	"slices"
	"strings"
	"sync"
)

// Registry is an in-memory set of descriptors keyed by identifier.
// It is safe for concurrent use within one process.
type Registry struct {
	mu    sync.RWMutex
	items map[string]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*Descriptor)}
}

// Set inserts or replaces the descriptor stored under id.
func (r *Registry) Set(id string, d *Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = d
}

// Get returns the descriptor stored under id.
func (r *Registry) Get(id string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items[id]
	return d, ok
}

// Delete removes id from the registry.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// IDs returns the identifiers in ascending order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// List returns the descriptors ordered by identifier.
func (r *Registry) List() []*Descriptor {
	ids := r.IDs()
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*Descriptor, 0, len(ids))
	for _, id := range ids {
		if d, ok := r.items[id]; ok {
			list = append(list, d)
		}
	}
	return list
}

// ForEach calls fn for each entry in identifier order until fn returns false.
// fn must not modify the registry.
func (r *Registry) ForEach(fn func(id string, d *Descriptor) bool) {
	ids := r.IDs()
	for _, id := range ids {
		d, ok := r.Get(id)
		if !ok {
			continue
		}
		if !fn(id, d) {
			return
		}
	}
}

// Filter returns the descriptors whose identifier starts with prefix.
func (r *Registry) Filter(prefix string) []*Descriptor {
	var out []*Descriptor
	r.ForEach(func(id string, d *Descriptor) bool {
		if strings.HasPrefix(id, prefix) {
			out = append(out, d)
		}
		return true
	})
	return out
}
