package atlas

import (
	"github.com/agentstation/atlas/internal/catalog"
	"github.com/agentstation/atlas/pkg/datasources"
)

// Catalog metadata and write result types.
type (
	// Metadata is the catalog-level record: creation and modification
	// time, version and source count.
	Metadata = catalog.Metadata

	// WriteResult describes what happened to one descriptor on write.
	WriteResult = catalog.WriteResult

	// Outcome is the kind of a WriteResult.
	Outcome = catalog.Outcome
)

// Write outcomes.
const (
	OutcomeCreated = catalog.OutcomeCreated
	OutcomeUpdated = catalog.OutcomeUpdated
	OutcomeForced  = catalog.OutcomeForced
	OutcomeSkipped = catalog.OutcomeSkipped
)

// Compile-time interface check to ensure proper implementation.
var _ Catalog = (*client)(nil)

// Catalog provides copy-on-read access to the catalog.
type Catalog interface {
	// Root returns the catalog directory
	Root() string

	// Metadata returns the current catalog metadata
	Metadata() Metadata

	// Descriptor returns a copy of one descriptor
	Descriptor(id string) (*datasources.Descriptor, error)

	// Descriptors returns copies of all descriptors ordered by identifier
	Descriptors() []*datasources.Descriptor
}

// Root returns the catalog directory.
func (c *client) Root() string {
	return c.store.Root()
}

// Metadata returns the current catalog metadata.
func (c *client) Metadata() Metadata {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Metadata()
}

// Descriptor returns a copy of one descriptor.
func (c *client) Descriptor(id string) (*datasources.Descriptor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Descriptor(id)
}

// Descriptors returns copies of all descriptors ordered by identifier.
func (c *client) Descriptors() []*datasources.Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Descriptors()
}

// Compile-time interface check to ensure proper implementation.
var _ Registry = (*client)(nil)

// Registry changes the in-memory descriptors.
type Registry interface {
	// Upsert adds or replaces descriptors by identifier without writing them
	Upsert(ds ...*datasources.Descriptor) error
}

// Upsert adds or replaces descriptors by identifier without writing them.
// The client keeps its own copies.
func (c *client) Upsert(ds ...*datasources.Descriptor) error {
	copies := make([]*datasources.Descriptor, len(ds))
	for i, d := range ds {
		copies[i] = d.Clone()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Upsert(copies...)
}
