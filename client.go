// Package atlas provides the main entry point for an atlas catalog: a local
// directory of geospatial data-source descriptors plus one metadata file
// that tracks the catalog version.
//
// A Client opens (or bootstraps) a catalog directory, keeps the descriptors
// in memory and writes them back with a newest-timestamp-wins policy:
//
//   - Descriptors without a file are always written
//   - Descriptors newer than their file replace it
//   - Older or unchanged descriptors are skipped unless forced
//
// Every WriteAll and every Load bumps the catalog version by one.
//
// Example usage:
//
//	// Open ./atlas, creating it when missing
//	client, err := atlas.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Register event hooks
//	client.OnDescriptorWritten(func(result atlas.WriteResult) {
//	    log.Printf("wrote %s (%s)", result.ID, result.Outcome)
//	})
//
//	// Add a descriptor and persist the catalog
//	ds := datasources.New("ch.swisstopo.swissimage10",
//	    datasources.WithNameShort("SWISSIMAGE10"),
//	)
//	if err := client.Upsert(ds); err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := client.WriteAll(); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Configure with custom options
//	client, err = atlas.New(
//	    atlas.WithRoot("/srv/geodata/atlas"),
//	    atlas.WithAtomicWrites(true),
//	)
package atlas

import (
	"sync"

	"github.com/agentstation/atlas/internal/catalog"
	"github.com/agentstation/atlas/pkg/errors"
)

// Client manages one catalog directory.
//
// A Client is safe for use by multiple goroutines of one process. It does
// not protect the directory against other processes.
type Client interface {

	// Catalog provides read access to the catalog
	Catalog

	// Registry changes the in-memory descriptors
	Registry

	// Persistence handles writing descriptors and metadata
	Persistence

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {

	// options are the configured options for the client
	options *options

	// store owns the directory and the registry
	mu    sync.RWMutex
	store *catalog.Store

	// hooks for write and refresh events
	hooks *hooks
}

// New opens the catalog at the configured root. A missing root is
// initialized first, so New on a fresh path yields a catalog at version 1.
func New(opts ...Option) (Client, error) {
	c := newClient(opts...)

	store, err := catalog.Open(c.options.root, c.storeOptions()...)
	if err != nil {
		return nil, errors.WrapResource("open", "catalog", c.options.root, err)
	}
	c.store = store

	c.options.logger.Debug().
		Str("catalog", store.Root()).
		Int("version", store.Metadata().Version).
		Int("sources", store.Len()).
		Msg("Catalog opened")
	return c, nil
}

// Init creates a new catalog at the configured root without loading it.
// The returned client sees version 0 and no descriptors. It fails with an
// AlreadyExistsError when the root exists.
func Init(opts ...Option) (Client, error) {
	c := newClient(opts...)

	store, err := catalog.Create(c.options.root, c.storeOptions()...)
	if err != nil {
		return nil, err
	}
	c.store = store
	return c, nil
}

func newClient(opts ...Option) *client {
	return &client{
		options: defaults().apply(opts...),
		hooks:   newHooks(),
	}
}

func (c *client) storeOptions() []catalog.Option {
	opts := []catalog.Option{
		catalog.WithFs(c.options.fs),
		catalog.WithLogger(c.options.logger),
		catalog.WithClock(c.options.clock),
		catalog.WithProgress(c.hooks.triggerProgress),
	}
	if c.options.atomicWrites {
		opts = append(opts, catalog.WithAtomicWrites())
	}
	return opts
}
