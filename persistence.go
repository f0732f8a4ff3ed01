package atlas

import (
	"encoding/json"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/atlas/pkg/datasources"
	"github.com/agentstation/atlas/pkg/errors"
	"github.com/agentstation/atlas/pkg/save"
)

// Compile-time interface check to ensure proper implementation.
var _ Persistence = (*client)(nil)

// Persistence handles catalog persistence operations.
type Persistence interface {
	// Write reconciles one descriptor with its file
	Write(d *datasources.Descriptor, opts ...save.Option) (WriteResult, error)

	// WriteAll reconciles every descriptor and refreshes the metadata
	WriteAll(opts ...save.Option) ([]WriteResult, error)

	// Refresh bumps the catalog version and persists the metadata
	Refresh() error

	// Export renders all descriptors to a writer
	Export(opts ...save.Option) error
}

// Write upserts d and reconciles it with its file. The metadata is not
// refreshed. On success d carries the timestamps that were written.
func (c *client) Write(d *datasources.Descriptor, opts ...save.Option) (WriteResult, error) {
	if d == nil {
		return WriteResult{}, errors.NewValidationError("descriptor", nil, "cannot be nil")
	}
	stored := d.Clone()

	c.mu.Lock()
	if err := c.store.Upsert(stored); err != nil {
		c.mu.Unlock()
		return WriteResult{ID: d.ID}, err
	}
	result, err := c.store.ReconcileAndWrite(stored, opts...)
	c.mu.Unlock()
	if err != nil {
		return result, err
	}

	d.DateCreated = stored.DateCreated
	d.DateModified = stored.DateModified
	c.hooks.triggerResults(result)
	return result, nil
}

// WriteAll reconciles every descriptor with its file and refreshes the
// metadata. It stops at the first error.
func (c *client) WriteAll(opts ...save.Option) ([]WriteResult, error) {
	c.mu.Lock()
	results, err := c.store.WriteAll(opts...)
	meta := c.store.Metadata()
	c.mu.Unlock()

	c.hooks.triggerResults(results...)
	if err != nil {
		return results, err
	}
	c.hooks.triggerRefresh(meta)
	return results, nil
}

// Refresh bumps the catalog version and persists the metadata.
func (c *client) Refresh() error {
	c.mu.Lock()
	err := c.store.RefreshMetadata()
	meta := c.store.Metadata()
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.hooks.triggerRefresh(meta)
	return nil
}

// Export writes all descriptors, ordered by identifier, as one JSON array
// or YAML sequence. The writer defaults to stdout.
func (c *client) Export(opts ...save.Option) error {
	options := save.Defaults().Apply(opts...)

	w := options.Writer()
	if w == nil {
		w = os.Stdout
	}

	list := c.Descriptors()
	switch options.Format() {
	case save.FormatJSON:
		return exportJSON(w, list)
	case save.FormatYAML:
		return exportYAML(w, list)
	default:
		return errors.NewValidationError("format", options.Format(), "unsupported export format")
	}
}

func exportJSON(w io.Writer, list []*datasources.Descriptor) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list); err != nil {
		return errors.WrapIO("write", "export", err)
	}
	return nil
}

func exportYAML(w io.Writer, list []*datasources.Descriptor) error {
	data, err := yaml.MarshalWithOptions(list, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return errors.WrapResource("export", "catalog", "", err)
	}
	if _, err := w.Write(data); err != nil {
		return errors.WrapIO("write", "export", err)
	}
	return nil
}
