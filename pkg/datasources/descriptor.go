package datasources

import (
	"fmt"
	"maps"
	"time"

	"github.com/agentstation/utc"
)

// Descriptor is one catalog entry.
type Descriptor struct {
	ID           string         // Identifier, also the file name stem
	NameFull     string         // Full display name
	NameShort    string         // Short display name
	URLInfo      string         // Reference URL
	VersionDate  string         // Free-form version label
	Extent       any            // Spatial extent, opaque
	EPSG         any            // Coordinate reference, opaque
	DateCreated  utc.Time       // Set once at first creation
	DateModified utc.Time       // Advanced when content changes
	Extra        map[string]any // Keys outside the common shape
}

// Option configures a Descriptor built with New.
type Option func(*Descriptor)

// WithNameFull sets the full display name.
func WithNameFull(name string) Option {
	return func(d *Descriptor) { d.NameFull = name }
}

// WithNameShort sets the short display name.
func WithNameShort(name string) Option {
	return func(d *Descriptor) { d.NameShort = name }
}

// WithURLInfo sets the reference URL.
func WithURLInfo(url string) Option {
	return func(d *Descriptor) { d.URLInfo = url }
}

// WithVersionDate sets the version label.
func WithVersionDate(label string) Option {
	return func(d *Descriptor) { d.VersionDate = label }
}

// WithExtent sets the spatial extent.
func WithExtent(extent any) Option {
	return func(d *Descriptor) { d.Extent = extent }
}

// WithEPSG sets the coordinate reference. An integral json.Number reads
// back from a file or field map as int64.
func WithEPSG(epsg any) Option {
	return func(d *Descriptor) { d.EPSG = epsg }
}

// WithDateCreated overrides the creation time.
func WithDateCreated(t time.Time) Option {
	return func(d *Descriptor) { d.DateCreated = utc.Time{Time: t.UTC()} }
}

// WithDateModified overrides the modification time.
func WithDateModified(t time.Time) Option {
	return func(d *Descriptor) { d.DateModified = utc.Time{Time: t.UTC()} }
}

// WithExtra sets a key outside the common shape, e.g. "urlDownload".
func WithExtra(key string, value any) Option {
	return func(d *Descriptor) {
		if d.Extra == nil {
			d.Extra = make(map[string]any)
		}
		d.Extra[key] = value
	}
}

// New creates a descriptor with both timestamps set to now unless
// overridden by options.
func New(id string, opts ...Option) *Descriptor {
	now := Now()
	d := &Descriptor{
		ID:           id,
		DateCreated:  now,
		DateModified: now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Now returns the current time in UTC.
func Now() utc.Time {
	return utc.Time{Time: time.Now().UTC()}
}

// DisplayLabel returns a short label for diagnostics.
func (d *Descriptor) DisplayLabel() string {
	return fmt.Sprintf("%s, %s, %s", d.ID, d.NameShort, d.VersionDate)
}

// String implements fmt.Stringer.
func (d *Descriptor) String() string {
	return d.DisplayLabel()
}

// Touch records a content change made at now.
func (d *Descriptor) Touch(now time.Time) {
	d.DateModified = utc.Time{Time: now.UTC()}
}

// ClampCreated moves DateCreated back to DateModified when it is later.
func (d *Descriptor) ClampCreated() {
	if d.DateCreated.Time.After(d.DateModified.Time) {
		d.DateCreated = d.DateModified
	}
}

// NewerThan reports whether d was modified strictly after other.
func (d *Descriptor) NewerThan(other *Descriptor) bool {
	return d.DateModified.Time.After(other.DateModified.Time)
}

// Clone returns a copy of d. Extra is copied one level deep; Extent and
// EPSG values are shared.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	c := *d
	if d.Extra != nil {
		c.Extra = make(map[string]any, len(d.Extra))
		maps.Copy(c.Extra, d.Extra)
	}
	return &c
}
