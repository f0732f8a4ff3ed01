// Package save holds the write policy applied when descriptors are
// reconciled against the catalog directory, and the export formats used
// when a catalog is rendered to a writer.
package save

import "io"

// Format is an export format.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Options is the configuration for a write.
//
// A descriptor with no file on disk is always written. For an existing file
// the descriptor is written when ForceOverwrite is set, or when it is newer
// than the stored copy and UpdateExisting is set.
type Options struct {
	updateExisting bool
	forceOverwrite bool
	writer         io.Writer
	format         Format
}

// UpdateExisting reports whether newer descriptors replace stored ones.
func (s *Options) UpdateExisting() bool {
	return s.updateExisting
}

// ForceOverwrite reports whether stored descriptors are replaced regardless of age.
func (s *Options) ForceOverwrite() bool {
	return s.forceOverwrite
}

// Writer returns the writer for exports.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Format returns the export format.
func (s *Options) Format() Format {
	return s.format
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		updateExisting: true,
		forceOverwrite: false,
		writer:         nil,
		format:         FormatJSON,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithUpdateExisting controls whether newer descriptors replace stored ones.
func WithUpdateExisting(enabled bool) Option {
	return func(s *Options) {
		s.updateExisting = enabled
	}
}

// WithForceOverwrite writes descriptors even when the stored copy is newer.
func WithForceOverwrite(enabled bool) Option {
	return func(s *Options) {
		s.forceOverwrite = enabled
	}
}

// WithFormat for custom output format.
func WithFormat(f Format) Option {
	return func(s *Options) {
		s.format = f
	}
}

// WithWriter for custom outputs.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}
