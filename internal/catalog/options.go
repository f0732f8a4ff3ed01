package catalog

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ProgressFunc is called by WriteAll after each entry. index counts from 1.
type ProgressFunc func(index, total int, result WriteResult)

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem the catalog lives on. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithAtomicWrites makes every write go through a temporary file that is
// synced and renamed over the target. Without it, files are overwritten in
// place and a crash mid-write can leave a truncated document.
func WithAtomicWrites() Option {
	return func(s *Store) {
		s.atomic = true
	}
}

// WithProgress registers a callback invoked once per entry during WriteAll.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Store) {
		s.progress = fn
	}
}
