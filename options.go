package atlas

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/atlas/pkg/constants"
	"github.com/agentstation/atlas/pkg/logging"
)

// options holds the client configuration.
type options struct {
	root         string
	fs           afero.Fs
	logger       *zerolog.Logger
	clock        func() time.Time
	atomicWrites bool
}

// Option is a function that configures a Client instance.
type Option func(*options)

func defaults() *options {
	return &options{
		root:   constants.DefaultRootPath,
		fs:     afero.NewOsFs(),
		logger: logging.Default(),
		clock:  time.Now,
	}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRoot configures the catalog directory. Defaults to ./atlas.
func WithRoot(path string) Option {
	return func(o *options) {
		if path != "" {
			o.root = path
		}
	}
}

// WithFs configures the filesystem the catalog lives on.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithLogger configures the logger used by the catalog store.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock configures the time source used for metadata timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithAtomicWrites configures whether files are written through a
// temporary file and renamed into place.
func WithAtomicWrites(enabled bool) Option {
	return func(o *options) {
		o.atomicWrites = enabled
	}
}
