// Package app provides the application context and dependency management
// for the atlas CLI. It centralizes configuration, logging and the lazily
// opened catalog client.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/atlas"
	"github.com/agentstation/atlas/internal/appcontext"
	"github.com/agentstation/atlas/pkg/errors"
)

// App represents the atlas application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client atlas.Client

	// clientOptions are appended to the options derived from config
	clientOptions []atlas.Option

	// out receives command output; nil means stdout
	out io.Writer
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and config files and can be
// overridden with functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Root returns the configured catalog directory.
func (a *App) Root() string {
	return a.config.Root
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Client returns the catalog client, opening it lazily if needed.
// This is thread-safe and ensures only one client is opened.
func (a *App) Client() (atlas.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := atlas.New(a.buildClientOptions()...)
	if err != nil {
		return nil, err
	}

	a.client = c
	return c, nil
}

// ClientWithOptions opens a new client. opts are applied after the options
// derived from config, so they win.
func (a *App) ClientWithOptions(opts ...atlas.Option) (atlas.Client, error) {
	return atlas.New(append(a.buildClientOptions(), opts...)...)
}

// InitClient creates a new catalog at root, or at the configured root when
// root is empty.
func (a *App) InitClient(root string) (atlas.Client, error) {
	opts := a.buildClientOptions()
	if root != "" {
		opts = append(opts, atlas.WithRoot(root))
	}
	return atlas.Init(opts...)
}

// Shutdown performs graceful shutdown of the application. The client holds
// no background resources, so it is only released.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		a.logger.Debug().Str("root", a.client.Root()).Msg("Releasing catalog client")
		a.client = nil
	}
	return ctx.Err()
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []atlas.Option {
	opts := []atlas.Option{
		atlas.WithLogger(a.logger),
	}

	if a.config.Root != "" {
		opts = append(opts, atlas.WithRoot(a.config.Root))
	}
	if a.config.AtomicWrites {
		opts = append(opts, atlas.WithAtomicWrites(true))
	}

	return append(opts, a.clientOptions...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c atlas.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}

// WithClientOptions adds options to every client the app opens, e.g. an
// in-memory filesystem in tests.
func WithClientOptions(opts ...atlas.Option) Option {
	return func(a *App) error {
		a.clientOptions = append(a.clientOptions, opts...)
		return nil
	}
}

// WithOutput redirects command output, e.g. to a buffer in tests.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}
