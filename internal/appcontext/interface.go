// Package appcontext provides the shared application context interface
// used by all commands. Commands depend on this interface instead of the
// concrete App so they can be tested with Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/atlas"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/atlas/app implements it.
type Interface interface {
	// Client returns the catalog client for the configured root, opening it
	// lazily. The same client is returned on every call.
	Client() (atlas.Client, error)

	// ClientWithOptions opens a new client with options on top of the
	// configured ones. Use this when a command targets another root.
	ClientWithOptions(...atlas.Option) (atlas.Client, error)

	// InitClient creates a new catalog at root and returns its client.
	// An empty root means the configured one.
	InitClient(root string) (atlas.Client, error)

	// Root returns the configured catalog directory.
	Root() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
