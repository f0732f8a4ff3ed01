// Package catalog owns a catalog directory on disk: the descriptor files,
// the metadata file and the in-memory registry built from them.
//
// A catalog moves through three states. Create makes the directory and
// writes metadata with version 0. Load reads the metadata, loads every
// descriptor and refreshes the metadata. Open picks whichever of the two
// paths applies to the root.
//
// A Store assumes it is the only writer of its directory. Nothing guards
// against another process writing the same catalog.
package catalog

import (
	"path/filepath"
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/atlas/pkg/constants"
	"github.com/agentstation/atlas/pkg/datasources"
	"github.com/agentstation/atlas/pkg/errors"
	"github.com/agentstation/atlas/pkg/logging"
)

// Store is a catalog directory and its registry.
type Store struct {
	root     string
	fs       afero.Fs
	logger   *zerolog.Logger
	now      func() time.Time
	atomic   bool
	progress ProgressFunc

	registry *datasources.Registry
	meta     Metadata
}

func newStore(root string, opts ...Option) *Store {
	if root == "" {
		root = constants.DefaultRootPath
	}
	s := &Store{
		root:     filepath.Clean(root),
		fs:       afero.NewOsFs(),
		logger:   logging.Default(),
		now:      time.Now,
		registry: datasources.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create initializes a new catalog at root. It fails with an
// AlreadyExistsError when anything exists at root already.
func Create(root string, opts ...Option) (*Store, error) {
	s := newStore(root, opts...)

	exists, err := afero.Exists(s.fs, s.root)
	if err != nil {
		return nil, errors.WrapIO("stat", s.root, err)
	}
	if exists {
		return nil, errors.NewAlreadyExistsError("catalog", s.root)
	}

	if err := s.fs.MkdirAll(s.root, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", s.root, err)
	}

	now := utc.Time{Time: s.clock()}
	meta := Metadata{CreatedAt: now, ModifiedAt: now}
	if err := s.writeMetadata(meta); err != nil {
		return nil, err
	}
	s.meta = meta

	s.logger.Info().Str("catalog", s.root).Msg("Created catalog")
	return s, nil
}

// Open loads the catalog at root, creating it first if root does not exist.
func Open(root string, opts ...Option) (*Store, error) {
	s := newStore(root, opts...)

	exists, err := afero.Exists(s.fs, s.root)
	if err != nil {
		return nil, errors.WrapIO("stat", s.root, err)
	}
	if !exists {
		created, err := Create(s.root, opts...)
		if err != nil {
			return nil, err
		}
		s = created
	}

	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the metadata file, loads all descriptors and refreshes the
// metadata. A missing or unreadable metadata file is a NotFoundError.
func (s *Store) Load() error {
	meta, err := s.readMetadata()
	if err != nil {
		return err
	}
	s.meta = meta

	if err := s.LoadAll(); err != nil {
		return err
	}
	return s.RefreshMetadata()
}

// Upsert puts descriptors into the registry, replacing entries with the
// same identifier. Nothing is written to disk. No entry is stored when any
// descriptor is invalid.
func (s *Store) Upsert(ds ...*datasources.Descriptor) error {
	for _, d := range ds {
		if d == nil {
			return errors.NewValidationError("descriptor", nil, "cannot be nil")
		}
		if err := datasources.ValidateIdentifier(d.ID); err != nil {
			return err
		}
	}
	for _, d := range ds {
		s.registry.Set(d.ID, d)
		s.logger.Debug().Str("layer_id", d.ID).Msg("Upserted descriptor")
	}
	return nil
}

// Root returns the catalog directory.
func (s *Store) Root() string {
	return s.root
}

// Metadata returns a copy of the current catalog metadata.
func (s *Store) Metadata() Metadata {
	return s.meta
}

// Len returns the number of registered descriptors.
func (s *Store) Len() int {
	return s.registry.Len()
}

// Descriptor returns a copy of the registered descriptor with the given id.
func (s *Store) Descriptor(id string) (*datasources.Descriptor, error) {
	d, ok := s.registry.Get(id)
	if !ok {
		return nil, errors.NewNotFoundError("descriptor", id)
	}
	return d.Clone(), nil
}

// Descriptors returns copies of all registered descriptors ordered by id.
func (s *Store) Descriptors() []*datasources.Descriptor {
	list := s.registry.List()
	out := make([]*datasources.Descriptor, len(list))
	for i, d := range list {
		out[i] = d.Clone()
	}
	return out
}

// Path returns the file a descriptor with the given id is stored in.
func (s *Store) Path(id string) string {
	return filepath.Join(s.root, datasources.FileName(id))
}

func (s *Store) clock() time.Time {
	return s.now().UTC()
}
