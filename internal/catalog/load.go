package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/agentstation/atlas/pkg/constants"
	"github.com/agentstation/atlas/pkg/datasources"
	"github.com/agentstation/atlas/pkg/errors"
)

// LoadAll loads every descriptor file in the catalog directory into the
// registry, keyed by file name stem. Files with the reserved prefix,
// directories and files without the descriptor extension are ignored.
// The first file that fails to load aborts the whole load.
func (s *Store) LoadAll() error {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return errors.WrapIO("list", s.root, err)
	}

	loaded := 0
	for _, entry := range entries {
		if !isDescriptorFile(entry) {
			continue
		}

		id := datasources.IDFromFileName(entry.Name())
		d, err := s.LoadOne(filepath.Join(s.root, entry.Name()))
		if err != nil {
			return err
		}
		if d.ID != "" && d.ID != id {
			s.logger.Warn().
				Str("file", entry.Name()).
				Str("layer_id", d.ID).
				Msg("Descriptor identifier does not match its file name")
		}
		d.ID = id

		s.registry.Set(id, d)
		loaded++
	}

	s.logger.Debug().Str("catalog", s.root).Int("count", loaded).Msg("Loaded descriptors")
	return nil
}

// LoadOne reads and decodes a single descriptor file. A missing file is a
// NotFoundError; malformed JSON or timestamps are a ParseError.
func (s *Store) LoadOne(path string) (*datasources.Descriptor, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.NewNotFoundError("descriptor", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}

	d, err := datasources.DecodeAt(data, path, s.clock())
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("file", path).Str("layer_id", d.ID).Msg("Loaded descriptor")
	return d, nil
}

func isDescriptorFile(info os.FileInfo) bool {
	name := info.Name()
	return !info.IsDir() &&
		!strings.HasPrefix(name, constants.ReservedPrefix) &&
		filepath.Ext(name) == constants.DescriptorExt
}
