package catalog

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/agentstation/atlas/pkg/constants"
	"github.com/agentstation/atlas/pkg/errors"
)

// writeFile writes data to path, in place or through a temporary file
// depending on the store configuration.
func (s *Store) writeFile(path string, data []byte) error {
	if !s.atomic {
		if err := afero.WriteFile(s.fs, path, data, constants.FilePermissions); err != nil {
			return errors.WrapIO("write", path, err)
		}
		return nil
	}
	return s.writeFileAtomic(path, data)
}

// writeFileAtomic uses the temp-file, fsync, rename pattern. The temporary
// name carries the reserved prefix so LoadAll never picks it up.
func (s *Store) writeFileAtomic(path string, data []byte) error {
	tmp, err := afero.TempFile(s.fs, filepath.Dir(path), constants.TempFilePattern)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()

	cleanup := func(op string, err error) error {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return errors.WrapIO(op, path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup("sync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return errors.WrapIO("close", path, err)
	}
	if err := s.fs.Chmod(tmpName, constants.FilePermissions); err != nil {
		_ = s.fs.Remove(tmpName)
		return errors.WrapIO("chmod", path, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
