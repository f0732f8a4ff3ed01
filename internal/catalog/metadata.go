package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/agentstation/utc"
	"github.com/spf13/afero"

	"github.com/agentstation/atlas/pkg/constants"
	"github.com/agentstation/atlas/pkg/datasources"
	"github.com/agentstation/atlas/pkg/errors"
)

// Metadata is the catalog-level record kept in the metadata file.
type Metadata struct {
	CreatedAt   utc.Time `json:"createdAt" yaml:"createdAt"`
	ModifiedAt  utc.Time `json:"modifiedAt" yaml:"modifiedAt"`
	Version     int      `json:"version" yaml:"version"`
	SourceCount int      `json:"sourceCount" yaml:"sourceCount"`
}

// metadataDocument is the stored form. Field order is the key order.
type metadataDocument struct {
	DatetimeCreated  string `json:"DatetimeCreated"`
	DatetimeModified string `json:"DatetimeModified"`
	Version          int    `json:"Version"`
	NumSources       int    `json:"NumSources"`
}

func encodeMetadata(m Metadata) ([]byte, error) {
	doc := metadataDocument{
		DatetimeCreated:  datasources.FormatTimestamp(m.CreatedAt.Time),
		DatetimeModified: datasources.FormatTimestamp(m.ModifiedAt.Time),
		Version:          m.Version,
		NumSources:       m.SourceCount,
	}
	data, err := json.MarshalIndent(doc, "", constants.JSONIndent)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func decodeMetadata(data []byte, file string) (Metadata, error) {
	var doc metadataDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return Metadata{}, errors.WrapParse("json", file, err)
	}

	created, err := metadataTimestamp(doc.DatetimeCreated, "DatetimeCreated", file)
	if err != nil {
		return Metadata{}, err
	}
	modified, err := metadataTimestamp(doc.DatetimeModified, "DatetimeModified", file)
	if err != nil {
		return Metadata{}, err
	}
	if doc.Version < 0 || doc.NumSources < 0 {
		return Metadata{}, errors.NewParseError("json", file, "Version and NumSources must not be negative", nil)
	}

	return Metadata{
		CreatedAt:   created,
		ModifiedAt:  modified,
		Version:     doc.Version,
		SourceCount: doc.NumSources,
	}, nil
}

func metadataTimestamp(value, field, file string) (utc.Time, error) {
	parsed, err := datasources.ParseTimestamp(value)
	if err != nil {
		return utc.Time{}, &errors.ParseError{
			Format:  "iso8601",
			File:    file,
			Field:   field,
			Message: err.Error(),
			Err:     err,
		}
	}
	return utc.Time{Time: parsed}, nil
}

func (s *Store) metadataPath() string {
	return filepath.Join(s.root, constants.MetadataFileName)
}

// readMetadata returns a NotFoundError when the file is missing or cannot
// be decoded; in the latter case Err holds the ParseError.
func (s *Store) readMetadata() (Metadata, error) {
	path := s.metadataPath()
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Metadata{}, errors.NewNotFoundError("metadata", path)
		}
		return Metadata{}, errors.WrapIO("read", path, err)
	}

	meta, err := decodeMetadata(data, path)
	if err != nil {
		return Metadata{}, &errors.NotFoundError{Resource: "metadata", ID: path, Err: err}
	}
	return meta, nil
}

func (s *Store) writeMetadata(m Metadata) error {
	data, err := encodeMetadata(m)
	if err != nil {
		return errors.WrapResource("write", "metadata", s.metadataPath(), err)
	}
	return s.writeFile(s.metadataPath(), data)
}

// RefreshMetadata stamps the modification time, bumps the version by one,
// records the current registry size and persists the result.
func (s *Store) RefreshMetadata() error {
	next := s.meta
	next.ModifiedAt = utc.Time{Time: s.clock()}
	next.Version++
	next.SourceCount = s.registry.Len()

	if err := s.writeMetadata(next); err != nil {
		return err
	}
	s.meta = next

	s.logger.Debug().
		Str("catalog", s.root).
		Int("version", next.Version).
		Int("sources", next.SourceCount).
		Msg("Refreshed catalog metadata")
	return nil
}
