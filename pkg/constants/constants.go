// Package constants provides shared constants used throughout the atlas codebase.
// This includes the on-disk layout of a catalog, file permissions and the
// timestamp formats used in stored documents.
package constants

import "time"

// Catalog layout constants
const (
	// DefaultRootPath is the catalog directory used when none is configured
	DefaultRootPath = "./atlas"

	// DefaultRootName is the directory name created under a target path by `atlas init`
	DefaultRootName = "atlas"

	// ReservedPrefix marks catalog-internal files; such files are never loaded as descriptors
	ReservedPrefix = "_"

	// MetadataFileName is the catalog metadata document
	MetadataFileName = ReservedPrefix + "meta.json"

	// DescriptorExt is the file extension of descriptor documents
	DescriptorExt = ".json"

	// TempFilePattern is used for atomic writes; the reserved prefix keeps
	// leftovers out of descriptor enumeration
	TempFilePattern = ReservedPrefix + ".tmp-*"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Format constants
const (
	// TimeFormatISO8601 is the layout used when writing timestamps
	TimeFormatISO8601 = time.RFC3339Nano

	// TimeFormatHuman is used for table output
	TimeFormatHuman = "2006-01-02 15:04:05"

	// JSONIndent is the indentation of stored documents
	JSONIndent = "\t"
)
