package datasources

import (
	"strings"
	"unicode"

	"github.com/agentstation/atlas/pkg/constants"
	"github.com/agentstation/atlas/pkg/errors"
)

// ValidateIdentifier checks that id can be used as a file name stem inside
// the catalog directory. Identifiers conventionally follow
// <reverse-domain>.<issuer>.<name>, e.g. ch.swisstopo.swissimage10; the
// convention itself is not enforced.
func ValidateIdentifier(id string) error {
	switch {
	case id == "":
		return errors.NewValidationError(KeyLayerID, id, "cannot be empty")
	case id == "." || id == "..":
		return errors.NewValidationError(KeyLayerID, id, "is not a valid file name")
	case strings.ContainsAny(id, `/\`):
		return errors.NewValidationError(KeyLayerID, id, "must not contain path separators")
	case strings.HasPrefix(id, constants.ReservedPrefix):
		return errors.NewValidationError(KeyLayerID, id, "must not start with the reserved prefix "+constants.ReservedPrefix)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return errors.NewValidationError(KeyLayerID, id, "must not contain control characters")
		}
	}
	return nil
}

// FileName returns the document file name for id.
func FileName(id string) string {
	return id + constants.DescriptorExt
}

// IDFromFileName returns the identifier stem of a document file name.
func IDFromFileName(name string) string {
	return strings.TrimSuffix(name, constants.DescriptorExt)
}
