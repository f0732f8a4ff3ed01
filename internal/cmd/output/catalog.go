package output

import (
	"io"

	"github.com/agentstation/atlas/internal/catalog"
	"github.com/agentstation/atlas/internal/cmd/table"
	"github.com/agentstation/atlas/pkg/datasources"
)

// MetadataView is the JSON and YAML shape of catalog metadata in CLI output.
type MetadataView struct {
	Root        string `json:"root" yaml:"root"`
	Version     int    `json:"version" yaml:"version"`
	SourceCount int    `json:"sourceCount" yaml:"sourceCount"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
	ModifiedAt  string `json:"modifiedAt" yaml:"modifiedAt"`
}

// NewMetadataView builds the output shape of meta.
func NewMetadataView(root string, meta catalog.Metadata) MetadataView {
	return MetadataView{
		Root:        root,
		Version:     meta.Version,
		SourceCount: meta.SourceCount,
		CreatedAt:   datasources.FormatTimestamp(meta.CreatedAt.Time),
		ModifiedAt:  datasources.FormatTimestamp(meta.ModifiedAt.Time),
	}
}

// isTable reports whether format renders as a table.
func isTable(format Format) bool {
	switch format {
	case FormatTable, FormatWide, "":
		return true
	}
	return false
}

// Descriptors writes a descriptor listing in the given format.
func Descriptors(w io.Writer, format Format, ds []*datasources.Descriptor) error {
	formatter := NewFormatter(format)

	// Transform to output format
	var outputData any
	if isTable(format) {
		outputData = table.DescriptorsToTableData(ds, format == FormatWide)
	} else {
		outputData = ds
	}

	return formatter.Format(w, outputData)
}

// Descriptor writes one descriptor in the given format.
func Descriptor(w io.Writer, format Format, d *datasources.Descriptor) error {
	formatter := NewFormatter(format)

	var outputData any
	if isTable(format) {
		outputData = table.DescriptorToTableData(d)
	} else {
		outputData = d
	}

	return formatter.Format(w, outputData)
}

// Metadata writes catalog metadata in the given format.
func Metadata(w io.Writer, format Format, root string, meta catalog.Metadata) error {
	formatter := NewFormatter(format)

	var outputData any
	if isTable(format) {
		outputData = table.MetadataToTableData(root, meta)
	} else {
		outputData = NewMetadataView(root, meta)
	}

	return formatter.Format(w, outputData)
}

// WriteResults writes the outcome of a write run in the given format.
func WriteResults(w io.Writer, format Format, results []catalog.WriteResult) error {
	formatter := NewFormatter(format)

	var outputData any
	if isTable(format) {
		outputData = table.WriteResultsToTableData(results)
	} else {
		outputData = results
	}

	return formatter.Format(w, outputData)
}

// Any writes arbitrary data in the given format.
func Any(w io.Writer, format Format, data any) error {
	return NewFormatter(format).Format(w, data)
}
