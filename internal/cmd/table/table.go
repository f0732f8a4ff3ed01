// Package table turns catalog values into rows for CLI table output.
package table

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/agentstation/atlas/internal/catalog"
	"github.com/agentstation/atlas/internal/cmd/emoji"
	"github.com/agentstation/atlas/pkg/constants"
	"github.com/agentstation/atlas/pkg/datasources"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// DescriptorsToTableData converts descriptors to table format. Wide output
// adds the URL, coordinate reference and timestamps.
func DescriptorsToTableData(ds []*datasources.Descriptor, wide bool) Data {
	headers := []string{"ID", "Name", "Version"}
	if wide {
		headers = append(headers, "EPSG", "URL", "Created", "Modified")
	}

	rows := make([][]string, 0, len(ds))
	for _, d := range ds {
		row := []string{
			d.ID,
			orDash(d.NameShort),
			orDash(d.VersionDate),
		}
		if wide {
			row = append(row,
				FormatValue(d.EPSG),
				Truncate(orDash(d.URLInfo), 60),
				FormatTime(d.DateCreated.Time),
				FormatTime(d.DateModified.Time),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// DescriptorToTableData converts one descriptor to a key-value table.
func DescriptorToTableData(d *datasources.Descriptor) Data {
	rows := [][]string{
		{"ID", d.ID},
		{"Full Name", orDash(d.NameFull)},
		{"Short Name", orDash(d.NameShort)},
		{"URL", orDash(d.URLInfo)},
		{"Version", orDash(d.VersionDate)},
		{"Extent", FormatValue(d.Extent)},
		{"EPSG", FormatValue(d.EPSG)},
		{"Created", FormatTime(d.DateCreated.Time)},
		{"Modified", FormatTime(d.DateModified.Time)},
	}

	extras := d.ToFieldMap()
	for _, key := range d.ExtraKeys() {
		rows = append(rows, []string{key, FormatValue(extras[key])})
	}

	return Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

// MetadataToTableData converts catalog metadata to a key-value table.
func MetadataToTableData(root string, meta catalog.Metadata) Data {
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root", root},
			{"Version", strconv.Itoa(meta.Version)},
			{"Sources", strconv.Itoa(meta.SourceCount)},
			{"Created", FormatTime(meta.CreatedAt.Time)},
			{"Modified", FormatTime(meta.ModifiedAt.Time)},
		},
	}
}

// WriteResultsToTableData converts write results to table format.
func WriteResultsToTableData(results []catalog.WriteResult) Data {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{OutcomeSymbol(r.Outcome), r.ID, r.Outcome.String(), r.Path})
	}
	return Data{
		Headers:         []string{"", "ID", "Outcome", "Path"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignLeft, AlignLeft},
	}
}

// OutcomeSymbol returns the status symbol for a write outcome.
func OutcomeSymbol(o catalog.Outcome) string {
	switch o {
	case catalog.OutcomeCreated, catalog.OutcomeUpdated:
		return emoji.Success
	case catalog.OutcomeForced:
		return emoji.Warning
	case catalog.OutcomeSkipped:
		return emoji.Optional
	}
	return emoji.Unknown
}

// FormatValue renders an opaque descriptor value such as an extent.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return orDash(x)
	case json.Number, int, int64, float64:
		return fmt.Sprint(x)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n || n < 4 {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// FormatTime renders a timestamp for humans.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(constants.TimeFormatHuman)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
