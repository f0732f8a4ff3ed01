package datasources

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/atlas/pkg/errors"
)

// FieldMap is the flat key/value form of a descriptor.
type FieldMap map[string]any

// Field keys of a descriptor document.
const (
	KeyLayerID      = "layerId"
	KeyNameFull     = "nameFull"
	KeyNameShort    = "nameShort"
	KeyURLInfo      = "urlInfo"
	KeyVersionDate  = "versionDate"
	KeyExtent       = "extent"
	KeyEPSG         = "epsg"
	KeyDateCreated  = "dateCreated"
	KeyDateModified = "dateModified"
)

// keyOrder is the order keys are written in.
var keyOrder = []string{
	KeyLayerID,
	KeyNameFull,
	KeyNameShort,
	KeyURLInfo,
	KeyVersionDate,
	KeyExtent,
	KeyEPSG,
	KeyDateCreated,
	KeyDateModified,
}

// Keys returns the common keys in document order.
func Keys() []string {
	return slices.Clone(keyOrder)
}

// IsCommonKey reports whether key belongs to the common descriptor shape.
func IsCommonKey(key string) bool {
	return slices.Contains(keyOrder, key)
}

// Construct builds a descriptor from a field map. Missing timestamps
// default to the current UTC time.
func Construct(fields FieldMap) (*Descriptor, error) {
	return ConstructAt(fields, time.Now())
}

// ConstructAt is Construct with an explicit time for missing timestamps.
//
// Optional fields are not validated. Text fields accept any scalar and keep
// its textual form; extent and epsg are stored as they are, except that an
// exact JSON integer is turned into an int64. A dateCreated later than
// dateModified, including one defaulted to now, is clamped to dateModified.
// The only failure is a timestamp that is present but not ISO-8601.
func ConstructAt(fields FieldMap, now time.Time) (*Descriptor, error) {
	created, err := timestampField(fields, KeyDateCreated, now)
	if err != nil {
		return nil, err
	}
	modified, err := timestampField(fields, KeyDateModified, now)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{
		ID:           text(fields[KeyLayerID]),
		NameFull:     text(fields[KeyNameFull]),
		NameShort:    text(fields[KeyNameShort]),
		URLInfo:      text(fields[KeyURLInfo]),
		VersionDate:  text(fields[KeyVersionDate]),
		Extent:       fields[KeyExtent],
		EPSG:         number(fields[KeyEPSG]),
		DateCreated:  created,
		DateModified: modified,
	}

	for key, value := range fields {
		if IsCommonKey(key) {
			continue
		}
		if d.Extra == nil {
			d.Extra = make(map[string]any)
		}
		d.Extra[key] = value
	}
	d.ClampCreated()

	return d, nil
}

// ToFieldMap returns every common key plus Extra. Empty text fields map to
// nil, timestamps to RFC 3339 strings in UTC.
func (d *Descriptor) ToFieldMap() FieldMap {
	fields := make(FieldMap, len(keyOrder)+len(d.Extra))
	for key, value := range d.Extra {
		fields[key] = value
	}
	fields[KeyLayerID] = d.ID
	fields[KeyNameFull] = nullable(d.NameFull)
	fields[KeyNameShort] = nullable(d.NameShort)
	fields[KeyURLInfo] = nullable(d.URLInfo)
	fields[KeyVersionDate] = nullable(d.VersionDate)
	fields[KeyExtent] = d.Extent
	fields[KeyEPSG] = d.EPSG
	fields[KeyDateCreated] = FormatTimestamp(d.DateCreated.Time)
	fields[KeyDateModified] = FormatTimestamp(d.DateModified.Time)
	return fields
}

func timestampField(fields FieldMap, key string, now time.Time) (utc.Time, error) {
	switch v := fields[key].(type) {
	case nil:
		return utc.Time{Time: now.UTC()}, nil
	case string:
		if v == "" {
			return utc.Time{Time: now.UTC()}, nil
		}
		t, err := ParseTimestamp(v)
		if err != nil {
			return utc.Time{}, &errors.ParseError{
				Format:  "iso8601",
				Field:   key,
				Message: err.Error(),
				Err:     err,
			}
		}
		return utc.Time{Time: t}, nil
	case time.Time:
		return utc.Time{Time: v.UTC()}, nil
	case utc.Time:
		return utc.Time{Time: v.Time.UTC()}, nil
	default:
		return utc.Time{}, &errors.ParseError{
			Format:  "iso8601",
			Field:   key,
			Message: fmt.Sprintf("expected a timestamp string, got %T", v),
		}
	}
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func number(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	return n
}
