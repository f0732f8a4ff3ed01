package datasources

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// MarshalYAML implements yaml.InterfaceMarshaler with the same key order as
// the JSON document.
func (d *Descriptor) MarshalYAML() (any, error) {
	fields := d.ToFieldMap()
	out := make(yaml.MapSlice, 0, len(fields))
	for _, key := range append(Keys(), d.ExtraKeys()...) {
		out = append(out, yaml.MapItem{Key: key, Value: plain(fields[key])})
	}
	return out, nil
}

// plain replaces json.Number values so YAML renders them as numbers.
func plain(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = plain(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = plain(item)
		}
		return out
	}
	return v
}
