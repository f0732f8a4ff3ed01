package datasources

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"

	"github.com/agentstation/atlas/pkg/constants"
	"github.com/agentstation/atlas/pkg/errors"
)

// Encode renders d as a tab-indented JSON document. Common keys come first
// in their fixed order, Extra keys follow sorted by name.
func Encode(d *Descriptor) ([]byte, error) {
	compact, err := encodeOrdered(d.ToFieldMap(), d.ExtraKeys())
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", constants.JSONIndent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Decode parses a descriptor document. file is used in error messages only.
func Decode(data []byte, file string) (*Descriptor, error) {
	return DecodeAt(data, file, time.Now())
}

// DecodeAt is Decode with an explicit time for missing timestamps.
func DecodeAt(data []byte, file string, now time.Time) (*Descriptor, error) {
	var fields FieldMap
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, errors.WrapParse("json", file, err)
	}

	d, err := ConstructAt(fields, now)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = file
		}
		return nil, err
	}
	return d, nil
}

// MarshalJSON implements json.Marshaler using the document key order.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	return encodeOrdered(d.ToFieldMap(), d.ExtraKeys())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data, "")
	if err != nil {
		return err
	}
	*d = *decoded
	return nil
}

// ExtraKeys returns the keys of Extra outside the common shape, sorted.
func (d *Descriptor) ExtraKeys() []string {
	keys := make([]string, 0, len(d.Extra))
	for key := range d.Extra {
		if !IsCommonKey(key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// encodeOrdered writes a compact JSON object with the common keys followed by extra.
func encodeOrdered(fields FieldMap, extra []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range append(Keys(), extra...) {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, fields[key]); err != nil {
			return nil, errors.NewValidationError(key, fields[key], err.Error())
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
