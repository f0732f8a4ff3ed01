package add

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/agentstation/atlas/pkg/datasources"
	"github.com/agentstation/atlas/pkg/errors"
)

// parseEPSG returns s as an int64 when it is an integer, as text otherwise.
// An empty value clears the field.
func parseEPSG(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}

// parseValue decodes s as JSON, keeping numbers exact. Text that is not
// JSON is kept as a string. An empty value clears the field.
func parseValue(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return s
	}
	return v
}

// parseAssignment splits a --set value of the form key=value.
func parseAssignment(kv string) (string, any, error) {
	key, value, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, errors.NewValidationError("set", kv, "must have the form key=value")
	}
	if datasources.IsCommonKey(key) {
		return "", nil, errors.NewValidationError("set", kv, "key "+key+" has a dedicated flag")
	}
	return key, parseValue(value), nil
}
