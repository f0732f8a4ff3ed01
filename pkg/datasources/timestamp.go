package datasources

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/atlas/pkg/constants"
)

// naiveLayouts are ISO-8601 forms without a zone, read as UTC. Older
// catalogs were written in this form.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp. Values with a zone offset
// are converted to UTC; values without one are taken to be UTC.
func ParseTimestamp(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	// Date and time may be separated by a space.
	if len(value) > 10 && value[10] == ' ' {
		value = value[:10] + "T" + value[11:]
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as ISO-8601", s)
}

// FormatTimestamp renders t as RFC 3339 with nanoseconds in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.TimeFormatISO8601)
}
