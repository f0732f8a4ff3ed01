package datasources

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/atlas/pkg/errors"
)

var (
	created  = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	modified = time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
)

func TestEncode_KeyOrderAndIndent(t *testing.T) {
	d := New("ch.swisstopo.pixelkarte",
		WithNameShort("Pixelkarte"),
		WithURLInfo("https://example.org/?a=1&b=2"),
		WithEPSG(int64(2056)),
		WithDateCreated(created),
		WithDateModified(modified),
	)

	data, err := Encode(d)
	require.NoError(t, err)

	want := "{\n" +
		"\t\"layerId\": \"ch.swisstopo.pixelkarte\",\n" +
		"\t\"nameFull\": null,\n" +
		"\t\"nameShort\": \"Pixelkarte\",\n" +
		"\t\"urlInfo\": \"https://example.org/?a=1&b=2\",\n" +
		"\t\"versionDate\": null,\n" +
		"\t\"extent\": null,\n" +
		"\t\"epsg\": 2056,\n" +
		"\t\"dateCreated\": \"2024-01-02T03:04:05Z\",\n" +
		"\t\"dateModified\": \"2024-02-03T04:05:06Z\"\n" +
		"}\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_ExtraKeysFollowSorted(t *testing.T) {
	d := New("ch.a",
		WithExtra("urlDownload", "https://example.org/a.zip"),
		WithExtra("attribution", "swisstopo"),
	)

	data, err := Encode(d)
	require.NoError(t, err)

	text := string(data)
	modifiedAt := strings.Index(text, `"dateModified"`)
	attributionAt := strings.Index(text, `"attribution"`)
	downloadAt := strings.Index(text, `"urlDownload"`)
	require.Positive(t, modifiedAt)
	assert.Greater(t, attributionAt, modifiedAt)
	assert.Greater(t, downloadAt, attributionAt)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	original := New("ch.swisstopo.swissimage",
		WithNameFull("SWISSIMAGE 10 cm"),
		WithNameShort("SWISSIMAGE"),
		WithURLInfo("https://www.swisstopo.admin.ch"),
		WithVersionDate("2023"),
		WithExtent([]any{json.Number("2485000"), json.Number("1075000"), json.Number("2834000"), json.Number("1296000")}),
		WithEPSG(int64(2056)),
		WithDateCreated(created),
		WithDateModified(modified.Add(123*time.Millisecond)),
		WithExtra("urlDownload", "https://example.org/swissimage.zip"),
	)

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data, "ch.swisstopo.swissimage.json")
	require.NoError(t, err)

	opts := cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })
	if diff := cmp.Diff(original.ToFieldMap(), decoded.ToFieldMap(), opts); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, original.DateModified.Time.Equal(decoded.DateModified.Time))

	again, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestDecode_NaiveTimestampsAreUTC(t *testing.T) {
	doc := `{"layerId":"ch.a","dateCreated":"2020-01-01T00:00:00","dateModified":"2020-06-01 12:30:00.5"}`

	d, err := Decode([]byte(doc), "ch.a.json")
	require.NoError(t, err)

	assert.True(t, d.DateCreated.Time.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, d.DateModified.Time.Equal(time.Date(2020, 6, 1, 12, 30, 0, 500_000_000, time.UTC)))
	assert.Equal(t, time.UTC, d.DateModified.Time.Location())
}

func TestDecode_OffsetTimestampConvertedToUTC(t *testing.T) {
	doc := `{"layerId":"ch.a","dateCreated":"2020-01-01T02:00:00+02:00"}`

	d, err := Decode([]byte(doc), "ch.a.json")
	require.NoError(t, err)
	assert.True(t, d.DateCreated.Time.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDecodeAt_MissingTimestampsDefaultToNow(t *testing.T) {
	now := time.Date(2025, 5, 5, 5, 5, 5, 0, time.UTC)

	d, err := DecodeAt([]byte(`{"layerId":"ch.a","nameShort":null}`), "ch.a.json", now)
	require.NoError(t, err)

	assert.True(t, d.DateCreated.Time.Equal(now))
	assert.True(t, d.DateModified.Time.Equal(now))
	assert.Empty(t, d.NameShort)
	assert.Nil(t, d.Extra)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{name: "malformed json", doc: `{"layerId":`},
		{name: "not an object", doc: `[1,2,3]`},
		{name: "bad created", doc: `{"layerId":"a","dateCreated":"yesterday"}`, field: KeyDateCreated},
		{name: "bad modified", doc: `{"layerId":"a","dateModified":"2020-13-45"}`, field: KeyDateModified},
		{name: "timestamp wrong type", doc: `{"layerId":"a","dateCreated":12}`, field: KeyDateCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), "a.json")
			require.Error(t, err)
			assert.True(t, errors.IsParseError(err))

			var parseErr *errors.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "a.json", parseErr.File)
			assert.Equal(t, tt.field, parseErr.Field)
		})
	}
}

func TestDecode_EPSGKeepsNonIntegers(t *testing.T) {
	d, err := Decode([]byte(`{"layerId":"a","epsg":"EPSG:2056"}`), "a.json")
	require.NoError(t, err)
	assert.Equal(t, "EPSG:2056", d.EPSG)

	d, err = Decode([]byte(`{"layerId":"a","epsg":21781}`), "a.json")
	require.NoError(t, err)
	assert.Equal(t, int64(21781), d.EPSG)
}

func TestDescriptor_JSONMarshalers(t *testing.T) {
	d := New("ch.a", WithNameShort("A"), WithDateCreated(created), WithDateModified(modified))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"layerId":"ch.a","nameFull":null,"nameShort":"A"`))

	var decoded Descriptor
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "ch.a", decoded.ID)
	assert.Equal(t, "A", decoded.NameShort)
	assert.True(t, decoded.DateCreated.Time.Equal(created))
}

func TestDescriptor_MarshalYAML(t *testing.T) {
	d := New("ch.a", WithEPSG(json.Number("2056")), WithExtra("urlDownload", "https://example.org/a.zip"))

	data, err := yaml.Marshal(d)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "layerId: ch.a\n"), text)
	assert.Contains(t, text, "epsg: 2056")
	assert.Less(t, strings.Index(text, "dateModified"), strings.Index(text, "urlDownload"))
}
