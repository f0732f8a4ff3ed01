package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/atlas/pkg/datasources"
	"github.com/agentstation/atlas/pkg/errors"
	"github.com/agentstation/atlas/pkg/logging"
	"github.com/agentstation/atlas/pkg/save"
)

const testRoot = "/atlas"

var (
	t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(2 * time.Hour)
	t3 = t0.Add(3 * time.Hour)
)

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func testOptions(fs afero.Fs, extra ...Option) []Option {
	return append([]Option{
		WithFs(fs),
		WithLogger(logging.NewNopLogger()),
		WithClock(stepClock(t0)),
	}, extra...)
}

func newTestStore(t *testing.T, extra ...Option) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := Create(testRoot, testOptions(fs, extra...)...)
	require.NoError(t, err)
	return s, fs
}

func dirNames(t *testing.T, fs afero.Fs, dir string) []string {
	t.Helper()
	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func readDescriptor(t *testing.T, fs afero.Fs, path string) *datasources.Descriptor {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	d, err := datasources.Decode(data, path)
	require.NoError(t, err)
	return d
}

func TestCreate(t *testing.T) {
	s, fs := newTestStore(t)

	meta := s.Metadata()
	assert.Equal(t, 0, meta.Version)
	assert.Equal(t, 0, meta.SourceCount)
	assert.True(t, meta.CreatedAt.Time.Equal(meta.ModifiedAt.Time))
	assert.Equal(t, testRoot, s.Root())
	assert.Equal(t, []string{"_meta.json"}, dirNames(t, fs, testRoot))

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, fs, "/atlas/_meta.json")), &doc))
	assert.Equal(t, float64(0), doc["Version"])
	assert.Equal(t, float64(0), doc["NumSources"])
	assert.Contains(t, doc, "DatetimeCreated")
	assert.Contains(t, doc, "DatetimeModified")
}

func TestCreate_ExistingDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))

	_, err := Create(testRoot, testOptions(fs)...)
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))

	var existsErr *errors.AlreadyExistsError
	require.True(t, errors.As(err, &existsErr))
	assert.Equal(t, testRoot, existsErr.ID)
	assert.Empty(t, dirNames(t, fs, testRoot))
}

func TestScenario_CreateUpsertWriteRewrite(t *testing.T) {
	s, fs := newTestStore(t)
	require.Equal(t, 0, s.Metadata().Version)

	require.NoError(t, s.Upsert(datasources.New("ch.test.a", datasources.WithNameShort("A"))))

	results, err := s.WriteAll()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeCreated, results[0].Outcome)
	assert.Equal(t, []string{"_meta.json", "ch.test.a.json"}, dirNames(t, fs, testRoot))
	assert.Equal(t, 1, s.Metadata().Version)
	assert.Equal(t, 1, s.Metadata().SourceCount)

	before := readFile(t, fs, "/atlas/ch.test.a.json")

	results, err = s.WriteAll()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeSkipped, results[0].Outcome)
	assert.Equal(t, before, readFile(t, fs, "/atlas/ch.test.a.json"))
	assert.Equal(t, 2, s.Metadata().Version)
	assert.Equal(t, 1, s.Metadata().SourceCount)
}

func TestOpen_CreatesMissingCatalog(t *testing.T) {
	fs := afero.NewMemMapFs()

	s, err := Open(testRoot, testOptions(fs)...)
	require.NoError(t, err)

	// Created with version 0, then refreshed by the load.
	assert.Equal(t, 1, s.Metadata().Version)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []string{"_meta.json"}, dirNames(t, fs, testRoot))
}

func TestOpen_LoadsExistingCatalog(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, s.Upsert(
		datasources.New("ch.test.a"),
		datasources.New("ch.test.b"),
	))
	_, err := s.WriteAll()
	require.NoError(t, err)
	require.Equal(t, 1, s.Metadata().Version)

	reopened, err := Open(testRoot, testOptions(fs)...)
	require.NoError(t, err)

	assert.Equal(t, 2, reopened.Metadata().Version)
	assert.Equal(t, 2, reopened.Metadata().SourceCount)
	assert.True(t, reopened.Metadata().CreatedAt.Time.Equal(s.Metadata().CreatedAt.Time))

	ids := make([]string, 0, 2)
	for _, d := range reopened.Descriptors() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"ch.test.a", "ch.test.b"}, ids)
}

func TestRefreshMetadata_Monotonic(t *testing.T) {
	s, _ := newTestStore(t)
	start := s.Metadata().Version
	previous := s.Metadata().ModifiedAt.Time

	for i := 1; i <= 5; i++ {
		require.NoError(t, s.RefreshMetadata())
		meta := s.Metadata()
		assert.Equal(t, start+i, meta.Version)
		assert.True(t, meta.ModifiedAt.Time.After(previous))
		previous = meta.ModifiedAt.Time
	}
}

func TestLoad_MissingMetadata(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))

	_, err := Open(testRoot, testOptions(fs)...)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.False(t, errors.IsParseError(err))
}

func TestLoad_MalformedMetadata(t *testing.T) {
	tests := map[string]string{
		"bad json":      `{"Version": `,
		"bad timestamp": `{"DatetimeCreated": "never", "DatetimeModified": "2024-01-01T00:00:00Z", "Version": 1, "NumSources": 0}`,
		"wrong type":    `{"DatetimeCreated": "2024-01-01T00:00:00Z", "DatetimeModified": "2024-01-01T00:00:00Z", "Version": "one", "NumSources": 0}`,
		"negative":      `{"DatetimeCreated": "2024-01-01T00:00:00Z", "DatetimeModified": "2024-01-01T00:00:00Z", "Version": -1, "NumSources": 0}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, fs.MkdirAll(testRoot, 0o755))
			require.NoError(t, afero.WriteFile(fs, "/atlas/_meta.json", []byte(doc), 0o644))

			_, err := Open(testRoot, testOptions(fs)...)
			require.Error(t, err)
			assert.True(t, errors.IsNotFound(err))
			assert.True(t, errors.IsParseError(err))

			var notFound *errors.NotFoundError
			require.True(t, errors.As(err, &notFound))
			assert.Equal(t, "metadata", notFound.Resource)
			assert.NotNil(t, notFound.Err)
		})
	}
}

func TestLoadAll_SkipsReservedAndForeignEntries(t *testing.T) {
	s, fs := newTestStore(t)
	valid := `{"layerId": "ch.test.a", "dateCreated": "2024-01-01T00:00:00Z", "dateModified": "2024-01-01T00:00:00Z"}`

	require.NoError(t, afero.WriteFile(fs, "/atlas/ch.test.a.json", []byte(valid), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/atlas/_hidden.json", []byte(valid), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/atlas/_broken.json", []byte("{"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/atlas/notes.txt", []byte("not json"), 0o644))
	require.NoError(t, fs.MkdirAll("/atlas/nested.json", 0o755))

	require.NoError(t, s.LoadAll())

	assert.Equal(t, 1, s.Len())
	_, err := s.Descriptor("_hidden")
	assert.True(t, errors.IsNotFound(err))
	_, err = s.Descriptor("ch.test.a")
	assert.NoError(t, err)
}

func TestLoadAll_CorruptFileAbortsLoad(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, "/atlas/ch.test.bad.json", []byte(`{"layerId": "ch.test.bad", "dateCreated": "soon"}`), 0o644))

	err := s.LoadAll()
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))

	var parseErr *errors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "dateCreated", parseErr.Field)
	assert.Equal(t, filepath.Join(testRoot, "ch.test.bad.json"), parseErr.File)
}

func TestLoadAll_IdentifierFromFileName(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, "/atlas/ch.test.noid.json", []byte(`{"nameShort": "x"}`), 0o644))

	require.NoError(t, s.LoadAll())
	d, err := s.Descriptor("ch.test.noid")
	require.NoError(t, err)
	assert.Equal(t, "ch.test.noid", d.ID)
}

func TestLoadAll_FileNameWinsOverLayerID(t *testing.T) {
	s, fs := newTestStore(t)
	doc := `{"layerId": "ch.other", "nameShort": "x", "dateCreated": "2024-01-01T00:00:00Z", "dateModified": "2024-01-01T00:00:00Z"}`
	require.NoError(t, afero.WriteFile(fs, "/atlas/ch.stem.json", []byte(doc), 0o644))

	require.NoError(t, s.LoadAll())
	d, err := s.Descriptor("ch.stem")
	require.NoError(t, err)
	assert.Equal(t, "ch.stem", d.ID)
	_, err = s.Descriptor("ch.other")
	assert.True(t, errors.IsNotFound(err))

	_, err = s.WriteAll(save.WithForceOverwrite(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"_meta.json", "ch.stem.json"}, dirNames(t, fs, testRoot))
	assert.Equal(t, "ch.stem", readDescriptor(t, fs, "/atlas/ch.stem.json").ID)
}

func TestLoadOne_Missing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.LoadOne("/atlas/nope.json")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoad_NaiveTimestampsFromOlderCatalogs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))
	meta := `{
	"DatetimeCreated": "2023-03-01T09:00:00.000001",
	"DatetimeModified": "2023-03-02T09:00:00.000001",
	"Version": 4,
	"NumSources": 1
}`
	doc := `{
	"layerId": "ch.swisstopo.swissimage-product",
	"nameFull": "SWISSIMAGE: Das digitale Orthophotomosaik der Schweiz",
	"nameShort": "SWISSIMAGE10",
	"urlInfo": "https://www.swisstopo.admin.ch/de/geodata/images/ortho/swissimage10.html",
	"versionDate": null,
	"extent": null,
	"epsg": null,
	"dateCreated": "2023-03-01T10:00:00.123456",
	"dateModified": "2023-03-01T10:00:00.123456"
}`
	require.NoError(t, afero.WriteFile(fs, "/atlas/_meta.json", []byte(meta), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/atlas/ch.swisstopo.swissimage-product.json", []byte(doc), 0o644))

	s, err := Open(testRoot, testOptions(fs)...)
	require.NoError(t, err)

	assert.Equal(t, 5, s.Metadata().Version)
	assert.Equal(t, 1, s.Metadata().SourceCount)
	assert.True(t, s.Metadata().CreatedAt.Time.Equal(time.Date(2023, 3, 1, 9, 0, 0, 1000, time.UTC)))

	d, err := s.Descriptor("ch.swisstopo.swissimage-product")
	require.NoError(t, err)
	assert.Equal(t, "SWISSIMAGE10", d.NameShort)
	assert.True(t, d.DateCreated.Time.Equal(time.Date(2023, 3, 1, 10, 0, 0, 123456000, time.UTC)))
}

func TestUpsert(t *testing.T) {
	s, fs := newTestStore(t)

	first := datasources.New("ch.test.a", datasources.WithNameShort("first"))
	second := datasources.New("ch.test.a", datasources.WithNameShort("second"))
	require.NoError(t, s.Upsert(first))
	require.NoError(t, s.Upsert(second))

	assert.Equal(t, 1, s.Len())
	d, err := s.Descriptor("ch.test.a")
	require.NoError(t, err)
	assert.Equal(t, "second", d.NameShort)

	// In memory only.
	assert.Equal(t, []string{"_meta.json"}, dirNames(t, fs, testRoot))
}

func TestUpsert_RejectsInvalidIdentifiers(t *testing.T) {
	s, _ := newTestStore(t)

	for _, id := range []string{"", "_meta", "../escape", "a/b"} {
		err := s.Upsert(datasources.New("ch.test.ok"), datasources.New(id))
		require.Error(t, err, id)
		assert.True(t, errors.IsValidationError(err), id)
	}
	assert.Equal(t, 0, s.Len())

	err := s.Upsert(nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestDescriptor_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Upsert(datasources.New("ch.test.a", datasources.WithNameShort("A"))))

	d, err := s.Descriptor("ch.test.a")
	require.NoError(t, err)
	d.NameShort = "changed"

	again, err := s.Descriptor("ch.test.a")
	require.NoError(t, err)
	assert.Equal(t, "A", again.NameShort)

	_, err = s.Descriptor("missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestWriteAll_ProgressAndLogging(t *testing.T) {
	logger := logging.NewTestLogger(t)
	var calls []string
	progress := func(index, total int, result WriteResult) {
		calls = append(calls, fmt.Sprintf("%d/%d %s %s", index, total, result.ID, result.Outcome))
	}

	fs := afero.NewMemMapFs()
	s, err := Create(testRoot, WithFs(fs), WithLogger(logger.Logger), WithClock(stepClock(t0)), WithProgress(progress))
	require.NoError(t, err)
	require.NoError(t, s.Upsert(datasources.New("ch.test.b"), datasources.New("ch.test.a")))

	_, err = s.WriteAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"1/2 ch.test.a created", "2/2 ch.test.b created"}, calls)
	assert.Equal(t, 2, logger.CountContaining("Writing descriptor"))
	logger.AssertContains(t, `"layer_id":"ch.test.a"`)
}

func TestWriteAll_ExtrasSurvive(t *testing.T) {
	s, fs := newTestStore(t)
	doc := `{"layerId": "ch.test.pkg", "urlDownload": "https://example.org/pkg.zip", "dateCreated": "2024-01-01T00:00:00Z", "dateModified": "2024-01-01T00:00:00Z"}`
	require.NoError(t, afero.WriteFile(fs, "/atlas/ch.test.pkg.json", []byte(doc), 0o644))
	require.NoError(t, s.LoadAll())

	d, err := s.Descriptor("ch.test.pkg")
	require.NoError(t, err)
	d.Touch(t3)
	require.NoError(t, s.Upsert(d))

	results, err := s.WriteAll()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeUpdated, results[0].Outcome)

	written := readDescriptor(t, fs, "/atlas/ch.test.pkg.json")
	assert.Equal(t, "https://example.org/pkg.zip", written.Extra["urlDownload"])
	assert.True(t, written.DateModified.Time.Equal(t3))
}

func TestWriteFile_Atomic(t *testing.T) {
	root := filepath.Join(t.TempDir(), "atlas")
	s, err := Create(root,
		WithFs(afero.NewOsFs()),
		WithLogger(logging.NewNopLogger()),
		WithAtomicWrites(),
	)
	require.NoError(t, err)

	require.NoError(t, s.Upsert(datasources.New("ch.test.a"), datasources.New("ch.test.b")))
	_, err = s.WriteAll()
	require.NoError(t, err)
	_, err = s.WriteAll(saveForce())
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"_meta.json", "ch.test.a.json", "ch.test.b.json"}, names)

	reopened, err := Open(root, WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Len())
	assert.Equal(t, 3, reopened.Metadata().Version)
}
