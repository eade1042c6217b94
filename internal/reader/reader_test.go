package reader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanmiceli/dialect/internal/cache"
	"github.com/jordanmiceli/dialect/internal/config"
	apperr "github.com/jordanmiceli/dialect/internal/errors"
)

// fakeFetcher serves canned text and counts how often it is asked.
type fakeFetcher struct {
	text  string
	calls int
}

func (f *fakeFetcher) FetchText(ctx context.Context, path string) (string, error) {
	f.calls++
	if f.text == "" {
		return "", apperr.FileNotFound(path, nil)
	}
	return f.text, nil
}

func (f *fakeFetcher) FetchAsset(ctx context.Context, path string) (any, error) {
	return map[string]any{"path": path}, nil
}

func testSource() *config.SourceConfig {
	source := &config.SourceConfig{
		SourceName: "test",
		TimeParsers: map[string]string{
			"year": "year",
		},
	}
	// KeySize defaults to 1 elsewhere; set it explicitly here so the time
	// column index is unambiguous in the fixtures below.
	source.KeySize = 1
	return source
}

func TestLoadFullPipeline(t *testing.T) {
	fetcher := &fakeFetcher{text: "country,year,gdp\nusa,2000,3.5\nfra,2001,1.2\n"}
	r := New("data.csv", "tok1", testSource(), fetcher, cache.NewMemory())

	ds, err := r.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"country", "year", "gdp"}, ds.Columns)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "usa", ds.Rows[0]["country"])
	assert.Equal(t, 3.5, ds.Rows[0]["gdp"])
	assert.Equal(t, 2000.0, ds.Rows[0]["year"])
}

func TestLoadCachesByPathAndToken(t *testing.T) {
	fetcher := &fakeFetcher{text: "country,year,gdp\nusa,2000,3.5\n"}
	c := cache.NewMemory()

	first, err := New("data.csv", "tok1", testSource(), fetcher, c).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)

	// Same path and token: the cached instance comes back, no refetch.
	second, err := New("data.csv", "tok1", testSource(), fetcher, c).Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, fetcher.calls)

	// A changed modification token forces a fresh load.
	third, err := New("data.csv", "tok2", testSource(), fetcher, c).Load(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, fetcher.calls)
}

func TestLoadPinnedDelimiter(t *testing.T) {
	source := testSource()
	source.Delimiter = ";"

	// With the delimiter pinned, even text the sniffer would reject loads.
	fetcher := &fakeFetcher{text: "country;year\nusa;2000\n"}
	r := New("data.csv", "tok1", source, fetcher, cache.NewMemory())

	ds, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "year"}, ds.Columns)
}

func TestLoadFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{}
	r := New("missing.csv", "tok1", testSource(), fetcher, cache.NewMemory())

	_, err := r.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeFileNotFound))
}

func TestLoadValidationFailure(t *testing.T) {
	fetcher := &fakeFetcher{text: "country,year,gdp\nusa,banana,3.5\n"}
	r := New("data.csv", "tok1", testSource(), fetcher, cache.NewMemory())

	_, err := r.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeWrongTimeColumnOrUnits))
}

func TestLoadCoercionFailure(t *testing.T) {
	fetcher := &fakeFetcher{text: "country,year,gdp\nusa,2000,\"1.5\"\nfra,2000,\"1,5\"\n"}
	r := New("data.csv", "tok1", testSource(), fetcher, cache.NewMemory())

	_, err := r.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeDifferentSeparators))
}

func TestLoadFailureNotCached(t *testing.T) {
	fetcher := &fakeFetcher{text: "country,year\nusa\n"}
	c := cache.NewMemory()
	r := New("data.csv", "tok1", testSource(), fetcher, c)

	_, err := r.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestInfo(t *testing.T) {
	r := New("path/to/population_2020.csv", "tok1", testSource(), &fakeFetcher{}, cache.NewMemory())
	assert.Equal(t, "population_2020", r.Info().Name)
}
