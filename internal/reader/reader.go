// =============================================================================
// dialect - Dataset Reader
// =============================================================================
//
// This module orchestrates the ingestion pipeline for one tabular source.
// It is the public entry point of the engine; the CLI commands and any
// embedding application drive everything through a Reader.
//
// PIPELINE:
//   1. Check the result cache by (path, modification token)
//   2. Fetch the raw text (or parse the workbook for .xlsx sources)
//   3. Infer the field delimiter, unless pinned by configuration
//   4. Parse header and rows
//   5. Validate headers and the time column (fast-fail gate)
//   6. Coerce numeric cells under the winning decimal convention
//   7. Cache and return the dataset
//
// Every failure is terminal for the current load: no retry, no partial
// result. The same Reader is safe to Load from concurrently only because
// the cache tolerates concurrent access; a single load always runs the
// pipeline sequentially to completion.
//
// =============================================================================

package reader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jordanmiceli/dialect/internal/cache"
	"github.com/jordanmiceli/dialect/internal/coercer"
	"github.com/jordanmiceli/dialect/internal/config"
	"github.com/jordanmiceli/dialect/internal/dataset"
	"github.com/jordanmiceli/dialect/internal/fetch"
	"github.com/jordanmiceli/dialect/internal/logging"
	"github.com/jordanmiceli/dialect/internal/rowparser"
	"github.com/jordanmiceli/dialect/internal/sniffer"
	"github.com/jordanmiceli/dialect/internal/validation"
	"github.com/jordanmiceli/dialect/internal/xlsxsource"
)

// =============================================================================
// READER
// =============================================================================

// Reader loads one tabular source through the full ingestion pipeline.
type Reader struct {
	path     string
	modToken string
	source   *config.SourceConfig
	parsers  map[string]validation.ColumnParser

	fetcher fetch.Fetcher
	cache   cache.Cache
	log     zerolog.Logger
}

// DatasetInfo describes a source for display purposes.
type DatasetInfo struct {
	// Name is the trailing path segment without its extension.
	Name string
}

// New creates a Reader for the given source.
//
// PARAMETERS:
//   - path: location of the source file.
//   - modToken: modification token of the source (typically derived from
//     the file modification time). Together with path it forms the cache
//     key.
//   - source: the per-source ingestion rules.
//   - fetcher: the fetch collaborator.
//   - c: the result cache collaborator.
func New(path, modToken string, source *config.SourceConfig, fetcher fetch.Fetcher, c cache.Cache) *Reader {
	parsers := make(map[string]validation.ColumnParser, len(source.TimeParsers))
	for column, unit := range source.TimeParsers {
		if parser := validation.ParserForUnit(unit); parser != nil {
			parsers[column] = parser
		}
	}

	return &Reader{
		path:     path,
		modToken: modToken,
		source:   source,
		parsers:  parsers,
		fetcher:  fetcher,
		cache:    c,
		log:      logging.GetLogger("reader"),
	}
}

// =============================================================================
// PUBLIC ENTRY POINTS
// =============================================================================

// Load runs the ingestion pipeline and returns the typed dataset.
//
// Loading the same (path, modToken) twice returns the identical cached
// instance; the fetch collaborator is not invoked again.
func (r *Reader) Load(ctx context.Context) (*dataset.Dataset, error) {
	key := dataset.SourceKey{Path: r.path, ModToken: r.modToken}

	if ds, ok := r.cache.Get(key); ok {
		r.log.Debug().Str("path", r.path).Msg("cache hit")
		return ds, nil
	}

	raw, err := r.parseSource(ctx)
	if err != nil {
		return nil, err
	}

	if err := validation.Validate(raw, r.source.TimeColumnIndex(), r.parsers); err != nil {
		return nil, err
	}

	rows, err := coercer.Coerce(raw.Rows)
	if err != nil {
		return nil, err
	}

	ds := &dataset.Dataset{
		Columns: raw.Columns,
		Rows:    rows,
	}

	r.cache.Put(key, ds)

	r.log.Debug().
		Str("path", r.path).
		Int("columns", len(ds.Columns)).
		Int("rows", len(ds.Rows)).
		Msg("dataset loaded")

	return ds, nil
}

// Info returns display metadata for the source.
func (r *Reader) Info() DatasetInfo {
	base := filepath.Base(r.path)
	return DatasetInfo{
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// Asset fetches a JSON asset stored alongside the source file.
//
// PARAMETERS:
//   - name: asset file name, resolved relative to the source's directory.
func (r *Reader) Asset(ctx context.Context, name string) (any, error) {
	assetPath := filepath.Join(filepath.Dir(r.path), name)
	return r.fetcher.FetchAsset(ctx, assetPath)
}

// =============================================================================
// SOURCE PARSING
// =============================================================================

// parseSource produces the raw (pre-coercion) dataset for the source,
// choosing the workbook or the delimited-text path by file extension.
func (r *Reader) parseSource(ctx context.Context) (*dataset.Dataset, error) {
	if strings.EqualFold(filepath.Ext(r.path), ".xlsx") {
		return xlsxsource.Parse(r.path)
	}

	text, err := r.fetcher.FetchText(ctx, r.path)
	if err != nil {
		return nil, err
	}

	delimiter := r.source.DelimiterRune()
	if delimiter == 0 {
		delimiter, err = sniffer.Guess(text, r.path)
		if err != nil {
			return nil, err
		}
		r.log.Debug().
			Str("path", r.path).
			Str("delimiter", string(delimiter)).
			Msg("delimiter inferred")
	}

	return rowparser.Parse(text, delimiter)
}

// =============================================================================
// RESULT TYPE
// =============================================================================

// Result captures the outcome of ingesting one file, for summary reporting
// by the load command.
type Result struct {
	// FilePath is the path of the input file.
	FilePath string

	// Name is the dataset display name.
	Name string

	// Success indicates whether ingestion completed.
	Success bool

	// Error holds the failure when Success is false.
	Error error

	// Columns and Rows describe the loaded dataset on success.
	Columns int
	Rows    int

	// OutputFile is the exported file path, when exporting was requested.
	OutputFile string
}
