// =============================================================================
// dialect - Shared Dataset Types
// =============================================================================
//
// This package contains the dataset types shared across multiple modules to
// avoid import cycles. Types defined here are used by:
//   - rowparser
//   - coercer
//   - validation
//   - reader
//   - export
//
// =============================================================================

package dataset

// =============================================================================
// DATASET TYPES
// =============================================================================

// Row is a single data row, keyed by column name.
//
// Directly after parsing every value is a raw string. After numeric coercion
// values that looked numeric under the accepted decimal convention are
// float64; everything else remains a string.
type Row map[string]any

// Dataset represents one parsed tabular source.
//
// A Dataset is immutable once produced: the reader caches the instance and
// hands the same pointer back to every caller, so nothing downstream may
// modify Columns or Rows.
type Dataset struct {
	// Columns contains the header names in source order. Order is
	// significant (positional lookups such as "the time column sits at
	// position keySize" depend on it) and names may be empty strings.
	Columns []string

	// Rows contains the data rows in source order. Rows where every cell
	// was empty are dropped during parsing and never appear here.
	Rows []Row
}

// ColumnIndex returns the position of the named column, or -1 if the
// column does not exist.
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// =============================================================================
// SOURCE IDENTITY
// =============================================================================

// SourceKey is the composite identity of a tabular source, used for cache
// lookups. Two loads with the same key must return the identical Dataset
// instance without re-reading or re-parsing.
//
// The key is a structured pair rather than a concatenated string so that a
// path containing the literal concatenation of another path and token can
// never collide with it.
type SourceKey struct {
	// Path is the location the source was fetched from.
	Path string

	// ModToken identifies the revision of the source, typically derived
	// from the file modification time. A changed token is a different key.
	ModToken string
}
