// =============================================================================
// dialect - Row Parser
// =============================================================================
//
// This module splits raw delimited text into a header row and data rows, once
// the delimiter is known (inferred by the sniffer or supplied by
// configuration).
//
// FEATURES:
//   - Header order preserved and exposed for positional access
//   - Rows as maps of column name -> raw cell string
//   - Fully-blank rows dropped, not represented as empty rows
//   - Quoted fields handled by the standard CSV machinery (lazy quotes,
//     variable field counts)
//
// Out of scope: multi-line headers, custom quote characters, and encodings
// beyond UTF-8.
//
// =============================================================================

package rowparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jordanmiceli/dialect/internal/dataset"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads delimited text and returns the parsed dataset.
//
// PARAMETERS:
//   - text: the complete raw source text.
//   - delimiter: the field delimiter to split on.
//
// RETURNS:
//   - A Dataset whose rows hold raw string cells.
//   - An error if the text cannot be read at all.
//
// The header line becomes the column sequence; header names are trimmed but
// otherwise kept verbatim, including empty ones. Every subsequent line
// becomes one row mapping column name to cell value. A row where every cell
// is empty is omitted entirely.
func Parse(text string, delimiter rune) (*dataset.Dataset, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter

	// Input files from legacy systems rarely follow strict CSV rules, so
	// tolerate stray quotes and ragged rows.
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &dataset.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	var rows []dataset.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}

		if isRecordEmpty(record) {
			continue
		}

		row := make(dataset.Row, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			} else {
				// Column missing in this row.
				row[name] = ""
			}
		}

		rows = append(rows, row)
	}

	return &dataset.Dataset{
		Columns: columns,
		Rows:    rows,
	}, nil
}

// isRecordEmpty checks if a record contains only empty values.
func isRecordEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
