// =============================================================================
// dialect - Header and Time Column Validation
// =============================================================================
//
// This module is the fast-fail gate that runs once per dataset load, after
// parsing and before numeric coercion. It checks two things:
//   1. The header row carries at least one non-empty column name.
//   2. The presumed time column's first value is accepted by the parser
//      registered for that column, when one is registered.
//
// The caller decides which column is the time column: it sits a configured
// number of positions after the key columns, so the index arrives here
// already computed. Parsers are supplied by the caller as a map from column
// name to predicate; columns without a registered parser are not checked.
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jordanmiceli/dialect/internal/dataset"
	apperr "github.com/jordanmiceli/dialect/internal/errors"
)

// ColumnParser is a predicate over a single raw cell value. It reports
// whether the value is acceptable for the column it is registered under.
type ColumnParser func(value string) bool

// =============================================================================
// VALIDATION
// =============================================================================

// Validate runs the pre-coercion checks on a freshly parsed dataset.
//
// PARAMETERS:
//   - ds: the parsed dataset (rows still hold raw strings).
//   - timeColumnIndex: position of the time column in ds.Columns.
//   - parsers: column name -> parser predicate.
//
// RETURNS:
//   - EMPTY_HEADERS if no header name is non-empty.
//   - WRONG_TIME_COLUMN_OR_UNITS if the time column is out of range or its
//     trimmed first-row value is rejected by the registered parser.
func Validate(ds *dataset.Dataset, timeColumnIndex int, parsers map[string]ColumnParser) error {
	if !hasNonEmptyHeader(ds.Columns) {
		return apperr.EmptyHeaders()
	}

	if len(ds.Rows) == 0 {
		// Nothing to sanity-check the time column against.
		return nil
	}

	if timeColumnIndex < 0 || timeColumnIndex >= len(ds.Columns) {
		return apperr.WrongTimeColumnOrUnits(
			fmt.Sprintf("#%d", timeColumnIndex), "<no such column>")
	}

	column := ds.Columns[timeColumnIndex]
	parser, registered := parsers[column]
	if !registered {
		return nil
	}

	value := strings.TrimSpace(cellString(ds.Rows[0][column]))
	if !parser(value) {
		return apperr.WrongTimeColumnOrUnits(column, value)
	}

	return nil
}

// hasNonEmptyHeader checks for at least one usable column name.
func hasNonEmptyHeader(columns []string) bool {
	for _, name := range columns {
		if strings.TrimSpace(name) != "" {
			return true
		}
	}
	return false
}

// cellString renders a raw cell for validation. Validation runs before
// coercion so cells are strings in practice; anything else is formatted.
func cellString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// =============================================================================
// BUILT-IN PARSERS
// =============================================================================

// ParserForUnit returns the parser predicate for a configured time unit, or
// nil for an unknown unit (meaning: do not check).
//
// SUPPORTED UNITS:
//   - "year": a plain integer year, 1 to 4 digits.
//   - "date": one of the common date layouts.
//   - "number": any value strconv can parse as a float.
func ParserForUnit(unit string) ColumnParser {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "year":
		return parseYear
	case "date":
		return parseDate
	case "number":
		return parseNumber
	default:
		return nil
	}
}

func parseYear(value string) bool {
	if len(value) == 0 || len(value) > 4 {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}

// parseDate accepts the date layouts commonly seen in legacy exports.
func parseDate(value string) bool {
	formats := []string{
		"2006-01-02",
		"01/02/2006",
		"2006/01/02",
		"Jan 2, 2006",
		"20060102",
	}

	for _, f := range formats {
		if _, err := time.Parse(f, value); err == nil {
			return true
		}
	}
	return false
}

func parseNumber(value string) bool {
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}
