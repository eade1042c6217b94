// =============================================================================
// dialect - Delimiter Sniffer
// =============================================================================
//
// This module infers the field delimiter of raw tabular text. Only comma and
// semicolon are candidates; everything else is out of scope.
//
// INFERENCE STRATEGY:
//   A real delimiter appears the same number of times in every line, because
//   the column count is constant. A character that shows up only incidentally
//   (say, inside unquoted free text) almost never repeats with identical
//   counts across two lines. The sniffer therefore:
//   1. Removes all double-quoted spans, so delimiters embedded in quoted
//      cells never count.
//   2. Takes the first two non-blank lines (header plus first data row).
//   3. Accepts a candidate when its counts match across both lines, exceed
//      one, and dominate the competing candidate.
//
//   Comma is always checked before semicolon. On inputs where both candidates
//   would independently pass, comma wins; this priority is deliberate and
//   load-bearing, do not reorder the checks.
//
// =============================================================================

package sniffer

import (
	"strings"

	apperr "github.com/jordanmiceli/dialect/internal/errors"
)

// Candidate delimiters, in priority order.
const (
	Comma     = ','
	Semicolon = ';'
)

// =============================================================================
// PUBLIC API
// =============================================================================

// Guess infers the field delimiter of the given raw text.
//
// PARAMETERS:
//   - text: the complete raw source text.
//   - path: the source location, used only for error context.
//
// RETURNS:
//   - The inferred delimiter (Comma or Semicolon).
//   - NOT_ENOUGH_ROWS if fewer than two non-blank lines exist.
//   - UNDEFINED_DELIMITER if neither candidate passes the dominance test.
//
// Guess is a pure function of its input: re-running it on the same text
// always yields the same delimiter.
func Guess(text, path string) (rune, error) {
	stripped := stripQuotedSpans(text)

	lines := firstNonBlankLines(stripped, 2)
	if len(lines) < 2 {
		return 0, apperr.NotEnoughRows(path)
	}

	commaHeader := strings.Count(lines[0], string(Comma))
	commaRow := strings.Count(lines[1], string(Comma))
	semiHeader := strings.Count(lines[0], string(Semicolon))
	semiRow := strings.Count(lines[1], string(Semicolon))

	if dominates(commaHeader, commaRow, semiHeader, semiRow) {
		return Comma, nil
	}
	if dominates(semiHeader, semiRow, commaHeader, commaRow) {
		return Semicolon, nil
	}

	return 0, apperr.UndefinedDelimiter(path)
}

// =============================================================================
// DOMINANCE TEST
// =============================================================================

// dominates reports whether candidate X (with counts x1 in the header line
// and x2 in the first data row) wins over competitor Y (counts y1, y2).
//
// X wins when its counts are consistent across both lines and greater than
// one, and Y is either inconsistent, absent, or strictly outnumbered on both
// lines.
func dominates(x1, x2, y1, y2 int) bool {
	if x1 != x2 || x1 <= 1 {
		return false
	}
	if y1 != y2 {
		return true
	}
	if y1 == 0 && y2 == 0 {
		return true
	}
	return x1 > y1 && x2 > y2
}

// =============================================================================
// TEXT PREPARATION
// =============================================================================

// stripQuotedSpans removes every double-quoted span from the text, quote
// characters included, with an explicit scan over the input. An unmatched
// trailing quote is kept as-is, since it delimits no span.
func stripQuotedSpans(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '"' {
			b.WriteByte(c)
			continue
		}

		end := strings.IndexByte(text[i+1:], '"')
		if end < 0 {
			// No closing quote; not a span.
			b.WriteByte(c)
			continue
		}
		i += end + 1
	}

	return b.String()
}

// firstNonBlankLines splits text on line terminators and returns up to max
// non-blank lines.
func firstNonBlankLines(text string, max int) []string {
	var lines []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == max {
			break
		}
	}

	return lines
}
