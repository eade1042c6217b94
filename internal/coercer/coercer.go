// =============================================================================
// dialect - Numeric Coercion Engine
// =============================================================================
//
// This module decides which decimal convention a dataset uses and coerces
// every numeric-looking cell accordingly, leaving genuinely non-numeric
// cells untouched.
//
// WHY WHOLE-DATASET TRIALS:
//   The decimal-vs-thousands separator question is a global ambiguity.
//   "1.234" is one-thousand-two-hundred-thirty-four under the comma-decimal
//   convention and 1.234 under the dot-decimal one; no single cell can
//   settle it. The only sound resolution is to check whether ALL numeric
//   cells in the dataset are simultaneously consistent with one hypothesis.
//   Hypotheses are tried in a fixed priority order and the first one that
//   parses the entire dataset cleanly wins, which gives a deterministic,
//   auditable decision instead of per-cell heuristics that could disagree
//   within one column.
//
// STRATEGY ORDER:
//   1. dot-decimal   ("." decimal, "," thousands)
//   2. comma-decimal ("," decimal, "." thousands)
//   3. identity      (leave every cell as-is)
//
//   Each strategy is a pure trial over the dataset with no state shared
//   between attempts. The identity fallback always succeeds, but reaching it
//   means both real conventions failed somewhere, i.e. the dataset mixes
//   incompatible numeric formats; that surfaces as DIFFERENT_SEPARATORS
//   rather than silently returning uncoerced data.
//
// =============================================================================

package coercer

import (
	"math"
	"strconv"
	"strings"

	"github.com/jordanmiceli/dialect/internal/dataset"
	apperr "github.com/jordanmiceli/dialect/internal/errors"
)

// =============================================================================
// STRATEGIES
// =============================================================================

// Strategy is one decimal-convention hypothesis. A strategy is applied to a
// cell in isolation: it sees only the raw string value, never any column
// context.
type Strategy struct {
	// Name identifies the strategy in logs and error messages.
	Name string

	// decimalSep and thousandsSep are the separator pair this strategy
	// assumes. Both are zero for the identity strategy.
	decimalSep   byte
	thousandsSep byte

	// identity marks the leave-as-string fallback.
	identity bool
}

// Strategies returns the ordered list of trial strategies. The order is part
// of the contract: dot-decimal is tried before comma-decimal, identity last.
func Strategies() []Strategy {
	return []Strategy{
		{Name: "dot-decimal", decimalSep: '.', thousandsSep: ','},
		{Name: "comma-decimal", decimalSep: ',', thousandsSep: '.'},
		{Name: "identity", identity: true},
	}
}

// =============================================================================
// COERCION
// =============================================================================

// Coerce applies the ordered strategies to the whole dataset and returns the
// rows coerced under the first fully-successful one.
//
// PARAMETERS:
//   - rows: the raw parsed rows. Never modified.
//
// RETURNS:
//   - New rows where numeric-looking cells are float64 and everything else
//     is unchanged.
//   - DIFFERENT_SEPARATORS if both real conventions failed and only the
//     identity fallback remained.
//
// Coercing the output a second time yields identical results: float64 cells
// are not strings so no strategy attempts them again.
func Coerce(rows []dataset.Row) ([]dataset.Row, error) {
	var offending []string

	for _, strategy := range Strategies() {
		if strategy.identity {
			// Every strategy before the fallback failed; leaving the
			// dataset uncoerced is not an acceptable success.
			return nil, apperr.DifferentSeparators(offending...)
		}

		coerced, badCell, ok := strategy.run(rows)
		if ok {
			return coerced, nil
		}
		offending = append(offending, badCell)
	}

	// Unreachable while the identity fallback is in the list.
	return nil, apperr.DifferentSeparators(offending...)
}

// run applies the strategy to every cell of every row.
//
// RETURNS:
//   - The coerced rows and ok=true when every attempted cell parsed to a
//     finite number.
//   - The first offending cell value and ok=false otherwise. The run
//     short-circuits on the first failure; remaining rows are not parsed.
func (s Strategy) run(rows []dataset.Row) ([]dataset.Row, string, bool) {
	coerced := make([]dataset.Row, len(rows))

	for i, row := range rows {
		out := make(dataset.Row, len(row))

		for key, value := range row {
			cell, isString := value.(string)
			if !isString || !s.looksNumeric(cell) {
				// Intentionally non-numeric (a label, or already
				// coerced); pass through unchanged.
				out[key] = value
				continue
			}

			parsed, err := s.parseNumber(cell)
			if err != nil {
				return nil, cell, false
			}
			out[key] = parsed
		}

		coerced[i] = out
	}

	return coerced, "", true
}

// looksNumeric reports whether the cell should be attempted as a number
// under this strategy: non-empty, an optional leading minus, and otherwise
// only digits and the strategy's own separator characters. Anything else is
// treated as intentionally non-numeric.
func (s Strategy) looksNumeric(cell string) bool {
	body := strings.TrimPrefix(cell, "-")
	if body == "" {
		return false
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == s.decimalSep || c == s.thousandsSep {
			continue
		}
		return false
	}

	return true
}

// parseNumber parses a numeric-looking cell under the strategy's separator
// pair. The grammar is strict: at most one decimal separator, a fractional
// part of plain digits, and thousands groups of exactly three digits after
// the first. A cell that matched looksNumeric but violates this grammar is
// the signal that the convention hypothesis is wrong for this dataset.
func (s Strategy) parseNumber(cell string) (float64, error) {
	body := cell
	negative := false
	if strings.HasPrefix(body, "-") {
		negative = true
		body = body[1:]
	}

	intPart := body
	fracPart := ""
	if idx := strings.IndexByte(body, s.decimalSep); idx >= 0 {
		intPart = body[:idx]
		fracPart = body[idx+1:]

		if fracPart == "" || !isDigits(fracPart) {
			return 0, errBadNumber(cell)
		}
	}

	digits, err := s.collapseThousands(intPart, fracPart != "")
	if err != nil {
		return 0, errBadNumber(cell)
	}

	normalized := digits
	if fracPart != "" {
		if normalized == "" {
			normalized = "0"
		}
		normalized += "." + fracPart
	}
	if negative {
		normalized = "-" + normalized
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, errBadNumber(cell)
	}

	return value, nil
}

// collapseThousands validates the grouping of the integer part and returns
// its plain digits. An empty integer part is allowed only when a fractional
// part follows (".5" style input).
func (s Strategy) collapseThousands(intPart string, hasFraction bool) (string, error) {
	if intPart == "" {
		if hasFraction {
			return "", nil
		}
		return "", errBadNumber(intPart)
	}

	groups := strings.Split(intPart, string(s.thousandsSep))
	if len(groups) == 1 {
		if !isDigits(groups[0]) {
			return "", errBadNumber(intPart)
		}
		return groups[0], nil
	}

	for i, group := range groups {
		if !isDigits(group) {
			return "", errBadNumber(intPart)
		}
		if i == 0 {
			if len(group) < 1 || len(group) > 3 {
				return "", errBadNumber(intPart)
			}
		} else if len(group) != 3 {
			return "", errBadNumber(intPart)
		}
	}

	return strings.Join(groups, ""), nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

type badNumberError string

func (e badNumberError) Error() string {
	return "not a valid number under this convention: " + string(e)
}

func errBadNumber(cell string) error {
	return badNumberError(cell)
}
