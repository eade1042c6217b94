// =============================================================================
// dialect - Structured Errors
// =============================================================================
//
// This package defines the structured error type used across the ingestion
// pipeline. Every failure a load can surface carries a stable code plus
// enough context (offending value, offending path) to build a user-facing
// message. All of these errors are terminal for the current load: nothing is
// retried and no partial result is returned.
//
// =============================================================================

package errors

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR CODES
// =============================================================================

// Predefined error codes. Each code corresponds to exactly one failure mode
// of the ingestion pipeline.
const (
	// CodeFileNotFound: the underlying fetch failed, or the source is
	// missing, unreadable, or empty.
	CodeFileNotFound = "FILE_NOT_FOUND"

	// CodeNotEnoughRows: fewer than 2 non-blank lines were available for
	// delimiter sniffing.
	CodeNotEnoughRows = "NOT_ENOUGH_ROWS"

	// CodeUndefinedDelimiter: neither comma nor semicolon satisfied the
	// dominance test.
	CodeUndefinedDelimiter = "UNDEFINED_DELIMITER"

	// CodeDifferentSeparators: every real numeric strategy failed; the
	// dataset mixes incompatible numeric formats.
	CodeDifferentSeparators = "DIFFERENT_SEPARATORS"

	// CodeWrongTimeColumnOrUnits: the designated time column's first value
	// was rejected by the registered parser.
	CodeWrongTimeColumnOrUnits = "WRONG_TIME_COLUMN_OR_UNITS"

	// CodeEmptyHeaders: the header row has no non-empty column names.
	CodeEmptyHeaders = "EMPTY_HEADERS"

	// CodeConfigInvalid: a configuration file could not be loaded or failed
	// validation.
	CodeConfigInvalid = "CONFIG_INVALID"

	// CodeInternalError: fallback code for wrapped errors of unknown origin.
	CodeInternalError = "INTERNAL_ERROR"
)

// =============================================================================
// APP ERROR
// =============================================================================

// AppError represents a structured application error.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, preserving its code.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    GetCode(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsCode reports whether err (or anything it wraps) carries the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	for errors.As(err, &appErr) {
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
		appErr = nil
	}
	return false
}

// GetCode returns the error code of the outermost AppError, or
// CodeInternalError for anything else.
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternalError
}

// =============================================================================
// COMMON ERROR CONSTRUCTORS
// =============================================================================

// FileNotFound reports a source that could not be fetched.
func FileNotFound(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeFileNotFound,
		Message: fmt.Sprintf("file not found or unreadable: %s", path),
		Cause:   cause,
	}
}

// NotEnoughRows reports a source with fewer than two non-blank lines.
func NotEnoughRows(path string) *AppError {
	return New(CodeNotEnoughRows,
		fmt.Sprintf("need at least 2 non-blank rows to infer a delimiter: %s", path))
}

// UndefinedDelimiter reports that no candidate delimiter passed the
// dominance test.
func UndefinedDelimiter(path string) *AppError {
	return New(CodeUndefinedDelimiter,
		fmt.Sprintf("could not infer a field delimiter: %s", path))
}

// DifferentSeparators reports a dataset whose numeric cells are not all
// consistent with any single decimal convention. The offending values are
// the first cells that broke each convention.
func DifferentSeparators(offending ...string) *AppError {
	return New(CodeDifferentSeparators,
		fmt.Sprintf("dataset mixes incompatible numeric formats (offending values: %v)", offending))
}

// WrongTimeColumnOrUnits reports a time column whose first value was
// rejected by the registered parser.
func WrongTimeColumnOrUnits(column, value string) *AppError {
	return New(CodeWrongTimeColumnOrUnits,
		fmt.Sprintf("time column %q has an unparseable first value %q", column, value))
}

// EmptyHeaders reports a header row with no usable column names.
func EmptyHeaders() *AppError {
	return New(CodeEmptyHeaders, "header row has no non-empty column names")
}

// ConfigInvalid reports a broken configuration file.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}
