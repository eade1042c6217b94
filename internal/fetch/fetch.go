// =============================================================================
// dialect - Fetch Collaborators
// =============================================================================
//
// This module defines the fetch abstraction the reader depends on, plus the
// filesystem implementation that ships with the CLI. The reader never touches
// storage directly: everything arrives through a Fetcher, so network-backed
// implementations can be added without changing the pipeline.
//
// Any fetch failure — missing file, unreadable file, empty file — surfaces as
// FILE_NOT_FOUND with the offending path attached.
//
// =============================================================================

package fetch

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	apperr "github.com/jordanmiceli/dialect/internal/errors"
)

// Fetcher retrieves raw source text and JSON assets by path. A fetch is a
// single-shot operation: it resolves exactly once, with either the content
// or a failure, never a partial delivery.
type Fetcher interface {
	// FetchText returns the raw text at path.
	FetchText(ctx context.Context, path string) (string, error)

	// FetchAsset returns the parsed JSON document at path.
	FetchAsset(ctx context.Context, path string) (any, error)
}

// =============================================================================
// FILESYSTEM IMPLEMENTATION
// =============================================================================

// FileFetcher reads sources from the local filesystem.
type FileFetcher struct{}

// NewFileFetcher creates a filesystem-backed Fetcher.
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// FetchText reads the file at path as text.
//
// RETURNS:
//   - FILE_NOT_FOUND if the file is missing, unreadable, or blank.
func (f *FileFetcher) FetchText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperr.FileNotFound(path, err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", apperr.FileNotFound(path, nil)
	}

	return text, nil
}

// FetchAsset reads and parses the JSON file at path.
func (f *FileFetcher) FetchAsset(ctx context.Context, path string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.FileNotFound(path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperr.Wrapf(apperr.FileNotFound(path, err),
			"asset is not valid JSON: %s", path)
	}

	return doc, nil
}
