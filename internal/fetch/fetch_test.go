package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/jordanmiceli/dialect/internal/errors"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFetchText(t *testing.T) {
	path := writeTempFile(t, "data.csv", "a,b\n1,2\n")

	text, err := NewFileFetcher().FetchText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", text)
}

func TestFetchTextMissingFile(t *testing.T) {
	_, err := NewFileFetcher().FetchText(context.Background(), "/no/such/file.csv")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeFileNotFound))
}

func TestFetchTextBlankFile(t *testing.T) {
	path := writeTempFile(t, "blank.csv", "   \n\n")

	_, err := NewFileFetcher().FetchText(context.Background(), path)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeFileNotFound))
}

func TestFetchTextCancelledContext(t *testing.T) {
	path := writeTempFile(t, "data.csv", "a,b\n1,2\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileFetcher().FetchText(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchAsset(t *testing.T) {
	path := writeTempFile(t, "meta.json", `{"title": "GDP", "unit": "usd"}`)

	doc, err := NewFileFetcher().FetchAsset(context.Background(), path)
	require.NoError(t, err)

	obj, ok := doc.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "GDP", obj["title"])
}

func TestFetchAssetInvalidJSON(t *testing.T) {
	path := writeTempFile(t, "meta.json", "{not json")

	_, err := NewFileFetcher().FetchAsset(context.Background(), path)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeFileNotFound))
}
