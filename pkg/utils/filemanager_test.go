package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileManager(t *testing.T) *FileManager {
	t.Helper()
	base := t.TempDir()
	fm := NewFileManager(
		filepath.Join(base, "input"),
		filepath.Join(base, "output"),
		filepath.Join(base, "archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func TestEnsureDirectories(t *testing.T) {
	fm := newTestFileManager(t)

	assert.DirExists(t, fm.InputDir)
	assert.DirExists(t, fm.OutputDir)
	assert.DirExists(t, fm.InputArchiveDir)
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newTestFileManager(t)

	for _, name := range []string{"a.csv", "b.txt", "c.xlsx", "ignore.pdf", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, name), []byte("x"), 0644))
	}

	files, err := fm.DiscoverInputFiles()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"a.csv", "b.txt", "c.xlsx"}, names)
}

func TestModToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0644))

	token, err := ModToken(path)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// The token is stable while the file is unchanged.
	again, err := ModToken(path)
	require.NoError(t, err)
	assert.Equal(t, token, again)

	// Changing the size changes the token.
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n3,4\n"), 0644))
	changed, err := ModToken(path)
	require.NoError(t, err)
	assert.NotEqual(t, token, changed)
}

func TestModTokenMissingFile(t *testing.T) {
	_, err := ModToken("/no/such/file.csv")
	assert.Error(t, err)
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{name}.{ext}", "population", "json")
	assert.Equal(t, "population.json", name)
}

func TestGenerateOutputFileNameUUID(t *testing.T) {
	format := "{name}_{uuid}.{ext}"

	first := GenerateOutputFileName(format, "population", "xml")
	second := GenerateOutputFileName(format, "population", "xml")

	assert.True(t, strings.HasPrefix(first, "population_"))
	assert.True(t, strings.HasSuffix(first, ".xml"))
	// Each generated name embeds a fresh UUID.
	assert.NotEqual(t, first, second)
}

func TestGenerateOutputFileNameTimestamp(t *testing.T) {
	name := GenerateOutputFileName("{timestamp}_{name}.{ext}", "gdp", "json")

	assert.True(t, strings.HasSuffix(name, "_gdp.json"))
	assert.NotContains(t, name, "{timestamp}")
}

func TestArchiveInput(t *testing.T) {
	fm := newTestFileManager(t)

	path := filepath.Join(fm.InputDir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0644))

	archived, err := fm.ArchiveInput(path)
	require.NoError(t, err)

	assert.NoFileExists(t, path)
	assert.FileExists(t, archived)
	assert.Equal(t, fm.InputArchiveDir, filepath.Dir(archived))
}
