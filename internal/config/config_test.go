package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/jordanmiceli/dialect/internal/errors"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMainConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", `
input_dir: `+filepath.Join(dir, "in")+`
output_dir: `+filepath.Join(dir, "out")+`
sources_dir: `+filepath.Join(dir, "sources")+`
output_format: xml
log_level: debug
max_concurrency: 2
continue_on_error: true
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "xml", cfg.OutputFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.True(t, cfg.ContinueOnError)

	// Unset options fall back to defaults.
	assert.Equal(t, "./input_archive", cfg.InputArchiveDir)
	assert.Equal(t, "{name}_{uuid}.{ext}", cfg.NameFormat)

	// The configured directories are created on load.
	assert.DirExists(t, filepath.Join(dir, "in"))
	assert.DirExists(t, filepath.Join(dir, "out"))
}

func TestLoadMainConfigMissingFile(t *testing.T) {
	_, err := LoadMainConfig("/no/such/config.yaml")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConfigInvalid))
}

func TestLoadMainConfigBadFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", `
input_dir: `+filepath.Join(dir, "in")+`
output_dir: `+filepath.Join(dir, "out")+`
sources_dir: `+filepath.Join(dir, "sources")+`
output_format: csv
`)

	_, err := LoadMainConfig(path)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConfigInvalid))
}

func TestLoadSourceConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "population.yaml", `
source_name: population
file_matching_patterns:
  - "population_*.csv"
delimiter: ";"
key_size: 2
time_parsers:
  year: year
`)
	writeConfig(t, dir, "unnamed.yml", `
file_matching_patterns:
  - "*.txt"
`)

	configs, err := LoadSourceConfigs(dir)
	require.NoError(t, err)
	require.Len(t, configs, 2)

	pop := configs["population"]
	require.NotNil(t, pop)
	assert.Equal(t, []string{"population_*.csv"}, pop.FileMatchingPatterns)
	assert.Equal(t, ';', pop.DelimiterRune())
	assert.Equal(t, 2, pop.TimeColumnIndex())
	assert.Equal(t, "year", pop.TimeParsers["year"])

	// A source without a name is keyed by its file name.
	assert.NotNil(t, configs["unnamed.yml"])
}

func TestLoadSourceConfigsEmptyDir(t *testing.T) {
	configs, err := LoadSourceConfigs(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, configs)
}

func TestSourceConfigDefaults(t *testing.T) {
	source := DefaultSourceConfig()

	assert.Equal(t, "default", source.SourceName)
	assert.Equal(t, 1, source.KeySize)
	assert.Equal(t, 1, source.TimeColumnIndex())
	assert.NotNil(t, source.TimeParsers)
	// No pinned delimiter: it must be inferred.
	assert.Equal(t, rune(0), source.DelimiterRune())
}

func TestDelimiterRune(t *testing.T) {
	tests := []struct {
		configured string
		expected   rune
	}{
		{",", ','},
		{"comma", ','},
		{";", ';'},
		{"semicolon", ';'},
		{"", 0},
		{"tab", 0},
	}

	for _, tt := range tests {
		source := &SourceConfig{Delimiter: tt.configured}
		assert.Equal(t, tt.expected, source.DelimiterRune(), "delimiter %q", tt.configured)
	}
}
