// =============================================================================
// dialect - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing all configuration
// files. It handles both the main application configuration and per-source
// configurations.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): Global application settings
//   2. Source Configs (sources/*.yaml): Per-source ingestion rules
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Modular: Each source family has its own configuration file
//   - Extensible: New sources can be added without code changes
//   - Validated: All configurations are validated on load
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperr "github.com/jordanmiceli/dialect/internal/errors"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory where input tabular files are placed.
	// The application will scan this directory for files to ingest.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where exported datasets are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is the directory where ingested files are moved.
	// Files are only moved here after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// SourcesDir is the directory containing per-source configurations.
	// Each YAML file in this directory describes one source family.
	// Default: "./sources"
	SourcesDir string `yaml:"sources_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the path to the application log file. Empty disables
	// file logging.
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFormat selects the export format: "xml" or "json".
	// Default: "json"
	OutputFormat string `yaml:"output_format"`

	// NameFormat defines the format for exported file names.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {name}      - The dataset display name
	//   {ext}       - The export format extension
	// Default: "{name}_{uuid}.{ext}"
	NameFormat string `yaml:"name_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files to ingest concurrently.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError determines whether to continue ingesting other files
	// if one file fails.
	// Default: true
	ContinueOnError bool `yaml:"continue_on_error"`
}

// =============================================================================
// SOURCE CONFIGURATION STRUCTURE
// =============================================================================

// SourceConfig holds the ingestion rules for one source family. Each family
// can have its own file matching patterns, delimiter override, key layout,
// and time column parsers.
type SourceConfig struct {
	// SourceName is the human-readable name of the source family.
	// This is used in logs and error messages.
	SourceName string `yaml:"source_name"`

	// FileMatchingPatterns is a list of glob patterns to match input files.
	// If a file name matches any of these patterns, this configuration is
	// used.
	// Examples:
	//   - "population_*.csv"
	//   - "*_indicators_*.csv"
	FileMatchingPatterns []string `yaml:"file_matching_patterns"`

	// Delimiter optionally pins the field delimiter ("," or ";").
	// Empty means the delimiter is inferred from the file content.
	Delimiter string `yaml:"delimiter"`

	// KeySize is the number of key columns preceding the time column.
	// Default: 1
	KeySize int `yaml:"key_size"`

	// TimeColumnOffset is how many positions after the key columns the
	// time column sits. The time column index is KeySize +
	// TimeColumnOffset.
	// Default: 0
	TimeColumnOffset int `yaml:"time_column_offset"`

	// TimeParsers maps a column name to the unit its first value must
	// parse as ("year", "date", "number"). Only the designated time column
	// is ever checked, and only when its name is present here.
	TimeParsers map[string]string `yaml:"time_parsers"`
}

// TimeColumnIndex returns the position of the time column for this source.
func (c *SourceConfig) TimeColumnIndex() int {
	return c.KeySize + c.TimeColumnOffset
}

// DelimiterRune returns the pinned delimiter, or zero when the delimiter
// should be inferred.
func (c *SourceConfig) DelimiterRune() rune {
	switch c.Delimiter {
	case ",", "comma":
		return ','
	case ";", "semicolon":
		return ';'
	default:
		return 0
	}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, apperr.Wrapf(apperr.ConfigInvalid(err.Error()),
			"failed to read config file %s", configPath)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, apperr.Wrapf(apperr.ConfigInvalid(err.Error()),
			"failed to parse config file %s", configPath)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.SourcesDir == "" {
		config.SourcesDir = "./sources"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputFormat == "" {
		config.OutputFormat = "json"
	}
	if config.NameFormat == "" {
		config.NameFormat = "{name}_{uuid}.{ext}"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// validateMainConfig validates the main configuration, creating required
// directories that do not exist yet.
func validateMainConfig(config *MainConfig) error {
	if config.OutputFormat != "json" && config.OutputFormat != "xml" {
		return apperr.ConfigInvalid(
			fmt.Sprintf("output_format must be \"json\" or \"xml\", got %q", config.OutputFormat))
	}

	dirs := []string{
		config.InputDir,
		config.OutputDir,
		config.SourcesDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}

// LoadSourceConfigs loads all source configurations from a directory.
//
// PARAMETERS:
//   - sourcesDir: The path to the directory containing source
//     configuration files.
//
// RETURNS:
//   - A map of source configurations, keyed by source name.
//   - An error if the directory cannot be read or any file cannot be
//     parsed.
func LoadSourceConfigs(sourcesDir string) (map[string]*SourceConfig, error) {
	configs := make(map[string]*SourceConfig)

	files, err := filepath.Glob(filepath.Join(sourcesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list source configs: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(sourcesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list source configs: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		config, err := loadSourceConfig(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}

		// Use the source name as the key. If no name is specified,
		// use the file name.
		key := config.SourceName
		if key == "" {
			key = filepath.Base(file)
		}

		configs[key] = config
	}

	return configs, nil
}

// loadSourceConfig loads a single source configuration file.
func loadSourceConfig(filePath string) (*SourceConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config SourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	applySourceConfigDefaults(&config)

	return &config, nil
}

// applySourceConfigDefaults sets default values for source configuration.
func applySourceConfigDefaults(config *SourceConfig) {
	if config.KeySize == 0 {
		config.KeySize = 1
	}
	if config.TimeParsers == nil {
		config.TimeParsers = make(map[string]string)
	}
}

// DefaultSourceConfig returns the configuration used for files no source
// family claims: infer the delimiter, one key column, no time parsers.
func DefaultSourceConfig() *SourceConfig {
	config := &SourceConfig{SourceName: "default"}
	applySourceConfigDefaults(config)
	return config
}
