// =============================================================================
// dialect - Load Command
// =============================================================================
//
// This file implements the 'load' command, which is the main workhorse of the
// application. It discovers input files, matches each one to a source
// configuration, runs the full ingestion pipeline (delimiter inference, row
// parsing, validation, numeric coercion), and writes the coerced dataset to
// the output directory.
//
// PROCESSING FLOW:
//   1. Load main configuration (config.yaml)
//   2. Load per-source configurations (sources/*.yaml)
//   3. Discover input files (input/*.csv, *.txt, *.xlsx)
//   4. For each file (concurrently, bounded by max_concurrency):
//      a. Match the file to a source configuration
//      b. Run the reader pipeline (sniff -> parse -> validate -> coerce)
//      c. Generate the output document (XML or JSON)
//      d. Archive the input file
//   5. Print a summary report
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jordanmiceli/dialect/internal/cache"
	"github.com/jordanmiceli/dialect/internal/config"
	"github.com/jordanmiceli/dialect/internal/export"
	"github.com/jordanmiceli/dialect/internal/fetch"
	"github.com/jordanmiceli/dialect/internal/logging"
	"github.com/jordanmiceli/dialect/internal/reader"
	"github.com/jordanmiceli/dialect/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// loadFile restricts processing to a single input file when set.
var loadFile string

// loadDryRun parses and coerces without writing output or archiving.
var loadDryRun bool

// loadOutDir overrides the configured output directory when set.
var loadOutDir string

// =============================================================================
// LOAD COMMAND DEFINITION
// =============================================================================

var loadCmd = &cobra.Command{
	Use: "load",

	Short: "Ingest input files and write coerced datasets",

	Long: `Discovers tabular files in the input directory, matches each one to a
source configuration, infers its delimiter and decimal convention, and writes
the resulting typed dataset to the output directory.

Files that fail validation or coercion are reported in the summary; whether a
failure aborts the run is controlled by the continue_on_error setting.`,

	RunE: runLoad,
}

// =============================================================================
// MAIN PROCESSING LOGIC
// =============================================================================

// runLoad executes the load pipeline.
//
// PARAMETERS:
//   - cmd: The Cobra command being executed
//   - args: Command-line arguments (unused)
//
// RETURNS:
//   - error: Any fatal error that aborted the run
func runLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	started := time.Now()

	// -------------------------------------------------------------------------
	// STEP 1: Load configuration
	// -------------------------------------------------------------------------

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Re-initialize logging now that the configured level and log file are
	// known. The --verbose flag still wins over the configured level.
	level := mainConfig.LogLevel
	if verbose {
		level = "debug"
	}
	logging.Setup(level, mainConfig.LogFile)
	log := logging.GetLogger("load")

	if loadOutDir != "" {
		mainConfig.OutputDir = loadOutDir
		if err := os.MkdirAll(loadOutDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	sources, err := config.LoadSourceConfigs(mainConfig.SourcesDir)
	if err != nil {
		return fmt.Errorf("failed to load source configurations: %w", err)
	}
	log.Info().Int("sources", len(sources)).Msg("Loaded source configurations")

	// -------------------------------------------------------------------------
	// STEP 2: Discover input files
	// -------------------------------------------------------------------------

	fm := utils.NewFileManager(
		mainConfig.InputDir,
		mainConfig.OutputDir,
		mainConfig.InputArchiveDir,
	)
	if err := fm.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to prepare directories: %w", err)
	}

	var files []string
	if loadFile != "" {
		files = []string{loadFile}
	} else {
		files, err = fm.DiscoverInputFiles()
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(files) == 0 {
		fmt.Println("No input files found.")
		return nil
	}
	log.Info().Int("files", len(files)).Msg("Discovered input files")

	// -------------------------------------------------------------------------
	// STEP 3: Process files concurrently
	// -------------------------------------------------------------------------

	// All readers in a run share one fetcher and one cache so that a file
	// appearing twice (e.g. via --file plus discovery) is only parsed once.
	fetcher := fetch.NewFileFetcher()
	datasetCache := cache.NewMemory()

	results := make([]reader.Result, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, mainConfig.MaxConcurrency)

	for i, file := range files {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, filePath string) {
			defer wg.Done()
			defer func() { <-sem }()

			results[idx] = processFile(ctx, filePath, mainConfig, sources, fetcher, datasetCache, fm)
		}(i, file)
	}

	wg.Wait()

	// -------------------------------------------------------------------------
	// STEP 4: Summarize
	// -------------------------------------------------------------------------

	succeeded := 0
	failed := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		} else {
			failed++
		}
	}

	fmt.Println()
	fmt.Println("========================================")
	fmt.Println("Load Summary")
	fmt.Println("========================================")
	fmt.Printf("Total files:  %d\n", len(results))
	fmt.Printf("Succeeded:    %d\n", succeeded)
	fmt.Printf("Failed:       %d\n", failed)
	fmt.Printf("Elapsed:      %s\n", time.Since(started).Round(time.Millisecond))
	fmt.Println()

	for _, r := range results {
		if r.Success {
			fmt.Printf("  [OK]   %s (%d columns, %d rows)", r.Name, r.Columns, r.Rows)
			if r.OutputFile != "" {
				fmt.Printf(" -> %s", r.OutputFile)
			}
			fmt.Println()
		} else {
			fmt.Printf("  [FAIL] %s: %v\n", filepath.Base(r.FilePath), r.Error)
		}
	}

	if failed > 0 && !mainConfig.ContinueOnError {
		return fmt.Errorf("%d file(s) failed to load", failed)
	}
	return nil
}

// processFile runs the full pipeline for a single input file.
//
// PARAMETERS:
//   - ctx: Context for cancellation
//   - filePath: Path to the input file
//   - mainConfig: The main application configuration
//   - sources: Map of source name to source configuration
//   - fetcher: Shared file fetcher
//   - datasetCache: Shared parse-result cache
//   - fm: File manager for output naming and archival
//
// RETURNS:
//   - reader.Result: The outcome for this file
func processFile(
	ctx context.Context,
	filePath string,
	mainConfig *config.MainConfig,
	sources map[string]*config.SourceConfig,
	fetcher fetch.Fetcher,
	datasetCache cache.Cache,
	fm *utils.FileManager,
) reader.Result {
	log := logging.GetLogger("load")

	source := findMatchingSource(filePath, sources)
	if source == nil {
		log.Warn().Str("file", filePath).Msg("No source configuration matched, using defaults")
		source = config.DefaultSourceConfig()
	}

	modToken, err := utils.ModToken(filePath)
	if err != nil {
		return reader.Result{FilePath: filePath, Error: err}
	}

	r := reader.New(filePath, modToken, source, fetcher, datasetCache)
	ds, err := r.Load(ctx)
	if err != nil {
		log.Error().Err(err).Str("file", filePath).Msg("Load failed")
		return reader.Result{FilePath: filePath, Name: r.Info().Name, Error: err}
	}

	result := reader.Result{
		FilePath: filePath,
		Name:     r.Info().Name,
		Success:  true,
		Columns:  len(ds.Columns),
		Rows:     len(ds.Rows),
	}

	if loadDryRun {
		return result
	}

	// -------------------------------------------------------------------------
	// Write the output document
	// -------------------------------------------------------------------------

	format := export.Format(mainConfig.OutputFormat)
	data, err := export.Generate(ds, result.Name, format)
	if err != nil {
		result.Success = false
		result.Error = err
		return result
	}

	outName := utils.GenerateOutputFileName(mainConfig.NameFormat, result.Name, format.Extension())
	outPath := filepath.Join(mainConfig.OutputDir, outName)
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		result.Success = false
		result.Error = fmt.Errorf("failed to write output file: %w", err)
		return result
	}
	result.OutputFile = outName

	if _, err := fm.ArchiveInput(filePath); err != nil {
		// The dataset was produced; a failed archive is reported but does not
		// fail the file.
		log.Warn().Err(err).Str("file", filePath).Msg("Failed to archive input file")
	}

	log.Info().
		Str("file", filePath).
		Str("output", outName).
		Int("rows", result.Rows).
		Msg("File loaded")

	return result
}

// findMatchingSource returns the first source configuration whose
// file_matching_patterns match the file's base name, or nil if none match.
func findMatchingSource(filePath string, sources map[string]*config.SourceConfig) *config.SourceConfig {
	base := filepath.Base(filePath)
	for _, source := range sources {
		for _, pattern := range source.FileMatchingPatterns {
			matched, err := filepath.Match(pattern, base)
			if err == nil && matched {
				return source
			}
		}
	}
	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	loadCmd.Flags().StringVarP(
		&loadFile,
		"file",
		"f",
		"",
		"Load a single file instead of scanning the input directory",
	)

	loadCmd.Flags().BoolVar(
		&loadDryRun,
		"dry-run",
		false,
		"Parse and coerce without writing output or archiving input",
	)

	loadCmd.Flags().StringVarP(
		&loadOutDir,
		"out",
		"o",
		"",
		"Override the configured output directory",
	)

	rootCmd.AddCommand(loadCmd)
}
