// =============================================================================
// dialect - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'load', 'sniff') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (dialect)
//   ├── loadCmd (dialect load)
//   ├── sniffCmd (dialect sniff)
//   └── versionCmd (dialect version)
//
// The root command owns the global flags (--config, --verbose) and
// initializes logging before any subcommand runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jordanmiceli/dialect/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "dialect",

	Short: "dialect - Ingest delimited text of unknown dialect into typed tables",

	Long: `dialect is a CLI tool that ingests raw tabular text whose dialect is
unknown: it infers the field delimiter, parses rows into named columns, and
decides which numeric-formatting convention the dataset uses, coercing every
numeric-looking cell consistently while leaving genuinely non-numeric cells
untouched.

Key Features:
  - Delimiter inference from the first two rows (comma vs semicolon)
  - Whole-dataset decimal-convention detection (dot vs comma decimals)
  - Per-source configuration via YAML (key layout, time column parsers)
  - XLSX workbook ingestion through the same pipeline
  - Export of coerced datasets as XML or JSON

Example Usage:
  dialect load                      # Ingest all files in the input directory
  dialect load --config ./my.yaml   # Use a custom configuration file
  dialect sniff data/population.csv # Report the inferred delimiter`,

	// If no subcommand is provided, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		logging.Setup(level, "")
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
