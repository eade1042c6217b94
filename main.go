// =============================================================================
// dialect - Main Entry Point
// =============================================================================
//
// This is the main entry point for the dialect CLI application. It initializes
// the Cobra CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   dialect load          - Ingest all tabular files in the input directory
//   dialect sniff <file>  - Report the inferred delimiter for a single file
//   dialect version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//   - sources/       : Contains per-source YAML configurations
//
// =============================================================================

package main

import (
	"github.com/jordanmiceli/dialect/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
