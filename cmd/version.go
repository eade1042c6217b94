// =============================================================================
// dialect - Version Command
// =============================================================================
//
// This file implements the 'version' command, which displays version and
// build information for the tool.
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// =============================================================================
// VERSION INFORMATION
// =============================================================================

// These variables are set at build time using -ldflags:
//
//	go build -ldflags "-X github.com/jordanmiceli/dialect/cmd.Version=1.0.0 \
//	                   -X github.com/jordanmiceli/dialect/cmd.BuildDate=2026-01-01"
var (
	// Version is the semantic version of the application.
	Version = "dev"

	// BuildDate is the date the binary was built.
	BuildDate = "unknown"
)

// =============================================================================
// VERSION COMMAND DEFINITION
// =============================================================================

var versionCmd = &cobra.Command{
	Use: "version",

	Short: "Display version information",

	Long: `Displays the version, build date, and Go runtime version of the tool.`,

	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dialect version %s\n", Version)
		fmt.Printf("  Build date: %s\n", BuildDate)
		fmt.Printf("  Go version: %s\n", runtime.Version())
		fmt.Printf("  Platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
