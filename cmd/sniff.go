// =============================================================================
// dialect - Sniff Command
// =============================================================================
//
// This file implements the 'sniff' command, a small diagnostic that reports
// the delimiter the engine would infer for a given file, together with the
// resulting column count. It is useful when writing source configurations:
// if the inference disagrees with expectations, the source can pin the
// delimiter explicitly.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jordanmiceli/dialect/internal/fetch"
	"github.com/jordanmiceli/dialect/internal/rowparser"
	"github.com/jordanmiceli/dialect/internal/sniffer"
)

var sniffCmd = &cobra.Command{
	Use: "sniff <file>",

	Short: "Report the delimiter inferred for a file",

	Long: `Reads the first rows of the given file and reports which delimiter the
engine would infer for it, along with the number of columns that delimiter
yields. The file is not validated, coerced, or written anywhere.`,

	Args: cobra.ExactArgs(1),

	RunE: runSniff,
}

// runSniff reads the file, infers its delimiter, and prints the result.
func runSniff(cmd *cobra.Command, args []string) error {
	path := args[0]

	fetcher := fetch.NewFileFetcher()
	text, err := fetcher.FetchText(context.Background(), path)
	if err != nil {
		return err
	}

	delimiter, err := sniffer.Guess(text, path)
	if err != nil {
		return err
	}

	ds, err := rowparser.Parse(text, delimiter)
	if err != nil {
		return err
	}

	name := "comma"
	if delimiter == sniffer.Semicolon {
		name = "semicolon"
	}

	fmt.Printf("File:      %s\n", path)
	fmt.Printf("Delimiter: %s (%q)\n", name, delimiter)
	fmt.Printf("Columns:   %d\n", len(ds.Columns))
	fmt.Printf("Rows:      %d\n", len(ds.Rows))

	return nil
}

func init() {
	rootCmd.AddCommand(sniffCmd)
}
