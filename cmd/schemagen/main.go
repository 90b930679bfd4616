// Package main provides the schemagen command that turns product spreadsheets
// into schema.org ProductGroup JSON-LD files.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit conditions reported after the command already printed its outcome.
var (
	errRowsFailed   = errors.New("one or more rows failed")
	errVerifyFailed = errors.New("one or more documents failed verification")
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schemagen",
		Short: "Generate schema.org ProductGroup JSON-LD from product spreadsheets",
		Long: `schemagen reads a CSV or XLSX product sheet (one product per row, up to nine
variants per row) and writes one <script type="application/ld+json"> file per
product into a timestamped run directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newTemplateCmd())
	root.AddCommand(newVerifyCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
