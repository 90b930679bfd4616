package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"schemagen/internal/tabular"
)

func newTemplateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a header-only input template with every known column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "-" {
				return tabular.WriteTemplate(cmd.OutOrStdout())
			}

			if err := tabular.WriteTemplateFile(output); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote template with %d columns to %s\n", len(tabular.Columns()), output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "schema_template.csv", "Template file (.csv or .xlsx), or - for stdout")

	return cmd
}
