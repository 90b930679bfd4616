package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schemagen/internal/config"
)

var errConfigExists = errors.New("config file already exists (use --force to overwrite)")

func newInitCmd() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding every default setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(output); err == nil && !force {
				return fmt.Errorf("%w: %s", errConfigExists, output)
			}

			if err := config.DefaultConfig().SaveConfig(output); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "schemagen.yaml", "Config file to write")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
