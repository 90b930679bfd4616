package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"schemagen/internal/manifest"
)

func newVerifyCmd() *cobra.Command {
	var (
		manifestPath string
		runID        string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-hash the files of a recorded run and report changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, manifestPath, runID)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "SQLite manifest file written by generate")
	cmd.Flags().StringVar(&runID, "run", "", "Run id to verify (default: latest run)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

func runVerify(cmd *cobra.Command, manifestPath, runID string) error {
	ctx := cmdContext(cmd)

	store, err := manifest.Open(manifestPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var run manifest.Run
	if runID != "" {
		run, err = store.GetRun(ctx, runID)
	} else {
		run, err = store.LatestRun(ctx)
	}

	if err != nil {
		if errors.Is(err, manifest.ErrRunNotFound) {
			return fmt.Errorf("no run to verify in %s: %w", manifestPath, err)
		}

		return err
	}

	checked, mismatches, err := store.VerifyRun(ctx, run)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range mismatches {
		fmt.Fprintf(out, "MISMATCH line %d %s: %v\n", m.Document.Line, m.Document.File, m.Err)
	}

	fmt.Fprintf(out, "Verified %d file(s) for run %s in '%s' (%d mismatch(es))\n",
		checked, run.ID, run.OutputDir, len(mismatches))

	if len(mismatches) > 0 {
		return fmt.Errorf("%w: %d", errVerifyFailed, len(mismatches))
	}

	return nil
}
