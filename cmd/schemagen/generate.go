package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"schemagen/internal/config"
	"schemagen/internal/logger"
	"schemagen/internal/manifest"
	"schemagen/internal/pipeline"
)

type generateOptions struct {
	configPath string
	input      string
	outDir     string
	failFast   bool
	logLevel   string
	manifest   string
	report     bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one JSON-LD file per input row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to YAML config file")
	flags.StringVarP(&opts.input, "input", "i", "", "Input CSV or XLSX file (default \"zoracel_schema_sample.csv\")")
	flags.StringVarP(&opts.outDir, "out-dir", "o", "", "Base directory for run directories (default \".\")")
	flags.BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first failing row")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.manifest, "manifest", "", "SQLite manifest file recording the run")
	flags.BoolVar(&opts.report, "report", false, "Write _summary.md into the run directory")

	return cmd
}

// loadGenerateConfig layers changed flags over the config file or defaults.
func loadGenerateConfig(cmd *cobra.Command, opts *generateOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	flags := cmd.Flags()

	if flags.Changed("input") {
		cfg.Input.Path = opts.input
	}

	if flags.Changed("out-dir") {
		cfg.Output.BaseDir = opts.outDir
	}

	if flags.Changed("fail-fast") {
		cfg.Run.FailFast = opts.failFast
	}

	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if flags.Changed("manifest") {
		cfg.Manifest.Path = opts.manifest
	}

	if flags.Changed("report") {
		cfg.Report.Enabled = opts.report
		if !opts.report {
			cfg.Report.HTML = false
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	cfg, err := loadGenerateConfig(cmd, opts)
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Logging.Level)
	defer func() { _ = log.Sync() }()

	log.Debug("Loaded configuration", "config", cfg.String())

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runnerOpts []pipeline.Option

	if cfg.Manifest.Path != "" {
		store, err := manifest.Open(cfg.Manifest.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		runnerOpts = append(runnerOpts, pipeline.WithManifest(store))
	}

	result, err := pipeline.NewRunner(cfg, log, runnerOpts...).Run(ctx)
	if result == nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d schema file(s) in '%s' (%d failed)\n",
		result.Succeeded, result.OutputDir, result.Failed)

	if err != nil {
		return err
	}

	if result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errRowsFailed, result.Failed, result.Succeeded+result.Failed)
	}

	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
