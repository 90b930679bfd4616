// Package pipeline drives a generation run from input rows to emitted files.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"schemagen/internal/config"
	"schemagen/internal/emitter"
	"schemagen/internal/jsonld"
	"schemagen/internal/logger"
	"schemagen/internal/manifest"
	"schemagen/internal/models"
	"schemagen/internal/report"
	"schemagen/internal/tabular"
)

// Outcome is the result of processing one input row.
type Outcome struct {
	Line     int
	Product  string
	SKU      string
	File     string
	SHA256   string
	Variants int
	Err      error
}

// OK reports whether the row produced a document.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Result summarizes a run.
type Result struct {
	RunID       string
	OutputDir   string
	StartedAt   time.Time
	Succeeded   int
	Failed      int
	Outcomes    []Outcome
	ReportPaths []string
}

// Runner processes every row of the configured input.
type Runner struct {
	cfg       *config.Config
	log       *logger.Logger
	processor *jsonld.Processor
	manifest  *manifest.Store
	now       func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithManifest records the run in store.
func WithManifest(store *manifest.Store) Option {
	return func(r *Runner) {
		r.manifest = store
	}
}

// WithClock overrides the clock used for the run timestamp.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a runner. cfg must already be validated.
func NewRunner(cfg *config.Config, log *logger.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:       cfg,
		log:       log,
		processor: jsonld.NewProcessor(cfg),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run reads the input, writes one document per valid row into a fresh run
// directory and returns the per-row outcomes. A row failure is returned as
// an error only under run.fail_fast; otherwise it is logged and counted.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	startedAt := r.now()

	src, err := tabular.Open(r.cfg.Input.Path, tabular.OptionsFromConfig(r.cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", r.cfg.Input.Path, err)
	}
	defer src.Close()

	r.log.Debug("Input header", "columns", len(src.Header()), "header", src.Header())

	if unknown := src.Unknown(); len(unknown) > 0 {
		r.log.Debug("Ignoring unknown columns", "columns", unknown)
	}

	out := emitter.New(emitter.OutputDir(r.cfg.Output.BaseDir, startedAt))
	if err := out.Prepare(); err != nil {
		return nil, err
	}

	result := &Result{
		OutputDir: out.Dir(),
		StartedAt: startedAt,
	}

	if r.manifest != nil {
		run, err := r.manifest.BeginRun(ctx, r.cfg.Input.Path, out.Dir(), startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to begin manifest run: %w", err)
		}

		result.RunID = run.ID
	}

	r.log.Info("Run started", "input", r.cfg.Input.Path, "output", out.Dir(), "run_id", result.RunID)

	runErr := r.processRows(ctx, src, out, result)

	r.finish(result, runErr)

	return result, runErr
}

func (r *Runner) processRows(ctx context.Context, src tabular.Source, out *emitter.Emitter, result *Result) error {
	written := make(map[string]int)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		var outcome Outcome

		var recErr *tabular.RecordError

		switch {
		case errors.As(err, &recErr):
			outcome = Outcome{Line: recErr.Line, Err: err}
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		default:
			outcome = r.processRow(row, out)
		}

		r.record(ctx, result, outcome)

		rowLog := r.log.With("line", outcome.Line)

		if !outcome.OK() {
			rowLog.Error("Row failed", "name", outcome.Product, "sku", outcome.SKU, "error", outcome.Err)

			if r.cfg.Run.FailFast {
				return fmt.Errorf("row at line %d: %w", outcome.Line, outcome.Err)
			}

			continue
		}

		if prev, ok := written[outcome.File]; ok {
			rowLog.Warn("Overwrote document from an earlier row", "file", outcome.File, "earlier_line", prev)
		}

		written[outcome.File] = outcome.Line

		rowLog.Debug("Row written", "file", outcome.File, "variants", outcome.Variants)
	}
}

func (r *Runner) processRow(row *models.ProductRow, out *emitter.Emitter) Outcome {
	outcome := Outcome{
		Line:    row.Line,
		Product: row.Name.String(),
		SKU:     row.SKU.String(),
	}

	doc, err := r.processor.Process(row)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	w, err := out.Write(doc)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.File = w.File
	outcome.SHA256 = w.SHA256
	outcome.Variants = len(doc.HasVariant)

	return outcome
}

// record counts the outcome and stores it in the manifest. Manifest write
// failures are logged; the emitted file is already on disk.
func (r *Runner) record(ctx context.Context, result *Result, outcome Outcome) {
	result.Outcomes = append(result.Outcomes, outcome)

	status := manifest.DocumentOK
	errText := ""

	if outcome.OK() {
		result.Succeeded++
	} else {
		result.Failed++
		status = manifest.DocumentFailed
		errText = outcome.Err.Error()
	}

	if r.manifest == nil {
		return
	}

	err := r.manifest.RecordDocument(ctx, manifest.Document{
		RunID:    result.RunID,
		Line:     outcome.Line,
		Product:  outcome.Product,
		File:     outcome.File,
		SHA256:   outcome.SHA256,
		Variants: outcome.Variants,
		Status:   status,
		Error:    errText,
	})
	if err != nil {
		r.log.Warn("Failed to record document in manifest", "line", outcome.Line, "error", err)
	}
}

// finish closes the manifest run and writes the summary report.
func (r *Runner) finish(result *Result, runErr error) {
	if r.manifest != nil {
		status := manifest.RunCompleted
		if runErr != nil {
			status = manifest.RunAborted
		}

		// The run context may already be cancelled.
		err := r.manifest.FinishRun(context.Background(), result.RunID, result.Succeeded, result.Failed, status, r.now())
		if err != nil {
			r.log.Warn("Failed to finish manifest run", "run_id", result.RunID, "error", err)
		}
	}

	if !r.cfg.Report.Enabled {
		return
	}

	paths, err := report.Write(result.OutputDir, Summary(result, r.cfg.Input.Path), r.cfg.Report.HTML)
	if err != nil {
		r.log.Error("Failed to write run report", "error", err)
	}

	result.ReportPaths = paths
}

// Summary converts a result into a report summary.
func Summary(result *Result, input string) report.Summary {
	s := report.Summary{
		RunID:     result.RunID,
		Input:     input,
		OutputDir: result.OutputDir,
		StartedAt: result.StartedAt,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Entries:   make([]report.Entry, 0, len(result.Outcomes)),
	}

	for _, o := range result.Outcomes {
		entry := report.Entry{
			Line:     o.Line,
			Product:  o.Product,
			File:     o.File,
			Variants: o.Variants,
			Status:   report.StatusOK,
		}

		if !o.OK() {
			entry.Status = report.StatusFailed
			entry.Error = o.Err.Error()
		}

		s.Entries = append(s.Entries, entry)
	}

	return s
}
