package book

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
	"git.home.luguber.info/inful/bookgen/internal/inspect"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/manifest"
	"git.home.luguber.info/inful/bookgen/internal/metrics"
	"git.home.luguber.info/inful/bookgen/internal/observability"
	"git.home.luguber.info/inful/bookgen/internal/page"
	"git.home.luguber.info/inful/bookgen/internal/revision"
)

// Assembler runs the generation pipeline for one manifest.
type Assembler struct {
	opts     Options
	manifest *manifest.Manifest
	runner   inspect.Runner
	invoker  inspect.Streamer
}

// New returns an Assembler for m. Zero-valued optional fields of opts get defaults.
func New(opts Options, m *manifest.Manifest) *Assembler {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Runner == nil {
		opts.Runner = inspect.ExecRunner{}
	}
	if opts.SiteOutput == nil {
		opts.SiteOutput = os.Stdout
	}
	if opts.RevisionDir == "" {
		opts.RevisionDir = opts.ExamplesDir
	}
	runner := timedRunner{runner: opts.Runner, recorder: opts.Recorder}
	return &Assembler{
		opts:     opts,
		manifest: m,
		runner:   runner,
		invoker:  inspect.NewInvoker(runner, opts.Inspect),
	}
}

// Options returns the effective options.
func (a *Assembler) Options() Options { return a.opts }

// Pipeline returns the stages a run executes, in order.
func (a *Assembler) Pipeline() *Pipeline {
	return NewPipeline().
		Add(StageExamples, stageExamples).
		Add(StageUnits, stageUnits).
		Add(StageFunctions, stageFunctions).
		AddIf(a.opts.Verify, StageVerify, stageVerify).
		AddIf(a.opts.Atomic, StagePublish, stagePublish).
		AddIf(!a.opts.SkipSite, StageSite, stageSite)
}

// buildState is the mutable state shared by the stages of one run.
type buildState struct {
	opts     Options
	manifest *manifest.Manifest
	runner   inspect.Runner
	invoker  inspect.Streamer
	recorder metrics.Recorder
	report   *BuildReport
	writer   *page.Writer
	staging  string // "" in write-through mode
}

// Run executes the pipeline. The report is returned even when the run fails.
func (a *Assembler) Run(ctx context.Context) (*BuildReport, error) {
	runID := uuid.NewString()
	ctx = observability.WithRunID(ctx, runID)

	report := newBuildReport(runID)
	report.Atomic = a.opts.Atomic
	report.Revision = revision.Lookup(a.opts.RevisionDir)

	bs := &buildState{
		opts:     a.opts,
		manifest: a.manifest,
		runner:   a.runner,
		invoker:  a.invoker,
		recorder: a.opts.Recorder,
		report:   report,
	}

	observability.InfoContext(ctx, "Starting book generation",
		logfields.Path(a.opts.SrcDir),
		logfields.Count(len(a.manifest.Examples)),
		logfields.Tool(a.opts.Inspect.String()))

	err := a.prepareOutput(bs)
	if err == nil {
		err = runStages(ctx, bs, a.Pipeline().Build())
	}
	if err != nil {
		abortStaging(bs.staging)
	}

	report.Finish()
	report.DeriveOutcome()
	a.opts.Recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	a.opts.Recorder.IncBuildOutcome(metrics.BuildOutcomeLabel(report.Outcome))

	if a.opts.ReportFile != "" {
		if perr := report.Persist(a.opts.ReportFile); perr != nil {
			observability.WarnContext(ctx, "Failed to persist build report", logfields.Path(a.opts.ReportFile), logfields.Error(perr))
		}
	}

	if err != nil {
		observability.ErrorContext(ctx, "Book generation failed", logfields.Error(err), logfields.Duration(report.End.Sub(report.Start)))
		return report, err
	}
	observability.InfoContext(ctx, "Book generation finished", slog.String("summary", report.Summary()))
	return report, nil
}

// prepareOutput points the page writer at src, or at a fresh staging directory in atomic mode.
func (a *Assembler) prepareOutput(bs *buildState) error {
	if !a.opts.Atomic {
		bs.writer = page.NewWriter(a.opts.SrcDir)
		return nil
	}
	stage, err := beginStaging(a.opts.SrcDir)
	if err != nil {
		bs.report.Errors = append(bs.report.Errors, err)
		return err
	}
	bs.staging = stage
	bs.writer = page.NewWriter(stage)
	return nil
}

// recordPage fingerprints a written page and adds it to the report.
func (bs *buildState) recordPage(kind, name string) error {
	path := filepath.Join(bs.writer.Root(), name)
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileAccess, "failed to read back generated page").
			Fatal().
			WithContext("page", name).
			WithContext("path", path).
			Build()
	}
	bs.report.Pages = append(bs.report.Pages, PageRecord{
		Name:        name,
		Kind:        kind,
		Bytes:       len(data),
		Fingerprint: mdfp.CalculateFingerprintFromParts("", string(data)),
	})
	bs.recorder.AddPages(kind, 1)
	return nil
}

// streamPage creates the named page and lets fill write into it.
func (bs *buildState) streamPage(kind, name string, fill func(w io.Writer) error) error {
	f, err := bs.writer.Create(name)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return bs.recordPage(kind, name)
}
