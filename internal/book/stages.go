package book

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/metrics"
	"git.home.luguber.info/inful/bookgen/internal/observability"
)

// Stage is a discrete unit of work in a generation run.
type Stage func(ctx context.Context, bs *buildState) error

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageExamples  StageName = "examples"
	StageUnits     StageName = "units"
	StageFunctions StageName = "functions"
	StageVerify    StageName = "verify"
	StagePublish   StageName = "publish"
	StageSite      StageName = "site"
)

// StageErrorKind classifies the outcome of a stage.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying the stage and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// StageResult captures the high-level outcome of a stage.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultWarning  StageResult = "warning"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline is a fluent builder for ordered stage definitions.
type Pipeline struct{ Defs []StageDef }

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{Defs: make([]StageDef, 0, 6)} }

// Add appends a stage unconditionally.
func (p *Pipeline) Add(name StageName, fn Stage) *Pipeline {
	p.Defs = append(p.Defs, StageDef{Name: name, Fn: fn})
	return p
}

// AddIf appends a stage only if cond is true.
func (p *Pipeline) AddIf(cond bool, name StageName, fn Stage) *Pipeline {
	if cond {
		p.Add(name, fn)
	}
	return p
}

// Build returns a copy of the stage definitions.
func (p *Pipeline) Build() []StageDef {
	out := make([]StageDef, len(p.Defs))
	copy(out, p.Defs)
	return out
}

// Names lists the stage names in order.
func (p *Pipeline) Names() []StageName {
	out := make([]StageName, len(p.Defs))
	for i, d := range p.Defs {
		out[i] = d.Name
	}
	return out
}

// runStages executes stages in order, recording timing and stopping on the first fatal error.
func runStages(ctx context.Context, bs *buildState, stages []StageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.Name, err)
			bs.report.recordStageError(se)
			bs.report.RecordStageResult(st.Name, StageResultCanceled, bs.recorder)
			return se
		}

		sctx := observability.WithStage(ctx, string(st.Name))
		observability.DebugContext(sctx, "Stage started")

		t0 := time.Now()
		err := st.Fn(sctx, bs)
		dur := time.Since(t0)

		bs.report.StageDurations[string(st.Name)] = dur
		bs.recorder.ObserveStageDuration(string(st.Name), dur)

		se := classifyStageError(ctx, st.Name, err)
		if se == nil {
			bs.report.RecordStageResult(st.Name, StageResultSuccess, bs.recorder)
			continue
		}
		bs.report.recordStageError(se)
		switch se.Kind {
		case StageErrorWarning:
			bs.report.RecordStageResult(st.Name, StageResultWarning, bs.recorder)
			observability.WarnContext(sctx, "Stage completed with warnings", logfields.Error(se))
			continue
		case StageErrorCanceled:
			bs.report.RecordStageResult(st.Name, StageResultCanceled, bs.recorder)
		default:
			bs.report.RecordStageResult(st.Name, StageResultFatal, bs.recorder)
		}
		return se
	}
	return nil
}

// classifyStageError maps a stage function's error onto a StageError.
func classifyStageError(ctx context.Context, stage StageName, err error) *StageError {
	if err == nil {
		return nil
	}
	var se *StageError
	if stderrors.As(err, &se) {
		return se
	}
	if ctx.Err() != nil || stderrors.Is(err, context.Canceled) {
		return newCanceledStageError(stage, err)
	}
	return newFatalStageError(stage, err)
}

func resultLabel(res StageResult) metrics.ResultLabel {
	switch res {
	case StageResultWarning:
		return metrics.ResultWarning
	case StageResultFatal:
		return metrics.ResultFatal
	case StageResultCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultSuccess
	}
}
