package book

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookgen/internal/metrics"
)

func TestPipelineAddIf(t *testing.T) {
	noop := func(context.Context, *buildState) error { return nil }
	p := NewPipeline().
		Add(StageExamples, noop).
		AddIf(false, StageVerify, noop).
		AddIf(true, StageSite, noop)
	assert.Equal(t, []StageName{StageExamples, StageSite}, p.Names())

	defs := p.Build()
	defs[0].Name = "mutated"
	assert.Equal(t, StageExamples, p.Defs[0].Name)
}

func TestClassifyStageError(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, classifyStageError(ctx, StageUnits, nil))

	se := classifyStageError(ctx, StageUnits, stderrors.New("boom"))
	require.NotNil(t, se)
	assert.Equal(t, StageErrorFatal, se.Kind)
	assert.Equal(t, "fatal stage units: boom", se.Error())

	warn := newWarnStageError(StageVerify, stderrors.New("glob"))
	assert.Same(t, warn, classifyStageError(ctx, StageVerify, warn))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Equal(t, StageErrorCanceled, classifyStageError(canceled, StageSite, stderrors.New("signal: killed")).Kind)
}

func TestRunStagesContinuesAfterWarning(t *testing.T) {
	bs := &buildState{report: newBuildReport("r"), recorder: metrics.NoopRecorder{}}
	var ran []StageName
	stage := func(name StageName, err error) StageDef {
		return StageDef{Name: name, Fn: func(context.Context, *buildState) error {
			ran = append(ran, name)
			return err
		}}
	}

	err := runStages(context.Background(), bs, []StageDef{
		stage(StageVerify, newWarnStageError(StageVerify, stderrors.New("minor"))),
		stage(StageUnits, stderrors.New("fatal")),
		stage(StageSite, nil),
	})
	require.Error(t, err)
	assert.Equal(t, []StageName{StageVerify, StageUnits}, ran)
	assert.Len(t, bs.report.Warnings, 1)
	assert.Len(t, bs.report.Errors, 1)
	assert.Equal(t, StageCount{Warning: 1}, bs.report.StageCounts[StageVerify])
	assert.Equal(t, StageCount{Fatal: 1}, bs.report.StageCounts[StageUnits])

	bs.report.DeriveOutcome()
	assert.Equal(t, OutcomeFailed, bs.report.Outcome)
}

func TestDeriveOutcome(t *testing.T) {
	r := newBuildReport("r")
	r.DeriveOutcome()
	assert.Equal(t, OutcomeSuccess, r.Outcome)

	r.Warnings = append(r.Warnings, stderrors.New("w"))
	r.DeriveOutcome()
	assert.Equal(t, OutcomeWarning, r.Outcome)

	r.Errors = append(r.Errors, newCanceledStageError(StageUnits, context.Canceled))
	r.DeriveOutcome()
	assert.Equal(t, OutcomeCanceled, r.Outcome)
}

func TestSummary(t *testing.T) {
	r := newBuildReport("abc")
	r.Pages = []PageRecord{{Name: "list-units.md", Kind: PageKindUnits}}
	r.Finish()
	r.DeriveOutcome()
	s := r.Summary()
	assert.Contains(t, s, "run=abc")
	assert.Contains(t, s, "pages=1")
	assert.Contains(t, s, "outcome=success")
}
