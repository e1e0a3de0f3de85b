package book

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
	"git.home.luguber.info/inful/bookgen/internal/metrics"
	"git.home.luguber.info/inful/bookgen/internal/revision"
	"git.home.luguber.info/inful/bookgen/internal/verify"
	"git.home.luguber.info/inful/bookgen/internal/version"
)

// Page kinds recorded in the report.
const (
	PageKindExample   = "example"
	PageKindUnits     = "units"
	PageKindFunctions = "functions"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// PageRecord describes one generated page.
type PageRecord struct {
	Name        string `json:"name"` // relative to the book source directory
	Kind        string `json:"kind"`
	Bytes       int    `json:"bytes"`
	Fingerprint string `json:"fingerprint"`
}

// StageCount aggregates counts of outcomes for a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// BuildReport captures what a generation run did.
type BuildReport struct {
	SchemaVersion   int
	RunID           string
	Start           time.Time
	End             time.Time
	Outcome         BuildOutcome
	Revision        revision.Info
	Atomic          bool
	Errors          []error // fatal errors causing build abortion (at most one)
	Warnings        []error // non-fatal stage errors
	Findings        []verify.Finding
	Pages           []PageRecord
	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Version         string
}

func newBuildReport(runID string) *BuildReport {
	return &BuildReport{
		SchemaVersion:   1,
		RunID:           runID,
		Start:           time.Now(),
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
		Version:         version.Version,
	}
}

// Finish sets the end time of the report.
func (r *BuildReport) Finish() { r.End = time.Now() }

func (r *BuildReport) recordStageError(se *StageError) {
	r.StageErrorKinds[se.Stage] = se.Kind
	if se.Kind == StageErrorWarning {
		r.Warnings = append(r.Warnings, se)
		return
	}
	r.Errors = append(r.Errors, se)
}

// RecordStageResult updates the stage counters and emits the matching metric.
func (r *BuildReport) RecordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	sc := r.StageCounts[stage]
	switch res {
	case StageResultSuccess:
		sc.Success++
	case StageResultWarning:
		sc.Warning++
	case StageResultFatal:
		sc.Fatal++
	case StageResultCanceled:
		sc.Canceled++
	}
	r.StageCounts[stage] = sc
	if recorder != nil {
		recorder.IncStageResult(string(stage), resultLabel(res))
	}
}

// PagesOf returns the pages of the given kind in write order.
func (r *BuildReport) PagesOf(kind string) []PageRecord {
	var out []PageRecord
	for _, p := range r.Pages {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// DeriveOutcome sets Outcome from the recorded errors, warnings and findings.
func (r *BuildReport) DeriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if stderrors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 || len(r.Findings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("run=%s pages=%d duration=%s errors=%d warnings=%d findings=%d outcome=%s",
		r.RunID, len(r.Pages), dur.Truncate(time.Millisecond), len(r.Errors), len(r.Warnings), len(r.Findings), r.Outcome)
}

// Persist writes the report as JSON to path, replacing any previous report atomically.
func (r *BuildReport) Persist(path string) error {
	if r.End.IsZero() {
		r.Finish()
		r.DeriveOutcome()
	}
	data, err := json.MarshalIndent(r.SanitizedCopy(), "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal build report").Fatal().Build()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileAccess, "failed to create report directory").
				Fatal().
				WithContext("path", dir).
				Build()
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileAccess, "failed to write build report").
			Fatal().
			WithContext("path", tmp).
			Build()
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.WrapError(err, errors.CategoryFileAccess, "failed to move build report into place").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}

// BuildReportSerializable mirrors BuildReport with string errors for JSON output.
type BuildReportSerializable struct {
	SchemaVersion   int                      `json:"schema_version"`
	RunID           string                   `json:"run_id"`
	Start           time.Time                `json:"start"`
	End             time.Time                `json:"end"`
	Outcome         string                   `json:"outcome"`
	Revision        revision.Info            `json:"revision"`
	Atomic          bool                     `json:"atomic"`
	Errors          []string                 `json:"errors"`
	Warnings        []string                 `json:"warnings"`
	Findings        []verify.Finding         `json:"findings"`
	Pages           []PageRecord             `json:"pages"`
	StageDurations  map[string]time.Duration `json:"stage_durations"`
	StageErrorKinds map[string]string        `json:"stage_error_kinds"`
	StageCounts     map[string]StageCount    `json:"stage_counts"`
	Version         string                   `json:"version,omitempty"`
}

// SanitizedCopy returns a copy with error fields converted to strings.
func (r *BuildReport) SanitizedCopy() *BuildReportSerializable {
	s := &BuildReportSerializable{
		SchemaVersion:   r.SchemaVersion,
		RunID:           r.RunID,
		Start:           r.Start,
		End:             r.End,
		Outcome:         string(r.Outcome),
		Revision:        r.Revision,
		Atomic:          r.Atomic,
		Errors:          make([]string, len(r.Errors)),
		Warnings:        make([]string, len(r.Warnings)),
		Findings:        r.Findings,
		Pages:           r.Pages,
		StageDurations:  r.StageDurations,
		StageErrorKinds: make(map[string]string, len(r.StageErrorKinds)),
		StageCounts:     make(map[string]StageCount, len(r.StageCounts)),
		Version:         r.Version,
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	for k, v := range r.StageErrorKinds {
		s.StageErrorKinds[string(k)] = string(v)
	}
	for k, v := range r.StageCounts {
		s.StageCounts[string(k)] = v
	}
	if s.Findings == nil {
		s.Findings = []verify.Finding{}
	}
	if s.Pages == nil {
		s.Pages = []PageRecord{}
	}
	return s
}
