package book

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/observability"
	"git.home.luguber.info/inful/bookgen/internal/verify"
)

// stageVerify re-reads the generated pages and records findings. It never aborts a run.
func stageVerify(ctx context.Context, bs *buildState) error {
	checker := verify.Checker{
		Encoder:     bs.opts.Encoder,
		ExamplesDir: bs.opts.ExamplesDir,
		ExampleExt:  bs.opts.ExampleExt,
	}

	var findings []verify.Finding
	for _, p := range bs.report.Pages {
		var check func(string, []byte) []verify.Finding
		switch p.Kind {
		case PageKindExample:
			check = checker.ExamplePage
		case PageKindFunctions:
			check = checker.FunctionsPage
		default:
			continue
		}
		path := filepath.Join(bs.writer.Root(), p.Name)
		data, err := os.ReadFile(path)
		if err != nil {
			return newWarnStageError(StageVerify, errors.WrapError(err, errors.CategoryFileAccess, "failed to read generated page").
				Warning().
				WithContext("page", p.Name).
				Build())
		}
		findings = append(findings, check(p.Name, data)...)
	}

	orphans, err := checker.Orphans(bs.manifest)
	if err != nil {
		bs.addFindings(ctx, findings)
		return newWarnStageError(StageVerify, err)
	}
	bs.addFindings(ctx, append(findings, orphans...))
	return nil
}

func (bs *buildState) addFindings(ctx context.Context, findings []verify.Finding) {
	for _, f := range findings {
		observability.WarnContext(ctx, f.Message, logfields.Page(f.Page), slog.String("check", string(f.Check)))
		bs.recorder.IncVerifyWarnings(string(f.Check))
	}
	bs.report.Findings = append(bs.report.Findings, findings...)
}
