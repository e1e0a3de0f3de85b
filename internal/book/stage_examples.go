package book

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/manifest"
	"git.home.luguber.info/inful/bookgen/internal/observability"
	"git.home.luguber.info/inful/bookgen/internal/page"
	"git.home.luguber.info/inful/bookgen/internal/snippet"
)

// stageExamples renders one page per manifest example, in manifest order.
func stageExamples(ctx context.Context, bs *buildState) error {
	for _, ex := range bs.manifest.Examples {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := buildExamplePage(ctx, bs, ex); err != nil {
			if ce, ok := errors.AsClassified(err); ok {
				return ce.WithContext("example", ex.Key)
			}
			return err
		}
	}
	observability.InfoContext(ctx, "Generated example pages", logfields.Count(len(bs.manifest.Examples)))
	return nil
}

func buildExamplePage(ctx context.Context, bs *buildState, ex manifest.Example) error {
	src := filepath.Join(bs.opts.ExamplesDir, ex.Key+"."+bs.opts.ExampleExt)
	observability.DebugContext(ctx, "Generating example page", logfields.Example(ex.Key), logfields.Path(src))

	lines, err := snippet.Load(src, snippet.Options{StripAsserts: ex.StripAsserts, Marker: bs.opts.AssertMarker})
	if err != nil {
		return err
	}
	runLink := ""
	if ex.RunLink {
		runLink = bs.opts.Encoder.Encode(lines.Text())
	}
	content := page.RenderExample(page.Example{
		Title:       ex.Title,
		Lines:       lines,
		Language:    bs.opts.Language,
		RunLink:     runLink,
		RunLinkText: bs.opts.RunLinkText,
	})
	name := page.ExamplePath(ex.Key)
	if err := bs.writer.WriteFile(name, content); err != nil {
		return err
	}
	return bs.recordPage(PageKindExample, name)
}
