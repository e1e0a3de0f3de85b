package book

import (
	"context"
	"io"

	"git.home.luguber.info/inful/bookgen/internal/funclist"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/observability"
	"git.home.luguber.info/inful/bookgen/internal/page"
)

// stageUnits writes the raw unit listing of the introspection tool.
func stageUnits(ctx context.Context, bs *buildState) error {
	observability.InfoContext(ctx, "Generating list of units", logfields.Page(page.UnitsPage))
	return bs.streamPage(PageKindUnits, page.UnitsPage, func(w io.Writer) error {
		return bs.invoker.StreamUnits(ctx, w)
	})
}

// stageFunctions writes one function-list page per topic document.
func stageFunctions(ctx context.Context, bs *buildState) error {
	for _, doc := range bs.manifest.Topics {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := page.FunctionsPath(doc.Name)
		err := bs.streamPage(PageKindFunctions, name, func(w io.Writer) error {
			return funclist.Render(ctx, w, doc, bs.invoker)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
