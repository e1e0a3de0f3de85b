package book

import (
	"context"

	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/observability"
	"git.home.luguber.info/inful/bookgen/internal/page"
)

// stagePublish promotes the staged pages into the book source directory.
func stagePublish(ctx context.Context, bs *buildState) error {
	names := bs.writer.Written()
	if err := finalizeStaging(bs.staging, bs.opts.SrcDir, names); err != nil {
		return err
	}
	bs.staging = ""
	bs.writer = page.NewWriter(bs.opts.SrcDir)
	observability.InfoContext(ctx, "Published generated pages", logfields.Path(bs.opts.SrcDir), logfields.Count(len(names)))
	return nil
}
