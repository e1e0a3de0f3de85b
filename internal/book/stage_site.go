package book

import (
	"context"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/observability"
)

// stageSite runs the static site build inside the book directory.
func stageSite(ctx context.Context, bs *buildState) error {
	cmd := bs.opts.Site
	observability.InfoContext(ctx, "Building site", logfields.Tool(cmd.Name), logfields.Path(cmd.Dir))
	if err := bs.runner.Run(ctx, cmd, bs.opts.SiteOutput); err != nil {
		return errors.WrapError(err, errors.CategoryExternalTool, "site build failed").
			Fatal().
			WithContext("tool", cmd.Name).
			WithContext("command", cmd.String()).
			Build()
	}
	return nil
}
