package commands

import (
	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

// ManifestCmd prints the effective manifest.
type ManifestCmd struct{}

func (m *ManifestCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	man, err := loadManifest(cfg)
	if err != nil {
		return err
	}
	data, err := man.Marshal()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal manifest").Fatal().Build()
	}
	_, err = g.Stdout.Write(data)
	return err
}
