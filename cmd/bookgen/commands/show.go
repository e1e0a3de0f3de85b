package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

// ShowCmd renders a generated page with glamour.
type ShowCmd struct {
	Page  string `arg:"" help:"Page name inside the book source directory (e.g. example-factorial.md) or a path"`
	Style string `help:"Glamour style (auto, dark, light, notty, ascii)" default:"auto"`
	Width int    `help:"Word wrap width; 0 disables wrapping" default:"100"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.SrcPath(), s.Page)
	if _, err := os.Stat(path); err != nil {
		path = s.Page
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileAccess, "failed to read page").
			Fatal().
			WithContext("page", s.Page).
			WithContext("path", path).
			Build()
	}
	out, err := renderMarkdown(string(data), s.Style, s.Width)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to render page").
			Fatal().
			WithContext("page", s.Page).
			Build()
	}
	_, err = fmt.Fprint(g.Stdout, out)
	return err
}

func renderMarkdown(md, style string, width int) (string, error) {
	var opts []glamour.TermRendererOption
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}
