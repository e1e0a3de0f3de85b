package config

import (
	"git.home.luguber.info/inful/bookgen/internal/page"
	"git.home.luguber.info/inful/bookgen/internal/permalink"
	"git.home.luguber.info/inful/bookgen/internal/snippet"
)

const (
	DefaultBookDir     = "book"
	DefaultSrcDir      = "src"
	DefaultExamplesDir = "examples"
	DefaultExampleExt  = "nbt"
	DefaultInspectTool = "cargo run --release --quiet --example=inspect"
	DefaultSiteTool    = "mdbook build"
	DefaultWorkdir     = "."
)

// Defaults returns a configuration with every default applied.
func Defaults() *Config {
	cfg := &Config{}
	_ = cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() error {
	if c.Paths.BookDir == "" {
		c.Paths.BookDir = DefaultBookDir
	}
	if c.Paths.SrcDir == "" {
		src, err := srcFromBookTOML(c.Paths.BookDir)
		if err != nil {
			return err
		}
		c.Paths.SrcDir = src
	}
	if c.Paths.ExamplesDir == "" {
		c.Paths.ExamplesDir = DefaultExamplesDir
	}
	if c.Paths.ExampleExt == "" {
		c.Paths.ExampleExt = DefaultExampleExt
	}
	if c.Example.Language == "" {
		c.Example.Language = page.DefaultLanguage
	}
	if c.Example.AssertMarker == "" {
		c.Example.AssertMarker = snippet.DefaultMarker
	}
	if c.Example.PlaygroundURL == "" {
		c.Example.PlaygroundURL = permalink.DefaultBaseURL
	}
	if c.Example.QueryParam == "" {
		c.Example.QueryParam = permalink.DefaultParam
	}
	if c.Example.RunLinkText == "" {
		c.Example.RunLinkText = page.DefaultRunLinkText
	}
	if c.Tools.Inspect == "" {
		c.Tools.Inspect = DefaultInspectTool
	}
	if c.Tools.Site == "" {
		c.Tools.Site = DefaultSiteTool
	}
	if c.Tools.Workdir == "" {
		c.Tools.Workdir = DefaultWorkdir
	}
	return nil
}
