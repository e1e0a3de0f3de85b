package book

import (
	"io"

	"git.home.luguber.info/inful/bookgen/internal/config"
	"git.home.luguber.info/inful/bookgen/internal/inspect"
	"git.home.luguber.info/inful/bookgen/internal/metrics"
	"git.home.luguber.info/inful/bookgen/internal/permalink"
)

// Options carries everything a run needs besides the manifest.
type Options struct {
	SrcDir       string // book source directory receiving the pages
	ExamplesDir  string
	ExampleExt   string
	Language     string
	AssertMarker string
	RunLinkText  string
	Encoder      permalink.Encoder

	Inspect inspect.Command // introspection tool without subcommand
	Site    inspect.Command // static site build
	Runner  inspect.Runner  // runs both tools; defaults to inspect.ExecRunner
	// SiteOutput receives the site build's standard output. Defaults to os.Stdout.
	SiteOutput io.Writer

	Recorder    metrics.Recorder
	Atomic      bool
	Verify      bool
	SkipSite    bool
	RevisionDir string // where to look up the source revision; "" means the examples directory
	ReportFile  string // "" disables persisting the report
}

// OptionsFromConfig derives run options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	inspectCmd, err := cfg.InspectCommand()
	if err != nil {
		return Options{}, err
	}
	siteCmd, err := cfg.SiteCommand()
	if err != nil {
		return Options{}, err
	}
	return Options{
		SrcDir:       cfg.SrcPath(),
		ExamplesDir:  cfg.Paths.ExamplesDir,
		ExampleExt:   cfg.Paths.ExampleExt,
		Language:     cfg.Example.Language,
		AssertMarker: cfg.Example.AssertMarker,
		RunLinkText:  cfg.Example.RunLinkText,
		Encoder:      permalink.NewEncoder(cfg.Example.PlaygroundURL, cfg.Example.QueryParam),
		Inspect:      inspectCmd,
		Site:         siteCmd,
		Atomic:       cfg.Build.Atomic,
		Verify:       cfg.Build.VerifyEnabled(),
		SkipSite:     cfg.Build.SkipSite,
		ReportFile:   cfg.Build.ReportFile,
	}, nil
}
