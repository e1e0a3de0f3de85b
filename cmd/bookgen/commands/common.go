// Package commands implements the bookgen command line.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookgen/internal/book"
	"git.home.luguber.info/inful/bookgen/internal/config"
	"git.home.luguber.info/inful/bookgen/internal/inspect"
	"git.home.luguber.info/inful/bookgen/internal/manifest"
	"git.home.luguber.info/inful/bookgen/internal/metrics"
	"git.home.luguber.info/inful/bookgen/internal/observability"
)

// Global carries process-wide dependencies into the commands.
type Global struct {
	Stdout io.Writer
	Runner inspect.Runner // external tools; nil means real subprocesses
}

// NewGlobal returns the dependencies of a real process.
func NewGlobal() *Global {
	return &Global{Stdout: os.Stdout}
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"bookgen.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text|json|pretty)" enum:"text,json,pretty" default:"text"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build      BuildCmd    `cmd:"" default:"withargs" help:"Generate all pages and build the book (default)"`
	Init       InitCmd     `cmd:"" help:"Write an example configuration file"`
	Manifest   ManifestCmd `cmd:"" help:"Print the effective example manifest as YAML"`
	Show       ShowCmd     `cmd:"" help:"Render a generated page in the terminal"`
	Watch      WatchCmd    `cmd:"" help:"Rebuild whenever examples or configuration change"`
	VersionCmd VersionCmd  `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	format, err := observability.ParseLogFormat(c.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(observability.NewLogger(os.Stderr, format, level))
	return nil
}

// loadConfig loads the configuration named by --config. The default path may be absent.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.Config, c.Config != config.DefaultPath)
}

// loadManifest returns the manifest file named in cfg, or the built-in manifest.
func loadManifest(cfg *config.Config) (*manifest.Manifest, error) {
	if cfg.Manifest == "" {
		m := manifest.Default()
		return &m, nil
	}
	m, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// newAssembler wires an Assembler from configuration.
func newAssembler(g *Global, cfg *config.Config, m *manifest.Manifest, rec metrics.Recorder) (*book.Assembler, error) {
	opts, err := book.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts.Runner = g.Runner
	opts.SiteOutput = g.Stdout
	opts.Recorder = rec
	return book.New(opts, m), nil
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
