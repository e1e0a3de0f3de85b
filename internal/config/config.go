// Package config loads bookgen's YAML configuration.
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when no path is given.
const DefaultPath = "bookgen.yaml"

// Config represents the application configuration.
type Config struct {
	Paths    PathsConfig   `yaml:"paths"`
	Example  ExampleConfig `yaml:"example"`
	Tools    ToolsConfig   `yaml:"tools"`
	Build    BuildConfig   `yaml:"build"`
	Manifest string        `yaml:"manifest,omitempty"` // optional YAML manifest replacing the compiled-in one
}

// PathsConfig locates example sources and the book.
type PathsConfig struct {
	BookDir     string `yaml:"book_dir"`
	SrcDir      string `yaml:"src_dir,omitempty"` // relative to BookDir; defaults to book.toml [book] src
	ExamplesDir string `yaml:"examples_dir"`
	ExampleExt  string `yaml:"example_ext"`
}

// ExampleConfig controls example page rendering.
type ExampleConfig struct {
	Language      string `yaml:"language"`
	AssertMarker  string `yaml:"assert_marker"`
	PlaygroundURL string `yaml:"playground_url"`
	QueryParam    string `yaml:"query_param"`
	RunLinkText   string `yaml:"run_link_text"`
}

// ToolsConfig holds the external tool command lines.
type ToolsConfig struct {
	Inspect string `yaml:"inspect"`
	Site    string `yaml:"site"`
	Workdir string `yaml:"workdir"`
}

// BuildConfig tunes a generation run.
type BuildConfig struct {
	Atomic      bool   `yaml:"atomic"`
	SkipSite    bool   `yaml:"skip_site"`
	Verify      *bool  `yaml:"verify,omitempty"`
	ReportFile  string `yaml:"report_file,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// VerifyEnabled reports whether generated pages are checked after generation.
func (b BuildConfig) VerifyEnabled() bool {
	return b.Verify == nil || *b.Verify
}

// Load reads the configuration at path. A missing file is only an error when
// the caller asked for it explicitly (explicit=true); otherwise defaults apply.
func Load(path string, explicit bool) (*Config, error) {
	loadEnvFile()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").
				Fatal().
				WithContext("path", path).
				Build()
		}
		slog.Debug("Loaded configuration", "path", path)
	case os.IsNotExist(err) && !explicit:
		slog.Debug("No configuration file, using defaults", "path", path)
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read configuration").
			Fatal().
			WithContext("path", path).
			Build()
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SrcPath returns the directory generated pages are written into.
func (c *Config) SrcPath() string {
	return filepath.Join(c.Paths.BookDir, c.Paths.SrcDir)
}

// ExamplePath returns the source file for an example key.
func (c *Config) ExamplePath(key string) string {
	return filepath.Join(c.Paths.ExamplesDir, key+"."+c.Paths.ExampleExt)
}
