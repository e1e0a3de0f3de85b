package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(DefaultPath, false)
	require.NoError(t, err)
	assert.Equal(t, "book", cfg.Paths.BookDir)
	assert.Equal(t, "src", cfg.Paths.SrcDir)
	assert.Equal(t, filepath.Join("book", "src"), cfg.SrcPath())
	assert.Equal(t, filepath.Join("examples", "factorial.nbt"), cfg.ExamplePath("factorial"))
	assert.Equal(t, "numbat", cfg.Example.Language)
	assert.Equal(t, "assert_eq", cfg.Example.AssertMarker)
	assert.Equal(t, "https://numbat.dev/", cfg.Example.PlaygroundURL)
	assert.True(t, cfg.Build.VerifyEnabled())
	assert.False(t, cfg.Build.Atomic)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), true)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoadExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOOKGEN_TEST_BOOK", filepath.Join(dir, "docs"))
	path := filepath.Join(dir, "bookgen.yaml")
	writeFile(t, path, `
paths:
  book_dir: ${BOOKGEN_TEST_BOOK}
  src_dir: pages
build:
  atomic: true
  verify: false
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs", "pages"), cfg.SrcPath())
	assert.True(t, cfg.Build.Atomic)
	assert.False(t, cfg.Build.VerifyEnabled())
}

func TestLoadReadsSrcFromBookTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "book", "book.toml"), "[book]\ntitle = \"Numbat\"\nsrc = \"content\"\n")
	path := filepath.Join(dir, "bookgen.yaml")
	writeFile(t, path, "paths:\n  book_dir: "+filepath.Join(dir, "book")+"\n")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "content", cfg.Paths.SrcDir)
}

func TestLoadInvalidBookTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "book.toml"), "[book\n")
	path := filepath.Join(dir, "bookgen.yaml")
	writeFile(t, path, "paths:\n  book_dir: "+dir+"\n")

	_, err := Load(path, true)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, ".env"), "BOOKGEN_TEST_MARKER=from_file\nBOOKGEN_TEST_LANG=from_file\n")
	t.Setenv("BOOKGEN_TEST_LANG", "from_env")
	t.Setenv("BOOKGEN_TEST_MARKER", "")
	require.NoError(t, os.Unsetenv("BOOKGEN_TEST_MARKER"))
	writeFile(t, filepath.Join(dir, "bookgen.yaml"), "example:\n  language: ${BOOKGEN_TEST_LANG}\n  assert_marker: ${BOOKGEN_TEST_MARKER}\n")

	cfg, err := Load("bookgen.yaml", true)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Example.Language)
	assert.Equal(t, "from_file", cfg.Example.AssertMarker)
}

func TestCommands(t *testing.T) {
	cfg := Defaults()
	cfg.Tools.Inspect = `cargo run --release --quiet "--example=inspect"`
	cfg.Tools.Workdir = "/repo"

	cmd, err := cfg.InspectCommand()
	require.NoError(t, err)
	assert.Equal(t, "cargo", cmd.Name)
	assert.Equal(t, []string{"run", "--release", "--quiet", "--example=inspect"}, cmd.Args)
	assert.Equal(t, "/repo", cmd.Dir)

	site, err := cfg.SiteCommand()
	require.NoError(t, err)
	assert.Equal(t, "mdbook", site.Name)
	assert.Equal(t, []string{"build"}, site.Args)
	assert.Equal(t, cfg.Paths.BookDir, site.Dir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"blank language", func(c *Config) { c.Example.Language = "  " }},
		{"empty marker", func(c *Config) { c.Example.AssertMarker = "" }},
		{"relative playground", func(c *Config) { c.Example.PlaygroundURL = "/play" }},
		{"extension with slash", func(c *Config) { c.Paths.ExampleExt = "a/b" }},
		{"unterminated quote", func(c *Config) { c.Tools.Inspect = `cargo "run` }},
		{"blank site command", func(c *Config) { c.Tools.Site = "   " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookgen.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.NoError(t, Init(path, true))

	t.Setenv("BOOKGEN_REPORT_FILE", "report.json")
	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "report.json", cfg.Build.ReportFile)
	assert.Equal(t, DefaultInspectTool, cfg.Tools.Inspect)
}
