package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

// Init writes an example configuration file with every default spelled out.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	example := Config{
		Paths: PathsConfig{
			BookDir:     DefaultBookDir,
			ExamplesDir: DefaultExamplesDir,
			ExampleExt:  DefaultExampleExt,
		},
		Example: ExampleConfig{
			Language:      "numbat",
			AssertMarker:  "assert_eq",
			PlaygroundURL: "https://numbat.dev/",
			QueryParam:    "q",
			RunLinkText:   "Run this example",
		},
		Tools: ToolsConfig{
			Inspect: DefaultInspectTool,
			Site:    DefaultSiteTool,
			Workdir: DefaultWorkdir,
		},
		Build: BuildConfig{
			ReportFile: "${BOOKGEN_REPORT_FILE}",
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal configuration").Fatal().Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileAccess, "failed to write configuration").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}
