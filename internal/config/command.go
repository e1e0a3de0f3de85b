package config

import (
	"mvdan.cc/sh/v3/shell"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
	"git.home.luguber.info/inful/bookgen/internal/inspect"
)

// InspectCommand returns the introspection tool invocation without subcommand.
func (c *Config) InspectCommand() (inspect.Command, error) {
	return parseCommand("tools.inspect", c.Tools.Inspect, c.Tools.Workdir)
}

// SiteCommand returns the static-site build invocation, run inside the book directory.
func (c *Config) SiteCommand() (inspect.Command, error) {
	return parseCommand("tools.site", c.Tools.Site, c.Paths.BookDir)
}

// parseCommand splits line into argv using shell quoting rules.
func parseCommand(key, line, dir string) (inspect.Command, error) {
	fields, err := shell.Fields(line, nil)
	if err != nil {
		return inspect.Command{}, errors.WrapError(err, errors.CategoryConfig, "invalid tool command").
			Fatal().
			WithContext("key", key).
			Build()
	}
	if len(fields) == 0 {
		return inspect.Command{}, errors.ConfigError("empty tool command").WithContext("key", key).Build()
	}
	return inspect.Command{Name: fields[0], Args: fields[1:], Dir: dir}, nil
}
