package config

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

// Validate checks a configuration after defaults have been applied.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Example.Language) == "" {
		return errors.ConfigError("example.language must not be blank").Build()
	}
	if c.Example.AssertMarker == "" {
		return errors.ConfigError("example.assert_marker must not be empty").Build()
	}
	u, err := url.Parse(c.Example.PlaygroundURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.ConfigError("example.playground_url must be an absolute URL").
			WithContext("value", c.Example.PlaygroundURL).
			Build()
	}
	if strings.ContainsAny(c.Paths.ExampleExt, "/\\") {
		return errors.ConfigError("paths.example_ext must be a bare extension").
			WithContext("value", c.Paths.ExampleExt).
			Build()
	}
	if _, err := c.InspectCommand(); err != nil {
		return err
	}
	if _, err := c.SiteCommand(); err != nil {
		return err
	}
	return nil
}
