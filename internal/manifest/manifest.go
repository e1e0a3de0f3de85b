// Package manifest defines the example manifest and the topic documents that
// drive a book generation run.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

// Example is one entry of the example manifest. Key names the source file
// (`<examples-dir>/<key>.<ext>`) and the page (`example-<key>.md`).
type Example struct {
	Key          string `yaml:"key"`
	Title        string `yaml:"title"`
	StripAsserts bool   `yaml:"strip_asserts"`
	RunLink      bool   `yaml:"run_link"`
}

// Section groups module identifiers under an optional heading.
type Section struct {
	Title   string   `yaml:"title,omitempty"`
	Modules []string `yaml:"modules"`
}

// TopicDocument describes one generated function-list page.
type TopicDocument struct {
	Name         string    `yaml:"name"`
	Title        string    `yaml:"title"`
	Introduction string    `yaml:"introduction,omitempty"`
	Sections     []Section `yaml:"sections"`
}

// Manifest is the immutable input of a run: examples and topic documents, both
// processed in declaration order.
type Manifest struct {
	Examples []Example       `yaml:"examples"`
	Topics   []TopicDocument `yaml:"topics"`
}

// exampleYAML lets strip_asserts and run_link default to true when omitted.
type exampleYAML struct {
	Key          string `yaml:"key"`
	Title        string `yaml:"title"`
	StripAsserts *bool  `yaml:"strip_asserts"`
	RunLink      *bool  `yaml:"run_link"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Example) UnmarshalYAML(node *yaml.Node) error {
	var raw exampleYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*e = Example{Key: raw.Key, Title: raw.Title, StripAsserts: true, RunLink: true}
	if raw.StripAsserts != nil {
		e.StripAsserts = *raw.StripAsserts
	}
	if raw.RunLink != nil {
		e.RunLink = *raw.RunLink
	}
	return nil
}

// Load reads a YAML manifest from path and validates it.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, errors.WrapError(err, errors.CategoryFileAccess, "failed to read manifest").
			Fatal().
			WithContext("path", path).
			Build()
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, errors.WrapError(err, errors.CategoryManifest, "failed to parse manifest").
			Fatal().
			WithContext("path", path).
			Build()
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Marshal renders the manifest as YAML.
func (m Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Validate rejects manifests that cannot produce a well-formed set of pages.
func (m Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Examples))
	for i, ex := range m.Examples {
		if ex.Key == "" {
			return errors.ManifestError("example has no key").WithContext("index", i).Build()
		}
		if ex.Title == "" {
			return errors.ManifestError("example has no title").WithContext("example", ex.Key).Build()
		}
		if _, dup := seen[ex.Key]; dup {
			return errors.ManifestError("duplicate example key").WithContext("example", ex.Key).Build()
		}
		seen[ex.Key] = struct{}{}
	}
	topics := make(map[string]struct{}, len(m.Topics))
	for i, doc := range m.Topics {
		if doc.Name == "" {
			return errors.ManifestError("topic document has no name").WithContext("index", i).Build()
		}
		if doc.Title == "" {
			return errors.ManifestError("topic document has no title").WithContext("topic", doc.Name).Build()
		}
		if _, dup := topics[doc.Name]; dup {
			return errors.ManifestError("duplicate topic document").WithContext("topic", doc.Name).Build()
		}
		topics[doc.Name] = struct{}{}
		for j, s := range doc.Sections {
			if len(s.Modules) == 0 {
				return errors.ManifestError("section has no modules").
					WithContext("topic", doc.Name).
					WithContext("section", sectionLabel(s, j)).
					Build()
			}
		}
	}
	return nil
}

func sectionLabel(s Section, index int) string {
	if s.Title != "" {
		return s.Title
	}
	return fmt.Sprintf("#%d", index+1)
}
