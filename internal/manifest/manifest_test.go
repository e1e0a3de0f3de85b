package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

func TestDefaultManifest(t *testing.T) {
	m := Default()
	require.NoError(t, m.Validate())
	require.Len(t, m.Examples, 16)
	require.Len(t, m.Topics, 5)

	assert.Equal(t, "acidity", m.Examples[0].Key)
	factorial := m.Examples[3]
	assert.Equal(t, "factorial", factorial.Key)
	assert.False(t, factorial.StripAsserts)
	assert.True(t, factorial.RunLink)

	syntax := m.Examples[len(m.Examples)-1]
	assert.Equal(t, "numbat_syntax", syntax.Key)
	assert.False(t, syntax.RunLink)

	assert.Equal(t, []string{"math", "lists", "strings", "datetime", "other"},
		[]string{m.Topics[0].Name, m.Topics[1].Name, m.Topics[2].Name, m.Topics[3].Name, m.Topics[4].Name})
	assert.Len(t, m.Topics[0].Sections, 10)
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Examples[0].Title = "changed"
	a.Topics[0].Sections[0].Modules[0] = "changed"

	b := Default()
	assert.Equal(t, "Acidity", b.Examples[0].Title)
	assert.Equal(t, "core::functions", b.Topics[0].Sections[0].Modules[0])
}

func TestLoadYAMLDefaultsFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	content := `
examples:
  - key: recipe
    title: Recipe
  - key: syntax
    title: Syntax
    strip_asserts: false
    run_link: false
topics:
  - name: lists
    title: List-related functions
    sections:
      - modules: [core::lists]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Example{Key: "recipe", Title: "Recipe", StripAsserts: true, RunLink: true}, m.Examples[0])
	assert.Equal(t, Example{Key: "syntax", Title: "Syntax", StripAsserts: false, RunLink: false}, m.Examples[1])
	assert.Equal(t, []string{"core::lists"}, m.Topics[0].Sections[0].Modules)
}

func TestMarshalRoundTripsThroughLoad(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "m.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), m)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		m    Manifest
	}{
		{"empty key", Manifest{Examples: []Example{{Title: "x"}}}},
		{"empty title", Manifest{Examples: []Example{{Key: "x"}}}},
		{"duplicate key", Manifest{Examples: []Example{{Key: "x", Title: "X"}, {Key: "x", Title: "Y"}}}},
		{"topic without name", Manifest{Topics: []TopicDocument{{Title: "T"}}}},
		{"topic without title", Manifest{Topics: []TopicDocument{{Name: "t"}}}},
		{"duplicate topic", Manifest{Topics: []TopicDocument{{Name: "t", Title: "T"}, {Name: "t", Title: "U"}}}},
		{"section without modules", Manifest{Topics: []TopicDocument{{Name: "t", Title: "T", Sections: []Section{{Title: "S"}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryManifest))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileAccess))
}
