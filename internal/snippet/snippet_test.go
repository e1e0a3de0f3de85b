package snippet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "example.nbt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadKeepsLinesWhenStripDisabled(t *testing.T) {
	path := writeSource(t, "fn factorial(n) = n!\nassert_eq(factorial(4), 24)\n")

	lines, err := Load(path, Options{StripAsserts: false})
	require.NoError(t, err)
	assert.Equal(t, Snippet{"fn factorial(n) = n!\n", "assert_eq(factorial(4), 24)\n"}, lines)
}

func TestLoadStripsAssertions(t *testing.T) {
	path := writeSource(t, "let a = 1\nassert_eq(a, 1)\nprint(a)\n")

	lines, err := Load(path, Options{StripAsserts: true})
	require.NoError(t, err)
	assert.Equal(t, Snippet{"let a = 1\n", "print(a)\n"}, lines)
}

func TestLoadCustomMarker(t *testing.T) {
	path := writeSource(t, "keep\n# test-only\nkeep too")

	lines, err := Load(path, Options{StripAsserts: true, Marker: "test-only"})
	require.NoError(t, err)
	assert.Equal(t, Snippet{"keep\n", "keep too"}, lines)
}

func TestLoadPreservesTerminators(t *testing.T) {
	path := writeSource(t, "a\r\nb\n\nc")

	lines, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, Snippet{"a\r\n", "b\n", "\n", "c"}, lines)
	assert.Equal(t, "a\r\nb\n\nc", lines.Text())
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeSource(t, "")

	lines, err := Load(path, Options{StripAsserts: true})
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, "", lines.Text())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.nbt"), Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileAccess))
	assert.Contains(t, err.Error(), "missing.nbt")
}

func TestLoadInvalidUTF8(t *testing.T) {
	path := writeSource(t, "ok\n\xff\xfe\n")

	_, err := Load(path, Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryEncoding))
}

func TestStripIsIdempotent(t *testing.T) {
	inputs := []Snippet{
		{},
		{"assert_eq(1, 1)\n"},
		{"a\n", "assert_eq(a, a)\n", "b\n", "  assert_eq(b, b)"},
		{"no markers here\n"},
	}
	for _, in := range inputs {
		once := Strip(in, DefaultMarker)
		twice := Strip(once, DefaultMarker)
		assert.Equal(t, once, twice)
		for _, line := range once {
			assert.False(t, strings.Contains(line, DefaultMarker))
		}
	}
}

func TestReadLinesLongLine(t *testing.T) {
	long := strings.Repeat("x", 200_000)
	lines, err := ReadLines(strings.NewReader(long + "\nend\n"))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 200_001)
}
