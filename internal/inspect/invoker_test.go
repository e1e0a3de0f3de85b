package inspect

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

var base = Command{Name: "cargo", Args: []string{"run", "--release", "--quiet", "--example=inspect"}}

func TestCommands(t *testing.T) {
	inv := NewInvoker(&StubRunner{}, base)

	assert.Equal(t, "cargo run --release --quiet --example=inspect units", inv.UnitsCommand().String())
	assert.Equal(t, "cargo run --release --quiet --example=inspect -- functions core::lists", inv.FunctionsCommand("core::lists").String())
	// base must not be mutated by With
	assert.Len(t, inv.Base.Args, 4)
}

func TestUnitsAndFunctions(t *testing.T) {
	stub := &StubRunner{Outputs: map[string]string{
		"run --release --quiet --example=inspect units":                         "| Unit |\n",
		"run --release --quiet --example=inspect -- functions core::functions": "FOO\n",
	}}
	inv := NewInvoker(stub, base)

	units, err := inv.Units(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "| Unit |\n", units)

	funcs, err := inv.Functions(context.Background(), "core::functions")
	require.NoError(t, err)
	assert.Equal(t, "FOO\n", funcs)
	assert.Len(t, stub.Calls, 2)
}

func TestStreamAppends(t *testing.T) {
	stub := &StubRunner{Outputs: map[string]string{
		"run --release --quiet --example=inspect -- functions a": "A\n",
		"run --release --quiet --example=inspect -- functions b": "B\n",
	}}
	inv := NewInvoker(stub, base)

	buf := bytes.NewBufferString("header\n")
	require.NoError(t, inv.StreamFunctions(context.Background(), buf, "a"))
	require.NoError(t, inv.StreamFunctions(context.Background(), buf, "b"))
	assert.Equal(t, "header\nA\nB\n", buf.String())
}

func TestFailureNamesModule(t *testing.T) {
	stub := &StubRunner{
		Outputs:  map[string]string{"run --release --quiet --example=inspect -- functions math::geometry": "partial\n"},
		Failures: map[string]error{"run --release --quiet --example=inspect -- functions math::geometry": stderrors.New("exit status 101")},
	}
	inv := NewInvoker(stub, base)

	var buf bytes.Buffer
	err := inv.StreamFunctions(context.Background(), &buf, "math::geometry")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryExternalTool))
	assert.Contains(t, err.Error(), "math::geometry")

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	module, _ := classified.Context().GetString("module")
	assert.Equal(t, "math::geometry", module)
	// partial output is not hidden
	assert.Equal(t, "partial\n", buf.String())
}

func TestUnitsFailureNamesCategory(t *testing.T) {
	inv := NewInvoker(&StubRunner{}, base)
	_, err := inv.Units(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category=units")
}

func TestExecRunnerMissingBinary(t *testing.T) {
	inv := NewInvoker(ExecRunner{}, Command{Name: "bookgen-no-such-tool-xyz"})
	_, err := inv.Functions(context.Background(), "core::lists")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryExternalTool))
}
