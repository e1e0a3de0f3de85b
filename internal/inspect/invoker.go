package inspect

import (
	"bytes"
	"context"
	"io"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

const (
	unitsKeyword     = "units"
	functionsKeyword = "functions"
)

// Streamer appends introspection output to an open stream.
type Streamer interface {
	StreamUnits(ctx context.Context, w io.Writer) error
	StreamFunctions(ctx context.Context, w io.Writer, module string) error
}

// Invoker shells out to the introspection tool. Base is the tool invocation
// without the subcommand, e.g. `cargo run --release --quiet --example=inspect`.
type Invoker struct {
	Runner Runner
	Base   Command
}

// NewInvoker returns an Invoker running base through runner.
func NewInvoker(runner Runner, base Command) *Invoker {
	return &Invoker{Runner: runner, Base: base}
}

// UnitsCommand is the invocation listing all units.
func (i *Invoker) UnitsCommand() Command { return i.Base.With(unitsKeyword) }

// FunctionsCommand is the invocation listing the functions of module.
func (i *Invoker) FunctionsCommand(module string) Command {
	return i.Base.With("--", functionsKeyword, module)
}

// Units returns the unit listing.
func (i *Invoker) Units(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := i.StreamUnits(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Functions returns the function listing of module.
func (i *Invoker) Functions(ctx context.Context, module string) (string, error) {
	var buf bytes.Buffer
	if err := i.StreamFunctions(ctx, &buf, module); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StreamUnits appends the unit listing to w.
func (i *Invoker) StreamUnits(ctx context.Context, w io.Writer) error {
	cmd := i.UnitsCommand()
	if err := i.Runner.Run(ctx, cmd, w); err != nil {
		return i.toolError(err, cmd).WithContext("category", unitsKeyword).Build()
	}
	return nil
}

// StreamFunctions appends the function listing of module to w. Output already
// written before a failure stays in w.
func (i *Invoker) StreamFunctions(ctx context.Context, w io.Writer, module string) error {
	cmd := i.FunctionsCommand(module)
	if err := i.Runner.Run(ctx, cmd, w); err != nil {
		return i.toolError(err, cmd).WithContext("module", module).Build()
	}
	return nil
}

func (i *Invoker) toolError(err error, cmd Command) *errors.ErrorBuilder {
	// write failures on the destination page keep their own classification
	if errors.HasCategory(err, errors.CategoryFileAccess) {
		return errors.WrapError(err, errors.CategoryFileAccess, "failed to write introspection output").Fatal()
	}
	return errors.WrapError(err, errors.CategoryExternalTool, "introspection tool failed").
		Fatal().
		WithContext("tool", cmd.Name).
		WithContext("command", cmd.String())
}
