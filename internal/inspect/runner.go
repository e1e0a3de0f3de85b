// Package inspect invokes the external introspection tool that lists units and
// the functions defined in a module.
package inspect

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/bookgen/internal/logfields"
)

// Command is a subprocess invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// With returns a copy of c with extra arguments appended.
func (c Command) With(args ...string) Command {
	out := Command{Name: c.Name, Dir: c.Dir, Args: make([]string, 0, len(c.Args)+len(args))}
	out.Args = append(out.Args, c.Args...)
	out.Args = append(out.Args, args...)
	return out
}

// String renders the command line for logs and error context.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner runs a command to completion, copying its standard output to stdout.
type Runner interface {
	Run(ctx context.Context, cmd Command, stdout io.Writer) error
}

// ExecRunner runs commands as real subprocesses. There is no timeout: the call
// blocks until the child exits.
type ExecRunner struct {
	Stderr io.Writer
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, c Command, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = stdout
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	slog.Debug("Running external tool", logfields.Tool(c.Name), slog.String("command", c.String()), logfields.Path(c.Dir))
	return cmd.Run()
}
