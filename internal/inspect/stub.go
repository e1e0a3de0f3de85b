package inspect

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// StubRunner is an in-memory Runner keyed by the command's argument line.
// It records every call so tests can assert invocation order.
type StubRunner struct {
	Outputs  map[string]string // args joined by spaces -> stdout
	Failures map[string]error  // args joined by spaces -> error returned after output
	Calls    []Command
}

// Run implements Runner.
func (s *StubRunner) Run(_ context.Context, cmd Command, stdout io.Writer) error {
	s.Calls = append(s.Calls, cmd)
	key := strings.Join(cmd.Args, " ")
	if out, ok := s.Outputs[key]; ok {
		if _, err := io.WriteString(stdout, out); err != nil {
			return err
		}
	}
	if err, ok := s.Failures[key]; ok {
		return err
	}
	if _, ok := s.Outputs[key]; !ok {
		return fmt.Errorf("stub: no output registered for %q", key)
	}
	return nil
}
