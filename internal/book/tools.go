package book

import (
	"context"
	"io"
	"time"

	"git.home.luguber.info/inful/bookgen/internal/inspect"
	"git.home.luguber.info/inful/bookgen/internal/metrics"
)

// timedRunner reports the duration of every tool invocation to a Recorder.
type timedRunner struct {
	runner   inspect.Runner
	recorder metrics.Recorder
}

func (t timedRunner) Run(ctx context.Context, cmd inspect.Command, stdout io.Writer) error {
	start := time.Now()
	err := t.runner.Run(ctx, cmd, stdout)
	t.recorder.ObserveToolDuration(cmd.Name, time.Since(start), err == nil)
	return err
}
