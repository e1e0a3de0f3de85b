package commands

import (
	"fmt"

	"git.home.luguber.info/inful/bookgen/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Atomic   bool   `help:"Stage pages and publish them only if every generation stage succeeds"`
	SkipSite bool   `name:"skip-site" help:"Generate pages without running the site build"`
	NoVerify bool   `name:"no-verify" help:"Skip the checks of generated pages"`
	Report   string `help:"Write the JSON build report to this path (overrides build.report_file)"`
	Metrics  string `help:"Write Prometheus metrics in textfile format to this path (overrides build.metrics_file)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if b.Atomic {
		cfg.Build.Atomic = true
	}
	if b.SkipSite {
		cfg.Build.SkipSite = true
	}
	if b.NoVerify {
		off := false
		cfg.Build.Verify = &off
	}
	if b.Report != "" {
		cfg.Build.ReportFile = b.Report
	}
	if b.Metrics != "" {
		cfg.Build.MetricsFile = b.Metrics
	}

	m, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Build.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		rec = prom
	}

	asm, err := newAssembler(g, cfg, m, rec)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	report, runErr := asm.Run(ctx)

	if prom != nil {
		if err := prom.WriteTextfile(cfg.Build.MetricsFile); err != nil && runErr == nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}
	_, _ = fmt.Fprintln(g.Stdout, report.Summary())
	for _, f := range report.Findings {
		_, _ = fmt.Fprintf(g.Stdout, "warning: %s\n", f)
	}
	return nil
}
