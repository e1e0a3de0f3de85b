package commands

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/bookgen/internal/book"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/metrics"
	"git.home.luguber.info/inful/bookgen/internal/watch"
)

// WatchCmd rebuilds the book on every change to the examples or configuration.
type WatchCmd struct {
	Debounce    time.Duration `help:"Quiet period before a rebuild starts" default:"300ms"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9090)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	ctx, stop := signalContext()
	defer stop()

	if w.MetricsAddr != "" {
		prom := metrics.NewPrometheusRecorder(nil)
		rec = prom
		shutdown := serveMetrics(w.MetricsAddr, prom)
		defer shutdown()
	}

	files := []string{root.Config}
	if cfg.Manifest != "" {
		files = append(files, cfg.Manifest)
	}
	src := cfg.SrcPath()

	// configuration is reloaded on every run so edits take effect
	rebuild := func(ctx context.Context) error {
		cfg, err := root.loadConfig()
		if err != nil {
			return err
		}
		m, err := loadManifest(cfg)
		if err != nil {
			return err
		}
		asm, err := newAssembler(g, cfg, m, rec)
		if err != nil {
			return err
		}
		_, err = asm.Run(ctx)
		return err
	}

	watcher, err := watch.New(watch.Options{
		Dirs:         []string{cfg.Paths.ExamplesDir},
		Files:        files,
		Ignore:       []string{src, book.StagingDir(src)},
		Debounce:     w.Debounce,
		InitialBuild: true,
	}, rebuild)
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

// serveMetrics starts an HTTP server for /metrics and returns its shutdown function.
func serveMetrics(addr string, prom *metrics.PrometheusRecorder) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", prom.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		slog.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
