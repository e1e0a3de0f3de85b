// Package watch rebuilds the book whenever example sources or the
// configuration change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// Rebuilder runs one full generation.
type Rebuilder func(ctx context.Context) error

// Options selects what is watched.
type Options struct {
	Dirs   []string // watched recursively
	Files  []string // watched individually (config, manifest)
	Ignore []string // trees whose changes never trigger a rebuild (generated output)

	Debounce     time.Duration
	InitialBuild bool
}

// Watcher turns filesystem events into sequential rebuilds.
type Watcher struct {
	opts    Options
	rebuild Rebuilder
	files   map[string]struct{}
	dirs    []string
	ignore  []string
}

// New resolves the watched paths of opts.
func New(opts Options, rebuild Rebuilder) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	w := &Watcher{opts: opts, rebuild: rebuild, files: map[string]struct{}{}}
	for _, f := range opts.Files {
		abs, err := absPath(f)
		if err != nil {
			return nil, err
		}
		w.files[abs] = struct{}{}
	}
	for _, d := range opts.Dirs {
		abs, err := absPath(d)
		if err != nil {
			return nil, err
		}
		w.dirs = append(w.dirs, abs)
	}
	for _, d := range opts.Ignore {
		abs, err := absPath(d)
		if err != nil {
			return nil, err
		}
		w.ignore = append(w.ignore, abs)
	}
	return w, nil
}

func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileAccess, "failed to resolve watch path").
			Fatal().
			WithContext("path", p).
			Build()
	}
	return abs, nil
}

// Run watches until ctx is done. Rebuild failures are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to create file watcher").Fatal().Build()
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range w.dirs {
		if err := addDirsRecursive(fw, dir); err != nil {
			return err
		}
	}
	for file := range w.files {
		// the parent directory survives editors that replace the file
		if err := fw.Add(filepath.Dir(file)); err != nil {
			return errors.WrapError(err, errors.CategoryFileAccess, "failed to watch directory").
				Fatal().
				WithContext("path", filepath.Dir(file)).
				Build()
		}
	}

	rebuildReq, trigger, stop := newDebouncer(w.opts.Debounce)
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildLoop(ctx, rebuildReq)
	}()

	if w.opts.InitialBuild {
		rebuildReq <- struct{}{}
	}
	slog.Info("Watching for changes", slog.Any("dirs", w.dirs), logfields.Count(len(w.files)))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, ev, trigger)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// rebuildLoop is the only caller of the Rebuilder, so runs never overlap. A
// change during a run leaves one request queued, which becomes the next run.
func (w *Watcher) rebuildLoop(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			start := time.Now()
			slog.Info("Change detected; rebuilding book")
			if err := w.rebuild(ctx); err != nil {
				slog.Warn("Rebuild failed", logfields.Error(err), logfields.Duration(time.Since(start)))
				continue
			}
			slog.Info("Rebuild finished", logfields.Duration(time.Since(start)))
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() && w.underDir(ev.Name) {
			_ = addDirsRecursive(fw, ev.Name)
		}
	}
	if !w.Relevant(ev.Name) {
		return
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// Relevant reports whether a change to path should trigger a rebuild.
func (w *Watcher) Relevant(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, ig := range w.ignore {
		if within(abs, ig) {
			return false
		}
	}
	if _, ok := w.files[abs]; ok {
		return true
	}
	return w.underDir(abs) && !shouldIgnoreEvent(abs)
}

func (w *Watcher) underDir(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, d := range w.dirs {
		if within(abs, d) {
			return true
		}
	}
	return false
}

func within(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

// newDebouncer returns a request channel and a trigger that sends on it once
// d has passed without another trigger.
func newDebouncer(d time.Duration) (chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return rebuildReq, trigger, stop
}

func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return errors.WrapError(err, errors.CategoryFileAccess, "failed to watch directory").
					Fatal().
					WithContext("path", root).
					Build()
			}
			return nil
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for editor and OS droppings.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
