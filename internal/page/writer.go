package page

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
)

// Writer writes generated pages beneath a root directory. Every page is opened
// in truncate mode, so a page never mixes content of two runs.
type Writer struct {
	root    string
	written []string
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{root: filepath.Clean(dir)}
}

// Root returns the directory pages are written into.
func (w *Writer) Root() string { return w.root }

// Written lists the page names written so far, in write order.
func (w *Writer) Written() []string {
	out := make([]string, len(w.written))
	copy(out, w.written)
	return out
}

// WriteFile writes content to the named page, replacing any previous file.
func (w *Writer) WriteFile(name, content string) error {
	f, err := w.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Create opens the named page for streaming output. The caller must Close it.
func (w *Writer) Create(name string) (*File, error) {
	path := filepath.Join(w.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileAccess, "failed to create page directory").
			Fatal().
			WithContext("page", name).
			WithContext("path", path).
			Build()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileAccess, "failed to open page for writing").
			Fatal().
			WithContext("page", name).
			WithContext("path", path).
			Build()
	}
	w.written = append(w.written, name)
	slog.Debug("Opened page", logfields.Page(name), logfields.Path(path))
	return &File{name: name, path: path, f: f}, nil
}

// File is an open page. Write and Close errors are reported as file access errors.
type File struct {
	name string
	path string
	f    *os.File
}

// Name returns the page name relative to the writer root.
func (p *File) Name() string { return p.name }

// Path returns the absolute or root-relative filesystem path of the page.
func (p *File) Path() string { return p.path }

func (p *File) Write(b []byte) (int, error) {
	n, err := p.f.Write(b)
	if err != nil {
		return n, errors.WrapError(err, errors.CategoryFileAccess, "failed to write page").
			Fatal().
			WithContext("page", p.name).
			WithContext("path", p.path).
			Build()
	}
	return n, nil
}

// Close flushes and closes the page.
func (p *File) Close() error {
	if err := p.f.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryFileAccess, "failed to close page").
			Fatal().
			WithContext("page", p.name).
			WithContext("path", p.path).
			Build()
	}
	return nil
}
