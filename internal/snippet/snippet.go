// Package snippet loads runnable example sources as ordered lines and strips
// test-only assertion lines from them.
package snippet

import (
	"bufio"
	stderrors "errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

// DefaultMarker is the substring identifying assertion lines in example sources.
const DefaultMarker = "assert_eq"

// Snippet is an ordered sequence of lines, each keeping its original terminator.
type Snippet []string

// Text concatenates the lines without adding separators.
func (s Snippet) Text() string {
	return strings.Join(s, "")
}

// Options controls how a snippet is loaded.
type Options struct {
	StripAsserts bool
	Marker       string
}

func (o Options) marker() string {
	if o.Marker == "" {
		return DefaultMarker
	}
	return o.Marker
}

// Load reads the file at path and returns its lines, dropping lines that contain
// the assertion marker when StripAsserts is set.
func Load(path string, opts Options) (Snippet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileAccess, "failed to open example source").
			Fatal().
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()

	lines, err := ReadLines(f)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryEncoding) {
			return nil, errors.WrapError(err, errors.CategoryEncoding, "example source is not valid UTF-8 text").
				Fatal().
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileAccess, "failed to read example source").
			Fatal().
			WithContext("path", path).
			Build()
	}
	if opts.StripAsserts {
		lines = Strip(lines, opts.marker())
	}
	return lines, nil
}

// ReadLines splits r into lines, keeping "\n" terminators. A final line without
// terminator is returned as is; empty input yields an empty snippet.
func ReadLines(r io.Reader) (Snippet, error) {
	br := bufio.NewReader(r)
	var lines Snippet
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if line != "" {
			if !utf8.ValidString(line) {
				return nil, errors.EncodingError("invalid UTF-8 sequence").WithContext("line", n).Build()
			}
			lines = append(lines, line)
		}
		if stderrors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Strip returns the lines that do not contain marker, preserving order.
// Stripping an already stripped snippet returns an equal snippet.
func Strip(lines Snippet, marker string) Snippet {
	out := make(Snippet, 0, len(lines))
	for _, line := range lines {
		if strings.Contains(line, marker) {
			continue
		}
		out = append(out, line)
	}
	return out
}
