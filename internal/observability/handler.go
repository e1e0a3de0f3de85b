package observability

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// LogFormat selects the slog handler used by the CLI.
type LogFormat string

const (
	LogFormatText   LogFormat = "text"
	LogFormatJSON   LogFormat = "json"
	LogFormatPretty LogFormat = "pretty"
)

// ParseLogFormat normalizes a user supplied format name.
func ParseLogFormat(s string) (LogFormat, error) {
	switch f := LogFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", LogFormatText:
		return LogFormatText, nil
	case LogFormatJSON, LogFormatPretty:
		return f, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want text, json or pretty)", s)
	}
}

// NewLogger builds a logger writing to w in the requested format.
func NewLogger(w io.Writer, format LogFormat, level slog.Level) *slog.Logger {
	switch format {
	case LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	case LogFormatPretty:
		return slog.New(charmlog.NewWithOptions(w, charmlog.Options{
			Prefix:          "bookgen",
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
		}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	}
}
