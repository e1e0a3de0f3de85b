package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyExample    = "example"
	KeyTopic      = "topic"
	KeyModule     = "module"
	KeyPage       = "page"
	KeyPath       = "path"
	KeyTool       = "tool"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr     { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func Example(key string) slog.Attr  { return slog.String(KeyExample, key) }
func Topic(name string) slog.Attr   { return slog.String(KeyTopic, name) }
func Module(name string) slog.Attr  { return slog.String(KeyModule, name) }
func Page(name string) slog.Attr    { return slog.String(KeyPage, name) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Tool(name string) slog.Attr    { return slog.String(KeyTool, name) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
