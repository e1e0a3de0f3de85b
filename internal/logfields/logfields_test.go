package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Stage", KeyStage, "examples", Stage("examples")},
		{"Example", KeyExample, "factorial", Example("factorial")},
		{"Topic", KeyTopic, "math", Topic("math")},
		{"Module", KeyModule, "core::lists", Module("core::lists")},
		{"Page", KeyPage, "list-units.md", Page("list-units.md")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Tool", KeyTool, "mdbook", Tool("mdbook")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Errorf("%s: expected key %q, got %q", c.name, c.attrKey, c.attr.Key)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Errorf("%s: expected value %q, got %q", c.name, c.attrVal, c.attr.Value.String())
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if Count(3).Value.Int64() != 3 {
		t.Error("expected count 3")
	}
	if ms := Duration(1500 * time.Microsecond).Value.Float64(); ms != 1.5 {
		t.Errorf("expected 1.5ms, got %v", ms)
	}
}

func TestErrorAttr(t *testing.T) {
	if Error(nil).Value.String() != "" {
		t.Error("expected empty value for nil error")
	}
	if Error(errors.New("boom")).Value.String() != "boom" {
		t.Error("expected error text")
	}
}
