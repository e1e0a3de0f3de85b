package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "bookgen.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "bookgen.yaml" {
			t.Errorf("expected context file=bookgen.yaml, got %v", file)
		}
	})

	t.Run("Message names context", func(t *testing.T) {
		cause := errors.New("exit status 101")
		err := ExternalToolError("introspection failed").
			WithCause(cause).
			WithContext("module", "core::functions").
			Build()

		msg := err.Error()
		if !strings.Contains(msg, "module=core::functions") {
			t.Errorf("expected module in message, got %q", msg)
		}
		if !strings.HasSuffix(msg, ": exit status 101") {
			t.Errorf("expected cause suffix, got %q", msg)
		}
		if !errors.Is(err, cause) {
			t.Error("expected cause to be reachable through Unwrap")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("stage examples: %w", FileAccessError("read snippet").Build())

		if !IsClassified(err) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(err, CategoryFileAccess) {
			t.Error("expected file_access category")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to map to internal")
		}
	})
}

func TestConvenienceConstructorsAreFatal(t *testing.T) {
	builders := map[ErrorCategory]*ErrorBuilder{
		CategoryFileAccess:   FileAccessError("x"),
		CategoryExternalTool: ExternalToolError("x"),
		CategoryEncoding:     EncodingError("x"),
		CategoryConfig:       ConfigError("x"),
		CategoryValidation:   ValidationError("x"),
		CategoryManifest:     ManifestError("x"),
		CategoryInternal:     InternalError("x"),
	}
	for category, b := range builders {
		err := b.Build()
		if err.Category() != category {
			t.Errorf("expected %s, got %s", category, err.Category())
		}
		if !err.IsFatal() {
			t.Errorf("%s: expected fatal severity", category)
		}
	}
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	base := FileAccessError("write page").WithContext("page", "a.md").Build()
	derived := base.WithContext("path", "/tmp/a.md")

	if _, ok := base.Context().GetString("path"); ok {
		t.Error("original error context was mutated")
	}
	if p, _ := derived.Context().GetString("page"); p != "a.md" {
		t.Errorf("expected derived error to keep page context, got %q", p)
	}
}
