package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		path   string
		ignore bool
	}{
		{"examples/factorial.nbt", false},
		{"examples/.factorial.nbt.swp", true},
		{"examples/factorial.nbt~", true},
		{"examples/#factorial.nbt#", true},
		{"examples/x.swx", true},
		{"examples/Thumbs.db", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ignore, shouldIgnoreEvent(tt.path), tt.path)
	}
}

func TestRelevant(t *testing.T) {
	root := t.TempDir()
	examples := filepath.Join(root, "examples")
	cfg := filepath.Join(root, "bookgen.yaml")
	w, err := New(Options{
		Dirs:   []string{examples},
		Files:  []string{cfg},
		Ignore: []string{filepath.Join(examples, "out")},
	}, func(context.Context) error { return nil })
	require.NoError(t, err)

	assert.True(t, w.Relevant(filepath.Join(examples, "factorial.nbt")))
	assert.True(t, w.Relevant(filepath.Join(examples, "nested", "a.nbt")))
	assert.True(t, w.Relevant(cfg))
	assert.False(t, w.Relevant(filepath.Join(root, "other.yaml")))
	assert.False(t, w.Relevant(filepath.Join(examples, ".hidden")))
	assert.False(t, w.Relevant(filepath.Join(examples, "out", "page.md")))
	assert.False(t, w.Relevant(examples+"-old/x.nbt"))
}

func TestDebouncerCoalesces(t *testing.T) {
	req, trigger, stop := newDebouncer(30 * time.Millisecond)
	defer stop()

	for range 5 {
		trigger()
	}
	select {
	case <-req:
	case <-time.After(time.Second):
		t.Fatal("expected a rebuild request")
	}
	select {
	case <-req:
		t.Fatal("burst produced more than one request")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRunRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	var runs atomic.Int32
	var concurrent, maxConcurrent atomic.Int32
	w, err := New(Options{Dirs: []string{dir}, Debounce: 20 * time.Millisecond, InitialBuild: true},
		func(context.Context) error {
			n := concurrent.Add(1)
			if n > maxConcurrent.Load() {
				maxConcurrent.Store(n)
			}
			time.Sleep(10 * time.Millisecond)
			concurrent.Add(-1)
			runs.Add(1)
			return nil
		})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "factorial.nbt"), []byte("1\n"), 0o600))
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Equal(t, int32(1), maxConcurrent.Load())
}

func TestRunMissingDirectory(t *testing.T) {
	w, err := New(Options{Dirs: []string{filepath.Join(t.TempDir(), "missing")}}, func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Error(t, w.Run(context.Background()))
}
