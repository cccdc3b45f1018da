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

func TestNewWatcher_NoExistingPaths(t *testing.T) {
	deb, err := NewDebouncer(DebouncerConfig{QuietWindow: 10 * time.Millisecond})
	require.NoError(t, err)

	_, err = NewWatcher(deb, WatcherOptions{Paths: []string{filepath.Join(t.TempDir(), "missing")}})
	require.Error(t, err)
}

func TestWatcher_IgnoredPaths(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "posts.json")
	deb, err := NewDebouncer(DebouncerConfig{QuietWindow: 10 * time.Millisecond})
	require.NoError(t, err)
	w, err := NewWatcher(deb, WatcherOptions{Paths: []string{dir}, Ignore: []string{out}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	assert.True(t, w.ignored(out))
	assert.True(t, w.ignored(filepath.Join(dir, ".hidden.md")))
	assert.True(t, w.ignored(filepath.Join(dir, "posts.json.tmp")))
	assert.True(t, w.ignored(filepath.Join(dir, "draft.md~")))
	assert.False(t, w.ignored(filepath.Join(dir, "docs", "page.md")))
}

func TestRun_RebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o750))
	out := filepath.Join(dir, "posts.json")

	triggers := make(chan Trigger, 20)
	var calls atomic.Int32
	build := func(_ context.Context, trig Trigger) error {
		calls.Add(1)
		// Writing the ignored output must not cause another rebuild.
		if err := os.WriteFile(out, []byte("{}"), 0o600); err != nil {
			return err
		}
		triggers <- trig
		return nil
	}

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Options{
			Paths:    []string{dir},
			Ignore:   []string{out},
			Debounce: 30 * time.Millisecond,
		}, build)
	}()

	select {
	case got := <-triggers:
		assert.Equal(t, "initial", got.DebounceCause)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for initial build")
	}

	// Give the watcher a moment to register before changing files.
	time.Sleep(100 * time.Millisecond)

	nested := filepath.Join(dir, "docs", "guides")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	time.Sleep(100 * time.Millisecond)
	page := filepath.Join(nested, "page.md")
	require.NoError(t, os.WriteFile(page, []byte("---\ntitle: Page\n---\n"), 0o600))

	require.Eventually(t, func() bool {
		for {
			select {
			case got := <-triggers:
				if got.LastPath == page {
					return true
				}
			default:
				return false
			}
		}
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
