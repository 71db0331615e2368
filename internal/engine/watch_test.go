package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Watcher:
// - Only .nix file events and directory changes are considered relevant
// - Hidden files never trigger a re-run
// - Watch() returns once the context is cancelled

func TestWatcher_RelevantEvents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "modules"), 0755))

	w, err := NewWatcher(New(Config{RootDir: dir}), nil)
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.True(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "mod.nix"), Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, ".hidden.nix"), Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "notes.md"), Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "modules"), Op: fsnotify.Create}))
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWatcher(New(Config{RootDir: dir}), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}
