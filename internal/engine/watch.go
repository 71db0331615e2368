package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs the extraction pipeline whenever a .nix file under
// the root changes, debouncing bursts of filesystem events.
type Watcher struct {
	engine       *Engine
	rootDir      string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	onResult     func(*Result)
}

// NewWatcher creates a recursive file watcher for the engine's root.
// onResult is called after each successful re-run.
func NewWatcher(e *Engine, onResult func(*Result)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		engine:       e,
		rootDir:      e.cfg.RootDir,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		onResult:     onResult,
	}

	if err := w.addDirectoriesRecursively(w.rootDir); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// Watch blocks, re-running the pipeline on relevant changes, until the
// context is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	pending := false

	fire := func() {
		pending = false
		result, err := w.engine.Run(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Error("re-extraction failed", "err", err)
			}
			return
		}
		if w.onResult != nil {
			w.onResult(result)
		}
	}

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timerC:
			timer = nil
			if pending {
				fire()
			}
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// New directories need to be watched too.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Warn("cannot watch new directory", "dir", event.Name, "err", err)
					}
				}
			}
			pending = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounceTime)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if strings.HasSuffix(name, ".nix") {
		return true
	}
	// Directory events matter for create/remove/rename.
	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
		if info, err := os.Stat(event.Name); err == nil {
			return info.IsDir()
		}
	}
	return false
}

func (w *Watcher) addDirectoriesRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable subtrees are skipped, not fatal
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
