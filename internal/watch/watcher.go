package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Watcher watches directory trees and reports changed paths to a
// Debouncer. Directories created later are added as they appear.
type Watcher struct {
	watcher *fsnotify.Watcher
	sink    *Debouncer
	ignore  []string
	log     *slog.Logger
}

// WatcherOptions configures a Watcher.
type WatcherOptions struct {
	// Paths are the roots watched recursively. Missing paths are skipped.
	Paths []string
	// Ignore lists files whose changes are not reported, typically the
	// generated output.
	Ignore []string
	Logger *slog.Logger
}

// NewWatcher starts watching opts.Paths and forwards changes to sink.
func NewWatcher(sink *Debouncer, opts WatcherOptions) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	w := &Watcher{watcher: fw, sink: sink, log: log}
	for _, p := range opts.Ignore {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve ignore path %s: %w", p, err)
		}
		w.ignore = append(w.ignore, abs)
	}

	watched := 0
	for _, p := range opts.Paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			log.Warn("Watch path not found", logfields.Path(p))
			continue
		}
		if err := w.addTree(p); err != nil {
			_ = fw.Close()
			return nil, err
		}
		watched++
	}
	if watched == 0 {
		_ = fw.Close()
		return nil, fmt.Errorf("no watch paths exist: %s", strings.Join(opts.Paths, ", "))
	}
	return w, nil
}

// addTree adds root and every directory below it. Hidden directories such
// as .git are skipped.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Run forwards events until ctx is canceled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	if w.ignored(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.log.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
			}
		}
	}

	w.log.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
	w.sink.Request(event.Name)
}

func (w *Watcher) ignored(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".tmp") {
		return true
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	for _, ig := range w.ignore {
		if abs == ig {
			return true
		}
	}
	return false
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
