package workload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a fixture directory is reloaded.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a fixture directory into a Catalog when its files change.
// Invalid edits are logged and the previous groups are kept.
type Watcher struct {
	dir      string
	catalog  *Catalog
	logger   *slog.Logger
	debounce time.Duration
	onReload func([]Group)
	onError  func(error)

	reloads  atomic.Uint64
	failures atomic.Uint64
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithWatchLogger sets the logger.
func WithWatchLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = l }
}

// OnReload registers fn to run after every successful reload.
func OnReload(fn func([]Group)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// OnReloadError registers fn to run after every failed reload.
func OnReloadError(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onError = fn }
}

// NewWatcher creates a watcher for dir.
func NewWatcher(dir string, catalog *Catalog, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dir:      dir,
		catalog:  catalog,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is done. It returns an error only if the watch
// cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("workload: watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("workload: watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching fixtures", "dir", w.dir)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !isFixture(filepath.Base(ev.Name)) || ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("fixture changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("fixture watcher error", "error", err)

		case <-timer.C:
			w.Reload()
		}
	}
}

// Reload loads the directory now. On failure the catalog is unchanged.
func (w *Watcher) Reload() error {
	groups, err := LoadDir(os.DirFS(w.dir))
	if err != nil {
		w.failures.Add(1)
		w.logger.Error("fixture reload failed, keeping previous groups", "dir", w.dir, "error", err)
		if w.onError != nil {
			w.onError(err)
		}
		return err
	}
	w.catalog.Replace(groups)
	w.reloads.Add(1)
	w.logger.Info("fixtures reloaded", "dir", w.dir, "groups", len(groups))
	if w.onReload != nil {
		w.onReload(groups)
	}
	return nil
}

// Reloads returns the number of successful reloads.
func (w *Watcher) Reloads() uint64 { return w.reloads.Load() }

// Failures returns the number of failed reloads.
func (w *Watcher) Failures() uint64 { return w.failures.Load() }
