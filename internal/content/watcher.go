package content

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches the bursts of events editors emit on save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a content file into a Store whenever it changes. A file
// that fails to parse or validate is logged and the previous copy kept.
type Watcher struct {
	path     string
	store    *Store
	log      *zap.Logger
	debounce time.Duration
}

// NewWatcher returns a watcher for path feeding store.
func NewWatcher(path string, store *Store, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{path: path, store: store, log: log, debounce: DefaultDebounce}
}

// WithDebounce overrides the debounce interval.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run watches until ctx is cancelled. The parent directory is watched so
// editors that save by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.log.Info("watching content", zap.String("path", w.path))

	name := filepath.Clean(w.path)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("content event", zap.String("op", ev.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("content watcher error", zap.Error(err))

		case <-timer.C:
			w.Reload()
		}
	}
}

// Reload reads the file once and installs it if valid. It reports whether
// the store was updated.
func (w *Watcher) Reload() bool {
	s, err := LoadFile(w.path)
	if err != nil {
		w.log.Warn("content reload failed, keeping previous copy", zap.Error(err))
		return false
	}
	w.store.Replace(s)
	w.log.Info("content reloaded", zap.String("path", w.path))
	return true
}
