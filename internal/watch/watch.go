// Package watch invalidates memoized dataset loads when the bulk file
// changes on disk. Purely a development convenience: correctness never
// depends on it since the load cache expires on its own.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	applog "github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/log"
)

// Invalidator is the store-side hook the watcher fires.
type Invalidator interface {
	Invalidate()
}

// Watcher monitors a single dataset file for writes and renames.
type Watcher struct {
	path  string
	store Invalidator
}

// New creates a Watcher for the dataset at path.
func New(path string, store Invalidator) *Watcher {
	return &Watcher{path: path, store: store}
}

// Start begins watching until ctx is cancelled. The parent directory is
// watched because editors and the seed tool typically replace the file
// rather than write it in place.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	target := filepath.Clean(w.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt := <-watcher.Events:
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					slog.Info("Dataset changed on disk, dropping memoized loads",
						applog.FieldComponent, applog.ComponentWatch,
						applog.FieldDatasetPath, target,
						"op", evt.Op.String())
					w.store.Invalidate()
				}
			case err := <-watcher.Errors:
				slog.Warn("Watcher error", "error", err)
			}
		}
	}()

	return nil
}
