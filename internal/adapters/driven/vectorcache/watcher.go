package vectorcache

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/paperchat/paperchat/internal/logger"
)

// Watcher observes the cache directory and reports document IDs whose
// store file was removed or renamed out from under the catalog. Long
// running modes (mcp serve) use it to flag documents as needing
// re-ingestion instead of failing later at query time.
type Watcher struct {
	fsw        *fsnotify.Watcher
	invalidate chan string
	done       chan struct{}
}

// NewWatcher starts watching the store's cache directory.
func NewWatcher(store *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := fsw.Add(store.Dir()); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching cache directory: %w", err)
	}

	w := &Watcher{
		fsw:        fsw,
		invalidate: make(chan string),
		done:       make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Invalidations returns the channel of document IDs whose store vanished.
// The channel closes when the watcher is closed.
func (w *Watcher) Invalidations() <-chan string {
	return w.invalidate
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.invalidate)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, Ext) {
				continue
			}
			docID := strings.TrimSuffix(name, Ext)
			logger.Warn("Vector store for %q removed externally", docID)
			w.invalidate <- docID

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Cache watcher error: %v", err)
		}
	}
}
