package catalog

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads the catalog store when its file changes on disk,
// typically after an out-of-band edit or an upload-side write. Each
// successful reload is signalled on Changed.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	log     zerolog.Logger

	changed chan struct{}
	done    chan struct{}
}

// Watch starts watching the store's catalog file. The parent directory
// is watched rather than the file itself, so atomic rename-into-place
// writes are seen.
func Watch(store *Store, log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch catalog directory: %w", err)
	}

	w := &Watcher{
		store:   store,
		watcher: fw,
		log:     log,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changed signals once per observed catalog reload. The channel has a
// one-slot buffer; coalesced bursts deliver a single signal.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := w.store.Reload(); err != nil {
				w.log.Warn().Err(err).Msg("catalog reload failed")
				continue
			}
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("catalog watcher error")
		}
	}
}
