package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors contract directories and fires a callback when a
// document file has been quiescent (no writes) for a configured
// duration.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	tracker   *QuiescenceTracker
	done      chan struct{}
}

// RelevantFile reports whether a path looks like an uploadable
// document.
func RelevantFile(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf", ".txt", ".md":
		return true
	}
	return false
}

// New creates a Watcher over the given directories. The callback fires
// once a relevant file stops changing for the quiescence duration.
func New(dirs []string, quiescence time.Duration, callback func(filePath string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	if quiescence <= 0 {
		quiescence = DefaultQuiescenceDuration
	}

	w := &Watcher{
		fsWatcher: fsw,
		tracker:   NewQuiescenceTracker(quiescence, callback),
		done:      make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := w.addRecursive(dir); err != nil {
			fmt.Printf("Warning: could not watch %s: %v\n", dir, err)
		}
	}

	go w.loop()

	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if info.IsDir() {
			return w.fsWatcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if RelevantFile(event.Name) {
					w.tracker.Touch(event.Name)
				}

				// Watch newly created directories
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						w.fsWatcher.Add(event.Name)
					}
				}
			}

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() {
	w.tracker.Stop()
	close(w.done)
	w.fsWatcher.Close()
}
