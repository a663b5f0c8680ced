// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watcher fires onChange after the data directory has been quiet for the
// debounce window. Bulk operations like backup restores or imports touch
// many files in a burst; we rebuild once, not per file.
type watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

func newWatcher(dir string, debounce time.Duration, onChange func(), log *zap.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fs watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &watcher{fsw: fsw, done: make(chan struct{})}
	go w.loop(debounce, onChange, log)
	return w, nil
}

func (w *watcher) loop(debounce time.Duration, onChange func(), log *zap.Logger) {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevantEvent(ev) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn("fs watch error", zap.Error(err))
		case <-timer.C:
			log.Info("data directory changed, refreshing index")
			onChange()
		case <-w.done:
			return
		}
	}
}

// relevantEvent keeps only mutations of category files. Lock files and the
// store's temp files on their way to a rename are noise.
func relevantEvent(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasSuffix(filepath.Base(ev.Name), ".json")
}

func (w *watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
