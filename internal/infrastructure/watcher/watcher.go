// Package watcher observes the env file family and triggers a snapshot
// when a watched file changes, debounced so editor write bursts produce
// one snapshot instead of many.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
}

type Watcher struct {
	workDir  string
	watched  map[string]bool
	debounce time.Duration
	logger   Logger
	onChange func()
}

func New(workDir string, files []string, debounce time.Duration, logger Logger, onChange func()) *Watcher {
	watched := make(map[string]bool, len(files))
	for _, f := range files {
		watched[f] = true
	}
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{
		workDir:  workDir,
		watched:  watched,
		debounce: debounce,
		logger:   logger,
		onChange: onChange,
	}
}

// Run watches until the context is cancelled. The working directory is
// watched as a whole because env files are frequently replaced via
// rename, which would silently detach a per-file watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.workDir); err != nil {
		return fmt.Errorf("watch %s: %w", w.workDir, err)
	}

	resetCh := make(chan struct{}, 1)
	go func() {
		var t *time.Timer
		for range resetCh {
			if t != nil {
				t.Stop()
			}
			t = time.AfterFunc(w.debounce, w.onChange)
		}
		// A change observed just before shutdown must not fire after
		// the caller has stopped; cancel whatever is still armed.
		if t != nil {
			t.Stop()
		}
	}()
	defer close(resetCh)

	w.logger.Infof("watching %d file(s) in %s", len(w.watched), w.workDir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.watched[filepath.Base(ev.Name)] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case resetCh <- struct{}{}:
			default:
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Errorf("file watcher: %v", err)
		}
	}
}
