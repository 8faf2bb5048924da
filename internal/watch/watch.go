// Package watch re-runs a full site build whenever an input directory
// changes.
package watch

import (
	"context"
	"fmt"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"io/fs"
	"path/filepath"
	"time"
)

const DefaultDebounce = 200 * time.Millisecond

type BuildFunc func(ctx context.Context) error

type Watcher struct {
	// Debounce is the quiet period after the last event before a rebuild.
	Debounce time.Duration
	// OnRebuild, when set, is called with the outcome of every rebuild.
	OnRebuild func(error)

	build BuildFunc
	fw    *fsnotify.Watcher
	log   *zap.Logger
}

// New watches dirs below root, recursively. Nothing is rebuilt until Run.
func New(root string, dirs []string, build BuildFunc, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{Debounce: DefaultDebounce, build: build, fw: fw, log: log}
	for _, d := range dirs {
		if err := w.addTree(filepath.Join(root, d)); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
	}
	return w, nil
}

func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fw.Add(path)
		}
		return nil
	})
}

// Run blocks until ctx is done. Failed rebuilds are logged and do not stop
// the loop.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info("watching for changes", zap.Strings("dirs", w.fw.WatchList()))
	debounce := time.NewTimer(w.Debounce)
	debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				// new subdirectories are watched too; plain files fail
				// WalkDir's IsDir check and are skipped
				if err := w.addTree(ev.Name); err != nil {
					w.log.Debug("not watching new path", zap.String("path", ev.Name), zap.Error(err))
				}
			}
			w.log.Debug("change", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			debounce.Reset(w.Debounce)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		case <-debounce.C:
			start := time.Now()
			err := w.build(ctx)
			if err != nil {
				w.log.Error("rebuild failed", zap.Error(err))
			} else {
				w.log.Info("rebuilt", zap.Duration("took", time.Since(start)))
			}
			if w.OnRebuild != nil {
				w.OnRebuild(err)
			}
		}
	}
}
