package views

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounce = 100 * time.Millisecond

// Watch invalidates cached views when template files change until ctx is
// done. Edits under pages/ drop that view only; anything else reparses the
// base. Used in dev mode.
func (r *Registry) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, r.dir); err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		pending = map[string]struct{}{}
		timer   *time.Timer
	)
	flush := func() {
		mu.Lock()
		keys := pending
		pending = map[string]struct{}{}
		mu.Unlock()
		if _, all := keys[""]; all {
			keys = map[string]struct{}{"": {}}
		}
		for key := range keys {
			if err := r.Invalidate(key); err != nil {
				r.logger.Error("template reload failed", zap.String("view", key), zap.Error(err))
				continue
			}
			r.logger.Debug("templates invalidated", zap.String("view", key))
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".tmpl" {
				continue
			}
			mu.Lock()
			pending[r.keyFor(event.Name)] = struct{}{}
			mu.Unlock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, flush)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("watcher error", zap.Error(err))
		}
	}
}

// keyFor maps a changed file to the view it affects, or "" for base files.
func (r *Registry) keyFor(path string) string {
	rel, err := filepath.Rel(r.dir, path)
	if err != nil {
		return ""
	}
	dir, file := filepath.Split(filepath.ToSlash(rel))
	if strings.TrimSuffix(dir, "/") != pagesDir {
		return ""
	}
	return strings.TrimSuffix(file, ".tmpl")
}

func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
