package seed

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watch reloads seed files when they change until ctx is done.
// Parent directories are watched so that atomic renames are seen.
func (l *Loader) Watch(ctx context.Context, paths []string, debounce time.Duration) error {
	if len(paths) == 0 {
		<-ctx.Done()
		return nil
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create seed watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	watched := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs := absPath(p)
		watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirs {
		if err := fsw.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	l.logger.Info("watching seed files", zap.Int("files", len(watched)))

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := absPath(ev.Name)
			if _, ok := watched[name]; !ok {
				continue
			}
			pending[name] = struct{}{}
			timer.Reset(debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn("seed watcher error", zap.Error(err))
		case <-timer.C:
			for p := range pending {
				delete(pending, p)
				if _, err := l.LoadFile(ctx, p); err == nil {
					l.logger.Debug("seed reloaded", zap.String("source", p))
				}
			}
		}
	}
}
