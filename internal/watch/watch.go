// Package watch re-runs a callback when files in a knowledge base change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

// DefaultDebounce batches editor save bursts into one callback.
const DefaultDebounce = 300 * time.Millisecond

// Watcher observes a set of directories and calls OnChange after activity settles.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	logger   *zap.Logger
	onChange func()
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period that must elapse before OnChange runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New watches dirs. Directories that do not exist yet are picked up when they are
// created inside the parent of the first one.
func New(dirs []string, onChange func(), opts ...Option) *Watcher {
	w := &Watcher{dirs: dirs, debounce: DefaultDebounce, logger: zap.NewNop(), onChange: onChange}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run blocks until ctx is cancelled. OnChange is always called from Run's goroutine, so
// calls never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.dirs) == 0 {
		return fmt.Errorf("watch: no directories")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	wanted := make(map[string]bool, len(w.dirs))
	for _, d := range w.dirs {
		wanted[filepath.Clean(d)] = true
		w.add(fw, d)
	}
	// Parent of the knowledge base directories, to notice them being created.
	root := filepath.Dir(filepath.Clean(w.dirs[0]))
	if err := fw.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	// nil until a change arrives; each change restarts the quiet period
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped", zap.Error(ctx.Err()))
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if wanted[name] && ev.Has(fsnotify.Create) {
				w.add(fw, name)
			}
			if !wanted[name] && !wanted[filepath.Dir(name)] {
				continue
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug("change", zap.String("path", name), zap.String("op", ev.Op.String()))
			settle = time.After(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-settle:
			settle = nil
			w.onChange()
		}
	}
}

func (w *Watcher) add(fw *fsnotify.Watcher, dir string) {
	if !utils.Exists(dir) {
		w.logger.Debug("directory not present yet", zap.String("dir", dir))
		return
	}
	if err := fw.Add(dir); err != nil {
		w.logger.Warn("cannot watch directory", zap.String("dir", dir), zap.Error(err))
	}
}
