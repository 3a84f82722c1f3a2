// Package watch re-runs golden files when they change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches the events of an editor save into one run
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches directories for changes to golden files
type Watcher struct {
	watcher   *fsnotify.Watcher
	extension string
	debounce  time.Duration
	logger    *zap.Logger
}

// New creates a Watcher reacting to files ending in extension
func New(extension string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{watcher: watcher, extension: extension, debounce: debounce, logger: logger}, nil
}

// Add watches the directories holding paths. Each directory is added once.
func (w *Watcher) Add(paths ...string) error {
	seen := make(map[string]bool)
	for _, p := range paths {
		dir := filepath.Dir(p)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.logger.Debug("watching", zap.String("dir", dir))
	}
	return nil
}

// Run calls onChange with the changed golden files, sorted, once no further
// event arrived for the debounce interval. It blocks until ctx is done and
// closes the watcher on return.
//
// Files passed to onChange are ignored for one debounce interval after it
// returns, so a run that rewrites them does not trigger itself.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	defer w.watcher.Close()

	pending := make(map[string]bool)
	quiet := make(map[string]time.Time)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if until, ok := quiet[event.Name]; ok && time.Now().Before(until) {
				continue
			}
			w.logger.Debug("change", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			onChange(ctx, paths)

			until := time.Now().Add(w.debounce)
			for _, p := range paths {
				quiet[p] = until
			}
		}
	}
}

// relevant keeps writes and creations of golden files
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, w.extension) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
