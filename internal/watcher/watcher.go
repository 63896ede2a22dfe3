// Package watcher reports changed schema IR files, debounced and filtered by
// glob patterns on the file name.
package watcher

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// DefaultPatterns match the IR formats understood by the loader.
var DefaultPatterns = []string{"*.json", "*.yaml", "*.yml", "*.msgpack", "*.mpk"}

// Watcher collects file events and calls onChange with the changed paths
// once no event arrived for the debounce interval.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	debounce   time.Duration
	patterns   []glob.Glob
	onChange   func([]string)
	callbackMu sync.Mutex
	log        *slog.Logger

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// New returns a watcher for files whose base name matches one of patterns.
// An empty pattern list selects DefaultPatterns.
func New(debounce time.Duration, patterns []string, onChange func([]string)) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	compiled, err := Compile(patterns)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		patterns:  compiled,
		onChange:  onChange,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		pending:   make(map[string]struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Compile compiles glob patterns.
func Compile(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// SetLogger sets the logger used for watch errors.
func (w *Watcher) SetLogger(l *slog.Logger) {
	if l != nil {
		w.log = l
	}
}

// Watch starts watching the given directories. Files are not walked: only
// events for direct children are reported.
func (w *Watcher) Watch(dirs []string) error {
	for _, dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}
	go w.run()
	return nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.Match(event.Name) {
				continue
			}
			// Editors often save with a rename over the original file.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule(event.Name)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// Match reports whether the base name of path matches a pattern.
func (w *Watcher) Match(path string) bool {
	base := filepath.Base(path)
	for _, g := range w.patterns {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (w *Watcher) schedule(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(paths)
}

// Close stops the watcher. Pending changes are dropped. Calling Close
// more than once returns the result of the first call.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.pendingMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.pendingMu.Unlock()
		close(w.done)
		w.closeErr = w.fsWatcher.Close()
	})
	return w.closeErr
}
