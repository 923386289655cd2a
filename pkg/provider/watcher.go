package provider

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// DebounceMs groups rapid successive events per file. 0 uses the
	// default of 200ms.
	DebounceMs int
}

// Watcher invalidates cached artifact text when files under a local
// tree change. Events are debounced per file so editor save bursts
// trigger one invalidation.
type Watcher struct {
	watcher *fsnotify.Watcher
	local   *LocalProvider
	cache   *CachingProvider
	logger  *slog.Logger
	options WatchOptions

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher over the local provider's tree that
// invalidates entries in cache. cache may be nil when only the file
// cache needs invalidation.
func NewWatcher(local *LocalProvider, cache *CachingProvider, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}

	return &Watcher{
		watcher:        fsWatcher,
		local:          local,
		cache:          cache,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start begins watching the tree root and its subdirectories.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	root := w.local.Root()
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Continue on error.
		}
		if !info.IsDir() {
			return nil
		}
		if shouldIgnoreDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("setup watches under %s: %w", root, err)
	}

	w.logger.Info("source watcher started", "root", root)
	go w.eventLoop()
	return nil
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("source watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("source watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if shouldIgnoreDir(path) {
		return
	}
	if !isArtifactFile(path) {
		// New directories need watches of their own.
		if event.Op&fsnotify.Create == fsnotify.Create {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				if err := w.watcher.Add(path); err != nil {
					w.logger.Warn("failed to watch new directory", "path", path, "error", err)
				}
			}
		}
		return
	}

	w.logger.Debug("source event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write,
		event.Op&fsnotify.Create == fsnotify.Create,
		event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		w.debounceInvalidate(path)
	}
}

// debounceInvalidate schedules an invalidation after the debounce
// window; repeat events for the same file reset the timer.
func (w *Watcher) debounceInvalidate(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}

	w.debounceTimers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.invalidate(path)

			w.debounceMu.Lock()
			delete(w.debounceTimers, path)
			w.debounceMu.Unlock()
		},
	)
}

// invalidate drops the file's cached text and any derived artifact
// entries. Theme files invalidate the whole theme kind because theme
// artifacts are not keyed by component.
func (w *Watcher) invalidate(path string) {
	w.local.InvalidateFile(path)
	if w.cache == nil {
		return
	}

	if isThemeFile(path) {
		w.cache.InvalidateKind(KindTheme)
		return
	}

	stem := fileStem(path)
	if stem == "index" {
		stem = filepath.Base(filepath.Dir(path))
	}
	w.logger.Debug("invalidating component", "component", stem, "file", path)
	w.cache.InvalidateComponent(stem)
}

// PendingInvalidations returns the number of files awaiting their
// debounce window.
func (w *Watcher) PendingInvalidations() int {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	return len(w.debounceTimers)
}

// isArtifactFile reports whether the path can back any artifact kind.
func isArtifactFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx", ".js", ".jsx", ".mdx", ".md":
		return true
	}
	return false
}

// isThemeFile mirrors the theme discovery globs well enough for
// invalidation purposes.
func isThemeFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return base == "theme.ts" || base == "theme.js" ||
		base == "tokens.ts" || base == "tokens.js" ||
		strings.HasSuffix(base, ".theme.ts") ||
		filepath.Base(filepath.Dir(path)) == "theme"
}

func shouldIgnoreDir(path string) bool {
	switch filepath.Base(path) {
	case "node_modules", ".git", "dist", "build", ".next", "coverage":
		return true
	}
	return false
}
