// Package watcher monitors dataset directories for changes using fsnotify.
// Writes are debounced: an event is emitted only after a file's size and
// mtime have stopped changing for the settle delay, so half-copied spread
// sheets are never picked up mid-write.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors file system changes in watched dataset directories.
type Watcher struct {
	logger  *slog.Logger
	opts    Options
	watcher *fsnotify.Watcher

	pending map[string]*pendingEvent // path -> pending event info
	known   map[string]bool          // paths seen settle at least once
	mu      sync.RWMutex             // protects pending and known

	events chan Event
	errors chan error
	done   chan struct{}
	wg     sync.WaitGroup
}

// pendingEvent tracks a file that may still be changing.
type pendingEvent struct {
	path    string
	size    int64
	modTime time.Time
	timer   *time.Timer
}

// New creates a new file watcher.
func New(logger *slog.Logger, opts Options) (*Watcher, error) {
	opts.setDefaults()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		logger:  logger,
		opts:    opts,
		watcher: fsw,
		pending: make(map[string]*pendingEvent),
		known:   make(map[string]bool),
		events:  make(chan Event, 100),
		errors:  make(chan error, 10),
		done:    make(chan struct{}),
	}, nil
}

// Watch adds a path to be monitored. The path can be a file or directory.
// Directories are watched recursively.
func (w *Watcher) Watch(path string) error {
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if info.IsDir() {
		return w.watchDir(path)
	}
	// Watching a single file means watching its parent directory.
	return w.watcher.Add(filepath.Dir(path))
}

// watchDir recursively watches a directory.
func (w *Watcher) watchDir(path string) error {
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			w.logger.Warn("failed to access path", "path", p, "error", err)
			return nil
		}

		if w.opts.shouldIgnore(p) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() {
			return nil
		}

		if err := w.watcher.Add(p); err != nil {
			w.logger.Error("failed to add watch", "path", p, "error", err)
			return nil
		}

		w.logger.Debug("added watch", "path", p)
		return nil
	})
}

// Start begins watching for events. This method blocks until the context
// is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.wg.Add(1)
	go w.processEvents(ctx)

	<-ctx.Done()
	return nil
}

// processEvents processes fsnotify events.
func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFsnotifyEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.errors <- err
		}
	}
}

// handleFsnotifyEvent handles an fsnotify event with debouncing.
func (w *Watcher) handleFsnotifyEvent(event fsnotify.Event) {
	path := event.Name

	if w.opts.shouldIgnore(path) {
		return
	}

	// New subdirectories join the watch set.
	if event.Op&fsnotify.Create != 0 {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			w.watchDir(path)
			return
		}
	}

	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.cancelPending(path)
		w.mu.Lock()
		delete(w.known, path)
		w.mu.Unlock()
		w.emitEvent(Event{
			Type: EventRemoved,
			Path: path,
		})
		return
	}

	// Write and create events need debouncing.
	if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
		w.startSettling(path)
	}
}

// startSettling begins the settling process for a file.
func (w *Watcher) startSettling(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if pending, exists := w.pending[path]; exists {
		pending.timer.Stop()
	}

	info, err := os.Stat(path)
	if err != nil {
		w.logger.Warn("failed to stat file", "path", path, "error", err)
		delete(w.pending, path)
		return
	}

	if info.IsDir() {
		return
	}

	pending := &pendingEvent{
		path:    path,
		size:    info.Size(),
		modTime: info.ModTime(),
	}

	pending.timer = time.AfterFunc(w.opts.SettleDelay, func() {
		w.checkSettled(path)
	})

	w.pending[path] = pending
}

// checkSettled checks if a file has finished settling.
func (w *Watcher) checkSettled(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	pending, exists := w.pending[path]
	if !exists {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		// File was deleted while settling.
		delete(w.pending, path)
		delete(w.known, path)
		w.emitEvent(Event{
			Type: EventRemoved,
			Path: path,
		})
		return
	}

	// Still changing, restart the timer.
	if info.Size() != pending.size || info.ModTime() != pending.modTime {
		pending.size = info.Size()
		pending.modTime = info.ModTime()
		pending.timer = time.AfterFunc(w.opts.SettleDelay, func() {
			w.checkSettled(path)
		})
		return
	}

	// File has settled.
	delete(w.pending, path)

	eventType := EventAdded
	if w.known[path] {
		eventType = EventModified
	}
	w.known[path] = true

	w.emitEvent(Event{
		Type:    eventType,
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	})
}

// cancelPending cancels a pending event.
func (w *Watcher) cancelPending(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if pending, exists := w.pending[path]; exists {
		pending.timer.Stop()
		delete(w.pending, path)
	}
}

// emitEvent sends an event to the events channel.
func (w *Watcher) emitEvent(event Event) {
	select {
	case w.events <- event:
	case <-w.done:
	}
}

// Events returns the channel for receiving file system events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel for receiving errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)

	w.mu.Lock()
	for _, pending := range w.pending {
		pending.timer.Stop()
	}
	clear(w.pending)
	w.mu.Unlock()

	w.watcher.Close()
	w.wg.Wait()

	close(w.events)
	close(w.errors)

	return nil
}
