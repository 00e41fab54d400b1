package scene

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads a scene file when it changes on disk and notifies the
// host so it can reconcile the presentation against the new frame set.
// Editors typically write through rename or truncate-write, so the watch
// is placed on the directory and filtered by file name.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   zerolog.Logger

	fs     *fsnotify.Watcher
	events chan *Scene
	done   chan struct{}

	mu      sync.Mutex
	pending *time.Timer
	closed  bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatchLogger sets the watcher logger.
func WithWatchLogger(logger zerolog.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = logger }
}

// WithDebounce sets how long to wait after the last write before
// reloading. Default is 100ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// Watch starts watching the scene file at path. Reloaded scenes are
// delivered on Scenes until Close is called; files that fail to parse
// mid-write are skipped and retried on the next change.
func Watch(path string, opts ...WatcherOption) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: 100 * time.Millisecond,
		logger:   zerolog.Nop(),
		fs:       fs,
		events:   make(chan *Scene, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fs.Add(filepath.Dir(w.path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	go w.run()
	return w, nil
}

// Scenes returns the channel of reloaded scenes.
func (w *Watcher) Scenes() <-chan *Scene {
	return w.events
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Str("path", w.path).Msg("scene watch error")
		}
	}
}

// scheduleReload coalesces bursts of write events into one reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	loaded, err := Load(w.path)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", w.path).Msg("failed to reload scene")
		return
	}

	select {
	case <-w.done:
	case w.events <- loaded:
	default:
		// Drop the stale pending scene and deliver the fresh one.
		select {
		case <-w.events:
		default:
		}
		select {
		case w.events <- loaded:
		default:
		}
	}
}
