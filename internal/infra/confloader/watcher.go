// Package confloader loads layered configuration for synckit binaries.
package confloader

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to watched config files. It watches the
// containing directory rather than the file itself, so editors that
// replace the file by rename (vim, sed -i) still produce an event.
type Watcher struct {
	fs  *fsnotify.Watcher
	log *slog.Logger

	mu       sync.Mutex
	handlers []func(string)

	done chan struct{}
}

// WatcherOption adjusts a Watcher at construction time.
type WatcherOption func(*Watcher)

// WithWatcherLogger replaces the process-default logger.
func WithWatcherLogger(log *slog.Logger) WatcherOption {
	return func(w *Watcher) { w.log = log }
}

// NewWatcher creates a Watcher with the options applied. It holds an
// open fsnotify handle; call Stop to release it.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:   fs,
		log:  slog.Default(),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch registers the directory containing path. Events for every file
// in that directory reach the handlers, which filter by name.
func (w *Watcher) Watch(path string) error {
	dir := filepath.Dir(path)
	if err := w.fs.Add(dir); err != nil {
		w.log.Error("failed to watch config directory", "dir", dir, "error", err)
		return err
	}
	w.log.Debug("watching config directory", "dir", dir, "file", filepath.Base(path))
	return nil
}

// OnChange registers a handler for change events. Handlers run on the
// watch goroutine and receive the changed file's path; keep them short.
func (w *Watcher) OnChange(handler func(string)) {
	w.mu.Lock()
	w.handlers = append(w.handlers, handler)
	w.mu.Unlock()
}

// Start runs the event loop until Stop is called. Most callers want
// StartAsync.
func (w *Watcher) Start() {
	w.log.Info("config watcher started")

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// Writes and creates change content; chmod and remove do not.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.log.Debug("config file changed", "file", event.Name, "op", event.Op.String())
				w.dispatch(event.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("config watcher error", "error", err)
		}
	}
}

// StartAsync runs Start on its own goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop ends the event loop and releases the fsnotify handle. Stop must
// be called at most once.
func (w *Watcher) Stop() error {
	close(w.done)
	if err := w.fs.Close(); err != nil {
		w.log.Error("failed to close fsnotify handle", "error", err)
		return err
	}
	w.log.Info("config watcher stopped")
	return nil
}

// dispatch runs the handlers against a copy of the registration list so
// a handler registering further handlers cannot deadlock.
func (w *Watcher) dispatch(path string) {
	w.mu.Lock()
	handlers := make([]func(string), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		h(path)
	}
}
