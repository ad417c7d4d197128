package session

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is the fallback poll period.
const DefaultPollInterval = 2 * time.Second

// ObservationSource reports that the persisted session may have changed.
// Callbacks carry no value: receivers re-read the store and decide for
// themselves whether anything changed.
type ObservationSource interface {
	OnChange(callback func()) (stop func())
}

// Observed wraps a Store and reports writes to the session keys made
// through it. Clear always reports.
type Observed struct {
	Store

	mu        sync.Mutex
	nextID    int
	callbacks map[int]func()
}

// NewObserved wraps store.
func NewObserved(store Store) *Observed {
	return &Observed{Store: store, callbacks: map[int]func(){}}
}

// OnChange implements ObservationSource.
func (o *Observed) OnChange(callback func()) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.callbacks[id] = callback
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.callbacks, id)
		o.mu.Unlock()
	}
}

// Set stores value and notifies when key is a session key.
func (o *Observed) Set(key, value string) error {
	if err := o.Store.Set(key, value); err != nil {
		return err
	}
	if IsSessionKey(key) {
		o.notify()
	}
	return nil
}

// Remove deletes key and notifies when key is a session key.
func (o *Observed) Remove(key string) error {
	if err := o.Store.Remove(key); err != nil {
		return err
	}
	if IsSessionKey(key) {
		o.notify()
	}
	return nil
}

// Clear empties the store and always notifies.
func (o *Observed) Clear() error {
	if err := o.Store.Clear(); err != nil {
		return err
	}
	o.notify()
	return nil
}

func (o *Observed) notify() {
	o.mu.Lock()
	callbacks := make([]func(), 0, len(o.callbacks))
	for _, cb := range o.callbacks {
		callbacks = append(callbacks, cb)
	}
	o.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

// PollSource fires on a fixed interval.
type PollSource struct {
	Interval time.Duration
	Clock    Clock
}

// NewPollSource returns a PollSource using the real clock.
func NewPollSource(interval time.Duration) *PollSource {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollSource{Interval: interval, Clock: RealClock{}}
}

// OnChange implements ObservationSource.
func (p *PollSource) OnChange(callback func()) func() {
	var (
		mu      sync.Mutex
		stopped bool
		timer   Timer
	)

	var tick func()
	tick = func() {
		mu.Lock()
		if stopped {
			mu.Unlock()
			return
		}
		mu.Unlock()

		callback()

		mu.Lock()
		if !stopped {
			timer = p.Clock.AfterFunc(p.Interval, tick)
		}
		mu.Unlock()
	}

	mu.Lock()
	timer = p.Clock.AfterFunc(p.Interval, tick)
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
	}
}

// FileWatchSource fires when another process rewrites the session file.
// The parent directory is watched because writes replace the file by rename.
type FileWatchSource struct {
	Path   string
	Logger *slog.Logger
}

// NewFileWatchSource returns a source watching path.
func NewFileWatchSource(path string, logger *slog.Logger) *FileWatchSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileWatchSource{Path: path, Logger: logger}
}

// OnChange implements ObservationSource. If the watcher cannot be started
// the error is logged and the returned stop is a no-op; the poll source
// still covers cross-process changes.
func (f *FileWatchSource) OnChange(callback func()) func() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		f.Logger.Warn("session file watch unavailable", "error", err)
		return func() {}
	}
	if err := watcher.Add(filepath.Dir(f.Path)); err != nil {
		f.Logger.Warn("session file watch unavailable", "path", f.Path, "error", err)
		_ = watcher.Close()
		return func() {}
	}

	name := filepath.Base(f.Path)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != name {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
					callback()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				f.Logger.Warn("session file watch error", "error", err)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = watcher.Close()
			<-done
		})
	}
}
