// Package watch monitors a stored manual document for changes and reloads
// it, so a long-running session picks up rule updates without restarting.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/coolbeans/rulehub/pkg/manual"
)

// Reload carries the result of one reload attempt. Err is set when the
// changed file no longer parses; the previous manual stays valid.
type Reload struct {
	Manual *manual.GameManual
	Err    error
}

// Watcher monitors a manual file and emits a Reload after each settled
// change.
type Watcher struct {
	Path    string
	Reloads <-chan Reload

	reloads  chan Reload
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a watcher for the manual file at path. Changes are
// debounced so editors that write in bursts trigger one reload.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	ch := make(chan Reload, 4)
	w := &Watcher{
		Path:     path,
		Reloads:  ch,
		reloads:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: debounce,
	}
	return w, nil
}

// Start begins watching. The parent directory is watched rather than the
// file itself so atomic rename-over-write saves are observed.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.Path, err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Reloads channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.reloads)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emitReload()
				}
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.Path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.emitReload()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

// Watch runs a watcher on path until ctx is cancelled, invoking fn after
// each settled change. Blocks for the lifetime of the watch.
func Watch(ctx context.Context, path string, debounce time.Duration, fn func(Reload)) error {
	w, err := NewWatcher(path, debounce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.watcher.Close()
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return ctx.Err()
		case r, ok := <-w.Reloads:
			if !ok {
				return nil
			}
			fn(r)
		}
	}
}

// emitReload never blocks: when the buffer is full the oldest undelivered
// reload is discarded so the channel always holds the newest state and
// Stop cannot deadlock behind a slow reader.
func (w *Watcher) emitReload() {
	m, err := manual.LoadFile(w.Path)
	r := Reload{Manual: m, Err: err}
	for {
		select {
		case w.reloads <- r:
			return
		default:
		}
		select {
		case <-w.reloads:
		default:
		}
	}
}
