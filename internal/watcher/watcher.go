// Package watcher monitors the config file and reports changes after a
// debounce window, so theme edits show up in the running UI without a
// restart.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okvern/quill/internal/log"
)

// Watcher watches a single config file for writes.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	configPath string
	debounce   time.Duration
	onChange   chan struct{}
	done       chan struct{}
}

// Config holds watcher options.
type Config struct {
	ConfigPath  string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the given config file.
func DefaultConfig(configPath string) Config {
	return Config{
		ConfigPath:  configPath,
		DebounceDur: 500 * time.Millisecond,
	}
}

// New creates a watcher for the config file named in cfg.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher:  fsw,
		configPath: cfg.ConfigPath,
		debounce:   cfg.DebounceDur,
		onChange:   make(chan struct{}, 1),
		done:       make(chan struct{}),
	}, nil
}

// Start begins watching and returns the channel that receives a signal after
// each debounced change. Watching the parent directory rather than the file
// itself survives editors that replace the file on save.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.configPath)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	go w.loop()
	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevant(event) {
				continue
			}
			log.Debug(log.CatWatch, "config change observed", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.onChange <- struct{}{}:
			default:
				// A change signal is already pending.
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatch, "fsnotify error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevant keeps only write-ish events on the watched file.
func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.configPath) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}
