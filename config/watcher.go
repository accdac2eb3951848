package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reloads a single config file on write, debouncing rapid
// successive writes (editors commonly emit several events per save).
type Watcher struct {
	watcher    *fsnotify.Watcher
	path       string
	debounce   time.Duration
	mu         sync.Mutex
	lastChange time.Time
	logger     *logrus.Entry
	onReload   func(Config)
}

// NewWatcher watches the directory containing path and invokes
// onReload with the freshly loaded Config whenever path is written.
// Reload errors are logged and skipped rather than propagated, since a
// transient partial write (editor save in progress) shouldn't crash a
// running engine.
func NewWatcher(path string, logger *logrus.Entry, onReload func(Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		path:     filepath.Clean(path),
		debounce: 100 * time.Millisecond,
		logger:   logger,
		onReload: onReload,
	}, nil
}

// Run processes fsnotify events until stop is closed.
func (w *Watcher) Run(stop <-chan struct{}) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.handleChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("config watcher error")
		case <-stop:
			w.watcher.Close()
			return
		}
	}
}

func (w *Watcher) handleChange() {
	w.mu.Lock()
	if time.Since(w.lastChange) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.lastChange = time.Now()
	w.mu.Unlock()

	cfg, err := Load(w.path)
	if err != nil {
		w.logger.WithError(err).Warn("config reload failed, keeping previous configuration")
		return
	}
	w.logger.Info("configuration reloaded")
	w.onReload(cfg)
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
