// Package watch reloads a scene file when it changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/san-kum/wobble/internal/config"
)

const DefaultDebounce = 200 * time.Millisecond

// Watcher emits a freshly loaded config each time the watched file settles
// after a write. Files that fail to load are logged and skipped.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *zap.Logger
	updates  chan *config.Config
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	pending  time.Time
}

func New(path string, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: DefaultDebounce,
		logger:   logger,
		updates:  make(chan *config.Config, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Updates delivers reloaded configs. Only the latest pending config is kept.
func (w *Watcher) Updates() <-chan *config.Config { return w.updates }

// Start watches the file's directory so editors that replace the file on save
// are still seen. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.running = true
	go w.run(ctx)
	w.logger.Info("watching scene file", zap.String("path", w.path))
	return nil
}

// Stop ends the event loop and closes the underlying watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("closing watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 2
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		case now := <-ticker.C:
			if !w.pending.IsZero() && now.Sub(w.pending) >= w.debounce {
				w.pending = time.Time{}
				w.reload()
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	w.logger.Debug("scene file event", zap.String("op", ev.Op.String()))
	w.pending = time.Now()
}

func (w *Watcher) reload() {
	cfg, err := config.Load(w.path)
	if err != nil {
		w.logger.Warn("reload skipped", zap.String("path", w.path), zap.Error(err))
		return
	}
	// Drop a stale update nobody has read yet.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Info("scene reloaded", zap.String("path", w.path))
}
