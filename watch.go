package quotecard

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-renders a card whenever its YAML file is saved. It watches the
// file's directory, since most editors save by renaming a temporary file
// over the original.
type Watcher struct {
	mu         sync.Mutex
	path       string
	dispatcher *Dispatcher
	logger     *zap.Logger
	watcher    *fsnotify.Watcher
	stopCh     chan struct{}
	doneCh     chan struct{}
	running    bool
	transform  func(*Card)
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithCardTransform runs fn on every card the watcher loads, before the pass
// is scheduled. Command-line overrides use it so they survive each save.
func WithCardTransform(fn func(*Card)) WatcherOption {
	return func(w *Watcher) { w.transform = fn }
}

// NewWatcher creates a watcher feeding edits of the card at path into d.
func NewWatcher(path string, d *Dispatcher, logger *zap.Logger, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Watcher{
		path:       abs,
		dispatcher: d,
		logger:     logger.Named("watch"),
		watcher:    fw,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start renders the card once and begins watching for edits. It does not
// block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("watching card", zap.String("path", w.path))
	w.reload()

	go w.run(ctx)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Error("error closing watcher", zap.Error(err))
	}
}

// Done is closed when the event loop exits.
func (w *Watcher) Done() <-chan struct{} { return w.doneCh }

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// reload parses the card and schedules a pass. A half-written file fails to
// parse and is skipped; the next write event retries.
func (w *Watcher) reload() {
	card, err := LoadCard(w.path)
	if err != nil {
		w.logger.Warn("card not reloaded", zap.Error(err))
		return
	}
	if w.transform != nil {
		w.transform(card)
	}
	if err := card.Design.Validate(); err != nil {
		w.logger.Warn("card design has problems", zap.Error(err))
	}
	w.dispatcher.Schedule(card.Testimonial, card.Design)
}
