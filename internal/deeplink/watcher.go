package deeplink

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pion/logging"

	"linkbox/internal/domain"
	"linkbox/internal/store"
)

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	Inbox domain.Inbox
	Sink  domain.LinkSink

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Watcher moves links from the inbox into a sink as they arrive.
type Watcher struct {
	inbox domain.Inbox
	sink  domain.LinkSink
	fsw   *fsnotify.Watcher
	log   logging.LeveledLogger
}

// NewWatcher starts watching the inbox directory. Events are only consumed
// once Run is called.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if cfg.Inbox == nil || cfg.Sink == nil {
		return nil, errors.New("deeplink: watcher needs an inbox and a sink")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(cfg.Inbox.Dir()); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch inbox %s: %w", cfg.Inbox.Dir(), err)
	}
	w := &Watcher{inbox: cfg.Inbox, sink: cfg.Sink, fsw: fsw}
	if cfg.LoggerFactory != nil {
		w.log = cfg.LoggerFactory.NewLogger("inbox")
	}
	return w, nil
}

// Sweep forwards every entry already waiting in the inbox.
func (w *Watcher) Sweep() error {
	names, err := w.inbox.Pending()
	if err != nil {
		return err
	}
	for _, name := range names {
		w.forward(name)
	}
	return nil
}

// Run sweeps the inbox once and then forwards new entries until ctx is done
// or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Sweep(); err != nil {
		return err
	}
	if w.log != nil {
		w.log.Infof("watching inbox %s", w.inbox.Dir())
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			// A committed entry appears through rename, reported as Create.
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				name := filepath.Base(event.Name)
				if store.IsEntry(name) {
					w.forward(name)
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if w.log != nil {
				w.log.Errorf("inbox watcher: %v", err)
			}
		}
	}
}

// Close stops the underlying watch.
func (w *Watcher) Close() error { return w.fsw.Close() }

func (w *Watcher) forward(name string) {
	raw, ok, err := w.inbox.Take(name)
	if err != nil {
		if w.log != nil {
			w.log.Warnf("take %s: %v", name, err)
		}
		return
	}
	if !ok {
		return
	}
	if err := w.sink.Push(raw); err != nil && w.log != nil {
		w.log.Warnf("drop %s: %v", name, err)
	}
}
