package app

import (
	"context"
	"io"

	"github.com/pion/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"linkbox/internal/deeplink"
	"linkbox/internal/domain"
	"linkbox/internal/metrics"
	sessionsvc "linkbox/internal/services/session"
	"linkbox/internal/store"
)

// Options carries the process handles NewWire needs besides Config.
type Options struct {
	// Stdout receives printed links when opener.print is set.
	Stdout io.Writer
	// Stderr receives log output.
	Stderr io.Writer
	// Opener overrides the configured opener, mainly for tests.
	Opener domain.LinkOpener
}

// Wire bundles the components of a running requester.
type Wire struct {
	Config   Config
	Logger   logging.LoggerFactory
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Opener   domain.LinkOpener
	Inbox    *store.InboxFileStore
	Session  *sessionsvc.Service
	Router   *deeplink.Router
	Queue    *deeplink.Queue

	log logging.LeveledLogger
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, opts Options) (*Wire, error) {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	lf := NewLoggerFactory(cfg.Log, opts.Stderr)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	opener := opts.Opener
	if opener == nil {
		if cfg.Opener.Print {
			opener = deeplink.NewWriterOpener(opts.Stdout)
		} else {
			opener = deeplink.NewExecOpener(cfg.Opener.Command, lf)
		}
	}

	inbox, err := store.NewInbox(cfg.Inbox.Dir)
	if err != nil {
		return nil, err
	}

	sess, err := sessionsvc.New(sessionsvc.Config{
		AppInfo:       cfg.App,
		SelfBase:      cfg.Links.SelfBase,
		PeerBase:      cfg.Links.PeerBase,
		Opener:        opener,
		BindAttempt:   cfg.Session.BindAttempt,
		Metrics:       m,
		LoggerFactory: lf,
	})
	if err != nil {
		return nil, err
	}

	router, err := deeplink.NewRouter(deeplink.RouterConfig{
		SelfBase:      cfg.Links.SelfBase,
		Session:       sess,
		Metrics:       m,
		LoggerFactory: lf,
	})
	if err != nil {
		return nil, err
	}

	queue := deeplink.NewQueue(deeplink.QueueConfig{
		Size:          cfg.Router.QueueSize,
		Rate:          cfg.Router.Rate,
		Burst:         cfg.Router.Burst,
		LoggerFactory: lf,
	})

	return &Wire{
		Config:   cfg,
		Logger:   lf,
		Registry: reg,
		Metrics:  m,
		Opener:   opener,
		Inbox:    inbox,
		Session:  sess,
		Router:   router,
		Queue:    queue,
		log:      lf.NewLogger("app"),
	}, nil
}

// NewWatcher returns an inbox watcher feeding the queue.
func (w *Wire) NewWatcher() (*deeplink.Watcher, error) {
	return deeplink.NewWatcher(deeplink.WatcherConfig{
		Inbox:         w.Inbox,
		Sink:          w.Queue,
		LoggerFactory: w.Logger,
	})
}

// HandleLink routes one inbound link, logging the result. It is the queue
// consumer.
func (w *Wire) HandleLink(ctx context.Context, raw string) {
	out, err := w.Router.Route(ctx, raw)
	if err != nil {
		w.log.Warnf("inbound link: %v", err)
		return
	}
	if out != deeplink.OutcomeIgnored {
		w.log.Infof("inbound link: %s (session %s)", out, w.Session.State())
	}
}

// Close destroys session secrets and stops accepting inbound links.
func (w *Wire) Close() error {
	w.Session.Teardown()
	w.Queue.Close()
	return nil
}
