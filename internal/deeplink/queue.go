package deeplink

import (
	"context"
	"errors"
	"sync"

	"github.com/pion/logging"
	"golang.org/x/time/rate"

	"linkbox/internal/domain"
)

var (
	// ErrQueueFull is returned by Push when the buffer is full.
	ErrQueueFull = errors.New("deeplink: queue full")
	// ErrQueueClosed is returned by Push after Close.
	ErrQueueClosed = errors.New("deeplink: queue closed")
)

// Handler processes one inbound link.
type Handler func(ctx context.Context, rawURL string)

// QueueConfig configures a Queue.
type QueueConfig struct {
	// Size is the buffer capacity. Defaults to 64.
	Size int

	// Rate is the maximum number of links handled per second; zero or less
	// means unlimited.
	Rate float64

	// Burst is the limiter burst. Defaults to 1.
	Burst int

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Queue buffers inbound links for a single consumer, so that events are
// handled one at a time and in arrival order.
type Queue struct {
	ch      chan string
	limiter *rate.Limiter
	log     logging.LeveledLogger

	mu     sync.RWMutex
	closed bool
}

// NewQueue returns an open queue.
func NewQueue(cfg QueueConfig) *Queue {
	size := cfg.Size
	if size <= 0 {
		size = 64
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	q := &Queue{
		ch:      make(chan string, size),
		limiter: rate.NewLimiter(limit, burst),
	}
	if cfg.LoggerFactory != nil {
		q.log = cfg.LoggerFactory.NewLogger("queue")
	}
	return q
}

var _ domain.LinkSink = (*Queue)(nil)

// Push enqueues rawURL without blocking.
func (q *Queue) Push(rawURL string) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- rawURL:
		return nil
	default:
		if q.log != nil {
			q.log.Warnf("dropping inbound link: queue full (%d)", cap(q.ch))
		}
		return ErrQueueFull
	}
}

// Close stops accepting links. Run drains what is buffered and returns.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}

// Run hands each link to h until ctx is done or the queue is closed and
// drained. It must be called from exactly one goroutine.
func (q *Queue) Run(ctx context.Context, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-q.ch:
			if !ok {
				return nil
			}
			if err := q.limiter.Wait(ctx); err != nil {
				return err
			}
			h(ctx, raw)
		}
	}
}
