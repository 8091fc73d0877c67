package watcher

import (
	"context"
	"log/slog"
	"sync"
)

// Dispatcher serializes the notifications of one watched kind onto a single worker.
// Watch callbacks only enqueue, so a slow handler never stalls other kinds.
type Dispatcher[T any] struct {
	logger  *slog.Logger
	kind    string
	queue   chan Notification[T]
	handler Handler[T]
	done    chan struct{}
	once    sync.Once
}

// NewDispatcher creates a dispatcher with a queue bounded to size.
func NewDispatcher[T any](logger *slog.Logger, kind string, size int, handler Handler[T]) *Dispatcher[T] {
	if size < 1 {
		size = 1
	}

	return &Dispatcher[T]{
		logger:  logger.With("component", "dispatcher", "kind", kind),
		kind:    kind,
		queue:   make(chan Notification[T], size),
		handler: handler,
		done:    make(chan struct{}),
	}
}

// Enqueue blocks while the queue is full. After Run returns it drops the notification.
func (d *Dispatcher[T]) Enqueue(n Notification[T]) {
	select {
	case d.queue <- n:
	case <-d.done:
		d.logger.Debug("dispatcher stopped, dropping notification", "type", n.Type)
	}
}

// Run handles notifications in delivery order until ctx is done.
func (d *Dispatcher[T]) Run(ctx context.Context) {
	defer d.once.Do(func() { close(d.done) })

	d.logger.DebugContext(ctx, "dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.logger.DebugContext(ctx, "dispatcher stopped", "pending", len(d.queue))

			return
		case n := <-d.queue:
			d.handler.Handle(ctx, n)
		}
	}
}

// Pending returns the number of queued notifications.
func (d *Dispatcher[T]) Pending() int {
	return len(d.queue)
}
