package notify

import (
	"context"
	"iter"
	"time"

	"github.com/alecthomas/atomic"
	"github.com/jpillora/backoff"
	"go.uber.org/zap"
)

type Presenter interface {
	Present(t Toast)
}

// Dispatcher queues toasts and hands them to a single Presenter goroutine.
type Dispatcher struct {
	toasts    chan Toast
	presenter Presenter
	logger    *zap.Logger
	// queued counts toasts accepted by Notify and not yet presented.
	queued atomic.Int32
}

func NewDispatcher(presenter Presenter, logger *zap.Logger, buffer int) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		toasts:    make(chan Toast, buffer),
		presenter: presenter,
		logger:    logger,
	}
}

// Notify enqueues t. When the queue is full the toast is dropped.
func (d *Dispatcher) Notify(t Toast) {
	d.queued.Add(1)
	select {
	case d.toasts <- t:
	default:
		d.queued.Add(-1)
		d.logger.Warn("toast dropped, queue full",
			zap.String("audience", t.Audience),
			zap.String("description", t.Description))
	}
}

// Run presents queued toasts until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	for t := range iterContext(ctx, d.toasts) {
		d.presenter.Present(t)
		d.queued.Add(-1)
	}
	d.logger.Debug("toast dispatcher stopped")
}

func iterContext[T any](ctx context.Context, ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-ch:
				if !ok {
					return
				}
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Wait blocks until every toast accepted so far has been presented, or ctx
// is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	retry := backoff.Backoff{Min: time.Millisecond, Max: 10 * time.Millisecond}
	for d.queued.Load() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry.Duration()):
		}
	}
	return nil
}
