package notify

import (
	"context"
	"time"
)

// Inbox drains a Store that is fed by a Dispatcher. A page rendered right
// after a redirect gets the toasts its own request queued, even when the
// presenter goroutine has not caught up yet.
type Inbox struct {
	dispatcher *Dispatcher
	store      *Store
	wait       time.Duration
}

// NewInbox waits at most wait for the dispatcher on each Drain.
func NewInbox(dispatcher *Dispatcher, store *Store, wait time.Duration) *Inbox {
	return &Inbox{dispatcher: dispatcher, store: store, wait: wait}
}

func (i *Inbox) Drain(audience string) []Toast {
	ctx, cancel := context.WithTimeout(context.Background(), i.wait)
	defer cancel()

	// on timeout the late toasts show on the next page
	_ = i.dispatcher.Wait(ctx)
	return i.store.Drain(audience)
}
