package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/alecthomas/types/optional"
	"github.com/nikolayk812/storefront-cart/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type chanPresenter chan notify.Toast

func (c chanPresenter) Present(t notify.Toast) { c <- t }

func TestDispatcher_DeliversInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	presented := make(chanPresenter, 2)
	d := notify.NewDispatcher(presented, zap.NewNop(), 4)

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(ctx)
	}()

	d.Notify(notify.Toast{Description: "first"})
	d.Notify(notify.Toast{Description: "second", Variant: notify.VariantDestructive})

	assert.Equal(t, "first", (<-presented).Description)
	second := <-presented
	assert.Equal(t, "second", second.Description)
	assert.Equal(t, notify.VariantDestructive, second.Variant)

	cancel()
	<-done
}

func TestDispatcher_NotifyNeverBlocks(t *testing.T) {
	d := notify.NewDispatcher(make(chanPresenter), zap.NewNop(), 1)

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for range 10 {
			d.Notify(notify.Toast{Description: "spam"})
		}
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked with nobody presenting")
	}
}

func TestFor_StampsAudience(t *testing.T) {
	var got notify.Toast
	n := notify.For(notify.NotifierFunc(func(t notify.Toast) { got = t }), "owner-1")

	n.Notify(notify.Toast{Audience: "someone-else", Description: "hi"})

	assert.Equal(t, "owner-1", got.Audience)
	assert.Equal(t, "hi", got.Description)
}

func TestResultToast(t *testing.T) {
	assert.Equal(t, notify.VariantDefault, notify.ResultToast(true, "ok").Variant)
	assert.Equal(t, notify.VariantDestructive, notify.ResultToast(false, "nope").Variant)
}

func TestStore_DrainPerAudience(t *testing.T) {
	s := notify.NewStore(time.Minute)

	goToCart := notify.Action{Label: "Go To Cart", Href: "/cart"}
	s.Present(notify.Toast{Audience: "a", Description: "one"})
	s.Present(notify.Toast{Audience: "b", Description: "other"})
	s.Present(notify.Toast{Audience: "a", Description: "two", Action: optional.Some(goToCart)})

	got := s.Drain("a")
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Description)
	assert.Equal(t, "two", got[1].Description)

	action, ok := got[1].Action.Get()
	require.True(t, ok)
	assert.Equal(t, goToCart, action)

	assert.Empty(t, s.Drain("a"), "drained toasts are dismissed")
	assert.Len(t, s.Drain("b"), 1)
}

func TestStore_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	s := notify.NewStore(10 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()

	s.Present(notify.Toast{Audience: "a", Description: "fleeting"})
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, s.Drain("a"), "expired toasts are not delivered")

	cancel()
	<-done
}

// slowPresenter delays every toast before handing it on.
type slowPresenter struct {
	next  notify.Presenter
	delay time.Duration
}

func (p slowPresenter) Present(t notify.Toast) {
	time.Sleep(p.delay)
	p.next.Present(t)
}

func TestInbox_WaitsForQueuedToasts(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	store := notify.NewStore(time.Minute)
	d := notify.NewDispatcher(slowPresenter{next: store, delay: 20 * time.Millisecond}, zap.NewNop(), 4)
	inbox := notify.NewInbox(d, store, time.Second)

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(ctx)
	}()

	d.Notify(notify.Toast{Audience: "alice", Description: "Mug added to cart"})
	d.Notify(notify.Toast{Audience: "alice", Description: "Lamp added to cart"})

	got := inbox.Drain("alice")
	require.Len(t, got, 2)
	assert.Equal(t, "Mug added to cart", got[0].Description)
	assert.Equal(t, "Lamp added to cart", got[1].Description)

	cancel()
	<-done
}

func TestInbox_GivesUpAfterWait(t *testing.T) {
	store := notify.NewStore(time.Minute)
	// nobody runs the dispatcher, so the toast stays queued
	d := notify.NewDispatcher(store, zap.NewNop(), 4)
	inbox := notify.NewInbox(d, store, 30*time.Millisecond)

	d.Notify(notify.Toast{Audience: "alice", Description: "stuck"})

	start := time.Now()
	assert.Empty(t, inbox.Drain("alice"))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	ctx, cancel := context.WithTimeout(t.Context(), time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)
}
