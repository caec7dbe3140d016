package pending_test

import (
	"sync"
	"testing"

	"github.com/nikolayk812/storefront-cart/internal/pending"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_BeginSettle(t *testing.T) {
	tr := pending.New[string]()
	assert.False(t, tr.Any())

	require.True(t, tr.Begin("a"))
	assert.False(t, tr.Begin("a"), "second begin on the same key")
	assert.True(t, tr.IsPending("a"))
	assert.False(t, tr.IsPending("b"))
	assert.True(t, tr.Any())

	require.True(t, tr.Begin("b"))
	assert.ElementsMatch(t, []string{"a", "b"}, tr.Keys())

	tr.Settle("a")
	assert.False(t, tr.IsPending("a"))
	assert.True(t, tr.IsPending("b"))
	assert.Equal(t, 1, tr.Len())

	tr.Settle("b")
	assert.False(t, tr.Any())
}

func TestTracker_DoIsIndependentPerKey(t *testing.T) {
	tr := pending.New[string]()

	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tr.Do("a", func() {
			close(started)
			<-release
		})
	}()
	<-started

	assert.False(t, tr.Do("a", func() { t.Error("must not run while a is pending") }))

	var ranB bool
	assert.True(t, tr.Do("b", func() {
		ranB = true
		assert.True(t, tr.IsPending("a"))
	}))
	assert.True(t, ranB)
	assert.False(t, tr.IsPending("b"))

	close(release)
	wg.Wait()
	assert.False(t, tr.Any())
}

func TestTracker_DoSettlesOnPanic(t *testing.T) {
	tr := pending.New[int]()

	assert.Panics(t, func() {
		tr.Do(1, func() { panic("boom") })
	})
	assert.False(t, tr.IsPending(1))
}
