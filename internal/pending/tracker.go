// Package pending tracks which entities have a mutation in flight.
package pending

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Tracker is a goroutine-safe set of keys with an operation in flight.
// Keys are independent: one key being pending never affects another.
type Tracker[K comparable] struct {
	inFlight mapset.Set[K]
}

func New[K comparable]() *Tracker[K] {
	return &Tracker[K]{inFlight: mapset.NewSet[K]()}
}

// Begin marks k as pending. It returns false when k already was.
func (t *Tracker[K]) Begin(k K) bool {
	return t.inFlight.Add(k)
}

// Settle clears k, whether its operation succeeded or failed.
func (t *Tracker[K]) Settle(k K) {
	t.inFlight.Remove(k)
}

func (t *Tracker[K]) IsPending(k K) bool {
	return t.inFlight.Contains(k)
}

// Any reports whether any key is pending.
func (t *Tracker[K]) Any() bool {
	return t.inFlight.Cardinality() > 0
}

func (t *Tracker[K]) Len() int {
	return t.inFlight.Cardinality()
}

func (t *Tracker[K]) Keys() []K {
	return t.inFlight.ToSlice()
}

// Do runs fn with k marked pending. If k is already pending fn is not run
// and Do returns false.
func (t *Tracker[K]) Do(k K, fn func()) bool {
	if !t.Begin(k) {
		return false
	}
	defer t.Settle(k)

	fn()
	return true
}
