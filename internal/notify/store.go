package notify

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Store keeps undelivered toasts per audience until they are drained or expire.
type Store struct {
	mu    sync.Mutex
	cache *ttlcache.Cache[string, []Toast]
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: ttlcache.New[string, []Toast](
			ttlcache.WithTTL[string, []Toast](ttl),
			ttlcache.WithDisableTouchOnHit[string, []Toast](),
		),
	}
}

func (s *Store) Present(t Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var queued []Toast
	if item := s.cache.Get(t.Audience); item != nil {
		queued = item.Value()
	}
	s.cache.Set(t.Audience, append(queued, t), ttlcache.DefaultTTL)
}

// Drain returns the audience's toasts oldest first and forgets them.
func (s *Store) Drain(audience string) []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.cache.Get(audience)
	if item == nil {
		return nil
	}
	s.cache.Delete(audience)
	return item.Value()
}

// Run evicts expired toasts until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.cache.Start()
	}()

	<-ctx.Done()
	s.cache.Stop()
	<-done
}
