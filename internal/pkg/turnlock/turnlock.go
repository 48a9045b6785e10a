package turnlock

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultIdleTTL = 30 * time.Minute
)

// Registry hands out one lock per key. Held locks never expire; idle ones
// are evicted after the configured TTL.
type Registry struct {
	mu      sync.Mutex
	entries *cache.Cache
}

type entry struct {
	slot chan struct{}
	refs int
}

func NewRegistry(idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}

	return &Registry{
		entries: cache.New(idleTTL, idleTTL*2),
	}
}

// Lock blocks until key is free or ctx is done. The returned func releases
// the lock and is safe to call more than once.
func (r *Registry) Lock(ctx context.Context, key string) (func(), error) {
	e := r.retain(key)

	select {
	case e.slot <- struct{}{}:
	case <-ctx.Done():
		r.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.slot
			r.release(key, e)
		})
	}, nil
}

// Len returns the number of tracked keys, idle ones included.
func (r *Registry) Len() int {
	return r.entries.ItemCount()
}

func (r *Registry) retain(key string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var e *entry
	if v, ok := r.entries.Get(key); ok {
		e = v.(*entry)
	} else {
		e = &entry{slot: make(chan struct{}, 1)}
	}

	e.refs++
	r.entries.Set(key, e, cache.NoExpiration)

	return e
}

func (r *Registry) release(key string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		r.entries.Set(key, e, cache.DefaultExpiration)
	}
}
