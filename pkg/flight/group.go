// Package flight allows at most one in-flight action per key.
package flight

import (
	"context"
	"sync"
)

// entry is a one-slot semaphore shared by everyone waiting on a key.
type entry struct {
	slot chan struct{}
	refs int
}

// Group tracks one slot per key. The zero value is ready to use.
type Group struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func (g *Group) ref(key string) *entry {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.entries == nil {
		g.entries = make(map[string]*entry)
	}
	e, ok := g.entries[key]
	if !ok {
		e = &entry{slot: make(chan struct{}, 1)}
		g.entries[key] = e
	}
	e.refs++
	return e
}

func (g *Group) unref(key string, e *entry) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(g.entries, key)
	}
}

// TryAcquire claims key without waiting. ok is false if an action on key
// is already running.
func (g *Group) TryAcquire(key string) (release func(), ok bool) {
	e := g.ref(key)
	select {
	case e.slot <- struct{}{}:
		return g.releaser(key, e), true
	default:
		g.unref(key, e)
		return nil, false
	}
}

// Acquire waits until key is free or ctx is done.
func (g *Group) Acquire(ctx context.Context, key string) (release func(), err error) {
	e := g.ref(key)
	select {
	case e.slot <- struct{}{}:
		return g.releaser(key, e), nil
	case <-ctx.Done():
		g.unref(key, e)
		return nil, ctx.Err()
	}
}

func (g *Group) releaser(key string, e *entry) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.slot
			g.unref(key, e)
		})
	}
}
