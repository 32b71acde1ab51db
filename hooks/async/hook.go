// Package asynchook runs store hooks off the Save/Load path.
//
// Events go into a bounded queue drained by a fixed set of workers; when the
// queue is full the event is dropped. Call Close to drain and stop.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{LoadedEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	s, _ := store.New(store.Options{
//	    Namespace: "worms",
//	    Provider:  p,
//	    Hooks:     hooks, // or raw if you don't want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/typedjson/store"
)

type Hooks struct {
	inner   store.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ store.Hooks = (*Hooks)(nil)

func New(inner store.Hooks, workers, qlen int) *Hooks {
	if inner == nil {
		inner = store.NopHooks{}
	}
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close stops accepting events, runs the queued ones and waits for workers.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) Saved(k, format string, size int, took time.Duration) {
	h.try(func() { h.inner.Saved(k, format, size, took) })
}
func (h *Hooks) Loaded(k, format string, size int, took time.Duration) {
	h.try(func() { h.inner.Loaded(k, format, size, took) })
}
func (h *Hooks) ProviderSetRejected(k string) { h.try(func() { h.inner.ProviderSetRejected(k) }) }
func (h *Hooks) BlobTooLarge(k, op string, size, limit int) {
	h.try(func() { h.inner.BlobTooLarge(k, op, size, limit) })
}
func (h *Hooks) LoadFailed(k, reason string, err error) {
	h.try(func() { h.inner.LoadFailed(k, reason, err) })
}
func (h *Hooks) UnframedBlob(k, format string) { h.try(func() { h.inner.UnframedBlob(k, format) }) }
