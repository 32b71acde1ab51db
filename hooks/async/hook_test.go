package asynchook

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/unkn0wn-root/typedjson/store"
)

type counting struct {
	store.NopHooks
	mu     sync.Mutex
	events []string
	block  chan struct{}
}

func (c *counting) add(ev string) {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *counting) Saved(string, string, int, time.Duration)  { c.add("saved") }
func (c *counting) Loaded(string, string, int, time.Duration) { c.add("loaded") }
func (c *counting) LoadFailed(string, string, error)          { c.add("load_failed") }

func TestForwardsAllEventsBeforeClose(t *testing.T) {
	inner := &counting{}
	h := New(inner, 2, 16)
	h.Saved("k", "json", 1, 0)
	h.Loaded("k", "json", 1, 0)
	h.LoadFailed("k", "decode", nil)
	h.UnframedBlob("k", "json")
	h.Close()

	assert.ElementsMatch(t, []string{"saved", "loaded", "load_failed"}, inner.events)
	assert.Zero(t, h.Dropped())
}

func TestDropsWhenQueueIsFull(t *testing.T) {
	inner := &counting{block: make(chan struct{})}
	h := New(inner, 1, 1)

	// the single worker takes at most one event and blocks; the queue holds one more
	for i := 0; i < 10; i++ {
		h.Saved("k", "json", 1, 0)
	}
	close(inner.block)
	h.Close()

	assert.GreaterOrEqual(t, h.Dropped(), uint64(8))
	assert.Equal(t, uint64(10), h.Dropped()+uint64(len(inner.events)))
}

func TestEventsAfterCloseAreDropped(t *testing.T) {
	inner := &counting{}
	h := New(inner, 1, 4)
	h.Close()
	h.Close()
	h.Saved("k", "json", 1, 0)
	assert.Empty(t, inner.events)
	assert.Equal(t, uint64(1), h.Dropped())
}

func TestNilInnerUsesNop(t *testing.T) {
	h := New(nil, 0, 0)
	h.ProviderSetRejected("k")
	h.BlobTooLarge("k", "save", 2, 1)
	h.Close()
}
