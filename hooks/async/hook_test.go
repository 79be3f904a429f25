package asynchook

import (
	"errors"
	"sync"
	"testing"

	"github.com/unkn0wn-root/keyedcache"
)

type countingHooks struct {
	keyedcache.NopHooks
	mu     sync.Mutex
	loads  int
	errors []string
	block  chan struct{}
}

func (c *countingHooks) Loaded(string) {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	c.loads++
	c.mu.Unlock()
}

func (c *countingHooks) StoreError(op, _ string, _ error) {
	c.mu.Lock()
	c.errors = append(c.errors, op)
	c.mu.Unlock()
}

func TestCloseDrainsQueue(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 2, 64)

	for i := 0; i < 50; i++ {
		h.Loaded("k")
	}
	h.StoreError("remove", "k", errors.New("x"))
	h.Close()

	if inner.loads != 50 {
		t.Fatalf("loads=%d want 50", inner.loads)
	}
	if len(inner.errors) != 1 || inner.errors[0] != "remove" {
		t.Fatalf("errors=%v", inner.errors)
	}
	if h.Dropped() != 0 {
		t.Fatalf("dropped=%d want 0", h.Dropped())
	}
}

func TestFullQueueDrops(t *testing.T) {
	inner := &countingHooks{block: make(chan struct{})}
	h := New(inner, 1, 1)

	// one event blocks the worker, one fills the queue, the rest drop
	for i := 0; i < 10; i++ {
		h.Loaded("k")
	}
	close(inner.block)
	h.Close()

	if h.Dropped() == 0 {
		t.Fatalf("expected drops with a full queue")
	}
	if got := uint64(inner.loads) + h.Dropped(); got != 10 {
		t.Fatalf("delivered+dropped=%d want 10", got)
	}
}

func TestEventsAfterCloseAreDropped(t *testing.T) {
	h := New(keyedcache.NopHooks{}, 1, 4)
	h.Close()
	h.Close()

	h.Missed("k")
	if h.Dropped() != 1 {
		t.Fatalf("dropped=%d want 1", h.Dropped())
	}
}
