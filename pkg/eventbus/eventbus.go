package eventbus

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
)

// EventBus is a small lock-free pub/sub. Publishing never blocks: a
// subscriber whose buffer is full misses the event and it is counted as
// dropped.
type EventBus[T any] struct {
	subscribers   *xsync.Map[string, *subscriber[T]]
	isShutdown    atomic.Bool
	subscriberSeq atomic.Uint64
	bufferSize    int
}

type subscriber[T any] struct {
	ch      chan T
	id      string
	dropped atomic.Uint64
	mu      sync.RWMutex
	closed  bool
}

// offer is a non-blocking send that is safe against a concurrent close
func (s *subscriber[T]) offer(event T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- event:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

func (s *subscriber[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

const DefaultBufferSize = 16

// New creates an EventBus whose subscribers buffer bufferSize events
func New[T any](bufferSize int) *EventBus[T] {
	if bufferSize < 1 {
		bufferSize = DefaultBufferSize
	}
	return &EventBus[T]{
		subscribers: xsync.NewMap[string, *subscriber[T]](),
		bufferSize:  bufferSize,
	}
}

// Subscribe returns a channel of events and a function to unsubscribe.
// The channel is closed when ctx ends, on unsubscribe or on Shutdown.
func (eb *EventBus[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	if eb.isShutdown.Load() {
		ch := make(chan T)
		close(ch)
		return ch, func() {}
	}

	id := "sub_" + strconv.FormatUint(eb.subscriberSeq.Add(1), 10)
	sub := &subscriber[T]{id: id, ch: make(chan T, eb.bufferSize)}
	eb.subscribers.Store(id, sub)

	go func() {
		<-ctx.Done()
		eb.unsubscribe(id)
	}()

	return sub.ch, func() { eb.unsubscribe(id) }
}

// Publish delivers event to every subscriber with room for it and
// returns how many received it
func (eb *EventBus[T]) Publish(event T) int {
	if eb.isShutdown.Load() {
		return 0
	}

	delivered := 0
	eb.subscribers.Range(func(_ string, sub *subscriber[T]) bool {
		if sub.offer(event) {
			delivered++
		}
		return true
	})
	return delivered
}

// Shutdown closes every subscriber channel, later publishes are ignored
func (eb *EventBus[T]) Shutdown() {
	if !eb.isShutdown.CompareAndSwap(false, true) {
		return
	}
	eb.subscribers.Range(func(id string, _ *subscriber[T]) bool {
		eb.unsubscribe(id)
		return true
	})
}

// Stats is a point in time view of the bus
type Stats struct {
	Subscribers int
	Dropped     uint64
	IsShutdown  bool
}

func (eb *EventBus[T]) Stats() Stats {
	stats := Stats{IsShutdown: eb.isShutdown.Load()}
	eb.subscribers.Range(func(_ string, sub *subscriber[T]) bool {
		stats.Subscribers++
		stats.Dropped += sub.dropped.Load()
		return true
	})
	return stats
}

func (eb *EventBus[T]) unsubscribe(id string) {
	if sub, ok := eb.subscribers.LoadAndDelete(id); ok {
		sub.close()
	}
}
