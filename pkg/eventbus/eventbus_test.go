package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"
)

type reloadEvent struct {
	Key      string
	PageSize int
}

func receive[T any](t *testing.T, ch <-chan T) (T, bool) {
	t.Helper()
	select {
	case v, ok := <-ch:
		return v, ok
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for event")
	}
	var zero T
	return zero, false
}

func TestEventBus_BasicPubSub(t *testing.T) {
	bus := New[reloadEvent](0)
	defer bus.Shutdown()

	events, cleanup := bus.Subscribe(context.Background())
	defer cleanup()

	if delivered := bus.Publish(reloadEvent{Key: "view.page_size", PageSize: 50}); delivered != 1 {
		t.Errorf("Expected 1 delivery, got %d", delivered)
	}

	got, ok := receive(t, events)
	if !ok || got.PageSize != 50 || got.Key != "view.page_size" {
		t.Errorf("Unexpected event %+v (open=%v)", got, ok)
	}
}

func TestEventBus_MultipleSubscribers(t *testing.T) {
	bus := New[int](4)
	defer bus.Shutdown()

	const n = 5
	subs := make([]<-chan int, 0, n)
	for i := 0; i < n; i++ {
		ch, cleanup := bus.Subscribe(context.Background())
		defer cleanup()
		subs = append(subs, ch)
	}

	if delivered := bus.Publish(42); delivered != n {
		t.Errorf("Expected %d deliveries, got %d", n, delivered)
	}
	for i, ch := range subs {
		if got, _ := receive(t, ch); got != 42 {
			t.Errorf("Subscriber %d: expected 42, got %d", i, got)
		}
	}
}

func TestEventBus_ContextCancellation(t *testing.T) {
	bus := New[int](1)
	defer bus.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	events, _ := bus.Subscribe(ctx)
	cancel()

	if _, ok := receive(t, events); ok {
		t.Error("Expected channel to close after cancel")
	}
	if s := bus.Stats(); s.Subscribers != 0 {
		t.Errorf("Expected no subscribers, got %d", s.Subscribers)
	}
}

func TestEventBus_Backpressure(t *testing.T) {
	bus := New[int](2)
	defer bus.Shutdown()

	events, cleanup := bus.Subscribe(context.Background())
	defer cleanup()

	delivered := 0
	for i := 0; i < 5; i++ {
		delivered += bus.Publish(i)
	}
	if delivered != 2 {
		t.Errorf("Expected 2 buffered deliveries, got %d", delivered)
	}
	if s := bus.Stats(); s.Dropped != 3 {
		t.Errorf("Expected 3 dropped, got %d", s.Dropped)
	}

	// oldest events are kept
	if got, _ := receive(t, events); got != 0 {
		t.Errorf("Expected first event 0, got %d", got)
	}
}

func TestEventBus_Shutdown(t *testing.T) {
	bus := New[int](1)
	events, cleanup := bus.Subscribe(context.Background())
	defer cleanup()

	bus.Shutdown()
	bus.Shutdown()

	if _, ok := receive(t, events); ok {
		t.Error("Expected channel closed on shutdown")
	}
	if delivered := bus.Publish(1); delivered != 0 {
		t.Errorf("Expected no deliveries after shutdown, got %d", delivered)
	}

	late, _ := bus.Subscribe(context.Background())
	if _, ok := receive(t, late); ok {
		t.Error("Expected closed channel for late subscriber")
	}
	if !bus.Stats().IsShutdown {
		t.Error("Expected stats to report shutdown")
	}
}

func TestEventBus_ConcurrentPublishAndUnsubscribe(t *testing.T) {
	bus := New[int](8)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				bus.Publish(j)
			}
		}()
	}

	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		_, cleanup := bus.Subscribe(ctx)
		if i%2 == 0 {
			cleanup()
		}
		cancel()
	}

	wg.Wait()
	bus.Shutdown()
}
