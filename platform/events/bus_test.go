package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"crm_leads_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishSyncDeliversInOrder(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var got []int
	for i := 0; i < 3; i++ {
		n := i
		bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
			got = append(got, n)
			return nil
		}))
	}

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "test.event"}); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("handlers ran out of order: %v", got)
	}
}

func TestPublishSyncJoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	failure := errors.New("handler broke")
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		return failure
	}))
	var secondRan bool
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		secondRan = true
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "test.event"})
	if !errors.Is(err, failure) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if !secondRan {
		t.Fatal("later handler skipped after earlier failure")
	}
}

func TestPublishIsAsyncAndFiltersOnName(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe("wanted.event", HandlerFunc(func(ctx context.Context, event Event) error {
		wg.Done()
		return nil
	}))

	var wrongCalled bool
	bus.Subscribe("other.event", HandlerFunc(func(ctx context.Context, event Event) error {
		wrongCalled = true
		return nil
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "wanted.event"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscribed handler never ran")
	}
	if wrongCalled {
		t.Fatal("handler for a different event name was invoked")
	}
}

func TestPublishRecoversHandlerPanic(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	done := make(chan struct{})
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		defer close(done)
		panic("boom")
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "test.event"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}
	// Give the recover path a moment; the test fails via the race
	// detector or an unrecovered panic if it is broken.
	time.Sleep(10 * time.Millisecond)
}
