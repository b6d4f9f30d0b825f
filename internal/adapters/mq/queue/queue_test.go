package queue

import (
	"context"
	"sync"
	"testing"

	"github.com/okian/nowbar/internal/domain/model"
)

func press(lane int) model.Input {
	return model.Input{Kind: model.InputLanePress, Lane: lane}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, press(1)) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, model.Input{Kind: model.InputTogglePause}) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}

	got := q.Drain(ctx)
	if len(got) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(got))
	}
	if got[0] != press(1) || got[1].Kind != model.InputTogglePause {
		t.Errorf("inputs out of order: %v", got)
	}

	if got := q.Drain(ctx); len(got) != 0 {
		t.Errorf("expected empty drain, got %v", got)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, press(1)) || !q.Enqueue(ctx, press(2)) {
		t.Fatal("expected enqueue to succeed")
	}
	if q.Enqueue(ctx, press(3)) {
		t.Error("expected enqueue to fail when full")
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q.Enqueue(context.Background(), press(1))
	if q.Enqueue(ctx, press(2)) {
		t.Error("expected enqueue to fail on a full queue with cancelled context")
	}
}

func TestInMemoryQueue_ConcurrentProducers(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1000))
	ctx := context.Background()

	var wg sync.WaitGroup
	for lane := 1; lane <= 5; lane++ {
		wg.Add(1)
		go func(lane int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Enqueue(ctx, press(lane))
			}
		}(lane)
	}
	wg.Wait()

	got := q.Drain(ctx)
	if len(got) != 500 {
		t.Errorf("expected 500 inputs, got %d", len(got))
	}

	counts := map[int]int{}
	for _, in := range got {
		counts[in.Lane]++
	}
	for lane := 1; lane <= 5; lane++ {
		if counts[lane] != 100 {
			t.Errorf("lane %d: expected 100 inputs, got %d", lane, counts[lane])
		}
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	q.Enqueue(ctx, press(1))
	q.Enqueue(ctx, press(2))

	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}
	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}
	if q.Enqueue(ctx, press(3)) {
		t.Error("expected enqueue to fail after closing")
	}

	if got := q.Drain(ctx); len(got) != 2 {
		t.Errorf("expected pending inputs to survive close, got %d", len(got))
	}
	if got := q.Drain(ctx); len(got) != 0 {
		t.Errorf("expected nothing after drain, got %d", len(got))
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected second close to succeed, got error: %v", err)
	}
}
