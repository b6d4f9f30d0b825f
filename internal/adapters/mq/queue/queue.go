// Package queue buffers player inputs between the input source and the
// frame driver.
//
// Producers never block: a full or closed queue drops the input and counts
// it. The single consumer drains everything pending once per tick.
package queue

import (
	"context"
	"sync"

	"github.com/okian/nowbar/internal/domain/model"
	"github.com/okian/nowbar/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 256
)

// Input is the payload type flowing through the queue.
type Input = model.Input

// Queue provides non-blocking enqueue and batch dequeue semantics.
type Queue interface {
	// Enqueue adds an input. Returns false if it was dropped.
	Enqueue(ctx context.Context, in Input) bool

	// Drain returns every pending input in arrival order without blocking.
	Drain(ctx context.Context) []Input

	// Len returns the current number of queued inputs.
	Len(ctx context.Context) int

	// Close stops accepting inputs. Pending inputs can still be drained.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	inputs   chan Input
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.inputs = make(chan Input, q.capacity)
	metrics.UpdateInputQueueSize(0)

	return q
}

// Enqueue adds an input to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, in Input) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordInputDropped()
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}

	select {
	case q.inputs <- in:
		metrics.UpdateInputQueueSize(len(q.inputs))
		return true
	case <-ctx.Done():
		metrics.RecordInputDropped()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	default:
		metrics.RecordInputDropped()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// Drain returns every pending input in arrival order.
func (q *InMemoryQueue) Drain(ctx context.Context) []Input {
	var out []Input
	for {
		select {
		case in, ok := <-q.inputs:
			if !ok {
				metrics.UpdateInputQueueSize(0)
				return out
			}
			out = append(out, in)
		case <-ctx.Done():
			metrics.UpdateInputQueueSize(len(q.inputs))
			return out
		default:
			metrics.UpdateInputQueueSize(0)
			return out
		}
	}
}

// Len returns the current number of queued inputs.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.inputs)
	metrics.UpdateInputQueueSize(size)
	return size
}

// Close stops accepting inputs.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.inputs)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
