// Package dedupe tracks request ids so a retried remote input is applied at
// most once.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

const defaultMaxSize = 4096

// Deduper records seen ids.
type Deduper interface {
	// SeenAndRecord reports whether id was already recorded and records it
	// if not. The check and the record are atomic.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a rejected request can be retried.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// InMemory is a Deduper bounded to maxSize ids. When full, the oldest id is
// forgotten first. A maxSize of zero or less means unbounded.
type InMemory struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List // front is newest
	maxSize int
}

// NewInMemory creates an in-memory deduper.
func NewInMemory(opts ...Option) *InMemory {
	d := &InMemory{
		seen:    make(map[string]*list.Element),
		order:   list.New(),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SeenAndRecord implements Deduper.
func (d *InMemory) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		oldest := d.order.Back()
		d.order.Remove(oldest)
		delete(d.seen, oldest.Value.(string))
	}
	d.seen[id] = d.order.PushFront(id)
	return false
}

// Unrecord implements Deduper.
func (d *InMemory) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[id]; ok {
		d.order.Remove(el)
		delete(d.seen, id)
	}
}

// Size implements Deduper.
func (d *InMemory) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(d.order.Len())
}
