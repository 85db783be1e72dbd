// Package dedupe tracks scan submission IDs so a retried submission is
// recorded at most once.
package dedupe

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

// DefaultMaxSize is the number of submission IDs remembered by default.
const DefaultMaxSize = 1024

// Deduper records seen submission IDs to ensure at-most-once recording.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Attach binds the history entry created for id. It is a no-op for
	// unknown IDs.
	Attach(ctx context.Context, id, entryID string)

	// EntryFor returns the entry bound to id, if any.
	EntryFor(ctx context.Context, id string) (string, bool)

	// Unrecord removes an ID so that a failed submission can be retried.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

type record struct {
	id      string
	entryID string
}

// inMemoryDeduper keeps IDs in insertion order and evicts the oldest once
// maxSize is reached. maxSize <= 0 means unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int
	onEvict func(id, entryID string)
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: DefaultMaxSize,
		seen:    make(map[string]*list.Element),
		order:   list.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		d.evictOldest()
	}
	d.seen[id] = d.order.PushBack(&record{id: id})
	d.size.Store(int64(d.order.Len()))
	return false
}

func (d *inMemoryDeduper) Attach(_ context.Context, id, entryID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[id]; ok {
		el.Value.(*record).entryID = entryID
	}
}

func (d *inMemoryDeduper) EntryFor(_ context.Context, id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el, ok := d.seen[id]
	if !ok {
		return "", false
	}
	r := el.Value.(*record)
	return r.entryID, r.entryID != ""
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[id]; ok {
		d.order.Remove(el)
		delete(d.seen, id)
		d.size.Store(int64(d.order.Len()))
	}
}

// evictOldest must be called with d.mu held.
func (d *inMemoryDeduper) evictOldest() {
	front := d.order.Front()
	if front == nil {
		return
	}
	r := front.Value.(*record)
	d.order.Remove(front)
	delete(d.seen, r.id)
	if d.onEvict != nil {
		d.onEvict(r.id, r.entryID)
	}
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
