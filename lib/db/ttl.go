package db

import "github.com/kvrdb/kvr/lib/ds"

// TTLHeap wraps lib/ds.MinHeap to maintain the back-pointer invariant at
// the Entry level: whenever the heap reorders, the owning Entry's
// HeapSlot field is rewritten through the Ref back-pointer passed to
// Upsert. Heap and keyspace ownership stay separate: the heap only ever
// holds a back-reference to an Entry, never an owning one.
type TTLHeap struct {
	heap *ds.MinHeap
}

// NewTTLHeap returns an empty TTL heap.
func NewTTLHeap() *TTLHeap {
	return &TTLHeap{heap: ds.NewMinHeap()}
}

// SetExpire installs or updates e's expiration. A negative ttlMs clears
// any existing TTL instead.
func (t *TTLHeap) SetExpire(e *Entry, nowMs, ttlMs int64) {
	if ttlMs < 0 {
		t.ClearExpire(e)
		return
	}
	e.ExpireAt = nowMs + ttlMs
	e.HeapSlot = t.heap.Upsert(e.HeapSlot, e, &e.HeapSlot, e.ExpireAt)
}

// ClearExpire removes any TTL tracked for e. A no-op if e has none.
func (t *TTLHeap) ClearExpire(e *Entry) {
	if e.HeapSlot < 0 {
		return
	}
	t.heap.Delete(e.HeapSlot)
	e.HeapSlot = -1
}

// RemainingMs returns the milliseconds left before e expires, or -1 if e
// has no TTL. Never negative for an entry whose TTL is already due.
func (t *TTLHeap) RemainingMs(e *Entry, nowMs int64) int64 {
	if e.HeapSlot < 0 {
		return -1
	}
	if e.ExpireAt > nowMs {
		return e.ExpireAt - nowMs
	}
	return 0
}

// NextExpireAt returns the ExpireAt of the soonest-expiring entry, or
// (0, false) if the heap is empty.
func (t *TTLHeap) NextExpireAt() (int64, bool) {
	item, ok := t.heap.Peek()
	if !ok {
		return 0, false
	}
	return item.ExpireAt, true
}

// PopExpired pops and returns the Entry owning the heap's minimum item if
// it is due by nowMs, clearing its HeapSlot. Returns (nil, false) if the
// heap is empty or its minimum is not yet due.
func (t *TTLHeap) PopExpired(nowMs int64) (*Entry, bool) {
	item, ok := t.heap.Peek()
	if !ok || item.ExpireAt >= nowMs {
		return nil, false
	}
	popped, _ := t.heap.PopMin()
	e := popped.Owner.(*Entry)
	e.HeapSlot = -1
	return e, true
}
