// This file provides a position-tracked priority queue built on top of
// container/heap.
//
// Unlike a plain heap, every item carries a back-pointer (Ref) into the
// field the owner uses to remember its own slot. Whenever heap.Fix,
// heap.Push, or heap.Remove reorders the underlying slice, Swap rewrites
// *Ref for both items it touches, so the owner never has to search the
// heap to find itself again.
//
// Time complexity: O(log n) for Upsert/Delete, O(1) for Peek.
package ds

import "container/heap"

// HeapItem is one entry in the min-heap, ordered by ExpireAt ascending.
type HeapItem struct {
	ExpireAt int64 // ms, monotonic
	Owner    interface{}
	Ref      *int // points at the owner's slot field; kept current by Swap
	index    int
}

// MinHeap is a binary min-heap of *HeapItem. The zero value is an empty
// heap ready for use; NewMinHeap returns the same.
type MinHeap struct {
	items []*HeapItem
}

// NewMinHeap returns an empty heap.
func NewMinHeap() *MinHeap {
	return &MinHeap{items: make([]*HeapItem, 0)}
}

// Len, Less, Swap, Push, Pop implement heap.Interface.

func (h *MinHeap) Len() int { return len(h.items) }

func (h *MinHeap) Less(i, j int) bool {
	return h.items[i].ExpireAt < h.items[j].ExpireAt
}

func (h *MinHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
	if h.items[i].Ref != nil {
		*h.items[i].Ref = i
	}
	if h.items[j].Ref != nil {
		*h.items[j].Ref = j
	}
}

func (h *MinHeap) Push(x interface{}) {
	item := x.(*HeapItem)
	item.index = len(h.items)
	if item.Ref != nil {
		*item.Ref = item.index
	}
	h.items = append(h.items, item)
}

func (h *MinHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	if item.Ref != nil {
		*item.Ref = -1
	}
	h.items = old[:n-1]
	return item
}

// Upsert inserts a new item (pos == -1) or updates the ExpireAt of the
// item currently at pos and re-heapifies around it. It returns the item's
// resulting heap position.
func (h *MinHeap) Upsert(pos int, owner interface{}, ref *int, expireAt int64) int {
	if pos >= 0 && pos < len(h.items) {
		item := h.items[pos]
		item.ExpireAt = expireAt
		item.Owner = owner
		item.Ref = ref
		heap.Fix(h, pos)
		return item.index
	}
	item := &HeapItem{ExpireAt: expireAt, Owner: owner, Ref: ref}
	heap.Push(h, item)
	return item.index
}

// Delete removes the item at pos, if pos is a valid position.
func (h *MinHeap) Delete(pos int) {
	if pos < 0 || pos >= len(h.items) {
		return
	}
	heap.Remove(h, pos)
}

// Peek returns the minimum item without removing it.
func (h *MinHeap) Peek() (*HeapItem, bool) {
	if len(h.items) == 0 {
		return nil, false
	}
	return h.items[0], true
}

// PopMin removes and returns the minimum item.
func (h *MinHeap) PopMin() (*HeapItem, bool) {
	if len(h.items) == 0 {
		return nil, false
	}
	return heap.Pop(h).(*HeapItem), true
}

// ItemAt returns the item currently at position pos, or (nil, false) if
// pos is out of range. Exposed so callers that track a position through
// Ref can verify it still points at the item they expect.
func (h *MinHeap) ItemAt(pos int) (*HeapItem, bool) {
	if pos < 0 || pos >= len(h.items) {
		return nil, false
	}
	return h.items[pos], true
}
