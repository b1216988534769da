package ds

import "testing"

func TestNewMinHeap(t *testing.T) {
	h := NewMinHeap()
	if h.Len() != 0 {
		t.Errorf("new heap should be empty, got len %d", h.Len())
	}
	if _, ok := h.Peek(); ok {
		t.Error("Peek() on empty heap should return ok=false")
	}
}

func TestUpsertOrdersByExpireAt(t *testing.T) {
	h := NewMinHeap()
	var r1, r2, r3 int
	h.Upsert(-1, "a", &r1, 100)
	h.Upsert(-1, "b", &r2, 50)
	h.Upsert(-1, "c", &r3, 200)

	min, ok := h.Peek()
	if !ok || min.Owner != "b" || min.ExpireAt != 50 {
		t.Fatalf("expected min item (b,50), got %+v", min)
	}
}

func TestRefTracksPosition(t *testing.T) {
	h := NewMinHeap()
	var r1, r2, r3 int
	h.Upsert(-1, "a", &r1, 100)
	h.Upsert(-1, "b", &r2, 50)
	h.Upsert(-1, "c", &r3, 200)

	// Every insert above may have reordered earlier items (Swap rewrites
	// Ref as it goes), so each ref must match the item's actual slot, not
	// the position Upsert happened to return at insert time.
	for i := 0; i < h.Len(); i++ {
		item := h.items[i]
		if *item.Ref != i {
			t.Errorf("item %v has ref %d but sits at index %d", item.Owner, *item.Ref, i)
		}
	}

	// Updating "a" to the new minimum must reorder the heap and keep every
	// live item's ref equal to its actual slot.
	h.Upsert(r1, "a", &r1, 0)
	for i := 0; i < h.Len(); i++ {
		item := h.items[i]
		if *item.Ref != i {
			t.Errorf("item %v has ref %d but sits at index %d", item.Owner, *item.Ref, i)
		}
	}

	min, _ := h.Peek()
	if min.Owner != "a" {
		t.Fatalf("expected a to be new minimum, got %v", min.Owner)
	}
}

func TestDeleteByPosition(t *testing.T) {
	h := NewMinHeap()
	var r1, r2 int
	h.Upsert(-1, "a", &r1, 100)
	h.Upsert(-1, "b", &r2, 50)

	h.Delete(r2)
	if h.Len() != 1 {
		t.Fatalf("expected 1 item after delete, got %d", h.Len())
	}
	min, _ := h.Peek()
	if min.Owner != "a" {
		t.Fatalf("expected a to remain, got %v", min.Owner)
	}
}

func TestPopMinDrainsInOrder(t *testing.T) {
	h := NewMinHeap()
	var refs [5]int
	expireAts := []int64{30, 10, 50, 20, 40}
	for i, e := range expireAts {
		h.Upsert(-1, i, &refs[i], e)
	}

	var got []int64
	for {
		item, ok := h.PopMin()
		if !ok {
			break
		}
		got = append(got, item.ExpireAt)
	}

	want := []int64{10, 20, 30, 40, 50}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: want %d, got %d", i, want[i], got[i])
		}
	}
}
