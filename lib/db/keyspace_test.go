package db

import "testing"

func TestGetOrCreateInsertsOnce(t *testing.T) {
	ks := NewKeyspace(0)
	e1, created := ks.GetOrCreate([]byte("a"))
	if !created {
		t.Fatal("first GetOrCreate should report created=true")
	}
	e2, created := ks.GetOrCreate([]byte("a"))
	if created {
		t.Fatal("second GetOrCreate for same key should report created=false")
	}
	if e1 != e2 {
		t.Fatal("GetOrCreate should return the same entry for the same key")
	}
	if ks.Size() != 1 {
		t.Fatalf("expected size 1, got %d", ks.Size())
	}
}

func TestDeleteRemovesAndReportsMissing(t *testing.T) {
	ks := NewKeyspace(0)
	ks.GetOrCreate([]byte("a"))

	if _, ok := ks.Delete([]byte("a")); !ok {
		t.Fatal("delete of existing key should report ok=true")
	}
	if _, ok := ks.Delete([]byte("a")); ok {
		t.Fatal("second delete of same key should report ok=false")
	}
	if ks.Size() != 0 {
		t.Fatalf("expected empty keyspace after delete, got size %d", ks.Size())
	}
}

func TestForeachVisitsEveryLiveKeyExactlyOnce(t *testing.T) {
	ks := NewKeyspace(0)
	keys := []string{"a", "b", "c", "d", "e"}
	for _, k := range keys {
		ks.GetOrCreate([]byte(k))
	}
	ks.Delete([]byte("c"))

	seen := make(map[string]int)
	ks.Foreach(func(e *Entry) bool {
		seen[string(e.Key)]++
		return true
	})

	if len(seen) != ks.Size() {
		t.Fatalf("foreach visited %d distinct keys, hm_size reports %d", len(seen), ks.Size())
	}
	for k, n := range seen {
		if n != 1 {
			t.Errorf("key %q visited %d times, want 1", k, n)
		}
	}
	if _, ok := seen["c"]; ok {
		t.Error("deleted key c should not be visited")
	}
}

func TestKeyspaceSurvivesIncrementalResize(t *testing.T) {
	ks := NewKeyspace(0)
	const n = 5000
	for i := 0; i < n; i++ {
		ks.GetOrCreate([]byte{byte(i), byte(i >> 8)})
	}
	if ks.Size() != n {
		t.Fatalf("expected %d entries, got %d", n, ks.Size())
	}
	for i := 0; i < n; i++ {
		if _, ok := ks.Lookup([]byte{byte(i), byte(i >> 8)}); !ok {
			t.Fatalf("key %d missing after resize", i)
		}
	}
}
