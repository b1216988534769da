package ds

import "testing"

type stringRecord struct {
	node HNode
	key  string
}

func hashOf(key string) uint64 {
	return HashBytes([]byte(key), 0)
}

func insertString(t *HashTable, key string) *stringRecord {
	rec := &stringRecord{key: key}
	rec.node.Owner = rec
	t.Insert(&rec.node, hashOf(key))
	return rec
}

func eqKey(key string) EqualFunc {
	return func(n *HNode) bool {
		return n.Owner.(*stringRecord).key == key
	}
}

func TestHashTableInsertLookupDelete(t *testing.T) {
	ht := NewHashTable()
	insertString(ht, "a")
	insertString(ht, "b")
	insertString(ht, "c")

	if ht.Size() != 3 {
		t.Fatalf("expected size 3, got %d", ht.Size())
	}

	n := ht.Lookup(hashOf("b"), eqKey("b"))
	if n == nil || n.Owner.(*stringRecord).key != "b" {
		t.Fatalf("lookup for b failed")
	}

	if ht.Lookup(hashOf("missing"), eqKey("missing")) != nil {
		t.Fatal("lookup for missing key should return nil")
	}

	removed := ht.Delete(hashOf("b"), eqKey("b"))
	if removed == nil {
		t.Fatal("delete should return the removed node")
	}
	if ht.Size() != 2 {
		t.Fatalf("expected size 2 after delete, got %d", ht.Size())
	}
	if ht.Lookup(hashOf("b"), eqKey("b")) != nil {
		t.Fatal("b should no longer be found after delete")
	}
}

func TestHashTableForeachVisitsEveryNode(t *testing.T) {
	ht := NewHashTable()
	want := map[string]bool{}
	for i := 0; i < 50; i++ {
		key := string(rune('a' + i%26))
		key = key + string(rune('0'+i/26))
		insertString(ht, key)
		want[key] = true
	}

	got := map[string]bool{}
	ht.Foreach(func(n *HNode) bool {
		got[n.Owner.(*stringRecord).key] = true
		return true
	})

	if len(got) != len(want) {
		t.Fatalf("expected to visit %d nodes, visited %d", len(want), len(got))
	}
}

func TestHashTableIncrementalResize(t *testing.T) {
	ht := NewHashTable()
	const n = 2000
	for i := 0; i < n; i++ {
		key := string(rune(i)) + "-key"
		insertString(ht, key)
	}
	if ht.Size() != n {
		t.Fatalf("expected size %d, got %d", n, ht.Size())
	}

	// helpMigrate is invoked on every insert, so after enough further inserts
	// the older generation must have fully drained.
	for i := 0; i < n; i++ {
		key := string(rune(i)) + "-extra"
		insertString(ht, key)
	}
	if ht.older != nil {
		t.Error("expected migration to have completed after many operations")
	}
	if ht.Size() != 2*n {
		t.Fatalf("expected size %d, got %d", 2*n, ht.Size())
	}
}

func TestHashTableForeachEarlyStop(t *testing.T) {
	ht := NewHashTable()
	for i := 0; i < 10; i++ {
		insertString(ht, string(rune('a'+i)))
	}
	count := 0
	ht.Foreach(func(n *HNode) bool {
		count++
		return count < 3
	})
	if count != 3 {
		t.Fatalf("expected foreach to stop after 3 visits, visited %d", count)
	}
}
