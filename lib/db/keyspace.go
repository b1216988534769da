package db

import (
	"bytes"

	"github.com/kvrdb/kvr/lib/ds"
)

// Keyspace is the top-level key->Entry mapping, backed by lib/ds.HashTable
// so inserts never pay for a stop-the-world rehash on the reactor
// goroutine. It exclusively owns every Entry it holds; removal from the
// keyspace is a prerequisite for an entry's destruction.
type Keyspace struct {
	table *ds.HashTable
	seed  uint64
}

// NewKeyspace returns an empty keyspace. seed salts the key hash so a
// freshly started process does not always bucket the same keys together.
func NewKeyspace(seed uint64) *Keyspace {
	return &Keyspace{table: ds.NewHashTable(), seed: seed}
}

func (k *Keyspace) hash(key []byte) uint64 {
	return ds.HashBytes(key, k.seed)
}

// Lookup returns the entry stored for key, or (nil, false).
func (k *Keyspace) Lookup(key []byte) (*Entry, bool) {
	h := k.hash(key)
	node := k.table.Lookup(h, func(n *ds.HNode) bool {
		return bytes.Equal(n.Owner.(*Entry).Key, key)
	})
	if node == nil {
		return nil, false
	}
	return node.Owner.(*Entry), true
}

// GetOrCreate returns the existing entry for key, or inserts and returns
// a freshly created one, reporting whether it was newly created.
func (k *Keyspace) GetOrCreate(key []byte) (*Entry, bool) {
	if e, ok := k.Lookup(key); ok {
		return e, false
	}
	e := newEntry(key)
	e.node.Owner = e
	k.table.Insert(&e.node, k.hash(key))
	return e, true
}

// Delete removes and returns the entry for key, or (nil, false) if absent.
func (k *Keyspace) Delete(key []byte) (*Entry, bool) {
	h := k.hash(key)
	node := k.table.Delete(h, func(n *ds.HNode) bool {
		return bytes.Equal(n.Owner.(*Entry).Key, key)
	})
	if node == nil {
		return nil, false
	}
	return node.Owner.(*Entry), true
}

// Size returns the number of entries currently stored.
func (k *Keyspace) Size() int {
	return k.table.Size()
}

// Foreach invokes fn once per entry in unspecified order, stopping early
// if fn returns false.
func (k *Keyspace) Foreach(fn func(*Entry) bool) {
	k.table.Foreach(func(n *ds.HNode) bool {
		return fn(n.Owner.(*Entry))
	})
}
