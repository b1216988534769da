// Package db implements the keyspace: the top-level key->Entry mapping, its
// two value kinds (byte string and sorted set), and the TTL subsystem and
// deferred-destruction path that operate on its entries.
//
// A lock-free concurrent map (github.com/puzpuzpuz/xsync/v3's MapOf) fits
// a multi-shard store but not this reactor, whose single-threaded model
// needs incremental (not lock-free) resizing so a resize never stalls
// the event loop. The backing table is lib/ds.HashTable; this file adds
// the typed record it stores, and keyspace.go adds the hash/equality glue
// the table is generic over.
package db

import (
	"github.com/kvrdb/kvr/lib/ds"
	"github.com/kvrdb/kvr/lib/zset"
)

// Kind identifies which payload an Entry holds.
type Kind int

const (
	KindString Kind = iota
	KindZSet
)

// Entry is one keyspace record. Exactly one of Str/ZSet is meaningful,
// selected by Kind. HeapSlot is -1 when the entry carries no TTL,
// otherwise it is the entry's current index in the TTL heap, kept
// current by every heap reorder via the *int back-pointer
// lib/ds.MinHeap.Upsert takes.
type Entry struct {
	node ds.HNode // embeds into the keyspace's hash table

	Key      []byte
	Kind     Kind
	Str      []byte
	ZSet     *zset.ZSet
	HeapSlot int   // -1 if no TTL
	ExpireAt int64 // ms, monotonic; meaningful only while HeapSlot >= 0
}

func newEntry(key []byte) *Entry {
	return &Entry{Key: append([]byte(nil), key...), HeapSlot: -1}
}
