// Package ds holds the reactor's low-level data structures: an intrusive
// doubly-linked list used for the idle-connection FIFO, a chaining hash
// table with incremental resize used as the keyspace backing store, a
// position-tracked binary min-heap used for TTL expiration, and a fixed
// worker pool used for deferred destruction of oversized containers.
//
// None of these types are safe for concurrent use except WorkerPool, which
// is explicitly built to be fed from one goroutine and drained by many.
package ds
