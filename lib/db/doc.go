// Package db implements the reactor's in-memory keyspace: a key->Entry
// mapping whose entries hold either a byte string or a sorted set, a TTL
// subsystem that tracks each entry's position in a shared expiration
// heap, and a deferred-destruction path that offloads teardown of large
// sorted sets to a worker pool.
package db
