package db

import "github.com/kvrdb/kvr/lib/ds"

// largeContainerThreshold is the fixed size cutoff: a secondary container
// (only ZSET applies today) bigger than this, measured after the entry
// has already been removed from the keyspace, is destroyed on the
// worker pool instead of inline, to bound reactor tick latency under
// heavy deletion.
const largeContainerThreshold = 1000

// Destroyer releases an Entry's resources, deferring to a worker pool
// when the entry is "large". Entries must already be detached from the
// keyspace and the TTL heap before Destroy is called; this type never
// mutates either.
type Destroyer struct {
	pool *ds.WorkerPool
}

// NewDestroyer returns a Destroyer routing large-entry teardown to pool.
func NewDestroyer(pool *ds.WorkerPool) *Destroyer {
	return &Destroyer{pool: pool}
}

// Destroy releases e's payload, inline for small entries and on the
// worker pool for ZSETs over largeContainerThreshold elements.
func (d *Destroyer) Destroy(e *Entry) {
	if e.Kind == KindZSet && e.ZSet != nil && e.ZSet.Size() > largeContainerThreshold {
		d.pool.Submit(func(arg interface{}) {
			arg.(*Entry).ZSet.Clear()
		}, e)
		return
	}
	d.destroyInline(e)
}

func (d *Destroyer) destroyInline(e *Entry) {
	switch e.Kind {
	case KindZSet:
		if e.ZSet != nil {
			e.ZSet.Clear()
		}
	case KindString:
		e.Str = nil
	}
}
