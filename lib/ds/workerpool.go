package ds

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// Job is a unit of deferred work: a callable paired with its argument, as
// the reactor enqueues one per oversized container it removes from the
// keyspace. Jobs never return a result; the only observable effect is
// that the argument's memory is released.
type Job struct {
	Fn  func(arg interface{})
	Arg interface{}
}

// WorkerPool is a fixed number of goroutines draining a FIFO job queue
// under a mutex and condition variable. It exists solely so that
// destruction of large containers never runs on the reactor goroutine.
type WorkerPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Job
	closed  bool
	wg      sync.WaitGroup
	pending *xsync.Counter // queue depth, for metrics only
}

// NewWorkerPool starts n worker goroutines and returns the pool. n is
// clamped to at least 1.
func NewWorkerPool(n int) *WorkerPool {
	if n < 1 {
		n = 1
	}
	p := &WorkerPool{pending: xsync.NewCounter()}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

// Submit enqueues a job for an arbitrary worker to run. Safe to call only
// from the reactor goroutine, matching the single-producer contract of
// the reactor's deferred-destruction path.
func (p *WorkerPool) Submit(fn func(arg interface{}), arg interface{}) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.queue = append(p.queue, Job{Fn: fn, Arg: arg})
	p.mu.Unlock()
	p.pending.Add(1)
	p.cond.Signal()
}

// PendingJobs returns the current queue depth, exposed for metrics.
func (p *WorkerPool) PendingJobs() int64 {
	return p.pending.Value()
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 && p.closed {
			p.mu.Unlock()
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.pending.Add(-1)
		job.Fn(job.Arg)
	}
}

// Close signals all workers to exit once the queue drains, and waits for
// them to finish.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}
