package ds

import (
	"sync"
	"testing"
	"time"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	var mu sync.Mutex
	seen := make(map[int]bool)
	var wg sync.WaitGroup
	wg.Add(100)

	for i := 0; i < 100; i++ {
		p.Submit(func(arg interface{}) {
			mu.Lock()
			seen[arg.(int)] = true
			mu.Unlock()
			wg.Done()
		}, i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for jobs to run")
	}

	if len(seen) != 100 {
		t.Fatalf("expected 100 distinct jobs to run, got %d", len(seen))
	}
}

func TestWorkerPoolCloseDrainsQueue(t *testing.T) {
	p := NewWorkerPool(2)

	var n int32
	var mu sync.Mutex
	for i := 0; i < 10; i++ {
		p.Submit(func(arg interface{}) {
			mu.Lock()
			n++
			mu.Unlock()
		}, nil)
	}
	p.Close()

	mu.Lock()
	defer mu.Unlock()
	if n != 10 {
		t.Fatalf("expected all 10 jobs to drain before Close returns, got %d", n)
	}
}
