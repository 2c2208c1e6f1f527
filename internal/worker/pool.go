// Package worker provides a bounded pool for network-bound fan-out work,
// such as per-candidate encyclopedia lookups.
package worker

import (
	"context"
	"log"
	"sync"
)

// Job is a unit of work executed on a pool worker.
type Job func(ctx context.Context)

// Pool manages a fixed set of workers draining a buffered job queue.
type Pool struct {
	jobs chan Job
	wg   sync.WaitGroup
}

// NewPool creates a pool with the given worker count and queue size.
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &Pool{jobs: make(chan Job, queueSize)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job(context.Background())
			}
		}()
	}
	return p
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking. It reports whether the job was
// accepted; callers should run rejected jobs inline rather than lose them.
func (p *Pool) Submit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		log.Printf("WARN worker: queue full, job rejected")
		return false
	}
}

// Each fans fn out over n items and blocks until every item has either run
// or been skipped. Items rejected by a full queue run on the caller's
// goroutine. Cancelling ctx skips items that have not started; items already
// running observe ctx through fn. Each never returns while an fn call is
// still in flight, so callers may hand fn shared state and read it freely
// afterwards.
func (p *Pool) Each(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		job := func(context.Context) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			fn(ctx, i)
		}
		if !p.Submit(job) {
			job(ctx)
		}
	}
	wg.Wait()
}
