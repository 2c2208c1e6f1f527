package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_EachRunsAllItems(t *testing.T) {
	pool := NewPool(3, 4)
	defer pool.Stop()

	var count int64
	pool.Each(context.Background(), 20, func(ctx context.Context, i int) {
		atomic.AddInt64(&count, 1)
	})

	if got := atomic.LoadInt64(&count); got != 20 {
		t.Fatalf("expected 20 executions, got %d", got)
	}
}

func TestPool_EachRunsRejectedJobsInline(t *testing.T) {
	// One worker and a single-slot queue forces rejections under fan-out;
	// Each must still run every item.
	pool := NewPool(1, 1)
	defer pool.Stop()

	var mu sync.Mutex
	seen := make(map[int]bool)
	pool.Each(context.Background(), 10, func(ctx context.Context, i int) {
		time.Sleep(time.Millisecond)
		mu.Lock()
		seen[i] = true
		mu.Unlock()
	})

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 10 {
		t.Fatalf("expected all 10 items to run, got %d", len(seen))
	}
}

func TestPool_EachWaitsForInFlightItemsOnCancel(t *testing.T) {
	pool := NewPool(1, 8)
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	release := make(chan struct{})

	ran := make([]bool, 4)
	done := make(chan struct{})
	go func() {
		pool.Each(ctx, 4, func(ctx context.Context, i int) {
			if i == 0 {
				close(started)
				<-release
			}
			ran[i] = true
		})
		close(done)
	}()

	<-started
	cancel()
	select {
	case <-done:
		t.Fatal("Each must not return while an item is still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Each must return once in-flight items finish")
	}

	if !ran[0] {
		t.Error("the in-flight item must complete before Each returns")
	}
	for i := 1; i < 4; i++ {
		if ran[i] {
			t.Errorf("item %d must be skipped after cancellation", i)
		}
	}
}

func TestPool_SubmitReportsQueueFull(t *testing.T) {
	pool := NewPool(1, 1)
	defer pool.Stop()

	block := make(chan struct{})
	// Occupy the worker, then fill the single queue slot.
	pool.Submit(func(ctx context.Context) { <-block })
	time.Sleep(10 * time.Millisecond)
	if !pool.Submit(func(ctx context.Context) {}) {
		t.Fatal("queue slot should have been free")
	}
	if pool.Submit(func(ctx context.Context) {}) {
		t.Fatal("expected rejection once the queue is full")
	}
	close(block)
}
