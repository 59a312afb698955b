package parallel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsEveryTask(t *testing.T) {
	pool := NewWorkerPool(4)
	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}

	var done atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		if err := pool.Submit(context.Background(), func() {
			defer wg.Done()
			done.Add(1)
		}); err != nil {
			t.Fatal(err)
		}
	}
	wg.Wait()
	pool.Shutdown()

	if done.Load() != 100 {
		t.Errorf("ran %d tasks, want 100", done.Load())
	}
}

func TestWorkerPoolDefaultsToCPUCount(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Shutdown()
	if pool.Workers() <= 0 {
		t.Errorf("Workers() = %d", pool.Workers())
	}
}

func TestWorkerPoolSubmitAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Shutdown()
	pool.Shutdown()

	err := pool.Submit(context.Background(), func() {})
	if !errors.Is(err, ErrPoolShutdown) {
		t.Errorf("Submit() = %v, want ErrPoolShutdown", err)
	}
}

func TestWorkerPoolSubmitCancelled(t *testing.T) {
	pool := NewWorkerPool(1)
	block := make(chan struct{})
	started := make(chan struct{})

	// Occupy the worker, then fill the queue.
	if err := pool.Submit(context.Background(), func() {
		close(started)
		<-block
	}); err != nil {
		t.Fatal(err)
	}
	<-started
	for i := 0; i < 2; i++ {
		if err := pool.Submit(context.Background(), func() {}); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pool.Submit(ctx, func() {}); !errors.Is(err, context.Canceled) {
		t.Errorf("Submit() = %v, want context.Canceled", err)
	}

	close(block)
	pool.Shutdown()
}
