package wfc

import (
	"context"
	"sync"

	"github.com/gitrdm/gowfc/internal/parallel"
)

// Runner is the part of a Solver that GenerateBatch drives.
type Runner interface {
	Run(ctx context.Context) error
	States() []int
	Stats() SolverStats
}

// BatchResult is the outcome of one job of a batch.
type BatchResult struct {
	Seed   uint64
	States []int // nil when Err is set
	Stats  SolverStats
	Err    error
}

// GenerateBatch runs one solver per seed on a pool of workers and returns
// the results in seed order. newSolver is called on the worker goroutine;
// solvers it returns may share one Table but nothing else. The Table
// may still be unfrozen; the first solver built freezes it.
//
// A job failure is reported in its BatchResult. The returned error is only
// set when the context is cancelled before every job was submitted.
func GenerateBatch(ctx context.Context, seeds []uint64, workers int, newSolver func(seed uint64) (Runner, error)) ([]BatchResult, error) {
	results := make([]BatchResult, len(seeds))
	pool := parallel.NewWorkerPool(workers)

	var wg sync.WaitGroup
	var submitErr error
	for i, seed := range seeds {
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			results[i] = runOne(ctx, seed, newSolver)
		})
		if err != nil {
			wg.Done()
			submitErr = err
			for j := i; j < len(seeds); j++ {
				results[j] = BatchResult{Seed: seeds[j], Err: err}
			}
			break
		}
	}

	wg.Wait()
	pool.Shutdown()
	return results, submitErr
}

func runOne(ctx context.Context, seed uint64, newSolver func(seed uint64) (Runner, error)) BatchResult {
	r := BatchResult{Seed: seed}
	s, err := newSolver(seed)
	if err != nil {
		r.Err = err
		return r
	}
	if err := s.Run(ctx); err != nil {
		r.Err = err
		r.Stats = s.Stats()
		return r
	}
	r.States = s.States()
	r.Stats = s.Stats()
	return r
}
