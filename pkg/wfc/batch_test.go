package wfc

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestGenerateBatch(t *testing.T) {
	tbl := stripeTable()
	tbl.Freeze()
	seeds := []uint64{1, 2, 3, 4, 5, 6, 7, 8}

	results, err := GenerateBatch(context.Background(), seeds, 3, func(seed uint64) (Runner, error) {
		return NewSolver2D(6, 6, tbl, &SolverConfig{Seed: seed, MaxIterations: 5000})
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(seeds) {
		t.Fatalf("got %d results, want %d", len(results), len(seeds))
	}
	for i, r := range results {
		if r.Seed != seeds[i] {
			t.Errorf("result %d has seed %d, want %d", i, r.Seed, seeds[i])
		}
		if r.Err != nil {
			t.Errorf("seed %d: %v", r.Seed, r.Err)
			continue
		}
		if len(r.States) != 36 {
			t.Errorf("seed %d: %d states", r.Seed, len(r.States))
		}
	}

	// Each job is reproducible on its own.
	s, _ := NewSolver2D(6, 6, tbl, &SolverConfig{Seed: 4, MaxIterations: 5000})
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(s.States()) != fmt.Sprint(results[3].States) {
		t.Error("batch result differs from a standalone run with the same seed")
	}
}

func TestGenerateBatchSharesUnfrozenTable(t *testing.T) {
	tbl := stripeTable()
	seeds := []uint64{10, 11, 12, 13, 14, 15}
	results, err := GenerateBatch(context.Background(), seeds, len(seeds), func(seed uint64) (Runner, error) {
		return NewSolver2D(5, 5, tbl, &SolverConfig{Seed: seed, MaxIterations: 5000})
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("seed %d: %v", r.Seed, r.Err)
		}
	}
	defer func() {
		if recover() == nil {
			t.Error("table should be frozen after the batch")
		}
	}()
	tbl.Allow(0, Dir2PosX, 2)
}

func TestGenerateBatchReportsJobErrors(t *testing.T) {
	boom := errors.New("boom")
	results, err := GenerateBatch(context.Background(), []uint64{1, 2}, 2, func(seed uint64) (Runner, error) {
		if seed == 2 {
			return nil, boom
		}
		return NewSolver2D(2, 1, NewTable2D(2), &SolverConfig{Seed: seed, MaxResets: 2})
	})
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(results[0].Err, ErrNoSolution) {
		t.Errorf("seed 1: %v, want ErrNoSolution", results[0].Err)
	}
	if !errors.Is(results[1].Err, boom) {
		t.Errorf("seed 2: %v, want boom", results[1].Err)
	}
}
