// Package wfc implements wave function collapse over 2D grids and 3D volumes.
//
// # Architecture Overview
//
// The solver separates the immutable problem from the mutable search state:
//
//	Table (immutable after construction):
//	  - allowed[tile][direction] bitsets derived from tile geometry
//	  - shared read-only by any number of solvers
//
//	Solver (mutable, single owner):
//	  - one Cell per grid position holding a superposition Bitset
//	  - a propagation worklist
//	  - an undo trail with restore points for backtracking
//
// # One Step
//
// Iterate performs exactly one step so a driver can observe intermediate
// states:
//
//  1. Pick the uncollapsed cell with the lowest entropy; ties are broken
//     uniformly at random among all tied positions.
//  2. Collapse it to one of its remaining tiles, uniformly at random.
//  3. Propagate: every collapsed cell forbids, on each uncollapsed
//     neighbour, the complement of its allowed set in that direction.
//     Neighbours that drop to one tile collapse and continue the wavefront.
//  4. On contradiction (a neighbour drops to zero tiles) recover by
//     restarting or by backtracking, depending on the Recovery policy.
//
// Propagation is monotonic: superpositions only shrink between resets and
// only collapsed cells emit constraints, so re-examining the cells reachable
// from newly collapsed ones is enough.
//
// A Solver is not safe for concurrent use. Run several solvers over the same
// Table to generate in parallel (see GenerateBatch).
package wfc

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

// Solver drives wave function collapse one step at a time.
type Solver[D Direction[D]] struct {
	grid     *grid[D]
	config   *SolverConfig
	rng      *rand.Rand
	recovery Recovery
	log      *slog.Logger
	monitor  *SolverMonitor

	// boundary re-applies fixed boundary conditions after every reset.
	boundary func() error

	collapsed           bool
	consecutiveFailures int
	restarts            int
}

func newSolver[D Direction[D]](width, height, depth int, table *Table[D], config *SolverConfig, fallback Recovery) (*Solver[D], error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidSize, width, height, depth)
	}
	if table == nil || table.StateCount() == 0 {
		return nil, ErrEmptyTable
	}
	if config == nil {
		config = DefaultSolverConfig()
	}
	table.Freeze()

	s := &Solver[D]{
		grid:     newGrid(width, height, depth, table),
		config:   config,
		rng:      config.rng(),
		recovery: config.Recovery,
		log:      config.logger(),
		monitor:  config.monitor(),
	}
	if s.recovery == RecoveryDefault {
		s.recovery = fallback
	}
	s.grid.trail.enabled = s.recovery == RecoveryBacktrack
	return s, nil
}

// NewSolver2D creates a solver over a width×height grid. Unless config
// says otherwise it restarts from scratch on every contradiction.
func NewSolver2D(width, height int, table *Table[Dir2], config *SolverConfig) (*Solver[Dir2], error) {
	s, err := newSolver(width, height, 1, table, config, RecoveryRestart)
	if err != nil {
		return nil, err
	}
	s.collapsed = s.grid.allCollapsed()
	return s, nil
}

// NewSolver3D creates a solver over a width×height×depth volume with +y up.
// The boundary conditions in b are applied immediately and again after every
// reset. Unless config says otherwise it backtracks on contradiction.
func NewSolver3D(width, height, depth int, table *Table[Dir3], b Boundary, config *SolverConfig) (*Solver[Dir3], error) {
	s, err := newSolver(width, height, depth, table, config, RecoveryBacktrack)
	if err != nil {
		return nil, err
	}
	if err := b.validate(table.StateCount()); err != nil {
		return nil, err
	}
	s.boundary = func() error {
		return shapeBoundary(s.grid, b, s.log)
	}
	if err := s.applyBoundary(); err != nil {
		return nil, err
	}
	s.collapsed = s.grid.allCollapsed()
	return s, nil
}

// Iterate performs one step and reports whether it succeeded. A false
// result means the step hit a contradiction and the grid was restarted or
// rolled back; callers simply keep iterating until IsCollapsed.
// Iterate on a collapsed solver is a no-op returning true.
func (s *Solver[D]) Iterate() bool {
	if s.collapsed {
		return true
	}
	s.monitor.RecordIteration()

	candidates := s.grid.lowestEntropy()
	p := candidates[s.rng.IntN(len(candidates))]
	s.grid.collapseAt(p, s.rng)

	s.monitor.StartPropagation()
	ok := s.grid.propagate(p)
	s.monitor.EndPropagation()

	if ok {
		s.consecutiveFailures = 0
		if s.recovery == RecoveryBacktrack {
			s.grid.trail.push()
		}
	} else {
		s.monitor.RecordContradiction()
		s.log.Debug("contradiction", "pos", p, "restore_points", s.grid.trail.depth())
		s.recover()
	}

	s.collapsed = s.grid.allCollapsed()
	return ok
}

// recover handles a contradiction according to the recovery policy.
func (s *Solver[D]) recover() {
	if s.recovery == RecoveryBacktrack && s.grid.trail.depth() > 0 {
		s.backtrack()
		return
	}
	s.restart()
	if s.recovery == RecoveryBacktrack {
		s.grid.trail.push()
	}
}

// backtrack rolls back min(consecutiveFailures+1, depth) restore points and
// returns that distance.
func (s *Solver[D]) backtrack() int {
	k := min(s.consecutiveFailures+1, s.grid.trail.depth())
	target := s.grid.trail.pop(k)
	s.grid.trail.rewind(target, s.grid.cells)
	s.consecutiveFailures++
	s.monitor.RecordBacktrack(k)
	s.log.Debug("backtrack", "distance", k, "restore_points", s.grid.trail.depth())
	return k
}

func (s *Solver[D]) restart() {
	s.grid.reset()
	s.consecutiveFailures = 0
	s.restarts++
	s.monitor.RecordReset()
	s.log.Debug("restart", "restarts", s.restarts)
	if err := s.applyBoundary(); err != nil {
		// Boundary shaping is deterministic and succeeded at construction.
		s.log.Error("boundary shaping failed after reset", "err", err)
	}
}

// applyBoundary runs the boundary conditions, if any, and makes the result
// the floor of the undo trail.
func (s *Solver[D]) applyBoundary() error {
	if s.boundary == nil {
		return nil
	}
	err := s.boundary()
	s.grid.trail.clear()
	return err
}

// Reset returns every cell to full superposition, drops all restore points
// and re-applies boundary conditions. It must not be called while Iterate
// is running.
func (s *Solver[D]) Reset() {
	s.restart()
	s.collapsed = s.grid.allCollapsed()
}

// Run iterates until every cell is collapsed. It stops early with the
// context's error, or with ErrNoSolution once MaxIterations steps or
// MaxResets restarts have been spent.
func (s *Solver[D]) Run(ctx context.Context) error {
	startRestarts := s.restarts
	for i := 0; !s.collapsed; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.config.MaxIterations > 0 && i >= s.config.MaxIterations {
			return fmt.Errorf("%w: %d iterations (%s)", ErrNoSolution, i, s.Stats())
		}
		s.Iterate()
		if s.config.MaxResets > 0 && s.restarts-startRestarts > s.config.MaxResets {
			return fmt.Errorf("%w: %d restarts (%s)", ErrNoSolution, s.restarts-startRestarts, s.Stats())
		}
	}
	return nil
}

// ForceCollapse fixes the cell at p to tile and propagates. It reports
// whether propagation succeeded; on failure the grid is left as it was at
// the contradiction and the caller should Reset. The cell must be
// uncollapsed and still allow tile.
func (s *Solver[D]) ForceCollapse(p Pos, tile int) bool {
	s.grid.cell(p)
	s.grid.forceAt(p, tile)
	ok := s.grid.propagate(p)
	s.collapsed = s.grid.allCollapsed()
	return ok
}

// IsCollapsed reports whether every cell is collapsed.
func (s *Solver[D]) IsCollapsed() bool {
	return s.collapsed
}

// IsCellCollapsed reports whether the cell at p is collapsed.
func (s *Solver[D]) IsCellCollapsed(p Pos) bool {
	return s.grid.cell(p).collapsed
}

// CollapsedState returns the tile chosen for p. Panics if p is unresolved.
func (s *Solver[D]) CollapsedState(p Pos) int {
	c := s.grid.cell(p)
	if !c.collapsed {
		panic(fmt.Sprintf("wfc: CollapsedState on unresolved cell %s", p))
	}
	return c.state
}

// Entropy returns the number of tiles still possible at p. Panics if p is
// collapsed.
func (s *Solver[D]) Entropy(p Pos) int {
	return s.grid.cell(p).Entropy()
}

// Superposition returns a copy of the tiles still possible at p.
func (s *Solver[D]) Superposition(p Pos) Bitset {
	return s.grid.cell(p).Superposition()
}

// States returns every cell's tile, -1 where unresolved, indexed by
// StateIndex.
func (s *Solver[D]) States() []int {
	return s.grid.states()
}

// StateIndex returns the index of p in the slice returned by States.
func (s *Solver[D]) StateIndex(p Pos) int {
	return s.grid.index(p)
}

// Size returns the grid dimensions. 2D solvers have depth 1.
func (s *Solver[D]) Size() (width, height, depth int) {
	return s.grid.width, s.grid.height, s.grid.depth
}

// Table returns the adjacency table the solver constrains with.
func (s *Solver[D]) Table() *Table[D] {
	return s.grid.table
}

// Recovery returns the contradiction policy in effect.
func (s *Solver[D]) Recovery() Recovery {
	return s.recovery
}

// Stats returns a snapshot of the solver statistics.
func (s *Solver[D]) Stats() SolverStats {
	return s.monitor.GetStats()
}

// RestorePoints returns the number of saved restore points.
func (s *Solver[D]) RestorePoints() int {
	return s.grid.trail.depth()
}
