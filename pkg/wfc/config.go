package wfc

import (
	"io"
	"log/slog"
	"math/rand/v2"
)

// Recovery selects what the solver does when propagation hits a
// contradiction.
type Recovery int

const (
	// RecoveryDefault lets the constructor choose: restart for 2D grids,
	// backtrack for 3D volumes.
	RecoveryDefault Recovery = iota

	// RecoveryRestart discards the whole grid and starts over from full
	// superposition (then re-applies any boundary shaping).
	RecoveryRestart

	// RecoveryBacktrack rolls back to an earlier restore point. A restore
	// point is saved after every successful step; each consecutive failure
	// widens the rollback by one more point. With no point left the solver
	// falls back to a restart.
	RecoveryBacktrack
)

func (r Recovery) String() string {
	switch r {
	case RecoveryDefault:
		return "default"
	case RecoveryRestart:
		return "restart"
	case RecoveryBacktrack:
		return "backtrack"
	default:
		return "unknown"
	}
}

// randSource is the subset of *rand.Rand the solver draws from.
type randSource interface {
	IntN(n int) int
}

// SolverConfig holds solver parameters.
type SolverConfig struct {
	// Seed seeds a PCG source when Rand is nil.
	Seed uint64

	// Rand, when set, is used instead of a source built from Seed. Sharing
	// one *rand.Rand between solvers reproduces a single process-wide
	// stream; it must then only be used from one goroutine.
	Rand *rand.Rand

	// Recovery is the contradiction policy.
	Recovery Recovery

	// MaxIterations bounds Run. 0 means unbounded.
	MaxIterations int

	// MaxResets bounds Run by the number of full restarts. 0 means unbounded.
	MaxResets int

	// Logger receives debug events. nil discards them.
	Logger *slog.Logger

	// Monitor collects statistics. nil allocates a private monitor.
	Monitor *SolverMonitor
}

// DefaultSolverConfig returns a config with seed 0, no budgets and no logging.
func DefaultSolverConfig() *SolverConfig {
	return &SolverConfig{}
}

func (c *SolverConfig) rng() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	return rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
}

func (c *SolverConfig) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (c *SolverConfig) monitor() *SolverMonitor {
	if c.Monitor != nil {
		return c.Monitor
	}
	return NewSolverMonitor()
}
