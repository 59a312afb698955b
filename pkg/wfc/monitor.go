package wfc

// monitor.go: statistics for the solver

import (
	"fmt"
	"sync"
	"time"
)

// SolverStats holds statistics about a solver's run.
type SolverStats struct {
	// Search statistics
	Iterations     int // Iterate calls that did work
	Contradictions int // steps whose propagation failed
	Resets         int // full restarts, including explicit Reset calls
	Backtracks     int // rollbacks to an earlier restore point

	// Rollback distance in restore points
	LastBacktrackDepth int
	MaxBacktrackDepth  int

	// Propagation statistics
	PropagationCount int
	PropagationTime  time.Duration
}

// SolverMonitor collects SolverStats. It is safe to read from another
// goroutine while the solver runs, e.g. from a display loop.
type SolverMonitor struct {
	mu        sync.Mutex
	stats     SolverStats
	propStart time.Time
}

// NewSolverMonitor creates a new solver monitor.
func NewSolverMonitor() *SolverMonitor {
	return &SolverMonitor{}
}

// GetStats returns a copy of the current statistics.
func (m *SolverMonitor) GetStats() SolverStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// StartPropagation marks the beginning of a propagation operation.
func (m *SolverMonitor) StartPropagation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.propStart = time.Now()
}

// EndPropagation marks the end of a propagation operation.
func (m *SolverMonitor) EndPropagation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.propStart.IsZero() {
		m.stats.PropagationTime += time.Since(m.propStart)
		m.stats.PropagationCount++
		m.propStart = time.Time{}
	}
}

// RecordIteration records one step.
func (m *SolverMonitor) RecordIteration() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Iterations++
}

// RecordContradiction records a failed step.
func (m *SolverMonitor) RecordContradiction() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Contradictions++
}

// RecordReset records a full restart.
func (m *SolverMonitor) RecordReset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Resets++
}

// RecordBacktrack records a rollback over depth restore points.
func (m *SolverMonitor) RecordBacktrack(depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Backtracks++
	m.stats.LastBacktrackDepth = depth
	if depth > m.stats.MaxBacktrackDepth {
		m.stats.MaxBacktrackDepth = depth
	}
}

// Reset clears all statistics.
func (m *SolverMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = SolverStats{}
	m.propStart = time.Time{}
}

// String returns a one-line summary.
func (s SolverStats) String() string {
	return fmt.Sprintf("iterations=%d contradictions=%d resets=%d backtracks=%d (last=%d max=%d) propagations=%d in %v",
		s.Iterations, s.Contradictions, s.Resets, s.Backtracks,
		s.LastBacktrackDepth, s.MaxBacktrackDepth,
		s.PropagationCount, s.PropagationTime)
}
