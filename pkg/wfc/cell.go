package wfc

import (
	"fmt"
	"math/rand/v2"
)

// Cell is the superposition of one grid position: the set of tiles it has
// not yet ruled out, a cached population count, and the chosen tile once
// collapsed.
//
// Invariants:
//   - possible == superposition.Count()
//   - when collapsed, state is the only set bit of superposition
//
// Calling Constrain, Collapse, ForceCollapse or Entropy on a collapsed cell
// is a programming error and panics.
type Cell struct {
	superposition Bitset
	possible      int
	collapsed     bool
	state         int
}

// NewCell returns a cell in full superposition over n tiles.
func NewCell(n int) *Cell {
	c := &Cell{superposition: NewBitset(n)}
	c.Reset()
	return c
}

// Reset returns the cell to full superposition.
func (c *Cell) Reset() {
	c.superposition.SetAll()
	c.possible = c.superposition.Len()
	c.collapsed = false
	c.state = -1
}

// IsCollapsed reports whether a tile has been chosen.
func (c *Cell) IsCollapsed() bool {
	return c.collapsed
}

// State returns the chosen tile, or -1 while unresolved.
func (c *Cell) State() int {
	return c.state
}

// PossibleStates returns the cached population count of the superposition.
func (c *Cell) PossibleStates() int {
	return c.possible
}

// Superposition returns a copy of the still-possible tile set.
func (c *Cell) Superposition() Bitset {
	return c.superposition.Clone()
}

// Entropy returns the number of tiles still possible.
func (c *Cell) Entropy() int {
	if c.collapsed {
		panic("wfc: Entropy on collapsed cell")
	}
	return c.possible
}

// Constrain removes every tile in forbidden from the superposition and
// reports whether the cell is still viable. A cell left with one tile
// collapses to it; a cell left with none is a contradiction and is not
// touched further.
func (c *Cell) Constrain(forbidden Bitset) bool {
	ok, _ := c.constrain(forbidden)
	return ok
}

// constrain is Constrain that also returns the bits it cleared, for the
// undo trail.
func (c *Cell) constrain(forbidden Bitset) (bool, Bitset) {
	if c.collapsed {
		panic("wfc: Constrain on collapsed cell")
	}
	cleared := c.superposition.AndNot(forbidden)
	c.possible -= cleared.Count()

	switch c.possible {
	case 0:
		return false, cleared
	case 1:
		c.state = c.superposition.First()
		c.collapsed = true
	}
	return true, cleared
}

// Collapse picks one of the remaining tiles uniformly at random, narrows the
// superposition to it and returns it.
func (c *Cell) Collapse(r *rand.Rand) int {
	tile, _ := c.collapse(r)
	return tile
}

func (c *Cell) collapse(r randSource) (int, Bitset) {
	if c.collapsed {
		panic("wfc: Collapse on collapsed cell")
	}
	if c.possible <= 0 {
		panic("wfc: Collapse on cell with no possible states")
	}
	tile := c.superposition.Nth(r.IntN(c.possible))
	return tile, c.fix(tile)
}

// ForceCollapse fixes the cell to tile without drawing from the RNG.
// tile must still be in the superposition.
func (c *Cell) ForceCollapse(tile int) {
	c.forceCollapse(tile)
}

func (c *Cell) forceCollapse(tile int) Bitset {
	if c.collapsed {
		panic("wfc: ForceCollapse on collapsed cell")
	}
	if !c.superposition.Has(tile) {
		panic(fmt.Sprintf("wfc: ForceCollapse to tile %d not in superposition %s", tile, c.superposition))
	}
	return c.fix(tile)
}

// fix narrows the superposition to tile and marks the cell collapsed.
// It returns the bits it cleared.
func (c *Cell) fix(tile int) Bitset {
	others := c.superposition.Clone()
	others.Clear(tile)
	cleared := c.superposition.AndNot(others)
	c.possible = 1
	c.state = tile
	c.collapsed = true
	return cleared
}

// restore undoes a change recorded by the trail.
func (c *Cell) restore(cleared Bitset, uncollapse bool) {
	if cleared.Len() > 0 {
		c.superposition.Or(cleared)
		c.possible = c.superposition.Count()
	}
	if uncollapse {
		c.collapsed = false
		c.state = -1
	}
}

func (c *Cell) String() string {
	if c.collapsed {
		return fmt.Sprintf("Cell{state=%d}", c.state)
	}
	return fmt.Sprintf("Cell{%s (%d)}", c.superposition, c.possible)
}
