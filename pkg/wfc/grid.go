package wfc

import "fmt"

// grid is a dense lattice of cells plus the adjacency table that constrains
// them. It owns propagation and the undo trail; the solver owns the search
// policy on top of it.
type grid[D Direction[D]] struct {
	width, height, depth int
	cells                []Cell
	table                *Table[D]
	trail                trail

	// stack is the propagation worklist, kept to avoid reallocating.
	stack []Pos
}

func newGrid[D Direction[D]](width, height, depth int, table *Table[D]) *grid[D] {
	n := table.StateCount()
	g := &grid[D]{
		width:  width,
		height: height,
		depth:  depth,
		cells:  make([]Cell, width*height*depth),
		table:  table,
	}
	for i := range g.cells {
		g.cells[i] = Cell{superposition: NewBitset(n)}
		g.cells[i].Reset()
	}
	return g
}

// index maps a position to its cell slot. Cells are stored x-major, then y,
// then z, which is also the scan order for entropy ties.
func (g *grid[D]) index(p Pos) int {
	return (p.X*g.height+p.Y)*g.depth + p.Z
}

func (g *grid[D]) pos(i int) Pos {
	z := i % g.depth
	i /= g.depth
	return Pos{X: i / g.height, Y: i % g.height, Z: z}
}

func (g *grid[D]) inBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.width &&
		p.Y >= 0 && p.Y < g.height &&
		p.Z >= 0 && p.Z < g.depth
}

func (g *grid[D]) cell(p Pos) *Cell {
	if !g.inBounds(p) {
		panic(fmt.Sprintf("wfc: position %s outside %dx%dx%d grid", p, g.width, g.height, g.depth))
	}
	return &g.cells[g.index(p)]
}

func (g *grid[D]) reset() {
	for i := range g.cells {
		g.cells[i].Reset()
	}
	g.trail.clear()
}

// allCollapsed scans every cell.
func (g *grid[D]) allCollapsed() bool {
	for i := range g.cells {
		if !g.cells[i].collapsed {
			return false
		}
	}
	return true
}

func (g *grid[D]) constrainAt(p Pos, forbidden Bitset) bool {
	i := g.index(p)
	ok, cleared := g.cells[i].constrain(forbidden)
	g.trail.record(i, cleared, g.cells[i].collapsed)
	return ok
}

func (g *grid[D]) collapseAt(p Pos, r randSource) int {
	i := g.index(p)
	tile, cleared := g.cells[i].collapse(r)
	g.trail.record(i, cleared, true)
	return tile
}

func (g *grid[D]) forceAt(p Pos, tile int) {
	i := g.index(p)
	cleared := g.cells[i].forceCollapse(tile)
	g.trail.record(i, cleared, true)
}

// propagate runs the arc-consistency worklist from origin, which must be
// collapsed. Each popped cell constrains its uncollapsed neighbours with
// the complement of its allowed set; neighbours that collapse as a result
// are pushed in turn. It returns false on the first contradiction and
// leaves the grid as it was at that moment.
func (g *grid[D]) propagate(origin Pos) bool {
	g.stack = append(g.stack[:0], origin)

	for len(g.stack) > 0 {
		cur := g.stack[len(g.stack)-1]
		g.stack = g.stack[:len(g.stack)-1]

		c := g.cell(cur)
		if !c.collapsed {
			panic(fmt.Sprintf("wfc: propagating from uncollapsed cell %s", cur))
		}

		for _, d := range g.table.dirs {
			np := cur.Add(d.Offset())
			if !g.inBounds(np) {
				continue
			}
			if g.cells[g.index(np)].collapsed {
				continue
			}
			if !g.constrainAt(np, g.table.Forbidden(c.state, d)) {
				return false
			}
			if g.cells[g.index(np)].collapsed {
				g.stack = append(g.stack, np)
			}
		}
	}
	return true
}

// lowestEntropy returns every uncollapsed position sharing the minimum
// entropy, in scan order.
func (g *grid[D]) lowestEntropy() []Pos {
	lowest := int(^uint(0) >> 1)
	var out []Pos
	for i := range g.cells {
		c := &g.cells[i]
		if c.collapsed {
			continue
		}
		switch e := c.possible; {
		case e < lowest:
			lowest = e
			out = append(out[:0], g.pos(i))
		case e == lowest:
			out = append(out, g.pos(i))
		}
	}
	return out
}

// states returns every cell's tile in storage order, -1 for unresolved.
func (g *grid[D]) states() []int {
	out := make([]int, len(g.cells))
	for i := range g.cells {
		out[i] = g.cells[i].state
	}
	return out
}
