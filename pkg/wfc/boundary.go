package wfc

import (
	"fmt"
	"log/slog"
)

// Boundary describes the fixed conditions of a 3D volume.
//
// Every cell on the -x, +x, -z, +z and top (+y) faces is forced to Empty and
// propagated, so the structure is walled by empty space on five sides. The
// bottom face is left open. The ring of bottom cells one step in from the
// -z/+z and -x/+x faces may only hold Empty or one of BottomEdge.
type Boundary struct {
	// Empty is the index of the empty tile.
	Empty int

	// BottomEdge lists the tile indices allowed on the inner bottom ring
	// besides Empty.
	BottomEdge []int
}

func (b Boundary) validate(n int) error {
	if b.Empty < 0 || b.Empty >= n {
		return fmt.Errorf("%w: %d of %d", ErrBadSentinel, b.Empty, n)
	}
	for _, t := range b.BottomEdge {
		if t < 0 || t >= n {
			return fmt.Errorf("wfc: bottom edge tile %d out of range [0,%d)", t, n)
		}
	}
	return nil
}

// shapeBoundary applies b to a freshly reset volume.
func shapeBoundary(g *grid[Dir3], b Boundary, log *slog.Logger) error {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			for z := 0; z < g.depth; z++ {
				if x != 0 && x != g.width-1 && y != g.height-1 && z != 0 && z != g.depth-1 {
					continue
				}
				p := Pos{x, y, z}
				c := g.cell(p)
				if c.collapsed {
					// Already pinned by an earlier wall's propagation.
					if c.state != b.Empty {
						return fmt.Errorf("%w: wall cell %s holds tile %d", ErrBoundaryContradiction, p, c.state)
					}
					continue
				}
				if !c.superposition.Has(b.Empty) {
					return fmt.Errorf("%w: wall cell %s cannot be empty", ErrBoundaryContradiction, p)
				}
				g.forceAt(p, b.Empty)
				if !g.propagate(p) {
					return fmt.Errorf("%w: propagating wall cell %s", ErrBoundaryContradiction, p)
				}
			}
		}
	}

	forbidden := NewFullBitset(g.table.StateCount())
	forbidden.Clear(b.Empty)
	for _, t := range b.BottomEdge {
		forbidden.Clear(t)
	}

	var ring []Pos
	if g.depth > 1 {
		for x := 0; x < g.width; x++ {
			ring = append(ring, Pos{x, 0, 1}, Pos{x, 0, g.depth - 2})
		}
	}
	if g.width > 1 {
		for z := 0; z < g.depth; z++ {
			ring = append(ring, Pos{1, 0, z}, Pos{g.width - 2, 0, z})
		}
	}
	for _, p := range ring {
		if g.cell(p).collapsed {
			continue
		}
		if !g.constrainAt(p, forbidden) {
			return fmt.Errorf("%w: bottom ring cell %s", ErrBoundaryContradiction, p)
		}
		if g.cell(p).collapsed && !g.propagate(p) {
			return fmt.Errorf("%w: propagating bottom ring cell %s", ErrBoundaryContradiction, p)
		}
	}

	log.Debug("boundary shaped", "width", g.width, "height", g.height, "depth", g.depth, "bottom_edge", len(b.BottomEdge))
	return nil
}
