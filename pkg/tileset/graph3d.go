package tileset

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zyedidia/generic/mapset"

	"github.com/gitrdm/gowfc/pkg/wfc"
)

// Graph3DOptions configures 3D adjacency derivation.
type Graph3DOptions struct {
	// Epsilon is the vertex matching tolerance. 0 means DefaultEpsilon.
	Epsilon float64

	// BottomEdge lists base mesh indices whose variants may stand on the
	// inner bottom ring of the volume (see wfc.Boundary).
	BottomEdge []int
}

// TileGraph3D is the 3D adjacency derived from mesh faces.
//
// Base rule: tile j may sit in direction d from tile i when the vertices on
// i's d-face, mirrored across the face plane, coincide with the vertices on
// j's opposite face (both ways). Two empty faces match horizontally but not
// vertically, since nothing may float. One empty face never matches.
//
// Two rules are layered on top for the empty tile:
//   - empty space may sit above any tile whose top face is empty;
//   - a tile with geometry on all four side faces is grounded and may sit
//     above empty space.
type TileGraph3D struct {
	variants   *Variants3D
	eps        float64
	grounded   mapset.Set[int]
	bottomEdge []int
	table      *wfc.Table[wfc.Dir3]
}

// NewTileGraph3D derives the adjacency of every ordered pair of variants in
// every direction.
func NewTileGraph3D(vs *Variants3D, opts *Graph3DOptions) (*TileGraph3D, error) {
	if vs == nil || vs.Len() == 0 {
		return nil, ErrNoTiles
	}
	if opts == nil {
		opts = &Graph3DOptions{}
	}
	eps := opts.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	bottom, err := vs.Expand(opts.BottomEdge)
	if err != nil {
		return nil, err
	}

	n := vs.Len()
	g := &TileGraph3D{
		variants:   vs,
		eps:        eps,
		grounded:   mapset.New[int](),
		bottomEdge: bottom,
		table:      wfc.NewTable3D(n),
	}

	faces := make([][wfc.NumDirs3][]mgl64.Vec3, n)
	for i, v := range vs.All() {
		for _, d := range wfc.Dirs3() {
			faces[i][d] = v.Mesh.Face(d, eps)
		}
	}

	for i := 0; i < n; i++ {
		for _, d := range wfc.Dirs3() {
			for j := 0; j < n; j++ {
				if facesCompatible(faces[i][d], faces[j][d.Opposite()], d, eps) {
					g.table.Allow(i, d, j)
				}
			}
		}
	}

	empty := vs.Empty()
	for i := 0; i < n; i++ {
		if len(faces[i][wfc.Dir3PosY]) == 0 {
			g.table.AllowPair(i, wfc.Dir3PosY, empty)
		}
	}
	for i := 0; i < n; i++ {
		if i == empty {
			continue
		}
		if len(faces[i][wfc.Dir3PosX]) == 0 || len(faces[i][wfc.Dir3NegX]) == 0 ||
			len(faces[i][wfc.Dir3PosZ]) == 0 || len(faces[i][wfc.Dir3NegZ]) == 0 {
			continue
		}
		g.grounded.Put(i)
		g.table.AllowPair(empty, wfc.Dir3PosY, i)
	}

	for _, d := range wfc.Dirs3() {
		if !g.table.Compatible(empty, d, empty) {
			return nil, fmt.Errorf("tileset: empty tile incompatible with itself in direction %s", d)
		}
	}

	g.table.Freeze()
	return g, nil
}

// BuildTileGraph3D expands base meshes into variants and derives their
// adjacency in one call.
func BuildTileGraph3D(base []Mesh, opts *Graph3DOptions) (*TileGraph3D, error) {
	eps := 0.0
	if opts != nil {
		eps = opts.Epsilon
	}
	vs, err := GenerateVariants3D(base, eps)
	if err != nil {
		return nil, err
	}
	return NewTileGraph3D(vs, opts)
}

// Table returns the adjacency table. It is frozen and safe to share.
func (g *TileGraph3D) Table() *wfc.Table[wfc.Dir3] {
	return g.table
}

// Variants returns the variant list the table is indexed by.
func (g *TileGraph3D) Variants() *Variants3D {
	return g.variants
}

// Grounded reports whether tile i may stand directly on empty space.
func (g *TileGraph3D) Grounded(i int) bool {
	return g.grounded.Has(i)
}

// BottomEdge returns the tile indices expanded from the base allow-list.
func (g *TileGraph3D) BottomEdge() []int {
	return g.bottomEdge
}

// Boundary returns the boundary conditions for wfc.NewSolver3D.
func (g *TileGraph3D) Boundary() wfc.Boundary {
	return wfc.Boundary{
		Empty:      g.variants.Empty(),
		BottomEdge: append([]int(nil), g.bottomEdge...),
	}
}

// MeshesCompatible reports whether b may sit in direction d from a under the
// base face rule, without the empty-tile rules.
func MeshesCompatible(a, b Mesh, d wfc.Dir3, eps float64) bool {
	return facesCompatible(a.Face(d, eps), b.Face(d.Opposite(), eps), d, eps)
}

// facesCompatible compares a's face in direction d with b's opposing face.
func facesCompatible(fa, fb []mgl64.Vec3, d wfc.Dir3, eps float64) bool {
	switch {
	case len(fa) == 0 && len(fb) == 0:
		return !d.Vertical()
	case len(fa) == 0 || len(fb) == 0:
		return false
	}
	return mirroredOnto(fa, fb, d, eps) && mirroredOnto(fb, fa, d.Opposite(), eps)
}

// mirroredOnto reports whether every vertex of from, mirrored across the
// face plane in direction d, lands on a vertex of onto.
func mirroredOnto(from, onto []mgl64.Vec3, d wfc.Dir3, eps float64) bool {
	for _, v := range from {
		m := mirror(v, d)
		found := false
		for _, w := range onto {
			if near(m, w, eps) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
