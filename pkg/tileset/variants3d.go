package tileset

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// VariantKind distinguishes the empty sentinel from geometric variants.
type VariantKind int

const (
	// KindMesh is a rotated copy of a base mesh.
	KindMesh VariantKind = iota

	// KindEmpty is the single empty-space tile. It has no geometry and is
	// the tile walls and sky are filled with.
	KindEmpty
)

// Variant3D is one distinct tile after rotation expansion.
type Variant3D struct {
	Kind     VariantKind
	Source   int // index into the base mesh list, -1 for the empty tile
	Rotation int // quarter turns about +y
	Mesh     Mesh
}

// Variants3D is the deduplicated variant list of a 3D tile set. The empty
// sentinel is always present exactly once.
type Variants3D struct {
	list  []Variant3D
	empty int
	bases int
}

// GenerateVariants3D places the empty sentinel first, then expands every
// base mesh into its four rotations about +y, dropping any rotation whose
// vertex set equals an earlier variant (within eps). A base mesh with no
// vertices collapses into the sentinel. Inputs are not modified.
func GenerateVariants3D(base []Mesh, eps float64) (*Variants3D, error) {
	if len(base) == 0 {
		return nil, ErrNoTiles
	}
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	vs := &Variants3D{
		list:  []Variant3D{{Kind: KindEmpty, Source: -1}},
		empty: 0,
		bases: len(base),
	}
	for src, m := range base {
		for q := 0; q < 4; q++ {
			rotated := m.RotateY(q)
			if vs.contains(rotated, eps) {
				continue
			}
			vs.list = append(vs.list, Variant3D{Kind: KindMesh, Source: src, Rotation: q, Mesh: rotated})
		}
	}
	return vs, nil
}

func (vs *Variants3D) contains(m Mesh, eps float64) bool {
	for _, v := range vs.list {
		if v.Mesh.Equal(m, eps) {
			return true
		}
	}
	return false
}

// Len returns the number of variants including the empty sentinel.
func (vs *Variants3D) Len() int {
	return len(vs.list)
}

// At returns variant i.
func (vs *Variants3D) At(i int) Variant3D {
	return vs.list[i]
}

// All returns the variants in tile index order. Callers must not modify it.
func (vs *Variants3D) All() []Variant3D {
	return vs.list
}

// Empty returns the tile index of the empty sentinel.
func (vs *Variants3D) Empty() int {
	return vs.empty
}

// Expand maps base mesh indices to the tile indices of all their surviving
// variants, in ascending order. Unknown indices are reported as an error.
func (vs *Variants3D) Expand(sources []int) ([]int, error) {
	want := mapset.New[int]()
	for _, s := range sources {
		if s < 0 || s >= vs.bases {
			return nil, fmt.Errorf("tileset: base tile %d out of range [0,%d)", s, vs.bases)
		}
		want.Put(s)
	}
	var out []int
	for i, v := range vs.list {
		if v.Kind == KindMesh && want.Has(v.Source) {
			out = append(out, i)
		}
	}
	return out, nil
}
