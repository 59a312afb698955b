package tileset

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gitrdm/gowfc/pkg/wfc"
)

// DefaultEpsilon is the distance under which two vertices are considered the
// same point, and a vertex is considered to lie on a face plane. It absorbs
// the noise introduced by rotating and exporting meshes.
const DefaultEpsilon = 0.01

// Mesh is the vertex set of a tile occupying the unit cube centred on the
// origin: faces lie at ±0.5 on each axis, +y is up. Only vertex positions
// matter for adjacency; triangles, normals and UVs belong to the renderer.
type Mesh struct {
	Vertices []mgl64.Vec3
}

// RotateY returns the mesh rotated about the vertical axis by quarter*90
// degrees. The receiver is not modified.
func (m Mesh) RotateY(quarter int) Mesh {
	rot := mgl64.Rotate3DY(mgl64.DegToRad(float64(90 * quarter)))
	out := Mesh{Vertices: make([]mgl64.Vec3, len(m.Vertices))}
	for i, v := range m.Vertices {
		out.Vertices[i] = rot.Mul3x1(v)
	}
	return out
}

// Equal reports whether both meshes have the same vertex set: every vertex
// of each has a vertex of the other within eps.
func (m Mesh) Equal(o Mesh, eps float64) bool {
	return coveredBy(m.Vertices, o.Vertices, eps) && coveredBy(o.Vertices, m.Vertices, eps)
}

// Face returns the vertices lying within eps of the face plane in
// direction d.
func (m Mesh) Face(d wfc.Dir3, eps float64) []mgl64.Vec3 {
	axis, plane := faceAxis(d)
	var out []mgl64.Vec3
	for _, v := range m.Vertices {
		if math.Abs(v[axis]-plane) < eps {
			out = append(out, v)
		}
	}
	return out
}

// faceAxis returns the vector component and plane offset of the face in
// direction d.
func faceAxis(d wfc.Dir3) (axis int, plane float64) {
	switch d {
	case wfc.Dir3PosX:
		return 0, 0.5
	case wfc.Dir3NegX:
		return 0, -0.5
	case wfc.Dir3PosY:
		return 1, 0.5
	case wfc.Dir3NegY:
		return 1, -0.5
	case wfc.Dir3PosZ:
		return 2, 0.5
	default: // wfc.Dir3NegZ
		return 2, -0.5
	}
}

// mirror reflects v across the face plane in direction d, mapping a point
// on that face onto the opposite face of the cube.
func mirror(v mgl64.Vec3, d wfc.Dir3) mgl64.Vec3 {
	axis, _ := faceAxis(d)
	v[axis] = -v[axis]
	return v
}

func near(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() < eps
}

// coveredBy reports whether every vertex of a has a vertex of b within eps.
func coveredBy(a, b []mgl64.Vec3, eps float64) bool {
	for _, v := range a {
		found := false
		for _, w := range b {
			if near(v, w, eps) {
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
