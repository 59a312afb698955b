package tileset

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// paint returns an n×n sprite, black except for the listed white pixels.
func paint(t *testing.T, n int, lit ...image.Point) *Sprite {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.SetNRGBA(x, y, black)
		}
	}
	for _, p := range lit {
		img.SetNRGBA(p.X, p.Y, white)
	}
	s, err := NewSprite(img)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// hline returns the points of row y across an n-wide sprite.
func hline(n, y int) []image.Point {
	pts := make([]image.Point, n)
	for x := range pts {
		pts[x] = image.Pt(x, y)
	}
	return pts
}

// blockMesh fills the whole cell.
func blockMesh() Mesh {
	var m Mesh
	for _, x := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			for _, z := range []float64{-0.5, 0.5} {
				m.Vertices = append(m.Vertices, mgl64.Vec3{x, y, z})
			}
		}
	}
	return m
}

// slabMesh fills the lower half of the cell, leaving the top face bare.
func slabMesh() Mesh {
	var m Mesh
	for _, x := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0} {
			for _, z := range []float64{-0.5, 0.5} {
				m.Vertices = append(m.Vertices, mgl64.Vec3{x, y, z})
			}
		}
	}
	return m
}

// rampMesh rises towards +x; its four rotations are distinct.
func rampMesh() Mesh {
	return Mesh{Vertices: []mgl64.Vec3{
		{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5},
		{0.5, -0.5, -0.5}, {0.5, -0.5, 0.5},
		{0.5, 0.5, -0.5}, {0.5, 0.5, 0.5},
	}}
}
