package tileset

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Unresolved is the color painted into cells that hold no tile yet.
var Unresolved = color.NRGBA{R: 255, G: 0, B: 255, A: 255}

// Compose2D paints a width×height grid of tile indices, as returned by
// wfc.Solver.States, into one image. Negative indices are painted
// Unresolved. scale > 1 enlarges the result with nearest-neighbour
// sampling so pixel art stays sharp.
func Compose2D(variants []Variant2D, states []int, width, height, scale int) (*image.NRGBA, error) {
	if len(variants) == 0 {
		return nil, ErrNoTiles
	}
	if len(states) != width*height {
		return nil, fmt.Errorf("tileset: %d states for a %dx%d grid", len(states), width, height)
	}
	n := variants[0].Sprite.Size()
	canvas := image.NewNRGBA(image.Rect(0, 0, width*n, height*n))
	fill := image.NewUniform(Unresolved)

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			// Solver storage is x-major.
			st := states[x*height+y]
			r := image.Rect(x*n, y*n, (x+1)*n, (y+1)*n)
			if st < 0 {
				xdraw.Draw(canvas, r, fill, image.Point{}, xdraw.Src)
				continue
			}
			if st >= len(variants) {
				return nil, fmt.Errorf("tileset: tile %d out of range [0,%d)", st, len(variants))
			}
			xdraw.Draw(canvas, r, variants[st].Sprite.Image(), image.Point{}, xdraw.Src)
		}
	}

	if scale <= 1 {
		return canvas, nil
	}
	out := image.NewNRGBA(image.Rect(0, 0, canvas.Rect.Dx()*scale, canvas.Rect.Dy()*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), canvas, canvas.Bounds(), xdraw.Src, nil)
	return out, nil
}

// WriteLayers prints a 3D result one horizontal layer at a time, top layer
// first. Each row runs along x; rows run along z. The empty tile prints as
// '.', unresolved cells as '?', other tiles as their index.
func WriteLayers(w io.Writer, states []int, width, height, depth, empty int) error {
	if len(states) != width*height*depth {
		return fmt.Errorf("tileset: %d states for a %dx%dx%d volume", len(states), width, height, depth)
	}
	var sb strings.Builder
	for y := height - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "y=%d\n", y)
		for z := 0; z < depth; z++ {
			for x := 0; x < width; x++ {
				if x > 0 {
					sb.WriteByte(' ')
				}
				switch st := states[(x*height+y)*depth+z]; {
				case st < 0:
					sb.WriteString("  ?")
				case st == empty:
					sb.WriteString("  .")
				default:
					fmt.Fprintf(&sb, "%3d", st)
				}
			}
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
