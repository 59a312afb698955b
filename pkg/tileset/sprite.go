// Package tileset derives wave function collapse adjacency tables from tile
// geometry. 2D tiles are square sprites whose edge pixels must match; 3D
// tiles are unit-cube meshes whose face vertices must mirror each other.
//
// Both pipelines run once at setup: expand the base tiles into their
// symmetry variants, drop geometric duplicates, then compare every ordered
// variant pair in every direction. The resulting wfc.Table is read-only.
package tileset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

var (
	// ErrNoTiles is returned when a tile list is empty.
	ErrNoTiles = errors.New("tileset: no tiles")

	// ErrTileSize is returned for non-square sprites, sprites of differing
	// sizes, or socket indices that do not fit on an edge.
	ErrTileSize = errors.New("tileset: bad tile size")
)

// Sprite is an immutable square pixel buffer. Pixel (0,0) is the top-left
// corner; y grows downwards.
type Sprite struct {
	img *image.NRGBA
}

// NewSprite copies img into a new sprite. img must be square.
func NewSprite(img image.Image) (*Sprite, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() || b.Dx() == 0 {
		return nil, fmt.Errorf("%w: sprite is %dx%d, want square", ErrTileSize, b.Dx(), b.Dy())
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return &Sprite{img: dst}, nil
}

// Size returns the side length in pixels.
func (s *Sprite) Size() int {
	return s.img.Rect.Dx()
}

// At returns the pixel at (x, y).
func (s *Sprite) At(x, y int) color.NRGBA {
	return s.img.NRGBAAt(x, y)
}

// Image returns the backing image. Callers must not modify it.
func (s *Sprite) Image() *image.NRGBA {
	return s.img
}

// Equal reports whether both sprites have the same size and exactly the
// same color at every pixel.
func (s *Sprite) Equal(o *Sprite) bool {
	if s.Size() != o.Size() {
		return false
	}
	n := s.Size()
	for y := 0; y < n; y++ {
		if !bytes.Equal(s.row(y), o.row(y)) {
			return false
		}
	}
	return true
}

func (s *Sprite) row(y int) []byte {
	off := s.img.PixOffset(0, y)
	return s.img.Pix[off : off+4*s.Size()]
}

// remap builds a new sprite whose pixel (x, y) is src(f(x, y)).
func (s *Sprite) remap(f func(x, y, n int) (int, int)) *Sprite {
	n := s.Size()
	dst := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			sx, sy := f(x, y, n)
			dst.SetNRGBA(x, y, s.img.NRGBAAt(sx, sy))
		}
	}
	return &Sprite{img: dst}
}

// Rotate returns the sprite turned clockwise by quarter*90 degrees.
func (s *Sprite) Rotate(quarter int) *Sprite {
	switch ((quarter % 4) + 4) % 4 {
	case 1:
		return s.remap(func(x, y, n int) (int, int) { return y, n - 1 - x })
	case 2:
		return s.remap(func(x, y, n int) (int, int) { return n - 1 - x, n - 1 - y })
	case 3:
		return s.remap(func(x, y, n int) (int, int) { return n - 1 - y, x })
	default:
		return s
	}
}

// Flip returns the sprite mirrored horizontally (flipX) and/or vertically
// (flipY).
func (s *Sprite) Flip(flipX, flipY bool) *Sprite {
	if !flipX && !flipY {
		return s
	}
	return s.remap(func(x, y, n int) (int, int) {
		if flipX {
			x = n - 1 - x
		}
		if flipY {
			y = n - 1 - y
		}
		return x, y
	})
}
