package tileset

import (
	"fmt"
	"image/color"

	"github.com/gitrdm/gowfc/pkg/wfc"
)

// DefaultSockets are the edge offsets sampled when comparing sprite edges.
// Offsets run left to right along the top and bottom edges and bottom to
// top along the left and right edges, so on a 16px sprite the side edges
// are sampled at image rows 15, 9 and 2.
//
// Sampling three pixels instead of the whole edge is an approximation: two
// edges that agree at the sockets but differ elsewhere are still reported
// compatible. Tile sets are expected to be drawn so that sockets carry the
// connection information.
var DefaultSockets = []int{0, 6, 13}

// GraphOptions configures 2D adjacency derivation.
type GraphOptions struct {
	// Sockets are the offsets along each edge that must match.
	// nil means DefaultSockets.
	Sockets []int
}

// TileGraph is the 2D adjacency derived from sprite edges.
type TileGraph struct {
	variants []Variant2D
	sockets  []int
	table    *wfc.Table[wfc.Dir2]
}

// NewTileGraph compares every ordered pair of variants in every direction.
// Tile j may sit in direction d from tile i when i's d-edge equals j's
// opposite edge at every socket.
func NewTileGraph(variants []Variant2D, opts *GraphOptions) (*TileGraph, error) {
	if len(variants) == 0 {
		return nil, ErrNoTiles
	}
	sockets := DefaultSockets
	if opts != nil && opts.Sockets != nil {
		sockets = opts.Sockets
	}
	size := variants[0].Sprite.Size()
	for _, k := range sockets {
		if k < 0 || k >= size {
			return nil, fmt.Errorf("%w: socket %d outside %dpx edge", ErrTileSize, k, size)
		}
	}

	g := &TileGraph{
		variants: variants,
		sockets:  append([]int(nil), sockets...),
		table:    wfc.NewTable2D(len(variants)),
	}
	for i, a := range variants {
		for _, d := range wfc.Dirs2() {
			for j, b := range variants {
				if SpritesCompatible(a.Sprite, b.Sprite, d, g.sockets) {
					g.table.Allow(i, d, j)
				}
			}
		}
	}
	g.table.Freeze()
	return g, nil
}

// BuildTileGraph expands base sprites into variants and derives their
// adjacency in one call.
func BuildTileGraph(base []*Sprite, opts *GraphOptions) (*TileGraph, error) {
	variants, err := GenerateVariants2D(base)
	if err != nil {
		return nil, err
	}
	return NewTileGraph(variants, opts)
}

// Table returns the adjacency table. It is frozen and safe to share.
func (g *TileGraph) Table() *wfc.Table[wfc.Dir2] {
	return g.table
}

// Variants returns the deduplicated variants in tile index order.
func (g *TileGraph) Variants() []Variant2D {
	return g.variants
}

// SpritesCompatible reports whether b may sit in direction d from a, judged
// at the given socket offsets.
func SpritesCompatible(a, b *Sprite, d wfc.Dir2, sockets []int) bool {
	for _, k := range sockets {
		if edgePixel(a, d, k) != edgePixel(b, d.Opposite(), k) {
			return false
		}
	}
	return true
}

// edgePixel returns the pixel at offset k along the sprite edge facing d.
// Offsets run bottom to top on vertical edges and left to right on
// horizontal ones, so facing edges line up.
func edgePixel(s *Sprite, d wfc.Dir2, k int) color.NRGBA {
	last := s.Size() - 1
	switch d {
	case wfc.Dir2NegX:
		return s.At(0, last-k)
	case wfc.Dir2PosX:
		return s.At(last, last-k)
	case wfc.Dir2NegY:
		return s.At(k, 0)
	default: // wfc.Dir2PosY
		return s.At(k, last)
	}
}
