package tileset

import "fmt"

// Transform2D is a symmetry applied to a base sprite: a clockwise rotation
// by Rotation quarter turns followed by optional mirroring.
type Transform2D struct {
	Rotation int
	FlipX    bool
	FlipY    bool
}

func (t Transform2D) String() string {
	s := fmt.Sprintf("rot%d", t.Rotation*90)
	if t.FlipX {
		s += "+flipX"
	}
	if t.FlipY {
		s += "+flipY"
	}
	return s
}

// Apply returns s transformed by t.
func (t Transform2D) Apply(s *Sprite) *Sprite {
	return s.Rotate(t.Rotation).Flip(t.FlipX, t.FlipY)
}

// Transforms2D lists the candidate transforms tried for every base sprite,
// in order: the four rotations, then each rotation mirrored on x and on y.
// The list is redundant on purpose; duplicates are removed by content.
func Transforms2D() []Transform2D {
	out := make([]Transform2D, 0, 12)
	for r := 0; r < 4; r++ {
		out = append(out, Transform2D{Rotation: r})
	}
	for r := 0; r < 4; r++ {
		out = append(out,
			Transform2D{Rotation: r, FlipX: true},
			Transform2D{Rotation: r, FlipY: true},
		)
	}
	return out
}

// Variant2D is one distinct tile after symmetry expansion. Its index in the
// variant list is its tile index in the adjacency table.
type Variant2D struct {
	Source    int // index into the base sprite list
	Transform Transform2D
	Sprite    *Sprite
}

// GenerateVariants2D expands every base sprite into its transforms and drops
// any variant whose pixels equal an earlier one. The first occurrence wins,
// so base sprite 0 untransformed is always variant 0. Inputs are not
// modified.
func GenerateVariants2D(base []*Sprite) ([]Variant2D, error) {
	if len(base) == 0 {
		return nil, ErrNoTiles
	}
	size := base[0].Size()
	for i, s := range base {
		if s.Size() != size {
			return nil, fmt.Errorf("%w: sprite %d is %dpx, sprite 0 is %dpx", ErrTileSize, i, s.Size(), size)
		}
	}

	var out []Variant2D
	for src, s := range base {
		for _, t := range Transforms2D() {
			v := Variant2D{Source: src, Transform: t, Sprite: t.Apply(s)}
			if !containsSprite(out, v.Sprite) {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func containsSprite(vs []Variant2D, s *Sprite) bool {
	for _, v := range vs {
		if v.Sprite.Equal(s) {
			return true
		}
	}
	return false
}
