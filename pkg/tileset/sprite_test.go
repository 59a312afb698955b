package tileset

import (
	"errors"
	"image"
	"testing"
)

func TestNewSpriteRejectsNonSquare(t *testing.T) {
	_, err := NewSprite(image.NewNRGBA(image.Rect(0, 0, 4, 3)))
	if !errors.Is(err, ErrTileSize) {
		t.Errorf("NewSprite() = %v, want ErrTileSize", err)
	}
}

func TestNewSpriteNormalisesBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 13, 13))
	img.SetNRGBA(10, 10, white)
	s, err := NewSprite(img)
	if err != nil {
		t.Fatal(err)
	}
	if s.At(0, 0) != white {
		t.Errorf("At(0,0) = %v, want white", s.At(0, 0))
	}
	img.SetNRGBA(11, 11, white)
	if s.At(1, 1) == white {
		t.Error("sprite shares pixels with the source image")
	}
}

func TestSpriteRotate(t *testing.T) {
	// Mark the top-left corner and follow it clockwise.
	s := paint(t, 3, image.Pt(0, 0))
	tests := []struct {
		quarter int
		want    image.Point
	}{
		{0, image.Pt(0, 0)},
		{1, image.Pt(2, 0)},
		{2, image.Pt(2, 2)},
		{3, image.Pt(0, 2)},
		{4, image.Pt(0, 0)},
		{-1, image.Pt(0, 2)},
	}
	for _, tt := range tests {
		r := s.Rotate(tt.quarter)
		if r.At(tt.want.X, tt.want.Y) != white {
			t.Errorf("Rotate(%d): corner not at %v", tt.quarter, tt.want)
		}
	}
}

func TestSpriteFlip(t *testing.T) {
	s := paint(t, 4, image.Pt(1, 0))
	tests := []struct {
		name         string
		flipX, flipY bool
		want         image.Point
	}{
		{"none", false, false, image.Pt(1, 0)},
		{"x", true, false, image.Pt(2, 0)},
		{"y", false, true, image.Pt(1, 3)},
		{"both", true, true, image.Pt(2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := s.Flip(tt.flipX, tt.flipY)
			if f.At(tt.want.X, tt.want.Y) != white {
				t.Errorf("pixel not at %v", tt.want)
			}
		})
	}
	if s.At(1, 0) != white {
		t.Error("Flip modified the receiver")
	}
}

func TestSpriteEqual(t *testing.T) {
	a := paint(t, 4, image.Pt(1, 2))
	b := paint(t, 4, image.Pt(1, 2))
	c := paint(t, 4, image.Pt(2, 1))
	if !a.Equal(b) {
		t.Error("identical sprites should be equal")
	}
	if a.Equal(c) {
		t.Error("different sprites should not be equal")
	}
	if a.Equal(paint(t, 5)) {
		t.Error("sprites of different sizes should not be equal")
	}
	if !a.Rotate(1).Rotate(3).Equal(a) {
		t.Error("full turn should restore the sprite")
	}
}
