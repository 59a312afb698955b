package tileset

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOBJ(t *testing.T) {
	src := `# unit block corner
o Corner
v 0.5 0.5 0.5
v -0.5 0.5 0.5 1.0
vn 0 1 0
vt 0 0
f 1 2 1

v  0.5  -0.5 -0.5
`
	m, err := LoadOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 3 {
		t.Fatalf("got %d vertices, want 3", len(m.Vertices))
	}
	if m.Vertices[1][0] != -0.5 || m.Vertices[2][1] != -0.5 {
		t.Errorf("vertices = %v", m.Vertices)
	}
}

func TestLoadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad number", "v 1 x 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadOBJ(strings.NewReader(tt.src)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadSprites(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, img image.Image) {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
	}

	second := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	second.SetNRGBA(0, 0, white)
	write("b.png", second)
	write("a.png", image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatal(err)
	}

	sprites, err := LoadSprites(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sprites) != 2 {
		t.Fatalf("got %d sprites, want 2", len(sprites))
	}
	if sprites[1].At(0, 0) != white {
		t.Error("sprites not in file name order")
	}
}

func TestLoadSpritesEmptyDir(t *testing.T) {
	if _, err := LoadSprites(t.TempDir()); !errors.Is(err, ErrNoTiles) {
		t.Errorf("LoadSprites() = %v, want ErrNoTiles", err)
	}
}

func TestLoadMeshes(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "block.obj")
	bare := filepath.Join(dir, "air.obj")
	if err := os.WriteFile(full, []byte("v 0.5 0.5 0.5\nv -0.5 -0.5 -0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bare, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	meshes, err := LoadMeshes([]string{full, bare})
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 2 || len(meshes[0].Vertices) != 2 || len(meshes[1].Vertices) != 0 {
		t.Errorf("meshes = %+v", meshes)
	}
	if _, err := LoadMeshes([]string{filepath.Join(dir, "missing.obj")}); err == nil {
		t.Error("missing file should fail")
	}
}
