package tileset

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// LoadSprites decodes every .png file in dir, in file name order. The file
// order fixes the base tile indices, so name files with a sortable prefix.
func LoadSprites(dir string) ([]*Sprite, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no .png files in %s", ErrNoTiles, dir)
	}
	sort.Strings(paths)

	sprites := make([]*Sprite, 0, len(paths))
	for _, p := range paths {
		s, err := loadSprite(p)
		if err != nil {
			return nil, err
		}
		sprites = append(sprites, s)
	}
	return sprites, nil
}

func loadSprite(path string) (*Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	s, err := NewSprite(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadOBJ reads the vertex positions of a Wavefront OBJ stream. Only "v"
// records are used; faces, normals and texture coordinates are skipped.
func LoadOBJ(r io.Reader) (Mesh, error) {
	var m Mesh
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] != "v" {
			continue
		}
		if len(fields) < 4 {
			return Mesh{}, fmt.Errorf("obj line %d: vertex needs 3 coordinates", line)
		}
		var v mgl64.Vec3
		for k := 0; k < 3; k++ {
			f, err := strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return Mesh{}, fmt.Errorf("obj line %d: %w", line, err)
			}
			v[k] = f
		}
		m.Vertices = append(m.Vertices, v)
	}
	if err := sc.Err(); err != nil {
		return Mesh{}, err
	}
	return m, nil
}

// LoadMeshes reads each OBJ file in order. An empty OBJ is a valid mesh; it
// is folded into the empty tile during variant generation.
func LoadMeshes(paths []string) ([]Mesh, error) {
	meshes := make([]Mesh, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		m, err := LoadOBJ(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}
