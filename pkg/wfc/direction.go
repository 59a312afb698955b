package wfc

import "fmt"

// Pos addresses a cell in the lattice. 2D grids always use Z == 0.
type Pos struct {
	X, Y, Z int
}

// Add returns p translated by o.
func (p Pos) Add(o Pos) Pos {
	return Pos{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Direction is a closed enumeration of lattice directions. The adjacency
// table stores one bitset per tile per direction in a fixed-size layout
// indexed by Index, so there is no runtime "invalid direction" path.
//
// Dir2 and Dir3 are the only implementations.
type Direction[D any] interface {
	comparable
	fmt.Stringer

	// Index returns the position of the direction in Dirs2() or Dirs3().
	Index() int

	// Opposite returns the direction pointing back.
	Opposite() D

	// Offset returns the lattice step taken by moving in this direction.
	Offset() Pos
}

// Dir2 is a direction on a 2D grid. Indices follow the order
// -x, +y, +x, -y. Sprites use image coordinates, so +y points down the
// image: the +y edge of a sprite is its last pixel row.
type Dir2 uint8

const (
	Dir2NegX Dir2 = iota
	Dir2PosY
	Dir2PosX
	Dir2NegY

	// NumDirs2 is the number of 2D directions.
	NumDirs2 = 4
)

var (
	dir2Offsets  = [NumDirs2]Pos{{-1, 0, 0}, {0, 1, 0}, {1, 0, 0}, {0, -1, 0}}
	dir2Opposite = [NumDirs2]Dir2{Dir2PosX, Dir2NegY, Dir2NegX, Dir2PosY}
	dir2Names    = [NumDirs2]string{"-x", "+y", "+x", "-y"}
)

// Dirs2 lists every 2D direction in index order.
func Dirs2() []Dir2 {
	return []Dir2{Dir2NegX, Dir2PosY, Dir2PosX, Dir2NegY}
}

func (d Dir2) Index() int     { return int(d) }
func (d Dir2) Opposite() Dir2 { return dir2Opposite[d] }
func (d Dir2) Offset() Pos    { return dir2Offsets[d] }
func (d Dir2) String() string { return dir2Names[d] }

// Dir3 is a direction in a 3D volume. Indices follow the order
// +x, -x, +y, -y, +z, -z; +y is up.
type Dir3 uint8

const (
	Dir3PosX Dir3 = iota
	Dir3NegX
	Dir3PosY
	Dir3NegY
	Dir3PosZ
	Dir3NegZ

	// NumDirs3 is the number of 3D directions.
	NumDirs3 = 6
)

var (
	dir3Offsets = [NumDirs3]Pos{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	dir3Opposite = [NumDirs3]Dir3{Dir3NegX, Dir3PosX, Dir3NegY, Dir3PosY, Dir3NegZ, Dir3PosZ}
	dir3Names    = [NumDirs3]string{"+x", "-x", "+y", "-y", "+z", "-z"}
)

// Dirs3 lists every 3D direction in index order.
func Dirs3() []Dir3 {
	return []Dir3{Dir3PosX, Dir3NegX, Dir3PosY, Dir3NegY, Dir3PosZ, Dir3NegZ}
}

func (d Dir3) Index() int     { return int(d) }
func (d Dir3) Opposite() Dir3 { return dir3Opposite[d] }
func (d Dir3) Offset() Pos    { return dir3Offsets[d] }
func (d Dir3) String() string { return dir3Names[d] }

// Vertical reports whether d lies on the up/down axis.
func (d Dir3) Vertical() bool {
	return d == Dir3PosY || d == Dir3NegY
}
