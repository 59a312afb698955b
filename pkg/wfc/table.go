package wfc

import (
	"fmt"
	"strings"
	"sync"
)

// Table is the adjacency relation: for every tile i and direction d it holds
// the bitset of tiles j that may sit immediately in direction d from i.
//
// A Table is built once (usually by a tileset graph builder) and is
// read-only afterwards. It is safe to share a finished Table between any
// number of solvers, including solvers running on different goroutines.
type Table[D Direction[D]] struct {
	dirs      []D
	allowed   [][]Bitset // [tile][dir.Index()]
	forbidden [][]Bitset // complement cache, built by Freeze
	freeze    sync.Once
	frozen    bool
}

// NewTable returns an empty table for n tiles over the given directions.
// dirs must list every direction in index order (Dirs2() or Dirs3()).
func NewTable[D Direction[D]](n int, dirs []D) *Table[D] {
	t := &Table[D]{
		dirs:    append([]D(nil), dirs...),
		allowed: make([][]Bitset, n),
	}
	for i := range t.allowed {
		t.allowed[i] = make([]Bitset, len(dirs))
		for k := range dirs {
			t.allowed[i][k] = NewBitset(n)
		}
	}
	return t
}

// NewTable2D returns an empty 2D table for n tiles.
func NewTable2D(n int) *Table[Dir2] {
	return NewTable(n, Dirs2())
}

// NewTable3D returns an empty 3D table for n tiles.
func NewTable3D(n int) *Table[Dir3] {
	return NewTable(n, Dirs3())
}

// StateCount returns the number of tiles, which is the length of every
// bitset the table hands out.
func (t *Table[D]) StateCount() int {
	return len(t.allowed)
}

// Directions returns the directions in index order.
func (t *Table[D]) Directions() []D {
	return t.dirs
}

// Allow records that tile j may sit in direction d from tile i.
// Panics once the table has been frozen.
func (t *Table[D]) Allow(i int, d D, j int) {
	if t.frozen {
		panic("wfc: Allow on frozen table")
	}
	t.allowed[i][d.Index()].Set(j)
}

// AllowPair records i→j in direction d and j→i in the opposite direction.
func (t *Table[D]) AllowPair(i int, d D, j int) {
	t.Allow(i, d, j)
	t.Allow(j, d.Opposite(), i)
}

// Compatible reports whether tile j may sit in direction d from tile i.
func (t *Table[D]) Compatible(i int, d D, j int) bool {
	return t.allowed[i][d.Index()].Has(j)
}

// Allowed returns the allowed-neighbour bitset of tile i in direction d.
// The result is shared with the table and must not be modified.
func (t *Table[D]) Allowed(i int, d D) Bitset {
	return t.allowed[i][d.Index()]
}

// Forbidden returns the complement of Allowed(i, d). The table is frozen
// on first use.
func (t *Table[D]) Forbidden(i int, d D) Bitset {
	t.Freeze()
	return t.forbidden[i][d.Index()]
}

// Freeze precomputes the forbidden sets and rejects further writes. It is
// safe to call from several goroutines at once; Allow is not.
func (t *Table[D]) Freeze() {
	t.freeze.Do(func() {
		forbidden := make([][]Bitset, len(t.allowed))
		for i, row := range t.allowed {
			forbidden[i] = make([]Bitset, len(row))
			for k, b := range row {
				forbidden[i][k] = b.Complement()
			}
		}
		t.forbidden = forbidden
		t.frozen = true
	})
}

// Asymmetry describes an entry whose mirrored entry is missing.
type Asymmetry[D Direction[D]] struct {
	From, To int
	Dir      D
}

func (a Asymmetry[D]) Error() string {
	return fmt.Sprintf("tile %d allows %d in direction %s but not the reverse", a.From, a.To, a.Dir)
}

// CheckSymmetry verifies that allowed[i][d][j] == allowed[j][opposite(d)][i]
// for every entry and returns the first violation found.
func (t *Table[D]) CheckSymmetry() error {
	for i := range t.allowed {
		for _, d := range t.dirs {
			var bad error
			t.allowed[i][d.Index()].Each(func(j int) {
				if bad == nil && !t.Compatible(j, d.Opposite(), i) {
					bad = Asymmetry[D]{From: i, To: j, Dir: d}
				}
			})
			if bad != nil {
				return bad
			}
		}
	}
	return nil
}

// String dumps every row as "tile dir: bits".
func (t *Table[D]) String() string {
	var sb strings.Builder
	for i := range t.allowed {
		for _, d := range t.dirs {
			fmt.Fprintf(&sb, "%d %s: %s\n", i, d, t.allowed[i][d.Index()])
		}
	}
	return sb.String()
}
