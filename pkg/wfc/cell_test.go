package wfc

import (
	"math/rand/v2"
	"testing"
)

func TestCellConstrain(t *testing.T) {
	tests := []struct {
		name          string
		n             int
		forbidden     []int
		wantOK        bool
		wantPossible  int
		wantCollapsed bool
		wantState     int
	}{
		{"no-op", 4, nil, true, 4, false, -1},
		{"narrow", 4, []int{0, 2}, true, 2, false, -1},
		{"self collapse", 4, []int{0, 1, 3}, true, 1, true, 2},
		{"contradiction", 3, []int{0, 1, 2}, false, 0, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCell(tt.n)
			ok := c.Constrain(BitsetOf(tt.n, tt.forbidden...))
			if ok != tt.wantOK {
				t.Errorf("Constrain() = %v, want %v", ok, tt.wantOK)
			}
			if c.PossibleStates() != tt.wantPossible {
				t.Errorf("PossibleStates() = %d, want %d", c.PossibleStates(), tt.wantPossible)
			}
			if c.PossibleStates() != c.Superposition().Count() {
				t.Errorf("cached count %d disagrees with superposition %s", c.PossibleStates(), c.Superposition())
			}
			if c.IsCollapsed() != tt.wantCollapsed {
				t.Errorf("IsCollapsed() = %v, want %v", c.IsCollapsed(), tt.wantCollapsed)
			}
			if c.State() != tt.wantState {
				t.Errorf("State() = %d, want %d", c.State(), tt.wantState)
			}
		})
	}
}

func TestCellConstrainIsMonotonic(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	c := NewCell(16)
	prev := c.Superposition()
	for i := 0; i < 20 && !c.IsCollapsed(); i++ {
		f := NewBitset(16)
		f.Set(r.IntN(16))
		if !c.Constrain(f) {
			break
		}
		cur := c.Superposition()
		if cur.Count() > prev.Count() {
			t.Fatalf("superposition grew from %s to %s", prev, cur)
		}
		cur.Each(func(i int) {
			if !prev.Has(i) {
				t.Fatalf("tile %d reappeared", i)
			}
		})
		prev = cur
	}
}

func TestCellCollapse(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 50; i++ {
		c := NewCell(5)
		c.Constrain(BitsetOf(5, 1, 3))
		tile := c.Collapse(r)
		if tile != 0 && tile != 2 && tile != 4 {
			t.Fatalf("Collapse() = %d, not in remaining set", tile)
		}
		if !c.IsCollapsed() || c.State() != tile {
			t.Fatalf("cell not collapsed to %d: %s", tile, c)
		}
		if c.Superposition().Count() != 1 || !c.Superposition().Has(tile) {
			t.Fatalf("superposition not narrowed: %s", c.Superposition())
		}
	}
}

func TestCellCollapseIsUniform(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	counts := make([]int, 4)
	const trials = 4000
	for i := 0; i < trials; i++ {
		c := NewCell(4)
		counts[c.Collapse(r)]++
	}
	for tile, n := range counts {
		if n < trials/4-200 || n > trials/4+200 {
			t.Errorf("tile %d chosen %d times out of %d", tile, n, trials)
		}
	}
}

func TestCellPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(c *Cell)
	}{
		{"constrain collapsed", func(c *Cell) { c.Constrain(NewBitset(3)) }},
		{"entropy collapsed", func(c *Cell) { c.Entropy() }},
		{"collapse collapsed", func(c *Cell) { c.Collapse(rand.New(rand.NewPCG(0, 0))) }},
		{"force collapsed", func(c *Cell) { c.ForceCollapse(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCell(3)
			c.ForceCollapse(1)
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(c)
		})
	}
}

func TestCellForceCollapseOutsideSuperpositionPanics(t *testing.T) {
	c := NewCell(3)
	c.Constrain(BitsetOf(3, 2))
	defer func() {
		if recover() == nil {
			t.Error("ForceCollapse to a removed tile should panic")
		}
	}()
	c.ForceCollapse(2)
}

func TestCellRestore(t *testing.T) {
	c := NewCell(4)
	_, cleared := c.constrain(BitsetOf(4, 0))
	fixed := c.forceCollapse(3)

	c.restore(fixed, true)
	if c.IsCollapsed() || c.PossibleStates() != 3 {
		t.Fatalf("after undoing collapse: %s", c)
	}
	c.restore(cleared, false)
	if c.PossibleStates() != 4 {
		t.Fatalf("after undoing constrain: %s", c)
	}
}
