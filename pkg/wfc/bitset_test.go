package wfc

import (
	"reflect"
	"testing"
)

func TestNewBitset(t *testing.T) {
	tests := []struct {
		name string
		n    int
		full bool
		want int
	}{
		{"empty small", 5, false, 0},
		{"full small", 5, true, 5},
		{"full word boundary", 64, true, 64},
		{"full spanning words", 130, true, 130},
		{"zero length", 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Bitset
			if tt.full {
				b = NewFullBitset(tt.n)
			} else {
				b = NewBitset(tt.n)
			}
			if b.Len() != tt.n {
				t.Errorf("Len() = %d, want %d", b.Len(), tt.n)
			}
			if b.Count() != tt.want {
				t.Errorf("Count() = %d, want %d", b.Count(), tt.want)
			}
			if b.IsEmpty() != (tt.want == 0) {
				t.Errorf("IsEmpty() = %v, want %v", b.IsEmpty(), tt.want == 0)
			}
		})
	}
}

func TestBitsetSetClear(t *testing.T) {
	b := NewBitset(100)
	b.Set(3)
	b.Set(64)
	b.Set(99)
	if got := b.Indices(); !reflect.DeepEqual(got, []int{3, 64, 99}) {
		t.Fatalf("Indices() = %v", got)
	}
	b.Clear(64)
	if b.Has(64) {
		t.Error("64 should be cleared")
	}
	if b.Count() != 2 {
		t.Errorf("Count() = %d, want 2", b.Count())
	}
}

func TestBitsetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Set(10) on a 10-bit set should panic")
		}
	}()
	NewBitset(10).Set(10)
}

func TestBitsetAndNot(t *testing.T) {
	b := BitsetOf(8, 0, 1, 2, 5)
	cleared := b.AndNot(BitsetOf(8, 1, 5, 7))

	if got := b.Indices(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("remaining = %v, want [0 2]", got)
	}
	if got := cleared.Indices(); !reflect.DeepEqual(got, []int{1, 5}) {
		t.Errorf("cleared = %v, want [1 5]", got)
	}

	b.Or(cleared)
	if !b.Equal(BitsetOf(8, 0, 1, 2, 5)) {
		t.Errorf("Or did not restore cleared bits: %s", b)
	}
}

func TestBitsetLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AndNot on mismatched lengths should panic")
		}
	}()
	NewBitset(4).AndNot(NewBitset(5))
}

func TestBitsetComplementMasksTail(t *testing.T) {
	b := BitsetOf(70, 0, 69)
	c := b.Complement()
	if c.Count() != 68 {
		t.Errorf("Complement().Count() = %d, want 68", c.Count())
	}
	if c.Has(0) || c.Has(69) {
		t.Error("complement kept original bits")
	}
	if c.Complement().Count() != 2 {
		t.Error("double complement should restore the original count")
	}
}

func TestBitsetNth(t *testing.T) {
	b := BitsetOf(200, 4, 63, 64, 150)
	tests := []struct {
		k, want int
	}{
		{0, 4}, {1, 63}, {2, 64}, {3, 150}, {4, -1}, {-1, -1},
	}
	for _, tt := range tests {
		if got := b.Nth(tt.k); got != tt.want {
			t.Errorf("Nth(%d) = %d, want %d", tt.k, got, tt.want)
		}
	}
	if b.First() != 4 {
		t.Errorf("First() = %d, want 4", b.First())
	}
	if NewBitset(3).First() != -1 {
		t.Error("First() on empty set should be -1")
	}
}

func TestBitsetCloneIsIndependent(t *testing.T) {
	b := BitsetOf(10, 1, 2)
	c := b.Clone()
	c.Set(9)
	if b.Has(9) {
		t.Error("Clone shares storage with the original")
	}
	if !b.Intersects(c) {
		t.Error("clone should intersect the original")
	}
	if b.Equal(c) {
		t.Error("modified clone should not equal the original")
	}
}

func TestBitsetString(t *testing.T) {
	if got := BitsetOf(5, 1, 3).String(); got != "01010" {
		t.Errorf("String() = %q, want %q", got, "01010")
	}
}
