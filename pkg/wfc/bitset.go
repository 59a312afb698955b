// Package wfc provides the wave function collapse solver.
// This file defines Bitset, the fixed-size superposition over tile indices.
package wfc

import (
	"math/bits"
	"strings"
)

// Bitset is a fixed-size set of tile indices in the range [0, Len()).
// Each index is represented by a single bit in a uint64 word array, giving
// O(1) membership tests and O(words) set operations.
//
// Unlike an immutable finite domain, a Bitset is mutated in place: cells
// shrink their superposition on every constraint and the undo trail restores
// cleared bits on backtrack. Use Clone when an independent copy is needed.
//
// Memory usage: (n + 63) / 64 * 8 bytes.
type Bitset struct {
	n     int      // number of addressable bits
	words []uint64 // bit i lives in words[i/64] at offset i%64
}

// NewBitset returns an empty bitset able to hold indices [0, n).
func NewBitset(n int) Bitset {
	if n <= 0 {
		return Bitset{}
	}
	return Bitset{n: n, words: make([]uint64, (n+63)/64)}
}

// NewFullBitset returns a bitset with every index in [0, n) set.
func NewFullBitset(n int) Bitset {
	b := NewBitset(n)
	b.SetAll()
	return b
}

// BitsetOf returns a bitset of length n with the given indices set.
// Indices outside [0, n) are ignored.
func BitsetOf(n int, indices ...int) Bitset {
	b := NewBitset(n)
	for _, i := range indices {
		if i >= 0 && i < n {
			b.Set(i)
		}
	}
	return b
}

// Len returns the number of addressable bits.
func (b Bitset) Len() int {
	return b.n
}

// Has reports whether index i is set. Out-of-range indices are never set.
func (b Bitset) Has(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return b.words[i/64]&(1<<uint(i%64)) != 0
}

// Set marks index i. Panics if i is out of range.
func (b Bitset) Set(i int) {
	b.checkIndex(i)
	b.words[i/64] |= 1 << uint(i%64)
}

// Clear unmarks index i. Panics if i is out of range.
func (b Bitset) Clear(i int) {
	b.checkIndex(i)
	b.words[i/64] &^= 1 << uint(i%64)
}

// SetAll marks every index in [0, Len()).
func (b Bitset) SetAll() {
	for i := range b.words {
		b.words[i] = ^uint64(0)
	}
	b.maskTail()
}

// ClearAll unmarks every index.
func (b Bitset) ClearAll() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// Count returns the population count.
// Uses hardware popcount instructions (O(number of words)).
func (b Bitset) Count() int {
	count := 0
	for _, w := range b.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// IsEmpty reports whether no index is set.
func (b Bitset) IsEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// AndNot clears, in place, every bit of b that is set in other and returns
// the bits that were actually cleared (b ∧ other before the update).
// Both bitsets must have the same length.
func (b Bitset) AndNot(other Bitset) Bitset {
	b.checkLen(other)
	cleared := NewBitset(b.n)
	for i := range b.words {
		cleared.words[i] = b.words[i] & other.words[i]
		b.words[i] &^= other.words[i]
	}
	return cleared
}

// Or sets, in place, every bit that is set in other.
func (b Bitset) Or(other Bitset) {
	b.checkLen(other)
	for i := range b.words {
		b.words[i] |= other.words[i]
	}
}

// Intersects reports whether b and other share at least one set bit.
func (b Bitset) Intersects(other Bitset) bool {
	b.checkLen(other)
	for i := range b.words {
		if b.words[i]&other.words[i] != 0 {
			return true
		}
	}
	return false
}

// Complement returns a new bitset containing every index not in b.
// Bits beyond Len() in the last word stay clear.
func (b Bitset) Complement() Bitset {
	c := NewBitset(b.n)
	for i := range b.words {
		c.words[i] = ^b.words[i]
	}
	c.maskTail()
	return c
}

// Clone returns an independent copy.
func (b Bitset) Clone() Bitset {
	c := NewBitset(b.n)
	copy(c.words, b.words)
	return c
}

// CopyFrom overwrites b with the contents of other.
func (b Bitset) CopyFrom(other Bitset) {
	b.checkLen(other)
	copy(b.words, other.words)
}

// Equal reports whether both bitsets have the same length and the same bits.
func (b Bitset) Equal(other Bitset) bool {
	if b.n != other.n {
		return false
	}
	for i := range b.words {
		if b.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Nth returns the index of the k-th set bit (0-based, ascending), or -1 if
// fewer than k+1 bits are set.
func (b Bitset) Nth(k int) int {
	if k < 0 {
		return -1
	}
	for wi, w := range b.words {
		c := bits.OnesCount64(w)
		if k >= c {
			k -= c
			continue
		}
		for ; k > 0; k-- {
			w &= w - 1
		}
		return wi*64 + bits.TrailingZeros64(w)
	}
	return -1
}

// First returns the lowest set index, or -1 if the bitset is empty.
func (b Bitset) First() int {
	for wi, w := range b.words {
		if w != 0 {
			return wi*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// Each calls f for every set index in ascending order.
func (b Bitset) Each(f func(i int)) {
	for wi, w := range b.words {
		for w != 0 {
			f(wi*64 + bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
}

// Indices returns the set indices in ascending order.
func (b Bitset) Indices() []int {
	out := make([]int, 0, b.Count())
	b.Each(func(i int) {
		out = append(out, i)
	})
	return out
}

// String renders one character per index, '1' for set and '0' for clear,
// lowest index first.
func (b Bitset) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		if b.Has(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// maskTail clears the unused high bits of the last word.
func (b Bitset) maskTail() {
	if b.n%64 != 0 && len(b.words) > 0 {
		b.words[len(b.words)-1] &= (uint64(1) << uint(b.n%64)) - 1
	}
}

func (b Bitset) checkIndex(i int) {
	if i < 0 || i >= b.n {
		panic("wfc: bitset index out of range")
	}
}

func (b Bitset) checkLen(other Bitset) {
	if b.n != other.n {
		panic("wfc: bitset length mismatch")
	}
}
