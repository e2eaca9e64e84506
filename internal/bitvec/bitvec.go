// Package bitvec implements a fixed-size bit set packed into 64-bit words.
// Bit i lives in word i/64 at position 63-(i%64), most significant first.
package bitvec

import (
	"fmt"
	"math/bits"
)

const wordBits = 64

// BitVector is a set of n bits. Bits past n in the last word stay zero
// unless SetAllTrue fills them; they are never observed.
type BitVector struct {
	words []uint64
	size  int
}

// New returns a vector of size bits, all false.
func New(size int) *BitVector {
	if size < 0 {
		panic(fmt.Sprintf("bitvec: negative size %d", size))
	}
	return &BitVector{words: make([]uint64, (size+wordBits-1)/wordBits), size: size}
}

// Len returns the number of bits.
func (v *BitVector) Len() int {
	return v.size
}

func (v *BitVector) SetAllTrue() {
	for i := range v.words {
		v.words[i] = ^uint64(0)
	}
}

func (v *BitVector) SetAllFalse() {
	clear(v.words)
}

// Set assigns bit i. It panics when i is out of range.
func (v *BitVector) Set(i int, value bool) {
	if i < 0 || i >= v.size {
		panic(fmt.Sprintf("bitvec: index %d out of range [0, %d)", i, v.size))
	}
	mask := uint64(1) << (wordBits - 1 - i%wordBits)
	if value {
		v.words[i/wordBits] |= mask
	} else {
		v.words[i/wordBits] &^= mask
	}
}

// Get returns bit i; ok is false when i is out of range.
func (v *BitVector) Get(i int) (value, ok bool) {
	if i < 0 || i >= v.size {
		return false, false
	}
	return v.words[i/wordBits]>>(wordBits-1-i%wordBits)&1 == 1, true
}

// Has is Get without the range report.
func (v *BitVector) Has(i int) bool {
	value, _ := v.Get(i)
	return value
}

// OrAssign sets v to v | other. Sizes must match.
func (v *BitVector) OrAssign(other *BitVector) {
	v.mustMatch(other)
	for i, w := range other.words {
		v.words[i] |= w
	}
}

// AndNotAssign sets v to v &^ other. Sizes must match.
func (v *BitVector) AndNotAssign(other *BitVector) {
	v.mustMatch(other)
	for i, w := range other.words {
		v.words[i] &^= w
	}
}

func (v *BitVector) mustMatch(other *BitVector) {
	if v.size != other.size {
		panic(fmt.Sprintf("bitvec: size mismatch %d != %d", v.size, other.size))
	}
}

func (v *BitVector) Clone() *BitVector {
	return &BitVector{words: append([]uint64(nil), v.words...), size: v.size}
}

// Equal reports whether both vectors have the same size and the same bits.
func (v *BitVector) Equal(other *BitVector) bool {
	if v.size != other.size {
		return false
	}
	for i, w := range v.words {
		if w&v.validMask(i) != other.words[i]&v.validMask(i) {
			return false
		}
	}
	return true
}

// Count returns the number of set bits below Len.
func (v *BitVector) Count() int {
	n := 0
	for i, w := range v.words {
		n += bits.OnesCount64(w & v.validMask(i))
	}
	return n
}

// Indices returns the set bits in increasing order.
func (v *BitVector) Indices() []int {
	out := make([]int, 0, v.Count())
	for i := range v.size {
		if v.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// validMask selects the bits of word i that lie below Len.
func (v *BitVector) validMask(i int) uint64 {
	if i < len(v.words)-1 || v.size%wordBits == 0 {
		return ^uint64(0)
	}
	return ^uint64(0) << (wordBits - v.size%wordBits)
}

func (v *BitVector) String() string {
	buf := make([]byte, v.size)
	for i := range v.size {
		buf[i] = '0'
		if v.Has(i) {
			buf[i] = '1'
		}
	}
	return string(buf)
}
