package entropy

import (
	"encoding/binary"
	"math/bits"
)

// wordBits is the width of a single backing word of a Bitset.
const wordBits = 64

// Bitset is a fixed-width bitset backed by an array of 64-bit words.
// It is used for the per-entity component-presence mask and the
// per-entity group-membership mask.
//
// github.com/TheBitDrifter/mask covers fixed-width marking and
// containment checks (see the Universe writer guard's mask.Mask256),
// but the entity masks additionally need popcount and bit-for-bit
// equality over a runtime-configured width, so this type carries its
// own word array in the same idiom.
type Bitset struct {
	words []uint64
	bits  int
}

// NewBitset returns a zeroed Bitset wide enough to hold n bits.
func NewBitset(n int) Bitset {
	words := (n + wordBits - 1) / wordBits
	if words == 0 {
		words = 1
	}
	return Bitset{words: make([]uint64, words), bits: n}
}

func (b *Bitset) wordIndex(i int) (int, uint64) {
	return i / wordBits, uint64(1) << uint(i%wordBits)
}

// Set marks every bit.
func (b *Bitset) Set() {
	for i := range b.words {
		b.words[i] = ^uint64(0)
	}
	b.maskTail()
}

// SetBit sets bit i.
func (b *Bitset) SetBit(i int) {
	w, m := b.wordIndex(i)
	b.words[w] |= m
}

// Reset clears every bit.
func (b *Bitset) Reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// ResetBit clears bit i.
func (b *Bitset) ResetBit(i int) {
	w, m := b.wordIndex(i)
	b.words[w] &^= m
}

// Test reports whether bit i is set.
func (b Bitset) Test(i int) bool {
	w, m := b.wordIndex(i)
	return b.words[w]&m != 0
}

// None reports whether no bit is set.
func (b Bitset) None() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Any reports whether at least one bit is set.
func (b Bitset) Any() bool {
	return !b.None()
}

// All reports whether every bit in [0, bits) is set.
func (b Bitset) All() bool {
	full := NewBitset(b.bits)
	full.Set()
	return b.Equal(full)
}

// Count returns the number of set bits via hardware popcount.
func (b Bitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// And returns the bitwise AND of a and b.
func (b Bitset) And(other Bitset) Bitset {
	out := NewBitset(b.bits)
	for i := range b.words {
		out.words[i] = b.words[i] & other.words[i]
	}
	return out
}

// Or returns the bitwise OR of a and b.
func (b Bitset) Or(other Bitset) Bitset {
	out := NewBitset(b.bits)
	for i := range b.words {
		out.words[i] = b.words[i] | other.words[i]
	}
	return out
}

// Xor returns the bitwise XOR of a and b.
func (b Bitset) Xor(other Bitset) Bitset {
	out := NewBitset(b.bits)
	for i := range b.words {
		out.words[i] = b.words[i] ^ other.words[i]
	}
	return out
}

// Equal reports bit-for-bit equality: a == b iff (a ^ b).None().
func (b Bitset) Equal(other Bitset) bool {
	return b.Xor(other).None()
}

// key returns a byte-exact encoding of b's words, suitable as a map
// key. Used by GroupManager to distinguish groups by the literal
// require/reject bitsets that produced them rather than by a derived
// mask.
func (b Bitset) key() string {
	buf := make([]byte, len(b.words)*8)
	for i, w := range b.words {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	return string(buf)
}

// Clone returns an independent copy.
func (b Bitset) Clone() Bitset {
	out := NewBitset(b.bits)
	copy(out.words, b.words)
	return out
}

// maskTail clears the bits beyond b.bits in the final word so that
// All()/Equal() aren't fooled by garbage high bits.
func (b *Bitset) maskTail() {
	if b.bits%wordBits == 0 {
		return
	}
	last := len(b.words) - 1
	validBits := uint(b.bits % wordBits)
	b.words[last] &= (uint64(1) << validBits) - 1
}
