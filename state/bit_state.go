package state

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// MaxBits is the size of the universe a BitState can represent.
const MaxBits = 64

// ErrBitOutOfRange indicates a member index outside [0, MaxBits).
var ErrBitOutOfRange = errors.New("state: bit index out of range")

// BitState is a set of small integers 0..63 packed in a uint64. It suits
// fixed tile universes where members are indices into a tile table.
type BitState struct {
	bits uint64
}

// NewBits returns the set of the given indices. Returns ErrBitOutOfRange if
// any index is outside [0, MaxBits).
func NewBits(indices ...int) (*BitState, error) {
	b := &BitState{}
	for _, i := range indices {
		if i < 0 || i >= MaxBits {
			return nil, fmt.Errorf("%w: %d", ErrBitOutOfRange, i)
		}
		b.bits |= 1 << uint(i)
	}

	return b, nil
}

// BitsUpTo returns the set {0, 1, ..., n-1}. n is clamped to [0, MaxBits].
func BitsUpTo(n int) *BitState {
	switch {
	case n <= 0:
		return &BitState{}
	case n >= MaxBits:
		return &BitState{bits: ^uint64(0)}
	}

	return &BitState{bits: (uint64(1) << uint(n)) - 1}
}

// Mask returns the raw bitmask.
func (b *BitState) Mask() uint64 { return b.bits }

// Contains reports whether index i is a member.
func (b *BitState) Contains(i int) bool {
	if i < 0 || i >= MaxBits {
		return false
	}
	return b.bits&(1<<uint(i)) != 0
}

// Count returns the number of members.
func (b *BitState) Count() int {
	return bits.OnesCount64(b.bits)
}

// CollectFinalStates appends one single-bit set per member, lowest index first.
func (b *BitState) CollectFinalStates(out []*BitState) []*BitState {
	for rest := b.bits; rest != 0; rest &= rest - 1 {
		out = append(out, &BitState{bits: rest & -rest})
	}

	return out
}

// HasAnyOf reports whether the sets intersect.
func (b *BitState) HasAnyOf(other *BitState) bool {
	return b.bits&other.bits != 0
}

// ClearStates removes the members of other.
func (b *BitState) ClearStates(other *BitState) {
	b.bits &^= other.bits
}

// SetStates adds the members of other.
func (b *BitState) SetStates(other *BitState) {
	b.bits |= other.bits
}

// Clone returns an independent copy.
func (b *BitState) Clone() *BitState {
	return &BitState{bits: b.bits}
}

// Equal reports whether both sets hold the same members.
func (b *BitState) Equal(other *BitState) bool {
	return b.bits == other.bits
}

// Get returns the only member index when the set is final.
func (b *BitState) Get() (int, bool) {
	if b.Count() != 1 {
		return 0, false
	}

	return bits.TrailingZeros64(b.bits), true
}

// String renders member indices, e.g. {0, 3}.
func (b *BitState) String() string {
	parts := make([]string, 0, b.Count())
	for rest := b.bits; rest != 0; rest &= rest - 1 {
		parts = append(parts, strconv.Itoa(bits.TrailingZeros64(rest)))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
