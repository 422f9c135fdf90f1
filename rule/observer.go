// SPDX-License-Identifier: MIT
// Package: kahuna/rule
//
// observer.go: policies that commit a cell to a single candidate.
//
// Contract:
//   • Observe narrows cell in place to exactly one of its current candidates.
//   • Only ClearStates is used to commit, so observation is monotone.
//   • Randomness comes from the src argument; observers hold no mutable state.
//   • Neighbors are passed for neighbor-aware policies; the built-in ones
//     ignore them.

package rule

import (
	"fmt"

	"github.com/katalvlaran/kahuna/space"
	"github.com/katalvlaran/kahuna/state"
)

// Observer selects and commits a final state for a cell.
type Observer[S any] interface {
	Observe(cell S, neighbors []space.Slot[S], src Source) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc[S any] func(cell S, neighbors []space.Slot[S], src Source) error

// Observe calls f.
func (f ObserverFunc[S]) Observe(cell S, neighbors []space.Slot[S], src Source) error {
	return f(cell, neighbors, src)
}

// Uniform picks one remaining candidate with equal probability.
type Uniform[S state.State[S]] struct{}

// Observe draws src.IntN(candidates) and keeps that candidate.
// Complexity: O(k) set operations for k candidates.
func (Uniform[S]) Observe(cell S, _ []space.Slot[S], src Source) error {
	if src == nil {
		return ErrNilSource
	}
	finals := cell.CollectFinalStates(nil)
	if len(finals) == 0 {
		return ErrNoCandidates
	}
	commit(cell, finals, src.IntN(len(finals)))

	return nil
}

// Weighted picks a candidate with probability proportional to its weight.
// A zero-weight candidate is never picked by the draw; it can still end up
// final through propagation when it is the only one left.
type Weighted[T comparable, S interface {
	state.State[S]
	state.Final[T]
}] struct {
	Weights map[T]uint32
}

// NewWeighted returns a Weighted observer over a private copy of weights.
// Panics on a nil map: an empty policy is a programmer error.
func NewWeighted[T comparable, S interface {
	state.State[S]
	state.Final[T]
}](weights map[T]uint32) *Weighted[T, S] {
	if weights == nil {
		panic("rule: NewWeighted(nil)")
	}
	w := make(map[T]uint32, len(weights))
	for k, v := range weights {
		w[k] = v
	}

	return &Weighted[T, S]{Weights: w}
}

// Observe builds prefix sums of the candidates' weights in enumeration order,
// draws d in [0, total) and keeps the first candidate whose cumulative weight
// exceeds d and whose own weight is non-zero.
//
// A cell with a single candidate is already committed and left alone.
//
// Errors: ErrNoCandidates, ErrMissingWeight (wrapped with the value),
// ErrZeroWeight, ErrNilSource.
// Complexity: O(k) for k candidates.
func (w *Weighted[T, S]) Observe(cell S, _ []space.Slot[S], src Source) error {
	if src == nil {
		return ErrNilSource
	}
	finals := cell.CollectFinalStates(nil)
	if len(finals) == 0 {
		return ErrNoCandidates
	}
	if len(finals) == 1 {
		return nil
	}

	prefix := make([]uint64, len(finals))
	var total uint64
	for i, f := range finals {
		v, ok := f.Get()
		if !ok {
			return fmt.Errorf("rule: candidate %d is not a single state", i)
		}
		weight, ok := w.Weights[v]
		if !ok {
			return fmt.Errorf("%w: %v", ErrMissingWeight, v)
		}
		total += uint64(weight)
		prefix[i] = total
	}
	if total == 0 {
		return ErrZeroWeight
	}

	draw := uint64(src.IntN(int(total)))
	var prev uint64
	for i, cum := range prefix {
		if cum > draw && cum-prev != 0 {
			commit(cell, finals, i)
			return nil
		}
		prev = cum
	}

	// unreachable: prefix[len-1] == total > draw
	return ErrZeroWeight
}

// commit clears every candidate except finals[keep] from cell.
func commit[S state.State[S]](cell S, finals []S, keep int) {
	for i, f := range finals {
		if i != keep {
			cell.ClearStates(f)
		}
	}
}
