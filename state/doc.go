// Package state defines the per-cell candidate set ("superposition") used by
// the collapse solver, plus two concrete representations.
//
// What:
//
//   - State is the capability every representation must offer: enumerate its
//     single-member subsets, test overlap, remove members (narrow) and add
//     members (widen). Widening is for rule compilation only; solving narrows.
//   - Final extracts the single concrete value of a one-member set.
//   - SetState[T] is the reference representation: an insertion-ordered set of
//     comparable values.
//   - BitState is a drop-in bitset for universes of at most 64 members.
//
// A set with exactly one member is final; a set with none is a contradiction.
//
// State values are pointers and are mutated in place. Callers that need an
// independent copy use Clone.
package state
