// SPDX-License-Identifier: MIT
// Package: kahuna/rule
//
// builder.go: mutable accumulator for neighbor allowances.
//
// Design:
//   • Builder owns growable tables: the distinct offsets seen so far and one
//     protoRule per concrete state, both found by linear equality search.
//   • Build copies everything into a Rule; the Builder stays usable and later
//     Allow calls never leak into an already built Rule.

package rule

import (
	"github.com/katalvlaran/kahuna/space"
	"github.com/katalvlaran/kahuna/state"
)

// Allowance pairs a neighbor offset with the states permitted there.
type Allowance[D any, S any] struct {
	Offset D
	State  S
}

// Allow is shorthand for Allowance{Offset: offset, State: neighbor}.
func Allow[D any, S any](offset D, neighbor S) Allowance[D, S] {
	return Allowance[D, S]{Offset: offset, State: neighbor}
}

// protoRule is the growing allowance list for one concrete state.
type protoRule[S state.State[S]] struct {
	state   S
	allowed []space.Slot[S]
}

// addAllowed unions n into the allowance at offset index i.
func (p *protoRule[S]) addAllowed(i int, n S) {
	for len(p.allowed) <= i {
		p.allowed = append(p.allowed, space.Slot[S]{})
	}
	if p.allowed[i].Valid {
		p.allowed[i].Value.SetStates(n)
		return
	}
	p.allowed[i] = space.Some(n.Clone())
}

// Builder accumulates allowances for neighbor offsets of type D between
// states of type S.
type Builder[D comparable, S state.State[S]] struct {
	offsets  []D
	rules    []*protoRule[S]
	observer Observer[S]
	all      S
}

// NewBuilder starts an empty rule set over the universe all. The observer is
// carried into the built Rule. D usually has to be given explicitly:
//
//	b := rule.NewBuilder[space.Offset](rule.Uniform[*state.SetState[string]]{}, all)
func NewBuilder[D comparable, S state.State[S]](observer Observer[S], all S) *Builder[D, S] {
	return &Builder[D, S]{
		observer: observer,
		all:      all.Clone(),
	}
}

// Allow records that every member of s permits, at each given offset, every
// member of the paired neighbor set. Declaring an empty neighbor set still
// registers the offset and the state: it reads "nothing is allowed there".
// Returns b for chaining.
// Complexity: O(|s| × Σ|neighbor| × (offsets + rules)).
func (b *Builder[D, S]) Allow(s S, neighbors ...Allowance[D, S]) *Builder[D, S] {
	for _, single := range s.CollectFinalStates(nil) {
		r := b.rule(single)
		for _, nb := range neighbors {
			idx := b.offsetIndex(nb.Offset)
			finals := nb.State.CollectFinalStates(nil)
			if len(finals) == 0 {
				for len(r.allowed) <= idx {
					r.allowed = append(r.allowed, space.Slot[S]{})
				}
				continue
			}
			for _, n := range finals {
				r.addAllowed(idx, n)
			}
		}
	}

	return b
}

// Offsets returns the distinct offsets declared so far, in index order.
func (b *Builder[D, S]) Offsets() []D {
	return append([]D(nil), b.offsets...)
}

// offsetIndex returns the stable index of o, registering it if new.
func (b *Builder[D, S]) offsetIndex(o D) int {
	for i, known := range b.offsets {
		if known == o {
			return i
		}
	}
	b.offsets = append(b.offsets, o)

	return len(b.offsets) - 1
}

// rule returns the protoRule for the single state s, creating it if new.
func (b *Builder[D, S]) rule(s S) *protoRule[S] {
	for _, r := range b.rules {
		if r.state.Equal(s) {
			return r
		}
	}
	r := &protoRule[S]{state: s.Clone()}
	b.rules = append(b.rules, r)

	return r
}

// Build freezes the declarations into an immutable Rule.
//
// Steps:
//  1. Copy each declared state rule, padding its allowances with "none" up
//     to the number of distinct offsets.
//  2. Subtract every declared state from the universe.
//  3. Append one rule with no allowance in any direction for each member of
//     the remainder (the catch-all states).
//
// Complexity: O(R × O) for R rules and O offsets, plus O(|universe|).
func (b *Builder[D, S]) Build() *Rule[D, S] {
	n := len(b.offsets)
	remaining := b.all.Clone()
	entries := make([]entry[S], 0, len(b.rules))

	for _, pr := range b.rules {
		allowed := make([]space.Slot[S], n)
		for i, a := range pr.allowed {
			if a.Valid {
				allowed[i] = space.Some(a.Value.Clone())
			}
		}
		remaining.ClearStates(pr.state)
		entries = append(entries, entry[S]{state: pr.state.Clone(), allowed: allowed})
	}

	for _, rest := range remaining.CollectFinalStates(nil) {
		entries = append(entries, entry[S]{state: rest, allowed: make([]space.Slot[S], n)})
	}

	return &Rule[D, S]{
		offsets:  append([]D(nil), b.offsets...),
		entries:  entries,
		declared: len(b.rules),
		observer: b.observer,
	}
}
