// SPDX-License-Identifier: MIT
// Package: kahuna/rule
//
// rule.go: the compiled, read-only allowance table.
//
// Layout:
//   • offsets[i] is the neighbor direction of column i.
//   • entries[k].allowed[i] is the union of neighbor states that
//     entries[k].state permits at offsets[i]; an invalid slot permits nothing.
//   • entries[:declared] came from Allow; the rest are catch-all states.

package rule

import (
	"github.com/katalvlaran/kahuna/space"
	"github.com/katalvlaran/kahuna/state"
)

type entry[S any] struct {
	state   S
	allowed []space.Slot[S]
}

// Rule is a compiled allowance table plus the observer used to commit cells.
// It is immutable and safe to share across concurrent solves.
type Rule[D comparable, S state.State[S]] struct {
	offsets  []D
	entries  []entry[S]
	declared int
	observer Observer[S]
}

// Entry is a read-only view of one compiled state rule.
type Entry[S any] struct {
	State    S
	Allowed  []space.Slot[S]
	CatchAll bool
}

// NeighborOffsets returns a copy of the offset list; neighbor slices passed
// to Collapse and Observe are indexed against it.
func (r *Rule[D, S]) NeighborOffsets() []D {
	return append([]D(nil), r.offsets...)
}

// Len returns the number of compiled state rules, catch-alls included.
func (r *Rule[D, S]) Len() int {
	return len(r.entries)
}

// Table returns deep copies of the compiled state rules in table order.
func (r *Rule[D, S]) Table() []Entry[S] {
	out := make([]Entry[S], len(r.entries))
	for k, e := range r.entries {
		allowed := make([]space.Slot[S], len(e.allowed))
		for i, a := range e.allowed {
			if a.Valid {
				allowed[i] = space.Some(a.Value.Clone())
			}
		}
		out[k] = Entry[S]{State: e.state.Clone(), Allowed: allowed, CatchAll: k >= r.declared}
	}

	return out
}

// Collapse is one propagation step for cell. For every compiled state the
// cell still allows, each in-bounds neighbor must overlap the allowance
// recorded at that offset; otherwise the state is removed from the cell.
// Every state is checked, so one call may remove several. Invalid neighbor
// slots impose nothing.
//
// neighbors[i] must correspond to NeighborOffsets()[i].
// Complexity: O(R × O) overlap tests.
func (r *Rule[D, S]) Collapse(cell S, neighbors []space.Slot[S]) {
	for _, e := range r.entries {
		if !cell.HasAnyOf(e.state) {
			continue
		}
		for i, n := range neighbors {
			if !n.Valid {
				continue
			}
			if a := e.allowed[i]; !a.Valid || !n.Value.HasAnyOf(a.Value) {
				cell.ClearStates(e.state)
				break
			}
		}
	}
}

// Constrain narrows neighbor, found at NeighborOffsets()[i] from source, to
// the union of what source's remaining states permit there. If no remaining
// state of source permits anything at that offset, neighbor is emptied.
// Complexity: O(R + |neighbor|) set operations.
func (r *Rule[D, S]) Constrain(neighbor, source S, i int) {
	support := state.Empty(neighbor)
	for _, e := range r.entries {
		if a := e.allowed[i]; a.Valid && source.HasAnyOf(e.state) {
			support.SetStates(a.Value)
		}
	}
	for _, f := range neighbor.CollectFinalStates(nil) {
		if !support.HasAnyOf(f) {
			neighbor.ClearStates(f)
		}
	}
}

// Observe commits cell to a single state through the configured observer.
func (r *Rule[D, S]) Observe(cell S, neighbors []space.Slot[S], src Source) error {
	if r.observer == nil {
		return ErrNoObserver
	}

	return r.observer.Observe(cell, neighbors, src)
}
