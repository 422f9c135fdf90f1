// SPDX-License-Identifier: MIT
// Package: kahuna/rule
//
// Package rule compiles neighbor-compatibility declarations into an immutable
// table and applies it to cells during propagation and observation.
//
// What:
//
//   - Builder accumulates Allow(state, (offset, neighbor)...) statements.
//     Each concrete member s of state permits each concrete member n of
//     neighbor at offset. Repeated statements union; nothing is overwritten.
//   - Build freezes the table into a Rule. Offsets are indexed in first-seen
//     order and every state rule is padded to the full offset list with "no
//     allowance". Every member of the universe never passed to Allow is
//     compiled with no allowance in any direction: it can only sit where each
//     offset leads outside the space.
//   - Rule.Collapse removes from a cell every state whose recorded allowance
//     does not overlap an in-bounds neighbor. Rule.Constrain narrows a
//     neighbor to what a source cell permits at one offset.
//   - Observer commits a cell to one candidate: Uniform picks evenly,
//     Weighted by a per-value weight table.
//
// Rules are declared asymmetrically: "A allows B to the east" says nothing
// about what B allows to the west.
//
// Determinism:
//
//   - Observers draw from a caller-supplied Source, never from a global.
//     NewSource(seed) and DeriveSource(seed, stream) build reproducible
//     math/rand/v2 generators; seed 0 maps to a fixed default.
//
// Concurrency:
//
//   - A built Rule holds no mutable state and may be shared by concurrent
//     solves. A Builder and a Source are single-goroutine values.
//
// Errors:
//
//   - ErrNoCandidates:  an observed cell has no candidate left.
//   - ErrZeroWeight:    every candidate of an observed cell weighs 0.
//   - ErrMissingWeight: a candidate has no entry in the weight table.
//   - ErrNilSource:     Observe was called without a random source.
//   - ErrNoObserver:    the rule was built without an observer.
package rule
