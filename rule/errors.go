// SPDX-License-Identifier: MIT
// Package: kahuna/rule
//
// errors.go: sentinel errors for the rule package.
//
// Callers branch with errors.Is; implementations add context with %w.
// ErrNoCandidates and ErrZeroWeight mean the cell was already a
// contradiction when observed. ErrMissingWeight is a configuration error.

package rule

import "errors"

// ErrNoCandidates indicates an observer was handed a cell with no candidates.
var ErrNoCandidates = errors.New("rule: no candidate states to observe")

// ErrZeroWeight indicates the remaining candidates of a cell all weigh 0.
var ErrZeroWeight = errors.New("rule: total candidate weight is zero")

// ErrMissingWeight indicates a candidate value absent from the weight table.
var ErrMissingWeight = errors.New("rule: candidate has no weight")

// ErrNilSource indicates Observe was called with a nil random source.
var ErrNilSource = errors.New("rule: random source is nil")

// ErrNoObserver indicates Observe was called on a rule built without one.
var ErrNoObserver = errors.New("rule: no observer configured")
