// SPDX-License-Identifier: MIT
// Package: kahuna/collapse
//
// errors.go: sentinel and typed errors for the collapse driver.
//
// Error policy:
//   • Callers branch with errors.Is(err, ErrContradiction) or ErrStepLimit.
//   • The failing coordinate is reachable with errors.As into
//     *ContradictionError[C].

package collapse

import (
	"errors"
	"fmt"
)

// ErrContradiction indicates a cell was left with no candidate states.
var ErrContradiction = errors.New("collapse: contradiction")

// ErrStepLimit indicates the observation budget set by WithMaxSteps ran out.
var ErrStepLimit = errors.New("collapse: step limit reached")

// Phase names where a contradiction surfaced.
type Phase string

const (
	// PhaseSweep is the initial propagation over every cell.
	PhaseSweep Phase = "sweep"
	// PhaseObserve is the commit of a selected cell.
	PhaseObserve Phase = "observe"
	// PhasePropagate is the worklist following an observation.
	PhasePropagate Phase = "propagate"
)

// ContradictionError reports the cell that ran out of candidates.
type ContradictionError[C any] struct {
	Coord C
	Phase Phase
	// Err is the underlying cause, if any (e.g. rule.ErrNoCandidates).
	Err error
}

func (e *ContradictionError[C]) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("collapse: contradiction at %v during %s: %v", e.Coord, e.Phase, e.Err)
	}

	return fmt.Sprintf("collapse: contradiction at %v during %s", e.Coord, e.Phase)
}

// Unwrap exposes ErrContradiction and the cause.
func (e *ContradictionError[C]) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrContradiction, e.Err}
	}

	return []error{ErrContradiction}
}
