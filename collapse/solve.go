// SPDX-License-Identifier: MIT
// Package: kahuna/collapse
//
// solve.go: observation loop and propagation worklist.
//
// Invariants:
//   • Cells only ever lose candidates (Rule.Collapse, Rule.Constrain and
//     observers clear, never set).
//   • A final cell is never rewritten after it became final.
//   • A cell is queued only when its candidate count dropped, so the worklist
//     drains after at most Σ|cell| pushes.

package collapse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/kahuna/rule"
	"github.com/katalvlaran/kahuna/space"
	"github.com/katalvlaran/kahuna/state"
)

// Stats counts the work done by one Solve call.
type Stats struct {
	// Observations is the number of cells committed by the observer.
	Observations int
	// Propagations is the number of cells taken off the worklist.
	Propagations int
	// Steps is the number of selection rounds, including a final one that
	// found nothing left to observe.
	Steps int
}

// Solve collapses every cell of sp under r. On success every cell holds
// exactly one state. On failure sp is left as it was when the error
// surfaced and Stats reflects the work done so far.
//
// Complexity: O(N × R × O) per propagated cell for N cells, R rule entries
// and O offsets; cell selection is O(N) per observation.
func Solve[C comparable, D space.Invertible[D], S state.State[S]](
	ctx context.Context,
	sp space.Space[C, D, S],
	r *rule.Rule[D, S],
	opts ...Option,
) (Stats, error) {
	cfg := newConfig(opts)
	run := uuid.NewString()
	log := cfg.logger.With(slog.String("run", run))

	ctx, span := cfg.tracer.Start(ctx, "collapse.Solve", trace.WithAttributes(
		attribute.String("kahuna.run", run),
	))
	defer span.End()

	s := newSolver(sp, r, cfg.src)
	span.SetAttributes(
		attribute.Int("kahuna.cells", len(s.coords)),
		attribute.Int("kahuna.offsets", len(s.offsets)),
	)
	log.Debug("solve started", slog.Int("cells", len(s.coords)), slog.Int("offsets", len(s.offsets)))

	start := time.Now()
	err := s.run(ctx, cfg.maxSteps, log)

	cfg.metrics.record(s.stats, len(s.coords), err)
	span.SetAttributes(
		attribute.Int("kahuna.observations", s.stats.Observations),
		attribute.Int("kahuna.propagations", s.stats.Propagations),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("solve failed", slog.Any("error", err), slog.Int("observations", s.stats.Observations))
		return s.stats, err
	}
	span.SetStatus(codes.Ok, "")
	log.Debug("solve finished",
		slog.Int("observations", s.stats.Observations),
		slog.Int("propagations", s.stats.Propagations),
		slog.Duration("elapsed", time.Since(start)),
	)

	return s.stats, nil
}

// solver holds the per-call scratch buffers.
type solver[C comparable, D space.Invertible[D], S state.State[S]] struct {
	sp       space.Space[C, D, S]
	r        *rule.Rule[D, S]
	src      rule.Source
	coords   []C
	offsets  []D
	inverse  []D
	fwd      []space.Slot[C] // scratch: coordinates at c+d_i
	back     []space.Slot[C] // scratch: coordinates at c-d_i
	nbCoords []space.Slot[C] // scratch for neighborStates
	nbStates []space.Slot[S]
	queue    []C
	queued   map[C]bool
	stats    Stats
}

func newSolver[C comparable, D space.Invertible[D], S state.State[S]](
	sp space.Space[C, D, S], r *rule.Rule[D, S], src rule.Source,
) *solver[C, D, S] {
	offsets := r.NeighborOffsets()
	inverse := make([]D, len(offsets))
	for i, d := range offsets {
		inverse[i] = d.Invert()
	}
	n := len(offsets)
	coords := sp.Coordinates()

	return &solver[C, D, S]{
		sp:       sp,
		r:        r,
		src:      src,
		coords:   coords,
		offsets:  offsets,
		inverse:  inverse,
		fwd:      make([]space.Slot[C], n),
		back:     make([]space.Slot[C], n),
		nbCoords: make([]space.Slot[C], n),
		nbStates: make([]space.Slot[S], n),
		queued:   make(map[C]bool, len(coords)),
	}
}

func (s *solver[C, D, S]) run(ctx context.Context, maxSteps int, log *slog.Logger) error {
	for _, c := range s.coords {
		s.push(c)
	}
	if err := s.propagate(PhaseSweep); err != nil {
		return err
	}

	for {
		s.stats.Steps++
		c, count, ok := s.pick()
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if maxSteps > 0 && s.stats.Observations >= maxSteps {
			return ErrStepLimit
		}

		cell := s.sp.At(c)
		log.Debug("observe", slog.Any("coord", c), slog.Int("candidates", count))
		if err := s.r.Observe(cell, s.neighborStates(c), s.src); err != nil {
			return observeError(c, err)
		}
		s.stats.Observations++
		if state.Count(cell) == 0 {
			return &ContradictionError[C]{Coord: c, Phase: PhaseObserve}
		}

		s.push(c)
		if err := s.propagate(PhasePropagate); err != nil {
			return err
		}
	}
}

// pick returns the non-final cell with the fewest candidates, first in
// coordinate order on ties.
func (s *solver[C, D, S]) pick() (C, int, bool) {
	var (
		best  C
		count int
		found bool
	)
	for _, c := range s.coords {
		n := state.Count(s.sp.At(c))
		if n <= 1 {
			continue
		}
		if !found || n < count {
			best, count, found = c, n, true
			if n == 2 {
				break
			}
		}
	}

	return best, count, found
}

// propagate drains the worklist.
func (s *solver[C, D, S]) propagate(phase Phase) error {
	for len(s.queue) > 0 {
		c := s.queue[0]
		s.queue = s.queue[1:]
		delete(s.queued, c)
		s.stats.Propagations++

		src := s.sp.At(c)
		if state.Count(src) == 0 {
			return &ContradictionError[C]{Coord: c, Phase: phase}
		}

		s.sp.Neighbors(c, s.offsets, s.fwd)
		for i, slot := range s.fwd {
			if !slot.Valid {
				continue
			}
			if err := s.update(slot.Value, phase, func(cell S) { s.r.Constrain(cell, src, i) }); err != nil {
				return err
			}
		}

		s.sp.Neighbors(c, s.inverse, s.back)
		if err := s.revise(s.fwd, phase); err != nil {
			return err
		}
		if err := s.revise(s.back, phase); err != nil {
			return err
		}
	}

	return nil
}

// revise re-applies Rule.Collapse to every valid coordinate in slots.
func (s *solver[C, D, S]) revise(slots []space.Slot[C], phase Phase) error {
	for _, slot := range slots {
		if !slot.Valid {
			continue
		}
		nb := s.neighborStates(slot.Value)
		if err := s.update(slot.Value, phase, func(cell S) { s.r.Collapse(cell, nb) }); err != nil {
			return err
		}
	}

	return nil
}

// update applies fn to the cell at c. Final cells are tested on a copy and
// left untouched; a non-final cell that lost candidates is queued.
func (s *solver[C, D, S]) update(c C, phase Phase, fn func(cell S)) error {
	cell := s.sp.At(c)
	before := state.Count(cell)
	if before == 1 {
		probe := cell.Clone()
		fn(probe)
		if state.Count(probe) == 0 {
			return &ContradictionError[C]{Coord: c, Phase: phase}
		}
		return nil
	}

	fn(cell)
	after := state.Count(cell)
	if after == 0 {
		return &ContradictionError[C]{Coord: c, Phase: phase}
	}
	if after < before {
		s.push(c)
	}

	return nil
}

// neighborStates resolves the states around c, indexed like the offsets.
// The returned slice is scratch space reused by the next call.
func (s *solver[C, D, S]) neighborStates(c C) []space.Slot[S] {
	s.sp.Neighbors(c, s.offsets, s.nbCoords)
	for i, slot := range s.nbCoords {
		if slot.Valid {
			s.nbStates[i] = space.Some(s.sp.At(slot.Value))
		} else {
			s.nbStates[i] = space.Slot[S]{}
		}
	}

	return s.nbStates
}

func (s *solver[C, D, S]) push(c C) {
	if s.queued[c] {
		return
	}
	s.queued[c] = true
	s.queue = append(s.queue, c)
}

// observeError turns observer failures on an exhausted cell into
// contradictions and wraps everything else with the coordinate.
func observeError[C comparable](c C, err error) error {
	if errors.Is(err, rule.ErrNoCandidates) || errors.Is(err, rule.ErrZeroWeight) {
		return &ContradictionError[C]{Coord: c, Phase: PhaseObserve, Err: err}
	}

	return fmt.Errorf("collapse: observe %v: %w", c, err)
}
