// Package collapse drives wave function collapse over any space.Space using a
// compiled rule.Rule.
//
// What:
//
//   - Solve narrows every cell of a space to a single state, or reports the
//     first cell that became a contradiction.
//
// Algorithm:
//
//  1. Initial sweep: every cell is propagated once against its neighbors
//     until nothing changes. Cells that start narrowed (pre-forced by the
//     space initializer) constrain their surroundings here.
//  2. Selection: the non-final cell with the fewest candidates is observed.
//     Ties go to the cell that comes first in Space.Coordinates order.
//  3. Propagation: a worklist of changed cells. For a changed cell c and
//     each offset d, the neighbor at c+d is narrowed to what c still
//     permits there (Rule.Constrain), then every cell at c+d and c-d is
//     re-checked with Rule.Collapse. Cells whose candidate count drops are
//     queued. A final cell is never rewritten; an update that would empty
//     it is a contradiction at that cell.
//  4. Repeat 2-3 until every cell is final.
//
// Determinism:
//
//	The same space, rule and seed always yield the same result. The default
//	source is rule.NewSource(1).
//
// Concurrency:
//
//	A Rule may be shared by any number of concurrent Solve calls. Each call
//	must own its space and its Source.
//
// Errors:
//
//   - *ContradictionError, matching ErrContradiction, when a cell has no
//     candidates left. It carries the coordinate and the phase.
//   - ErrStepLimit when WithMaxSteps is exhausted before completion.
//   - ctx.Err() when the context is cancelled between observations.
//   - Observer configuration errors (e.g. rule.ErrMissingWeight), wrapped
//     with the coordinate.
//
// Observability:
//
//	Solve logs through log/slog, records Prometheus counters when
//	WithMetrics is set, and opens one OpenTelemetry span per call.
package collapse
