// SPDX-License-Identifier: MIT
// Package: kahuna/collapse
//
// metrics.go: Prometheus collectors for solve runs.

package collapse

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values for kahuna_solves_total.
const (
	ResultSolved        = "solved"
	ResultContradiction = "contradiction"
	ResultStepLimit     = "step_limit"
	ResultError         = "error"
)

// Metrics groups the collectors updated by Solve. One Metrics may be shared
// by concurrent solves.
type Metrics struct {
	solves       *prometheus.CounterVec
	observations prometheus.Counter
	propagations prometheus.Counter
	cells        prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg
// (prometheus.DefaultRegisterer when nil). Collectors that are already
// registered are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kahuna",
			Name:      "solves_total",
			Help:      "Completed solve calls by result.",
		}, []string{"result"}),
		observations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kahuna",
			Name:      "observations_total",
			Help:      "Cells committed by an observer.",
		}),
		propagations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kahuna",
			Name:      "propagation_steps_total",
			Help:      "Cells taken off the propagation worklist.",
		}),
		cells: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kahuna",
			Name:      "solve_cells",
			Help:      "Number of cells per solved space.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	var err error
	if m.solves, err = register(reg, m.solves); err != nil {
		return nil, err
	}
	if m.observations, err = register(reg, m.observations); err != nil {
		return nil, err
	}
	if m.propagations, err = register(reg, m.propagations); err != nil {
		return nil, err
	}
	if m.cells, err = register(reg, m.cells); err != nil {
		return nil, err
	}

	return m, nil
}

// register adds c to reg, returning the collector already registered under
// the same descriptor when there is one.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return c, fmt.Errorf("collapse: register metrics: %w", err)
		}
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing, nil
		}
		return c, fmt.Errorf("collapse: register metrics: %w", err)
	}

	return c, nil
}

func (m *Metrics) record(stats Stats, cells int, err error) {
	if m == nil {
		return
	}
	m.observations.Add(float64(stats.Observations))
	m.propagations.Add(float64(stats.Propagations))
	m.solves.WithLabelValues(resultLabel(err)).Inc()
	if err == nil {
		m.cells.Observe(float64(cells))
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return ResultSolved
	case errors.Is(err, ErrContradiction):
		return ResultContradiction
	case errors.Is(err, ErrStepLimit):
		return ResultStepLimit
	default:
		return ResultError
	}
}
