// SPDX-License-Identifier: MIT
// Package: kahuna/collapse
//
// options.go: functional options for Solve.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors panic on meaningless inputs; Solve never panics
//     on configuration.
//   • Determinism is explicit: WithSeed or WithSource. Without either, the
//     source is rule.NewSource(1).

package collapse

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/kahuna/rule"
)

// tracerName is the instrumentation scope of the default tracer.
const tracerName = "kahuna.collapse"

// Option customizes a single Solve call.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	src      rule.Source
	maxSteps int
	metrics  *Metrics
	tracer   trace.Tracer
}

func newConfig(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.src == nil {
		cfg.src = rule.NewSource(0)
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer(tracerName)
	}

	return cfg
}

// WithLogger routes solve logs to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("collapse: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}

// WithSource sets the random source handed to the observer. The source is
// used by this solve only and must not be shared with a concurrent one.
// Panics on nil.
func WithSource(src rule.Source) Option {
	if src == nil {
		panic("collapse: WithSource(nil)")
	}
	return func(c *config) {
		c.src = src
	}
}

// WithSeed is WithSource(rule.NewSource(seed)).
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.src = rule.NewSource(seed)
	}
}

// WithMaxSteps bounds the number of observations. 0 means unlimited.
// Panics on n < 0.
func WithMaxSteps(n int) Option {
	if n < 0 {
		panic("collapse: WithMaxSteps(n<0)")
	}
	return func(c *config) {
		c.maxSteps = n
	}
}

// WithMetrics records solve counters into m. Panics on nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("collapse: WithMetrics(nil)")
	}
	return func(c *config) {
		c.metrics = m
	}
}

// WithTracer replaces the global OpenTelemetry tracer. Panics on nil.
func WithTracer(t trace.Tracer) Option {
	if t == nil {
		panic("collapse: WithTracer(nil)")
	}
	return func(c *config) {
		c.tracer = t
	}
}
