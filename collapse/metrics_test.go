package collapse

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kahuna/rule"
	"github.com/katalvlaran/kahuna/space"
	"github.com/katalvlaran/kahuna/state"
)

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m1, err := NewMetrics(reg)
	require.NoError(t, err)
	m2, err := NewMetrics(reg)
	require.NoError(t, err)

	m1.observations.Add(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m2.observations))
}

func TestMetrics_RecordsSolves(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	type set = *state.SetState[string]
	all := state.NewSet("A", "B")
	r := rule.NewBuilder[space.Offset](rule.Uniform[set]{}, all).
		Allow(state.NewFinal("A"), rule.Allow(space.Right, state.NewFinal("B"))).
		Allow(state.NewFinal("B"), rule.Allow(space.Right, state.NewFinal("A"))).
		Build()
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	g, err := space.NewCubeGrid(3, 1, 1, func(space.Coord) set { return all.Clone() })
	require.NoError(t, err)
	stats, err := Solve(context.Background(), g, r, WithMetrics(m), WithLogger(log))
	require.NoError(t, err)

	g, err = space.NewCubeGrid(2, 1, 1, func(space.Coord) set { return state.NewFinal("A") })
	require.NoError(t, err)
	_, err = Solve(context.Background(), g, r, WithMetrics(m), WithLogger(log))
	require.ErrorIs(t, err, ErrContradiction)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.solves.WithLabelValues(ResultSolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.solves.WithLabelValues(ResultContradiction)))
	assert.Equal(t, float64(stats.Observations), testutil.ToFloat64(m.observations))
	assert.Equal(t, 1, testutil.CollectAndCount(m.cells))
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, ResultSolved, resultLabel(nil))
	assert.Equal(t, ResultContradiction, resultLabel(&ContradictionError[int]{Coord: 1, Phase: PhaseObserve}))
	assert.Equal(t, ResultStepLimit, resultLabel(ErrStepLimit))
	assert.Equal(t, ResultError, resultLabel(context.Canceled))
}
