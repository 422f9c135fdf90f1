package rule_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kahuna/rule"
	"github.com/katalvlaran/kahuna/space"
	"github.com/katalvlaran/kahuna/state"
)

type set = *state.SetState[string]

// setValues lets cmp look inside SetState, which has unexported fields.
var setValues = cmp.Transformer("values", func(s set) []string {
	if s == nil {
		return nil
	}
	return s.Values()
})

func newBuilder(values ...string) *rule.Builder[space.Offset, set] {
	return rule.NewBuilder[space.Offset](rule.Uniform[set]{}, state.NewSet(values...))
}

func one(v string) set { return state.NewFinal(v) }

// neighborsFor lays out per-offset neighbor states in r's offset order.
func neighborsFor(r *rule.Rule[space.Offset, set], by map[space.Offset]set) []space.Slot[set] {
	offsets := r.NeighborOffsets()
	out := make([]space.Slot[set], len(offsets))
	for i, d := range offsets {
		if s, ok := by[d]; ok {
			out[i] = space.Some(s)
		}
	}
	return out
}

//----------------------------------------------------------------------------//
// Builder
//----------------------------------------------------------------------------//

func TestBuilder_OffsetsFirstSeen(t *testing.T) {
	b := newBuilder("A", "B").
		Allow(one("A"), rule.Allow(space.Right, one("B")), rule.Allow(space.Left, one("B"))).
		Allow(one("B"), rule.Allow(space.Above, one("A")), rule.Allow(space.Right, one("A")))

	want := []space.Offset{space.Right, space.Left, space.Above}
	assert.Equal(t, want, b.Offsets())
	assert.Equal(t, want, b.Build().NeighborOffsets())
}

func TestBuilder_UnionsRepeatedDeclarations(t *testing.T) {
	r := newBuilder("A", "B", "C").
		Allow(one("A"), rule.Allow(space.Right, one("B"))).
		Allow(one("A"), rule.Allow(space.Right, one("C"))).
		Build()

	table := r.Table()
	require.Len(t, table, 3)
	assert.Equal(t, []string{"A"}, table[0].State.Values())
	require.True(t, table[0].Allowed[0].Valid)
	assert.Equal(t, []string{"B", "C"}, table[0].Allowed[0].Value.Values())
}

func TestBuilder_MultiStateSourceSplits(t *testing.T) {
	r := newBuilder("A", "B").
		Allow(state.NewSet("A", "B"), rule.Allow(space.Right, one("A"))).
		Build()

	table := r.Table()
	require.Len(t, table, 2)
	for i, want := range []string{"A", "B"} {
		assert.Equal(t, []string{want}, table[i].State.Values())
		assert.False(t, table[i].CatchAll)
		assert.Equal(t, []string{"A"}, table[i].Allowed[0].Value.Values())
	}
}

func TestBuilder_PadsAndAddsCatchAll(t *testing.T) {
	r := newBuilder("A", "B", "C", "void").
		Allow(one("A"), rule.Allow(space.Right, one("B"))).
		Allow(one("B"), rule.Allow(space.Left, one("A")), rule.Allow(space.Above, one("A"))).
		Build()

	table := r.Table()
	require.Len(t, table, 4)
	assert.Equal(t, 4, r.Len())

	// A was declared before Left/Above existed: padded with "none".
	require.Len(t, table[0].Allowed, 3)
	assert.True(t, table[0].Allowed[0].Valid)
	assert.False(t, table[0].Allowed[1].Valid)
	assert.False(t, table[0].Allowed[2].Valid)

	for _, e := range table[2:] {
		assert.True(t, e.CatchAll)
		require.Len(t, e.Allowed, 3)
		for _, a := range e.Allowed {
			assert.False(t, a.Valid)
		}
	}
	assert.Equal(t, []string{"C"}, table[2].State.Values())
	assert.Equal(t, []string{"void"}, table[3].State.Values())
}

func TestBuilder_EmptyNeighborRegistersOffset(t *testing.T) {
	r := newBuilder("A", "B").
		Allow(one("A"), rule.Allow(space.Right, state.NewSet[string]())).
		Build()

	assert.Equal(t, []space.Offset{space.Right}, r.NeighborOffsets())
	table := r.Table()
	require.Len(t, table, 2)
	assert.False(t, table[0].CatchAll)
	assert.False(t, table[0].Allowed[0].Valid)
	assert.True(t, table[1].CatchAll)
}

func TestBuilder_Deterministic(t *testing.T) {
	build := func() *rule.Rule[space.Offset, set] {
		return newBuilder("A", "B", "C").
			Allow(one("A"), rule.Allow(space.Right, state.NewSet("B", "C"))).
			Allow(one("C"), rule.Allow(space.Left, one("A")), rule.Allow(space.Right, one("C"))).
			Build()
	}
	r1, r2 := build(), build()

	assert.Equal(t, r1.NeighborOffsets(), r2.NeighborOffsets())
	if diff := cmp.Diff(r1.Table(), r2.Table(), setValues); diff != "" {
		t.Fatalf("tables differ (-first +second):\n%s", diff)
	}
}

func TestBuilder_DiscoveryOrderKeepsSemantics(t *testing.T) {
	r1 := newBuilder("A", "B").
		Allow(one("A"), rule.Allow(space.Right, one("B")), rule.Allow(space.Left, one("B"))).
		Allow(one("B"), rule.Allow(space.Right, one("A")), rule.Allow(space.Left, one("A"))).
		Build()
	r2 := newBuilder("A", "B").
		Allow(one("B"), rule.Allow(space.Left, one("A")), rule.Allow(space.Right, one("A"))).
		Allow(one("A"), rule.Allow(space.Left, one("B")), rule.Allow(space.Right, one("B"))).
		Build()
	require.NotEqual(t, r1.NeighborOffsets(), r2.NeighborOffsets())

	cases := []map[space.Offset]set{
		{space.Right: one("A")},
		{space.Left: one("B")},
		{space.Right: one("A"), space.Left: one("A")},
		{space.Right: state.NewSet("A", "B")},
		{},
	}
	for _, nb := range cases {
		c1, c2 := state.NewSet("A", "B"), state.NewSet("A", "B")
		r1.Collapse(c1, neighborsFor(r1, nb))
		r2.Collapse(c2, neighborsFor(r2, nb))
		assert.ElementsMatch(t, c1.Values(), c2.Values(), "neighbors %v", nb)
	}
}

func TestBuilder_ReuseAfterBuild(t *testing.T) {
	b := newBuilder("A", "B").Allow(one("A"), rule.Allow(space.Right, one("A")))
	r := b.Build()
	b.Allow(one("A"), rule.Allow(space.Right, one("B")), rule.Allow(space.Left, one("A")))

	assert.Equal(t, []space.Offset{space.Right}, r.NeighborOffsets())
	assert.Equal(t, []string{"A"}, r.Table()[0].Allowed[0].Value.Values())
}

func TestRule_TableIsACopy(t *testing.T) {
	r := newBuilder("A").Allow(one("A"), rule.Allow(space.Right, one("A"))).Build()
	table := r.Table()
	table[0].Allowed[0].Value.ClearStates(one("A"))
	table[0].State.SetStates(one("Z"))

	assert.Equal(t, []string{"A"}, r.Table()[0].Allowed[0].Value.Values())
	assert.Equal(t, []string{"A"}, r.Table()[0].State.Values())
}

//----------------------------------------------------------------------------//
// Collapse / Constrain
//----------------------------------------------------------------------------//

// cycle: A→B→C→A to the right.
func cycleRule() *rule.Rule[space.Offset, set] {
	return newBuilder("A", "B", "C").
		Allow(one("A"), rule.Allow(space.Right, one("B"))).
		Allow(one("B"), rule.Allow(space.Right, one("C"))).
		Allow(one("C"), rule.Allow(space.Right, one("A"))).
		Build()
}

func TestRule_CollapseRemovesEveryViolatingState(t *testing.T) {
	r := cycleRule()
	cell := state.NewSet("A", "B", "C")
	r.Collapse(cell, neighborsFor(r, map[space.Offset]set{space.Right: one("B")}))
	assert.Equal(t, []string{"A"}, cell.Values())
}

func TestRule_CollapseIgnoresMissingNeighbors(t *testing.T) {
	r := cycleRule()
	cell := state.NewSet("A", "B", "C")
	r.Collapse(cell, neighborsFor(r, nil))
	assert.Equal(t, []string{"A", "B", "C"}, cell.Values())
}

func TestRule_CollapseForbidsUndeclaredOffset(t *testing.T) {
	r := newBuilder("A", "B").
		Allow(one("A"), rule.Allow(space.Right, state.NewSet("A", "B"))).
		Allow(one("B"), rule.Allow(space.Right, state.NewSet("A", "B")), rule.Allow(space.Left, one("B"))).
		Build()

	cell := state.NewSet("A", "B")
	r.Collapse(cell, neighborsFor(r, map[space.Offset]set{space.Left: one("B")}))
	assert.Equal(t, []string{"B"}, cell.Values())
}

func TestRule_CollapseMonotoneAndIdempotent(t *testing.T) {
	r := cycleRule()
	neighbors := []map[space.Offset]set{
		{space.Right: state.NewSet("B", "C")},
		{space.Right: state.NewSet("A", "B", "C")},
		{space.Right: one("C")},
	}
	cell := state.NewSet("A", "B", "C")
	prev := cell.Count()
	for _, nb := range neighbors {
		r.Collapse(cell, neighborsFor(r, nb))
		assert.LessOrEqual(t, cell.Count(), prev)
		prev = cell.Count()
	}
	require.Equal(t, []string{"B"}, cell.Values())

	final := neighborsFor(r, map[space.Offset]set{space.Right: one("C")})
	for i := 0; i < 3; i++ {
		r.Collapse(cell, final)
		assert.Equal(t, []string{"B"}, cell.Values())
	}
}

func TestRule_Constrain(t *testing.T) {
	r := cycleRule()

	nb := state.NewSet("A", "B", "C")
	r.Constrain(nb, state.NewSet("A", "B"), 0)
	assert.Equal(t, []string{"B", "C"}, nb.Values())

	nb = state.NewSet("A", "B", "C")
	r.Constrain(nb, one("C"), 0)
	assert.Equal(t, []string{"A"}, nb.Values())
}

func TestRule_ConstrainWithoutAllowanceEmpties(t *testing.T) {
	r := newBuilder("A", "B").
		Allow(one("A"), rule.Allow(space.Right, state.NewSet[string]())).
		Build()

	nb := state.NewSet("A", "B")
	r.Constrain(nb, one("A"), 0)
	assert.Zero(t, nb.Count())
}

func TestRule_ObserveWithoutObserver(t *testing.T) {
	r := rule.NewBuilder[space.Offset, set](nil, state.NewSet("A", "B")).Build()
	err := r.Observe(state.NewSet("A", "B"), nil, rule.NewSource(1))
	assert.ErrorIs(t, err, rule.ErrNoObserver)
}

func BenchmarkRule_Collapse(b *testing.B) {
	r := cycleRule()
	nb := neighborsFor(r, map[space.Offset]set{space.Right: state.NewSet("B", "C")})
	for i := 0; i < b.N; i++ {
		cell := state.NewSet("A", "B", "C")
		r.Collapse(cell, nb)
	}
}
