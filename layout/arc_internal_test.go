package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arcsOf(spans ...Interval) []Arc {
	arcs := make([]Arc, len(spans))
	for i, s := range spans {
		arcs[i] = Arc{Span: s, Value: s.Size()}
	}
	return arcs
}

func TestTopologicalSort_ArcsIntoVertexPrecedeArcsOutOfIt(t *testing.T) {
	t.Parallel()

	arcs := arcsOf(
		Interval{Min: 2, Max: 4},
		Interval{Min: 0, Max: 2},
		Interval{Min: 1, Max: 2},
		Interval{Min: 0, Max: 1},
		Interval{Min: 3, Max: 4},
		Interval{Min: 2, Max: 3},
	)

	sorted := topologicalSort(arcs, 5)
	require.Len(t, sorted, len(arcs))

	position := map[Interval]int{}
	for i, arc := range sorted {
		assert.False(t, arc.CompletesCycle)
		position[arc.Span] = i
	}
	for _, in := range sorted {
		for _, out := range sorted {
			if in.Span.Max == out.Span.Min {
				assert.Less(t, position[in.Span], position[out.Span], "%v before %v", in, out)
			}
		}
	}
}

func TestTopologicalSort_FlagsBackEdge(t *testing.T) {
	t.Parallel()

	arcs := arcsOf(Interval{Min: 0, Max: 1}, Interval{Min: 1, Max: 0})

	sorted := topologicalSort(arcs, 2)

	require.Len(t, sorted, 2)
	assert.Equal(t, Interval{Min: 0, Max: 1}, sorted[0].Span)
	assert.False(t, sorted[0].CompletesCycle)
	assert.Equal(t, Interval{Min: 1, Max: 0}, sorted[1].Span)
	assert.True(t, sorted[1].CompletesCycle)
	assert.Equal(t, "[1, 0] +> -1", sorted[1].String())
}

func TestTopologicalSort_LongChainDoesNotRecurse(t *testing.T) {
	t.Parallel()

	const n = 100000
	spans := make([]Interval, n)
	for i := range spans {
		// reversed so that walk from every root but the first finds completed vertices
		spans[i] = Interval{Min: n - 1 - i, Max: n - i}
	}

	sorted := topologicalSort(arcsOf(spans...), n+1)
	require.Len(t, sorted, n)
	for i, arc := range sorted {
		assert.Equal(t, i, arc.Span.Min)
	}
}

func TestSolve_SingleValidationPassForSortedArcs(t *testing.T) {
	t.Parallel()

	arcs := topologicalSort(arcsOf(Interval{Min: 1, Max: 3}, Interval{Min: 0, Max: 1}), 4)
	locations := make([]int, 4)

	passes, ok := solve(arcs, locations)

	assert.True(t, ok)
	assert.Equal(t, 2, passes)
	assert.Equal(t, []int{0, 1, minValue, 3}, locations)

	fillUnreachable(locations)
	assert.Equal(t, []int{0, 1, 1, 3}, locations)
}

func TestSolve_PositiveCycleDoesNotConverge(t *testing.T) {
	t.Parallel()

	arcs := []Arc{
		{Span: Interval{Min: 0, Max: 1}, Value: 10},
		{Span: Interval{Min: 1, Max: 2}, Value: 10},
		{Span: Interval{Min: 2, Max: 1}, Value: 1},
	}
	locations := make([]int, 3)

	passes, ok := solve(arcs, locations)

	assert.False(t, ok)
	assert.Equal(t, 3, passes)
}

func TestDistribute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		weights []float64
		delta   int
		want    []int
	}{
		{name: "no slack", weights: []float64{1, 1}, delta: 0, want: []int{0, 0, 0}},
		{name: "no weights", weights: []float64{0, 0, 0}, delta: 7, want: []int{0, 0, 0, 7}},
		{name: "single weight", weights: []float64{0, 2, 0}, delta: 7, want: []int{0, 0, 7, 7}},
		{name: "proportional", weights: []float64{1, 0, 3}, delta: 10, want: []int{0, 2, 2, 10}},
		{name: "thirds", weights: []float64{1, 1, 1}, delta: 10, want: []int{0, 3, 6, 10}},
		{name: "fractional", weights: []float64{0.1, 0.2, 0.3, 0.4}, delta: 1000003, want: []int{0, 100000, 300000, 600001, 1000003}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			locations := make([]int, len(tt.weights)+1)
			distribute(locations, tt.weights, tt.delta)
			assert.Equal(t, tt.want, locations)
		})
	}
}

func TestAddMargins(t *testing.T) {
	t.Parallel()

	locations := []int{0, 10, 30}
	addMargins(locations, []int{1, 2, 0}, []int{0, 3, 4})

	// gap 0-1 grows by 1+3, gap 1-2 by 2+4
	assert.Equal(t, []int{0, 14, 40}, locations)
}

func TestAxis_ContradictionIsReportedAndLocationsKept(t *testing.T) {
	t.Parallel()

	a := NewAxis(true)
	_, err := a.Add(Child{Group: NewGroup(0, 1, Leading), Measure: func() Measurement { return Measurement{Size: 10} }})
	require.NoError(t, err)
	_, err = a.Add(Child{Group: NewGroup(1, 2, Leading), Measure: func() Measurement { return Measurement{Size: 20} }})
	require.NoError(t, err)

	a.getArcs()
	a.arcs = append(a.arcs, Arc{Span: Interval{Min: 3, Max: 1}, Value: 5})

	err = a.Layout(0)

	var convergence *ConvergenceError
	require.ErrorAs(t, err, &convergence)
	assert.ErrorIs(t, err, ErrNotConverged)
	assert.True(t, convergence.Horizontal)
	assert.Equal(t, [][]int{{1, 3}}, convergence.Cycles)
	assert.Len(t, a.Locations(), 4)
	assert.Equal(t, 0, a.Location(0))
	// line 2 is not reachable and follows line 1
	assert.Equal(t, a.Location(1), a.Location(2))
}

func TestAxis_ComputeArcsKeepsFixedArcValues(t *testing.T) {
	t.Parallel()

	a := NewAxis(true)
	_, err := a.Add(Child{Group: NewGroup(0, 1, Leading), Measure: func() Measurement { return Measurement{Size: 50} }})
	require.NoError(t, err)

	a.getArcs()
	a.arcs = append(a.arcs, Arc{Span: Interval{Min: 0, Max: 1}, Value: 7})
	a.InvalidateValues()
	a.getArcs()

	assert.Equal(t, 50, a.arcs[0].Value)
	assert.Equal(t, 7, a.arcs[len(a.arcs)-1].Value)
}
