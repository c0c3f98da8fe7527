package layout

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ConstraintGraph is grid lines as vertices and arcs as weighted edges.
// Parallel arcs collapse to the strongest one.
type ConstraintGraph struct {
	Lines int
	Arcs  []Arc
}

func (g ConstraintGraph) Validate() error {
	for _, arc := range g.Arcs {
		if arc.Span.Min < 0 || arc.Span.Min >= g.Lines || arc.Span.Max < 0 || arc.Span.Max >= g.Lines {
			return fmt.Errorf("arc(%v) is outside of lines [0, %d)", arc, g.Lines)
		}
	}
	return nil
}

func (g ConstraintGraph) String() string {
	arcs := make([]string, 0, len(g.Arcs))
	for _, arc := range g.Arcs {
		arcs = append(arcs, arc.String())
	}
	return fmt.Sprintf("lines: %d arcs: %s", g.Lines, strings.Join(arcs, ", "))
}

// weighted has edge weights negated, so shortest paths are longest paths of constraints.
func (g ConstraintGraph) weighted() *simple.WeightedDirectedGraph {
	wg := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for i := 0; i < g.Lines; i++ {
		wg.AddNode(simple.Node(i))
	}
	for _, arc := range g.Arcs {
		u, v := int64(arc.Span.Min), int64(arc.Span.Max)
		if u == v {
			continue
		}
		w := -float64(arc.Value)
		if e := wg.WeightedEdge(u, v); e != nil && e.Weight() <= w {
			continue
		}
		wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(u), simple.Node(v), w))
	}
	return wg
}

// Cycles are groups of lines that constrain each other in a loop containing a positive arc.
// Loops of zero arcs only glue lines together and are not reported.
func (g ConstraintGraph) Cycles() [][]int {
	var cycles [][]int
	for _, component := range topo.TarjanSCC(g.weighted()) {
		if len(component) < 2 {
			continue
		}
		lines := make([]int, len(component))
		for i, n := range component {
			lines[i] = int(n.ID())
		}
		slices.Sort(lines)
		if g.hasPositiveArcWithin(lines) {
			cycles = append(cycles, lines)
		}
	}
	slices.SortFunc(cycles, func(a, b []int) int { return a[0] - b[0] })
	return cycles
}

func (g ConstraintGraph) hasPositiveArcWithin(lines []int) bool {
	for _, arc := range g.Arcs {
		if arc.Value <= 0 {
			continue
		}
		_, hasMin := slices.BinarySearch(lines, arc.Span.Min)
		_, hasMax := slices.BinarySearch(lines, arc.Span.Max)
		if hasMin && hasMax {
			return true
		}
	}
	return false
}

// LongestPaths solves constraints from line 0 with general Bellman-Ford.
// Unreachable lines are Undefined. Returns false when constraints contain positive cycle.
func (g ConstraintGraph) LongestPaths() ([]int, bool) {
	if g.Lines == 0 {
		return nil, true
	}
	shortest, ok := path.BellmanFordFrom(simple.Node(0), g.weighted())
	if !ok {
		return nil, false
	}
	locations := make([]int, g.Lines)
	for i := range locations {
		w := shortest.WeightTo(int64(i))
		if math.IsInf(w, 1) {
			locations[i] = Undefined
			continue
		}
		locations[i] = -int(w)
	}
	return locations, true
}
