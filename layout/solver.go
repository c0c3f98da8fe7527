package layout

import "math"

// minValue is starting location of lines not yet reached, far from overflow when arc values are added
const minValue = -1000000

// include adds arc for span unless span is empty or, when asked, span already has an arc.
// Existing arc wins so that measured sizes are not replaced by padding added later.
func include(arcs []Arc, span Interval, link int, ignoreIfAlreadyPresent bool) []Arc {
	if !span.IsDefined() || span.Size() == 0 {
		return arcs
	}
	if ignoreIfAlreadyPresent {
		for _, arc := range arcs {
			if arc.Span == span {
				return arcs
			}
		}
	}
	return append(arcs, Arc{Span: span, link: link})
}

// findUsed marks cells covered by arcs.
func findUsed(arcs []Arc, count int) []bool {
	used := make([]bool, count)
	for _, arc := range arcs {
		lo, hi := min(arc.Span.Min, arc.Span.Max), max(arc.Span.Min, arc.Span.Max)
		for i := lo; i < hi; i++ {
			used[i] = true
		}
	}
	return used
}

// spacers are gaps between trailing edge of one child and leading edge of the next one.
// Edges of axis itself act as edges of opposite kind.
func (a *Axis) spacers() []Interval {
	numVertices := a.Count() + 1
	leadingEdges := make([]int, numVertices)
	trailingEdges := make([]int, numVertices)
	for _, s := range a.children {
		if !s.active() {
			continue
		}
		leadingEdges[s.Group.Span.Min]++
		trailingEdges[s.Group.Span.Max]++
	}

	trailingEdges[0] = 1
	leadingEdges[numVertices-1] = 1

	var result []Interval
	lastTrailingEdge := 0
	for i := 0; i < numVertices; i++ {
		if trailingEdges[i] > 0 {
			// leading edge here too would make a zero length spacer
			lastTrailingEdge = i
			continue
		}
		if leadingEdges[i] > 0 {
			result = append(result, Interval{Min: lastTrailingEdge, Max: i})
		}
	}
	return result
}

func (a *Axis) createArcs() []Arc {
	count := a.Count()
	var mins, backs []Arc

	// measured sizes of spans
	for slot, span := range a.getLinks().Keys() {
		mins = include(mins, span, slot+1, false)
	}

	// glue unused cells to their neighbours so every line is connected
	used := findUsed(mins, count)
	for i := 0; i < count; i++ {
		if !used[i] {
			span := Interval{Min: i, Max: i + 1}
			mins = include(mins, span, 0, true)
			backs = include(backs, span.Inverse(), 0, true)
		}
	}

	// keep cells from getting negative size
	if a.orderPreserved {
		for i := 0; i < count; i++ {
			if used[i] {
				mins = include(mins, Interval{Min: i, Max: i + 1}, 0, true)
			}
		}
	} else {
		for _, gap := range a.spacers() {
			mins = include(mins, gap, 0, true)
		}
	}

	arcs := topologicalSort(mins, count+1)
	return append(arcs, topologicalSort(backs, count+1)...)
}

func (a *Axis) computeArcs() {
	links := a.getLinks().Values()
	for i := range a.arcs {
		if l := a.arcs[i].link; l > 0 {
			a.arcs[i].Value = links[l-1]
		}
	}
}

func relax(locations []int, arc Arc) bool {
	u, v := arc.Span.Min, arc.Span.Max
	if locations[u] == minValue {
		return false
	}
	if candidate := locations[u] + arc.Value; candidate > locations[v] {
		locations[v] = candidate
		return true
	}
	return false
}

// solve is Bellman-Ford over arcs in topological order.
//
// Constraints x[j] - x[i] >= a[k] make longest paths problem from line 0.
// Bellman-Ford relaxes every arc once per pass and needs as many passes as there are vertices.
// Since arcs are sorted, typical grids settle after the first pass and the second one confirms it.
// Returns number of passes made and whether locations reached fixed point.
func solve(arcs []Arc, locations []int) (int, bool) {
	for i := range locations {
		locations[i] = minValue
	}
	if len(locations) == 0 {
		return 0, true
	}
	locations[0] = 0

	n := len(locations)
	for pass := 1; pass <= n; pass++ {
		changed := false
		for _, arc := range arcs {
			changed = relax(locations, arc) || changed
		}
		if !changed {
			return pass, true
		}
	}
	return n, false
}

// fillUnreachable gives lines no arc reaches location of the line before them.
func fillUnreachable(locations []int) {
	for i := 1; i < len(locations); i++ {
		if locations[i] == minValue {
			locations[i] = locations[i-1]
		}
	}
}

// addMargins widens gaps between lines by margins on both sides of each cell.
func addMargins(locations, leadingMargins, trailingMargins []int) {
	delta := 0
	for i := 0; i+1 < len(locations); i++ {
		delta += leadingMargins[i] + trailingMargins[i+1]
		locations[i+1] += delta
	}
}

// distribute spreads delta over cells proportionally to weights, slack of cell shifts every line after it.
// Each cell takes its share of what is still left, so shares add up to delta exactly.
// Without weights the last cell takes everything.
func distribute(locations []int, weights []float64, delta int) {
	if delta <= 0 || len(weights) == 0 {
		return
	}

	last := -1
	totalWeight := 0.0
	for i, w := range weights {
		if w > 0 {
			last = i
			totalWeight += w
		}
	}
	if last < 0 {
		locations[len(weights)] += delta
		return
	}

	remaining, remainingWeight, offset := delta, totalWeight, 0
	for i, w := range weights {
		if w > 0 {
			share := remaining
			if i != last {
				share = int(math.Floor(float64(remaining) * w / remainingWeight))
				share = min(max(share, 0), remaining)
			}
			offset += share
			remaining -= share
			remainingWeight -= w
		}
		locations[i+1] += offset
	}
}

func (a *Axis) computeMinima(locations []int) error {
	arcs := a.getArcs()
	passes, ok := solve(arcs, locations)
	fillUnreachable(locations)
	if a.alignmentMode == AlignBounds {
		leading, trailing := a.getMargins()
		addMargins(locations, leading, trailing)
	}

	if ok {
		a.logger.Debug("grid constraints solved", "axis", axisName(a.Horizontal), "passes", passes, "lines", len(locations))
		return nil
	}

	g := ConstraintGraph{Lines: len(locations), Arcs: arcs}
	err := &ConvergenceError{Horizontal: a.Horizontal, Passes: passes, Cycles: g.Cycles()}
	a.logger.Warn("grid constraints contained a contradiction", "axis", axisName(a.Horizontal), "arcs", g.String(), "cycles", err.Cycles)
	return err
}
