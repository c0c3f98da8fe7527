package layout

import "fmt"

// Arc is difference constraint: location[Span.Max] - location[Span.Min] >= Value.
type Arc struct {
	Span  Interval
	Value int

	// CompletesCycle is set by topological sort when arc leads back to vertex still being visited.
	CompletesCycle bool

	// link is 1 + slot of measured span size this arc takes its value from, 0 for fixed arcs.
	link int
}

func (a Arc) String() string {
	if a.CompletesCycle {
		return fmt.Sprintf("%v +> %d", a.Span, a.Value)
	}
	return fmt.Sprintf("%v -> %d", a.Span, a.Value)
}

// vertex visiting state during topological sort
const (
	unvisited = iota
	pending
	complete
)

// groupArcsByFirstVertex returns indices of arcs for each origin vertex.
// Linear in number of arcs.
func groupArcsByFirstVertex(arcs []Arc, numVertices int) [][]int {
	sizes := make([]int, numVertices)
	for _, arc := range arcs {
		sizes[arc.Span.Min]++
	}
	result := make([][]int, numVertices)
	for v, n := range sizes {
		result[v] = make([]int, 0, n)
	}
	for i, arc := range arcs {
		result[arc.Span.Min] = append(result[arc.Span.Min], i)
	}
	return result
}

// topologicalSort orders arcs in reverse post-order of depth first walk starting from each vertex in turn.
// Arcs closing a cycle are flagged and kept.
func topologicalSort(arcs []Arc, numVertices int) []Arc {
	type frame struct {
		vertex int
		next   int // next arc of vertex to follow
		via    int // arc that led to vertex, -1 for roots
	}

	result := make([]Arc, len(arcs))
	cursor := len(result) - 1
	byVertex := groupArcsByFirstVertex(arcs, numVertices)
	visited := make([]int, numVertices)

	emit := func(i int) {
		result[cursor] = arcs[i]
		cursor--
	}

	var stack []frame
	for root := range byVertex {
		if visited[root] != unvisited {
			continue
		}
		visited[root] = pending
		stack = append(stack[:0], frame{vertex: root, via: -1})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(byVertex[top.vertex]) {
				visited[top.vertex] = complete
				if top.via >= 0 {
					emit(top.via)
				}
				stack = stack[:len(stack)-1]
				continue
			}

			i := byVertex[top.vertex][top.next]
			top.next++

			switch to := arcs[i].Span.Max; visited[to] {
			case unvisited:
				visited[to] = pending
				stack = append(stack, frame{vertex: to, via: i})
			case pending:
				arcs[i].CompletesCycle = true
				emit(i)
			case complete:
				emit(i)
			}
		}
	}
	return result
}
