package layout

import "fmt"

// Group is characteristics of cell group along one axis: which lines it spans and how children are aligned in it.
// Groups are values, two children with equal span and alignment share bounds.
type Group struct {
	Span      Interval
	Alignment Alignment
}

// NewGroup makes group spanning size cells from start.
func NewGroup(start, size int, alignment Alignment) Group {
	return Group{Span: Interval{Min: start, Max: start + size}, Alignment: alignment}
}

func (g Group) String() string { return fmt.Sprintf("%v %v", g.Span, g.Alignment) }

// goneGroup is key for children that do not take part in layout.
var goneGroup = Group{Span: Interval{Min: Undefined, Max: Undefined}}
