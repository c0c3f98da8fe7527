package layout

import (
	"fmt"
	"strings"
)

// Alignment tells where child is placed within its cell group and what size it gets.
// Children sharing a group are positioned so that their alignment values coincide.
type Alignment uint8

const (
	Leading Alignment = iota
	Trailing
	Center
	Baseline
	Fill
)

// Names of alignments along a particular axis.
const (
	Top    = Leading
	Left   = Leading
	Bottom = Trailing
	Right  = Trailing
)

var alignmentNames = [...]string{
	Leading:  "leading",
	Trailing: "trailing",
	Center:   "center",
	Baseline: "baseline",
	Fill:     "fill",
}

func (a Alignment) String() string {
	if int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return fmt.Sprintf("Alignment(%d)", uint8(a))
}

// AlignmentValue is distance from leading edge of child of given size to its alignment point.
// Baseline is intrinsic baseline of child or Undefined.
// Returns Undefined for Fill, and for Baseline when child has no baseline.
func (a Alignment) AlignmentValue(size, baseline int) int {
	switch a {
	case Leading:
		return 0
	case Trailing:
		return size
	case Center:
		return size >> 1
	case Baseline:
		if baseline < 0 {
			return Undefined
		}
		return baseline
	case Fill:
		return Undefined
	default:
		panic(fmt.Sprintf("unknown alignment %d", uint8(a)))
	}
}

// SizeInCell is final size of child placed in cell of cellSize.
func (a Alignment) SizeInCell(size, cellSize int) int {
	if a == Fill {
		return cellSize
	}
	return size
}

// ParseAlignment accepts alignment names, including axis specific aliases.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leading", "start", "top", "left", "":
		return Leading, nil
	case "trailing", "end", "bottom", "right":
		return Trailing, nil
	case "center", "centre":
		return Center, nil
	case "baseline":
		return Baseline, nil
	case "fill":
		return Fill, nil
	}
	return Leading, fmt.Errorf("unknown alignment %q", s)
}

// protect turns Undefined alignment values into 0, such children contribute nothing.
func protect(v int) int {
	if v == Undefined {
		return 0
	}
	return v
}
