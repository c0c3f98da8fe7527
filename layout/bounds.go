package layout

import "math"

// Bounds accumulates extents around shared alignment point of children in one group.
// Below is negative side, Above is positive side, alignment point is at 0.
type Bounds struct {
	Below int
	Above int
}

func (b *Bounds) Reset() {
	b.Below = math.MaxInt32
	b.Above = math.MinInt32
}

func (b *Bounds) Include(below, above int) {
	b.Below = min(b.Below, below)
	b.Above = max(b.Above, above)
}

// IncludeChild folds child of measured size aligned by a.
func (b *Bounds) IncludeChild(a Alignment, size, baseline int) {
	v := protect(a.AlignmentValue(size, baseline))
	b.Include(-v, size-v)
}

// Size is minimum span length that fits every included child with its alignment satisfied.
// Empty bounds have size 0.
func (b Bounds) Size() int {
	if b.Below > b.Above {
		return 0
	}
	return b.Above - b.Below
}

// Offset of child leading edge from leading edge of group, given alignment value of child.
func (b Bounds) Offset(alignmentValue int) int {
	if b.Below > b.Above {
		return 0
	}
	return max(0, -b.Below-protect(alignmentValue))
}
