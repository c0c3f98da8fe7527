package layout

import "errors"

// Layout breaks down grid layout in phases:
// both axes distribute target size over their lines, then every child is aligned and sized within its cell group.
// Boxes are computed even when constraints contradict each other, in which case error tells which axis failed.
func (g *Grid) Layout(width, height int) error {
	err := errors.Join(g.Horizontal.Layout(width), g.Vertical.Layout(height))

	for i := range g.cells {
		s := &g.cells[i]
		if s.removed || s.Gone {
			s.box = Box{}
			continue
		}
		id := CellID(i)

		x, w := placeInCell(g.Horizontal, id, s.ColumnAlignment, s.Width, Undefined, s.Margins.Left, s.Margins.Right)
		y, h := placeInCell(g.Vertical, id, s.RowAlignment, s.Height, s.Baseline, s.Margins.Top, s.Margins.Bottom)

		s.box = Box{Position: Position{X: x, Y: y}, W: w, H: h}
	}
	return err
}

// placeInCell is location and size of child along axis.
func placeInCell(a *Axis, id CellID, alignment Alignment, size, baseline, leadingMargin, trailingMargin int) (location, finalSize int) {
	c, _ := a.Child(id)
	span := c.Group.Span
	bounds, _ := a.GroupBounds(id)

	start := a.LocationIncludingMargin(true, span.Min)
	end := a.LocationIncludingMargin(false, span.Max)
	cellSize := end - start

	// location of alignment group relative to its cell group
	cellToAlignment := protect(alignment.AlignmentValue(cellSize-bounds.Size(), Undefined))

	var offset int
	if a.AlignmentMode() == AlignMargins {
		if baseline >= 0 {
			baseline += leadingMargin
		}
		outer := leadingMargin + size + trailingMargin
		offset = cellToAlignment + bounds.Offset(alignment.AlignmentValue(outer, baseline)) + leadingMargin
		cellSize -= leadingMargin + trailingMargin
	} else {
		offset = cellToAlignment + bounds.Offset(alignment.AlignmentValue(size, baseline))
	}

	return start + offset, alignment.SizeInCell(size, cellSize)
}
