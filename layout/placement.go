package layout

import "math"

func spanSize(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

// assignSpans installs indices for cells that do not define them.
// Cells flow along orientation and wrap when next one would not fit into explicit count of that axis.
// Explicit position moves cursor to it.
func (g *Grid) assignSpans() (rows, columns []Interval) {
	rows = make([]Interval, len(g.cells))
	columns = make([]Interval, len(g.cells))

	horizontal := g.Orientation == Horizontal
	count := g.Vertical.ExplicitCount()
	if horizontal {
		count = g.Horizontal.ExplicitCount()
	}
	if count == Undefined {
		count = math.MaxInt32
	}

	row, col, maxSize := 0, 0, 0
	valueIfDefined := func(value, defaultValue int) int {
		if value != Undefined {
			return value
		}
		return defaultValue
	}
	// explicit position on minor axis starts new line of cells
	valueIfDefinedMinor := func(value, defaultValue int) int {
		if value != Undefined {
			maxSize = 0
			return value
		}
		return defaultValue
	}

	for i, c := range g.cells {
		rowSpan, colSpan := spanSize(c.RowSpan), spanSize(c.ColumnSpan)
		if c.removed || c.Gone {
			r, k := valueIfDefined(c.Row, 0), valueIfDefined(c.Column, 0)
			rows[i] = Interval{Min: r, Max: r + rowSpan}
			columns[i] = Interval{Min: k, Max: k + colSpan}
			continue
		}

		if horizontal {
			row = valueIfDefinedMinor(c.Row, row)
			newCol := col
			if col+colSpan > count {
				newCol = 0
			}
			newCol = valueIfDefined(c.Column, newCol)
			if newCol < col {
				row += maxSize
				maxSize = 0
			}
			col = newCol
			maxSize = max(maxSize, rowSpan)
		} else {
			col = valueIfDefinedMinor(c.Column, col)
			newRow := row
			if row+rowSpan > count {
				newRow = 0
			}
			newRow = valueIfDefined(c.Row, newRow)
			if newRow < row {
				col += maxSize
				maxSize = 0
			}
			row = newRow
			maxSize = max(maxSize, colSpan)
		}

		rows[i] = Interval{Min: row, Max: row + rowSpan}
		columns[i] = Interval{Min: col, Max: col + colSpan}

		if horizontal {
			col += colSpan
		} else {
			row += rowSpan
		}
	}
	return rows, columns
}

// place resolves spans of all cells and pushes them to both axes.
func (g *Grid) place() error {
	rows, columns := g.assignSpans()
	for i := range g.cells {
		s := &g.cells[i]
		if s.removed {
			continue
		}
		id := CellID(i)

		h := Child{
			Group:          Group{Span: columns[i], Alignment: s.ColumnAlignment},
			Weight:         s.ColumnWeight,
			LeadingMargin:  s.Margins.Left,
			TrailingMargin: s.Margins.Right,
			Measure: func() Measurement {
				return Measurement{Size: g.cells[id].Width, Baseline: Undefined}
			},
		}
		v := Child{
			Group:          Group{Span: rows[i], Alignment: s.RowAlignment},
			Weight:         s.RowWeight,
			LeadingMargin:  s.Margins.Top,
			TrailingMargin: s.Margins.Bottom,
			Measure: func() Measurement {
				return Measurement{Size: g.cells[id].Height, Baseline: g.cells[id].Baseline}
			},
		}

		if err := syncChild(g.Horizontal, id, h, s.Gone); err != nil {
			return err
		}
		if err := syncChild(g.Vertical, id, v, s.Gone); err != nil {
			return err
		}
	}
	return nil
}

// syncChild adds child with given handle or updates it when declaration differs.
func syncChild(a *Axis, id CellID, c Child, gone bool) error {
	if int(id) == len(a.children) {
		if _, err := a.Add(c); err != nil {
			return err
		}
		return a.SetGone(id, gone)
	}

	old, err := a.Child(id)
	if err != nil {
		return err
	}
	if old.Group != c.Group || old.Weight != c.Weight || old.LeadingMargin != c.LeadingMargin || old.TrailingMargin != c.TrailingMargin {
		if err := a.Update(id, c); err != nil {
			return err
		}
	}
	return a.SetGone(id, gone)
}
