package layout

// ScalerLayout will scale existing layout by constant factor, such as display density.
type ScalerLayout struct {
	Scale float64
}

func (l ScalerLayout) scale(v int) int { return int(float64(v) * l.Scale) }

// UpdateBoxes scales positions and dimensions of boxes in place.
func (l ScalerLayout) UpdateBoxes(boxes map[CellID]Box) {
	for id, box := range boxes {
		boxes[id] = Box{
			Position: Position{
				X: l.scale(box.X),
				Y: l.scale(box.Y),
			},
			W: l.scale(box.W),
			H: l.scale(box.H),
		}
	}
}

// UpdateLines scales grid line locations in place.
func (l ScalerLayout) UpdateLines(lines []int) {
	for i, x := range lines {
		lines[i] = l.scale(x)
	}
}

// UpdateSize scales size of whole grid.
func (l ScalerLayout) UpdateSize(width, height int) (int, int) {
	return l.scale(width), l.scale(height)
}
