package layout

import (
	"fmt"
	"log/slog"
	"math"
)

type Position struct {
	X int
	Y int
}

// Box is where child of cell is placed and its dimensions
type Box struct {
	Position
	W int
	H int
}

func (b Box) CenterXY() Position {
	x := b.X + b.W/2
	y := b.Y + b.H/2
	return Position{x, y}
}

// Insets are margins around child.
type Insets struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Orientation is direction in which cells without explicit position are placed.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// CellID is handle of cell in grid, same handle is used for cell child on both axes.
type CellID = ChildID

// Cell declares child of grid: where it goes, how it is aligned and how big it is.
// Row and Column are Undefined for cells placed automatically.
type Cell struct {
	Row        int
	Column     int
	RowSpan    int // 0 means 1
	ColumnSpan int // 0 means 1

	RowAlignment    Alignment
	ColumnAlignment Alignment

	RowWeight    float64
	ColumnWeight float64

	Margins Insets

	// measured size of child
	Width    int
	Height   int
	Baseline int // Undefined when child has no baseline

	Gone bool
}

// NewCell is automatically placed cell of single row and column,
// aligned to the left and to the baseline of its row.
func NewCell(width, height int) Cell {
	return Cell{
		Row:             Undefined,
		Column:          Undefined,
		RowSpan:         1,
		ColumnSpan:      1,
		RowAlignment:    Baseline,
		ColumnAlignment: Left,
		Width:           width,
		Height:          height,
		Baseline:        Undefined,
	}
}

func (c Cell) Validate() error {
	if c.Row < 0 && c.Row != Undefined {
		return fmt.Errorf("%w: row %d", ErrInvalidSpan, c.Row)
	}
	if c.Column < 0 && c.Column != Undefined {
		return fmt.Errorf("%w: column %d", ErrInvalidSpan, c.Column)
	}
	if c.RowSpan < 0 || c.ColumnSpan < 0 {
		return fmt.Errorf("%w: negative span %dx%d", ErrInvalidSpan, c.RowSpan, c.ColumnSpan)
	}
	// line indices stay within int32 like Undefined
	if c.RowSpan > math.MaxInt32 || (c.Row != Undefined && c.Row > math.MaxInt32-spanSize(c.RowSpan)) {
		return fmt.Errorf("%w: row %d span %d is past last line", ErrInvalidSpan, c.Row, c.RowSpan)
	}
	if c.ColumnSpan > math.MaxInt32 || (c.Column != Undefined && c.Column > math.MaxInt32-spanSize(c.ColumnSpan)) {
		return fmt.Errorf("%w: column %d span %d is past last line", ErrInvalidSpan, c.Column, c.ColumnSpan)
	}
	if c.RowAlignment > Fill || c.ColumnAlignment > Fill {
		return fmt.Errorf("%w: %v/%v", ErrInvalidAlignment, c.RowAlignment, c.ColumnAlignment)
	}
	if !validWeight(c.RowWeight) || !validWeight(c.ColumnWeight) {
		return fmt.Errorf("%w: %v/%v", ErrInvalidWeight, c.RowWeight, c.ColumnWeight)
	}
	return nil
}

type cellState struct {
	Cell
	removed bool
	box     Box
}

// Grid places children in cells of rows and columns.
// Columns are solved by Horizontal axis and rows by Vertical one.
type Grid struct {
	Orientation Orientation
	Horizontal  *Axis
	Vertical    *Axis

	cells []cellState
}

func NewGrid(orientation Orientation) *Grid {
	return &Grid{
		Orientation: orientation,
		Horizontal:  NewAxis(true),
		Vertical:    NewAxis(false),
	}
}

func (g *Grid) SetLogger(logger *slog.Logger) {
	g.Horizontal.SetLogger(logger)
	g.Vertical.SetLogger(logger)
}

func (g *Grid) SetOrientation(o Orientation) error {
	g.Orientation = o
	return g.place()
}

func (g *Grid) SetColumnCount(count int) error {
	if err := g.Horizontal.SetCount(count); err != nil {
		return err
	}
	return g.place()
}

func (g *Grid) SetRowCount(count int) error {
	if err := g.Vertical.SetCount(count); err != nil {
		return err
	}
	return g.place()
}

func (g *Grid) SetAlignmentMode(mode AlignmentMode) {
	g.Horizontal.SetAlignmentMode(mode)
	g.Vertical.SetAlignmentMode(mode)
}

func (g *Grid) cell(id CellID) (*cellState, error) {
	if id < 0 || int(id) >= len(g.cells) || g.cells[id].removed {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChild, id)
	}
	return &g.cells[id], nil
}

func (g *Grid) Cell(id CellID) (Cell, error) {
	c, err := g.cell(id)
	if err != nil {
		return Cell{}, err
	}
	return c.Cell, nil
}

// Add appends cell, cells without position are placed after it in reading order.
func (g *Grid) Add(c Cell) (CellID, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	g.cells = append(g.cells, cellState{Cell: c})
	id := CellID(len(g.cells) - 1)
	if err := g.place(); err != nil {
		g.cells = g.cells[:id]
		g.Horizontal.truncate(int(id))
		g.Vertical.truncate(int(id))
		// restores spans of other cells, they were valid before
		_ = g.place()
		return 0, err
	}
	return id, nil
}

// Update replaces declaration of cell.
func (g *Grid) Update(id CellID, c Cell) error {
	s, err := g.cell(id)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	old := s.Cell
	s.Cell = c
	if err := g.place(); err != nil {
		s.Cell = old
		_ = g.place()
		return err
	}
	// size or baseline may have changed without changing groups
	g.Horizontal.InvalidateValues()
	g.Vertical.InvalidateValues()
	return nil
}

func (g *Grid) Remove(id CellID) error {
	s, err := g.cell(id)
	if err != nil {
		return err
	}
	s.removed = true
	if err := g.Horizontal.Remove(id); err != nil {
		return err
	}
	if err := g.Vertical.Remove(id); err != nil {
		return err
	}
	return g.place()
}

// SetMeasurement records new measured size of cell child. It does not change structure of grid.
func (g *Grid) SetMeasurement(id CellID, width, height, baseline int) error {
	s, err := g.cell(id)
	if err != nil {
		return err
	}
	s.Width, s.Height, s.Baseline = width, height, baseline
	g.Horizontal.InvalidateValues()
	g.Vertical.InvalidateValues()
	return nil
}

// Spans are resolved row and column groups of cell.
func (g *Grid) Spans(id CellID) (row, column Group, err error) {
	if _, err := g.cell(id); err != nil {
		return Group{}, Group{}, err
	}
	h, _ := g.Horizontal.Child(id)
	v, _ := g.Vertical.Child(id)
	return v.Group, h.Group, nil
}

// Measure is smallest width and height that fit every cell.
func (g *Grid) Measure() (width, height int) {
	return g.Horizontal.Min(), g.Vertical.Min()
}

// Box is placement of cell child computed by last Layout.
func (g *Grid) Box(id CellID) (Box, error) {
	s, err := g.cell(id)
	if err != nil {
		return Box{}, err
	}
	return s.box, nil
}

// Boxes are placements of all visible cells computed by last Layout.
func (g *Grid) Boxes() map[CellID]Box {
	boxes := make(map[CellID]Box, len(g.cells))
	for i, s := range g.cells {
		if s.removed || s.Gone {
			continue
		}
		boxes[CellID(i)] = s.box
	}
	return boxes
}

// BoundingBox coordinates that should fit all visible cells.
func (g *Grid) BoundingBox() (minx, miny, maxx, maxy int) {
	for _, box := range g.Boxes() {
		if box.X < minx {
			minx = box.X
		}
		if x := box.X + box.W; x > maxx {
			maxx = x
		}
		if box.Y < miny {
			miny = box.Y
		}
		if y := box.Y + box.H; y > maxy {
			maxy = y
		}
	}
	return minx, miny, maxx, maxy
}
