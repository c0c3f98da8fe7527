// Package gridfile decodes YAML grid descriptions into layout grids.
//
// Example:
//
//	orientation: horizontal
//	columns: 2
//	cells:
//	  - name: label
//	    width: 50
//	    height: 20
//	    baseline: 15
//	  - name: field
//	    width: 120
//	    height: 30
//	    baseline: 20
//	    column_alignment: fill
//	    column_weight: 1
package gridfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nikolaydubina/go-grid-layout/layout"
)

var ErrInvalidOrientation = errors.New("invalid orientation")

// File is grid description. Pointers distinguish unset values from zero.
type File struct {
	Orientation          string `yaml:"orientation"`
	Columns              *int   `yaml:"columns"`
	Rows                 *int   `yaml:"rows"`
	AlignmentMode        string `yaml:"alignment_mode"`
	RowOrderPreserved    *bool  `yaml:"row_order_preserved"`
	ColumnOrderPreserved *bool  `yaml:"column_order_preserved"`
	Cells                []Cell `yaml:"cells"`
}

type Insets struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
}

// Cell describes one child. Cells without row or column are placed automatically.
type Cell struct {
	Name            string  `yaml:"name"`
	Row             *int    `yaml:"row"`
	Column          *int    `yaml:"column"`
	RowSpan         int     `yaml:"row_span"`
	ColumnSpan      int     `yaml:"column_span"`
	RowAlignment    string  `yaml:"row_alignment"`
	ColumnAlignment string  `yaml:"column_alignment"`
	RowWeight       float64 `yaml:"row_weight"`
	ColumnWeight    float64 `yaml:"column_weight"`
	Margins         Insets  `yaml:"margins"`
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	Baseline        *int    `yaml:"baseline"`
	Gone            bool    `yaml:"gone"`
}

// Defaults apply to settings file leaves unset.
type Defaults struct {
	AlignmentMode        layout.AlignmentMode
	RowOrderPreserved    bool
	ColumnOrderPreserved bool
}

// Decode reads grid description, unknown fields are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode grid: %w", err)
	}
	return &f, nil
}

func ReadFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func parseOrientation(s string) (layout.Orientation, error) {
	switch s {
	case "horizontal", "":
		return layout.Horizontal, nil
	case "vertical":
		return layout.Vertical, nil
	}
	return layout.Horizontal, fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
}

func valueOr[T any](v *T, defaultValue T) T {
	if v == nil {
		return defaultValue
	}
	return *v
}

// Cell converts description into layout cell.
func (c Cell) Cell() (layout.Cell, error) {
	cell := layout.NewCell(c.Width, c.Height)
	cell.Row = valueOr(c.Row, layout.Undefined)
	cell.Column = valueOr(c.Column, layout.Undefined)
	cell.Baseline = valueOr(c.Baseline, layout.Undefined)
	if c.RowSpan != 0 {
		cell.RowSpan = c.RowSpan
	}
	if c.ColumnSpan != 0 {
		cell.ColumnSpan = c.ColumnSpan
	}
	cell.RowWeight = c.RowWeight
	cell.ColumnWeight = c.ColumnWeight
	cell.Margins = layout.Insets(c.Margins)
	cell.Gone = c.Gone

	var err error
	if c.RowAlignment != "" {
		if cell.RowAlignment, err = layout.ParseAlignment(c.RowAlignment); err != nil {
			return cell, err
		}
	}
	if c.ColumnAlignment != "" {
		if cell.ColumnAlignment, err = layout.ParseAlignment(c.ColumnAlignment); err != nil {
			return cell, err
		}
	}
	return cell, nil
}

// Grid builds grid with cells in file order, so CellID of cell is its index in Cells.
func (f *File) Grid(d Defaults) (*layout.Grid, error) {
	orientation, err := parseOrientation(f.Orientation)
	if err != nil {
		return nil, err
	}

	mode := d.AlignmentMode
	if f.AlignmentMode != "" {
		if mode, err = layout.ParseAlignmentMode(f.AlignmentMode); err != nil {
			return nil, err
		}
	}

	g := layout.NewGrid(orientation)
	g.SetAlignmentMode(mode)
	g.Vertical.SetOrderPreserved(valueOr(f.RowOrderPreserved, d.RowOrderPreserved))
	g.Horizontal.SetOrderPreserved(valueOr(f.ColumnOrderPreserved, d.ColumnOrderPreserved))

	if f.Columns != nil {
		if err := g.SetColumnCount(*f.Columns); err != nil {
			return nil, fmt.Errorf("columns: %w", err)
		}
	}
	if f.Rows != nil {
		if err := g.SetRowCount(*f.Rows); err != nil {
			return nil, fmt.Errorf("rows: %w", err)
		}
	}

	for i, c := range f.Cells {
		cell, err := c.Cell()
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", f.Name(i), err)
		}
		if _, err := g.Add(cell); err != nil {
			return nil, fmt.Errorf("cell %s: %w", f.Name(i), err)
		}
	}
	return g, nil
}

// Name of i-th cell, its index when it has no name.
func (f *File) Name(i int) string {
	if name := f.Cells[i].Name; name != "" {
		return name
	}
	return fmt.Sprintf("#%d", i)
}
