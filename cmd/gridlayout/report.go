package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/nikolaydubina/go-grid-layout/internal/gridfile"
	"github.com/nikolaydubina/go-grid-layout/layout"
)

type axisReport struct {
	Minima []int `yaml:"minima,flow"`
	Lines  []int `yaml:"lines,flow"`
}

type cellReport struct {
	Name   string `yaml:"name"`
	Row    string `yaml:"row"`
	Column string `yaml:"column"`
	Gone   bool   `yaml:"gone,omitempty"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	W      int    `yaml:"w"`
	H      int    `yaml:"h"`
}

type report struct {
	Width   int          `yaml:"width"`
	Height  int          `yaml:"height"`
	Columns axisReport   `yaml:"columns"`
	Rows    axisReport   `yaml:"rows"`
	Cells   []cellReport `yaml:"cells"`
}

func newReport(f *gridfile.File, g *layout.Grid, width, height int) *report {
	r := report{
		Width:   width,
		Height:  height,
		Columns: axisReport{Minima: g.Horizontal.Minima(), Lines: g.Horizontal.Locations()},
		Rows:    axisReport{Minima: g.Vertical.Minima(), Lines: g.Vertical.Locations()},
	}

	boxes := g.Boxes()
	for i := range f.Cells {
		id := layout.CellID(i)
		row, column, err := g.Spans(id)
		if err != nil {
			continue
		}
		box, visible := boxes[id]
		r.Cells = append(r.Cells, cellReport{
			Name:   f.Name(i),
			Row:    spanString(row.Span),
			Column: spanString(column.Span),
			Gone:   !visible,
			X:      box.X,
			Y:      box.Y,
			W:      box.W,
			H:      box.H,
		})
	}
	return &r
}

func spanString(span layout.Interval) string {
	if span.Size() == 1 {
		return strconv.Itoa(span.Min)
	}
	return fmt.Sprintf("%d-%d", span.Min, span.Max-1)
}

func (r *report) scale(s layout.ScalerLayout) {
	boxes := make(map[layout.CellID]layout.Box, len(r.Cells))
	for i, c := range r.Cells {
		boxes[layout.CellID(i)] = layout.Box{Position: layout.Position{X: c.X, Y: c.Y}, W: c.W, H: c.H}
	}
	s.UpdateBoxes(boxes)
	for i := range r.Cells {
		box := boxes[layout.CellID(i)]
		r.Cells[i].X, r.Cells[i].Y, r.Cells[i].W, r.Cells[i].H = box.X, box.Y, box.W, box.H
	}

	for _, lines := range [][]int{r.Columns.Minima, r.Columns.Lines, r.Rows.Minima, r.Rows.Lines} {
		s.UpdateLines(lines)
	}
	r.Width, r.Height = s.UpdateSize(r.Width, r.Height)
}

func (r *report) writeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

func linesRow(name string, lines []int) table.Row {
	row := table.Row{name}
	for _, x := range lines {
		row = append(row, x)
	}
	return row
}

func (r *report) writeTable(w io.Writer) {
	lines := table.NewWriter()
	lines.SetOutputMirror(w)
	lines.SetTitle("lines")
	lines.SetStyle(table.StyleLight)

	header := table.Row{"axis"}
	for i := 0; i < max(len(r.Columns.Lines), len(r.Rows.Lines)); i++ {
		header = append(header, i)
	}
	lines.AppendHeader(header)
	lines.AppendRow(linesRow("columns min", r.Columns.Minima))
	lines.AppendRow(linesRow("columns", r.Columns.Lines))
	lines.AppendSeparator()
	lines.AppendRow(linesRow("rows min", r.Rows.Minima))
	lines.AppendRow(linesRow("rows", r.Rows.Lines))
	lines.Render()

	cells := table.NewWriter()
	cells.SetOutputMirror(w)
	cells.SetTitle("cells")
	cells.SetStyle(table.StyleLight)
	cells.AppendHeader(table.Row{"name", "row", "column", "x", "y", "w", "h"})
	for _, c := range r.Cells {
		if c.Gone {
			cells.AppendRow(table.Row{c.Name, c.Row, c.Column, "gone", "", "", ""})
			continue
		}
		cells.AppendRow(table.Row{c.Name, c.Row, c.Column, c.X, c.Y, c.W, c.H})
	}
	cells.AppendFooter(table.Row{"", "", "", "", "", r.Width, r.Height})
	cells.Render()
}
