package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nikolaydubina/go-grid-layout/internal/config"
	"github.com/nikolaydubina/go-grid-layout/internal/gridfile"
	"github.com/nikolaydubina/go-grid-layout/layout"
)

// node and edge are records of JSONL graph, one JSON object per line.
// Edges refer to nodes by id with from and to.
type node struct {
	ID      string `json:"id"`
	Axis    string `json:"axis"`
	Line    int    `json:"line"`
	Minimum int    `json:"minimum"`
}

type edge struct {
	From           string `json:"from"`
	To             string `json:"to"`
	Value          int    `json:"value"`
	CompletesCycle bool   `json:"completes_cycle,omitempty"`
}

func newGraphCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "graph <grid.yaml>",
		Short: "Print constraint graphs of grid as JSONL",
		Long: `Print constraint graph of columns and rows of grid as JSONL.

Grid lines are nodes, constraints between them are edges with minimum distance as value.

Examples:
  gridlayout graph form.yaml > form.jsonl
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file (default ./gridlayout.yaml)")

	return cmd
}

func runGraph(stdout, stderr io.Writer, path, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	f, err := gridfile.ReadFile(path)
	if err != nil {
		return err
	}

	g, err := f.Grid(gridfile.Defaults{
		AlignmentMode:        cfg.Layout.Mode(),
		RowOrderPreserved:    cfg.Layout.RowOrderPreserved,
		ColumnOrderPreserved: cfg.Layout.ColumnOrderPreserved,
	})
	if err != nil {
		return err
	}
	g.SetLogger(cfg.Log.NewLogger(stderr))

	enc := json.NewEncoder(stdout)
	for _, a := range []struct {
		name string
		axis *layout.Axis
	}{
		{name: "columns", axis: g.Horizontal},
		{name: "rows", axis: g.Vertical},
	} {
		if err := writeConstraintGraph(enc, a.name, a.axis.ConstraintGraph(), a.axis.Minima()); err != nil {
			return err
		}
	}
	return nil
}

func writeConstraintGraph(enc *json.Encoder, axis string, g layout.ConstraintGraph, minima []int) error {
	id := func(line int) string { return fmt.Sprintf("%s/%d", axis, line) }

	for line := 0; line < g.Lines; line++ {
		if err := enc.Encode(node{ID: id(line), Axis: axis, Line: line, Minimum: minima[line]}); err != nil {
			return fmt.Errorf("encode node: %w", err)
		}
	}
	for _, arc := range g.Arcs {
		e := edge{From: id(arc.Span.Min), To: id(arc.Span.Max), Value: arc.Value, CompletesCycle: arc.CompletesCycle}
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encode edge: %w", err)
		}
	}
	return nil
}
